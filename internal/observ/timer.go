// Package observ measures the phases of a check run.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step.
type Phase struct {
	Name   string
	Took   time.Duration
	Failed bool
}

// Timer accumulates phases in the order they finish. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	phases []Phase
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Measure runs fn and records it as phase name. fn's error is returned
// unchanged and marks the phase failed.
func (t *Timer) Measure(name string, fn func() error) error {
	start := t.clock()
	err := fn()
	p := Phase{Name: name, Took: t.clock().Sub(start), Failed: err != nil}
	t.mu.Lock()
	t.phases = append(t.phases, p)
	t.mu.Unlock()
	return err
}

func (t *Timer) clock() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now()
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Total is the sum of all phase durations.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.Phases() {
		total += p.Took
	}
	return total
}

// Summary renders one line per phase and a closing total, durations in
// milliseconds.
func (t *Timer) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	line := func(name string, d time.Duration, failed bool) {
		fmt.Fprintf(&sb, "  %-12s %8.2f ms", name, float64(d)/float64(time.Millisecond))
		if failed {
			sb.WriteString("  (failed)")
		}
		sb.WriteByte('\n')
	}
	for _, p := range t.Phases() {
		line(p.Name, p.Took, p.Failed)
	}
	line("total", t.Total(), false)
	return sb.String()
}
