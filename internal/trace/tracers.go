package trace

import (
	"errors"
	"io"
	"sync"

	"github.com/emirpasic/gods/queues/circularbuffer"
)

// DefaultRingSize is the ring capacity used when none is configured.
const DefaultRingSize = 4096

// Tracer receives events. Emit must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// gate is the level filter shared by the concrete tracers.
type gate struct{ level Level }

func (g gate) Level() Level { return g.level }

func (g gate) Enabled() bool { return g.level > LevelOff }

func (gate) Flush() error { return nil }

func (gate) Close() error { return nil }

func (g gate) keeps(ev *Event) bool { return g.level.ShouldEmit(ev.Scope) }

type nopTracer struct{ gate }

func (nopTracer) Emit(*Event) {}

// Nop drops every event.
var Nop Tracer = nopTracer{}

// StreamTracer writes every kept event to w as it arrives. At LevelError
// it writes nothing. Write errors are dropped so that tracing never fails
// the traced command.
type StreamTracer struct {
	gate
	mu     sync.Mutex
	w      io.Writer
	format Format
}

// NewStreamTracer returns a tracer writing to w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{gate: gate{level}, w: w, format: formatFor(format, "")}
}

func (t *StreamTracer) Emit(ev *Event) {
	if t.level == LevelError || !t.keeps(ev) {
		return
	}
	ev.Seq = NextSeq()
	line := FormatEvent(ev, t.format)
	t.mu.Lock()
	_, _ = t.w.Write(line)
	t.mu.Unlock()
}

// Flush flushes w when it buffers.
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w when it is a Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RingTracer keeps the most recent events in memory, dropping the oldest.
type RingTracer struct {
	gate
	mu  sync.Mutex
	buf *circularbuffer.Queue
}

// NewRingTracer returns a ring holding up to capacity events; a capacity
// below one means DefaultRingSize.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity < 1 {
		capacity = DefaultRingSize
	}
	return &RingTracer{gate: gate{level}, buf: circularbuffer.New(capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.keeps(ev) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}
	t.mu.Lock()
	t.buf.Enqueue(stored)
	t.mu.Unlock()
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	vals := t.buf.Values()
	t.mu.Unlock()
	out := make([]Event, len(vals))
	for i, v := range vals {
		out[i] = v.(Event)
	}
	return out
}

// Dump writes the kept events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// MultiTracer hands every event to several tracers.
type MultiTracer struct {
	gate
	tracers []Tracer
}

// NewMultiTracer fans out to tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{gate: gate{level}, tracers: tracers}
}

// Emit passes each tracer its own copy, since tracers stamp Seq.
func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error { return t.each(Tracer.Flush) }

func (t *MultiTracer) Close() error { return t.each(Tracer.Close) }

func (t *MultiTracer) each(fn func(Tracer) error) error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, fn(tr))
	}
	return errors.Join(errs...)
}

// RingOf returns the ring buffer behind t: t itself, or the first ring
// among a MultiTracer's targets.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch t := t.(type) {
	case *RingTracer:
		return t, true
	case *MultiTracer:
		for _, tr := range t.tracers {
			if r, ok := RingOf(tr); ok {
				return r, true
			}
		}
	}
	return nil, false
}
