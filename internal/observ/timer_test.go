package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func steppingClock(step time.Duration) func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerMeasure(t *testing.T) {
	tm := NewTimer()
	tm.now = steppingClock(2 * time.Millisecond)
	if err := tm.Measure("load", func() error { return nil }); err != nil {
		t.Fatalf("Measure: %v", err)
	}
	boom := errors.New("boom")
	if err := tm.Measure("diagnose", func() error { return boom }); err != boom {
		t.Fatalf("Measure err = %v", err)
	}

	phases := tm.Phases()
	if len(phases) != 2 || phases[0].Took != 2*time.Millisecond || phases[0].Failed || !phases[1].Failed {
		t.Fatalf("phases = %+v", phases)
	}
	if tm.Total() != 4*time.Millisecond {
		t.Fatalf("total = %v", tm.Total())
	}
	sum := tm.Summary()
	for _, want := range []string{
		"  load             2.00 ms\n",
		"  diagnose         2.00 ms  (failed)\n",
		"  total            4.00 ms\n",
	} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	tm := NewTimer()
	if tm.Total() != 0 || len(tm.Phases()) != 0 {
		t.Fatalf("fresh timer has phases")
	}
	if got := tm.Summary(); got != "timings:\n  total            0.00 ms\n" {
		t.Fatalf("summary = %q", got)
	}
}
