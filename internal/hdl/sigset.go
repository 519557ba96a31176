package hdl

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// SignalSet is a set of signals ordered by declaration (allocated ID).
type SignalSet struct {
	set *treeset.Set
}

func bySignalID(a, b any) int {
	x, y := a.(*Signal).id, b.(*Signal).id
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// NewSignalSet returns a set holding sigs.
func NewSignalSet(sigs ...*Signal) *SignalSet {
	s := &SignalSet{set: treeset.NewWith(bySignalID)}
	s.Add(sigs...)
	return s
}

func (s *SignalSet) Add(sigs ...*Signal) {
	for _, sig := range sigs {
		s.set.Add(sig)
	}
}

func (s *SignalSet) Remove(sig *Signal) {
	s.set.Remove(sig)
}

func (s *SignalSet) Has(sig *Signal) bool {
	return sig != nil && s.set.Contains(sig)
}

func (s *SignalSet) Len() int {
	if s == nil {
		return 0
	}
	return s.set.Size()
}

// Union adds every member of others to s and returns s.
func (s *SignalSet) Union(others ...*SignalSet) *SignalSet {
	for _, o := range others {
		if o == nil {
			continue
		}
		s.set.Add(o.set.Values()...)
	}
	return s
}

// Signals returns the members in declaration order.
func (s *SignalSet) Signals() []*Signal {
	if s == nil {
		return nil
	}
	vals := s.set.Values()
	out := make([]*Signal, len(vals))
	for i, v := range vals {
		out[i] = v.(*Signal)
	}
	return out
}

func (s *SignalSet) String() string {
	sigs := s.Signals()
	parts := make([]string, len(sigs))
	for i, sig := range sigs {
		parts[i] = sig.String()
	}
	return "SignalSet(" + strings.Join(parts, ", ") + ")"
}
