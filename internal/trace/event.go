package trace

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the type of an event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

// Scope is the granularity of an event. Coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // load, check, dump
	ScopeDesign                  // one design
	ScopeNode                    // one signal or statement
)

// Level controls which scopes a tracer keeps.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var (
	kindNames  = []string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}
	scopeNames = []string{ScopeDriver: "driver", ScopePass: "pass", ScopeDesign: "design", ScopeNode: "node"}
	levelNames = []string{LevelOff: "off", LevelError: "error", LevelPhase: "phase", LevelDetail: "detail", LevelDebug: "debug"}

	// finest scope kept at each level
	levelReach = []Scope{LevelError: ScopePass, LevelPhase: ScopePass, LevelDetail: ScopeDesign, LevelDebug: ScopeNode}
)

func nameOf(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}

// lookup finds s, case-insensitively, among names.
func lookup(names []string, s, what string) (int, error) {
	s = strings.ToLower(s)
	for i, n := range names {
		if n != "" && n == s {
			return i, nil
		}
	}
	valid := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			valid = append(valid, n)
		}
	}
	return 0, fmt.Errorf("invalid trace %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}

func (k Kind) String() string  { return nameOf(kindNames, int(k)) }
func (s Scope) String() string { return nameOf(scopeNames, int(s)) }
func (l Level) String() string { return nameOf(levelNames, int(l)) }

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	i, err := lookup(levelNames, s, "level")
	return Level(i), err
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelReach) {
		return false
	}
	reach := levelReach[l]
	return reach != 0 && scope <= reach
}

// Field is one key/value annotation of an event.
type Field struct {
	Key   string
	Value string
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // stamped by the tracer that keeps the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64
	Name     string
	Detail   string
	Fields   []Field // in the order they were set
}
