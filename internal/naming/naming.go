// Package naming supplies signal names to the IR builders.
//
// The IR never inspects the caller to learn what a signal is bound to.
// Instead a Namer carries explicit hints pushed by the builder and
// hands them out through hdl.NameResolver.
package naming

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Separator joins scope prefixes with the hinted name.
const Separator = "."

// Normalize returns the NFC form of name with whitespace and parentheses
// replaced by '_', so the name survives a round trip through the textual
// form. Leading and trailing space is dropped.
func Normalize(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			return '_'
		}
		return r
	}, name)
}

// Namer hands out qualified, unique names. It is safe for concurrent use.
type Namer struct {
	mu     sync.Mutex
	scopes []string
	hints  []string
	used   map[string]int
}

// New returns an empty Namer.
func New() *Namer {
	return &Namer{used: make(map[string]int)}
}

// Enter pushes a scope prefix and returns the func that pops it.
func (n *Namer) Enter(scope string) (leave func()) {
	n.mu.Lock()
	n.scopes = append(n.scopes, Normalize(scope))
	depth := len(n.scopes)
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if len(n.scopes) >= depth {
			n.scopes = n.scopes[:depth-1]
		}
	}
}

// Qualify prefixes name with the current scopes.
func (n *Namer) Qualify(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.qualifyLocked(Normalize(name))
}

func (n *Namer) qualifyLocked(name string) string {
	parts := make([]string, 0, len(n.scopes)+1)
	for _, s := range n.scopes {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, Separator)
}

// Unique reserves name, appending "$n" when it was handed out before.
func (n *Namer) Unique(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.uniqueLocked(name)
}

func (n *Namer) uniqueLocked(name string) string {
	count, seen := n.used[name]
	if !seen {
		n.used[name] = 0
		return name
	}
	for {
		count++
		candidate := name + "$" + strconv.Itoa(count)
		if _, taken := n.used[candidate]; !taken {
			n.used[name] = count
			n.used[candidate] = 0
			return candidate
		}
	}
}

// PushHint makes name the answer to the next ResolveName call.
func (n *Namer) PushHint(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hints = append(n.hints, name)
}

// ResolveName pops the innermost hint and returns it qualified and unique.
// With no hint pending it reports ok=false and the signal falls back to
// the placeholder name.
func (n *Namer) ResolveName() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.hints) == 0 {
		return "", false
	}
	hint := Normalize(n.hints[len(n.hints)-1])
	n.hints = n.hints[:len(n.hints)-1]
	if hint == "" {
		return "", false
	}
	return n.uniqueLocked(n.qualifyLocked(hint)), true
}

// Hint returns a resolver that always answers name, qualified and made
// unique at the time Hint is called.
func (n *Namer) Hint(name string) Fixed {
	name = Normalize(name)
	if name == "" {
		return Fixed{}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return Fixed{Name: n.uniqueLocked(n.qualifyLocked(name)), OK: true}
}

// Fixed is a resolver with a precomputed answer.
type Fixed struct {
	Name string
	OK   bool
}

func (f Fixed) ResolveName() (string, bool) { return f.Name, f.OK }
