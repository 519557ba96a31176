package hdl

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Attrs is an insertion-ordered map of synthesis attributes. The IR stores
// them opaquely; whoever holds the owning Signal may change them.
type Attrs struct {
	m *linkedhashmap.Map
}

// NewAttrs returns an empty attribute map.
func NewAttrs() *Attrs {
	return &Attrs{m: linkedhashmap.New()}
}

// Set stores val under key. Overwriting keeps the key's original position.
func (a *Attrs) Set(key string, val any) {
	a.m.Put(key, val)
}

func (a *Attrs) Get(key string) (any, bool) {
	return a.m.Get(key)
}

func (a *Attrs) Delete(key string) {
	a.m.Remove(key)
}

func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return a.m.Size()
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, 0, a.m.Size())
	for _, k := range a.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Each calls fn for every attribute in insertion order.
func (a *Attrs) Each(fn func(key string, val any)) {
	if a == nil {
		return
	}
	it := a.m.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value())
	}
}

// Clone returns an independent copy.
func (a *Attrs) Clone() *Attrs {
	out := NewAttrs()
	a.Each(out.Set)
	return out
}

func (a *Attrs) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	a.Each(func(key string, val any) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%s=%v", key, val)
	})
	sb.WriteByte('}')
	return sb.String()
}
