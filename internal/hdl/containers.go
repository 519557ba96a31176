package hdl

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

func byKey(a, b any) int {
	return a.(Key).Compare(b.(Key))
}

type mapEntry[V any] struct {
	key Value
	val V
}

// ValueMap maps values to V by structural key. Iteration follows key
// order, not insertion order.
type ValueMap[V any] struct {
	tree *treemap.Map
}

// NewValueMap returns an empty map.
func NewValueMap[V any]() *ValueMap[V] {
	return &ValueMap[V]{tree: treemap.NewWith(byKey)}
}

// Put stores val under v. Overwriting keeps the value first stored as key.
func (m *ValueMap[V]) Put(v Value, val V) error {
	k, err := KeyOf(v)
	if err != nil {
		return err
	}
	if old, ok := m.tree.Get(k); ok {
		v = old.(mapEntry[V]).key
	}
	m.tree.Put(k, mapEntry[V]{key: v, val: val})
	return nil
}

func (m *ValueMap[V]) Get(v Value) (V, bool, error) {
	var zero V
	k, err := KeyOf(v)
	if err != nil {
		return zero, false, err
	}
	e, ok := m.tree.Get(k)
	if !ok {
		return zero, false, nil
	}
	return e.(mapEntry[V]).val, true, nil
}

func (m *ValueMap[V]) Has(v Value) (bool, error) {
	_, ok, err := m.Get(v)
	return ok, err
}

func (m *ValueMap[V]) Delete(v Value) error {
	k, err := KeyOf(v)
	if err != nil {
		return err
	}
	m.tree.Remove(k)
	return nil
}

func (m *ValueMap[V]) Len() int { return m.tree.Size() }

// Keys returns the stored keys in key order.
func (m *ValueMap[V]) Keys() []Value {
	out := make([]Value, 0, m.tree.Size())
	m.Range(func(k Value, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Range calls fn for each entry in key order until fn returns false.
func (m *ValueMap[V]) Range(fn func(k Value, v V) bool) {
	it := m.tree.Iterator()
	for it.Next() {
		e := it.Value().(mapEntry[V])
		if !fn(e.key, e.val) {
			return
		}
	}
}

// ValueSet is a set of values by structural key, iterated in key order.
type ValueSet struct {
	tree *treemap.Map
}

// NewValueSet returns a set holding vals.
func NewValueSet(vals ...Value) (*ValueSet, error) {
	s := &ValueSet{tree: treemap.NewWith(byKey)}
	if err := s.Add(vals...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add inserts vals. A value whose key is already present is not stored again.
func (s *ValueSet) Add(vals ...Value) error {
	for _, v := range vals {
		k, err := KeyOf(v)
		if err != nil {
			return err
		}
		if _, ok := s.tree.Get(k); !ok {
			s.tree.Put(k, v)
		}
	}
	return nil
}

func (s *ValueSet) Has(v Value) (bool, error) {
	k, err := KeyOf(v)
	if err != nil {
		return false, err
	}
	_, ok := s.tree.Get(k)
	return ok, nil
}

// Discard removes v if present.
func (s *ValueSet) Discard(v Value) error {
	k, err := KeyOf(v)
	if err != nil {
		return err
	}
	s.tree.Remove(k)
	return nil
}

func (s *ValueSet) Len() int { return s.tree.Size() }

// Values returns the members in key order.
func (s *ValueSet) Values() []Value {
	out := make([]Value, 0, s.tree.Size())
	for _, v := range s.tree.Values() {
		out = append(out, v.(Value))
	}
	return out
}

func (s *ValueSet) String() string {
	vals := s.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return "ValueSet(" + strings.Join(parts, ", ") + ")"
}
