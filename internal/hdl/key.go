package hdl

import (
	"cmp"
	"fmt"

	"fhdl/internal/ident"
)

// KeyKind is the variant of a structural key.
type KeyKind uint8

const (
	KeyNone KeyKind = iota
	KeyConst
	KeySignal
	KeySlice
)

// Key is the structural identity of a value, usable where Go equality on
// Value (pointer identity) is not what a container needs.
//
//   - Const keys compare by literal only, so 1 as 8 bits and 1 as 16 bits
//     are the same key.
//   - Signal keys compare by identity, in declaration order.
//   - Slice keys compare by (base key, start, end), lexicographically.
//
// Other values have no key. The zero Key is not a key at all and is
// neither equal to nor less than anything.
type Key struct {
	kind  KeyKind
	value Value
	lit   int64
	id    ident.ID
	base  *Key
	start int
	end   int
}

// KeyOf returns the key of v, failing with UnsupportedKey for values
// other than Const, Signal and Slice.
func KeyOf(v Value) (Key, error) {
	switch v := v.(type) {
	case *Const:
		return Key{kind: KeyConst, value: v, lit: v.lit}, nil
	case *Signal:
		return Key{kind: KeySignal, value: v, id: v.id}, nil
	case *Slice:
		base, err := KeyOf(v.base)
		if err != nil {
			return Key{}, err
		}
		return Key{kind: KeySlice, value: v, base: &base, start: v.start, end: v.end}, nil
	case nil:
		return Key{}, errorf(UnsupportedKey, "nil value has no key")
	default:
		return Key{}, errorf(UnsupportedKey, "value %s of type %T cannot be used as a key", v, v)
	}
}

func (k Key) Kind() KeyKind { return k.kind }

// Value returns the value the key was made from.
func (k Key) Value() Value { return k.value }

// Equal reports structural identity. Keys of different variants are never equal.
func (k Key) Equal(o Key) bool {
	return k.kind != KeyNone && k.kind == o.kind && k.compareSame(o) == 0
}

// Less orders keys of the same variant. Keys of different variants are
// unordered: Less is false both ways.
func (k Key) Less(o Key) bool {
	return k.kind != KeyNone && k.kind == o.kind && k.compareSame(o) < 0
}

// Compare is a total order over all keys: by variant, then within the
// variant as Less does. Containers sort with it.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.kind, o.kind); c != 0 {
		return c
	}
	return k.compareSame(o)
}

func (k Key) compareSame(o Key) int {
	switch k.kind {
	case KeyConst:
		return cmp.Compare(k.lit, o.lit)
	case KeySignal:
		return cmp.Compare(k.id, o.id)
	case KeySlice:
		if c := k.base.Compare(*o.base); c != 0 {
			return c
		}
		if c := cmp.Compare(k.start, o.start); c != 0 {
			return c
		}
		return cmp.Compare(k.end, o.end)
	default:
		return 0
	}
}

// String is a canonical rendering: equal keys print identically.
func (k Key) String() string {
	switch k.kind {
	case KeyConst:
		return fmt.Sprintf("const:%d", k.lit)
	case KeySignal:
		return "sig:" + k.id.String()
	case KeySlice:
		return fmt.Sprintf("slice:(%s)[%d:%d]", k.base, k.start, k.end)
	default:
		return "nokey"
	}
}
