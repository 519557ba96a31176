package hdl

import (
	"strings"

	"fhdl/internal/ident"
	"fhdl/internal/shape"
)

// PlaceholderName is used when a signal has no explicit name and the
// resolver cannot suggest one.
const PlaceholderName = "$signal"

// IsPlaceholder reports whether name is PlaceholderName or one of its
// "$n" variants.
func IsPlaceholder(name string) bool {
	return name == PlaceholderName || strings.HasPrefix(name, PlaceholderName+"$")
}

// NameResolver suggests a name for a signal being declared. It is a hint
// only; ok=false makes the signal fall back to PlaceholderName.
type NameResolver interface {
	ResolveName() (name string, ok bool)
}

// Signal is a named bit-vector variable. Its identity is the allocated ID,
// never its contents.
type Signal struct {
	id        ident.ID
	name      string
	shape     shape.Shape
	reset     int64
	resetLess bool
	attrs     *Attrs
}

type shapeSource uint8

const (
	shapeDefault shapeSource = iota
	shapeExplicit
	shapeInherited
)

type signalSpec struct {
	name      string
	hasName   bool
	resolver  NameResolver
	shape     shape.Shape
	shapeFrom shapeSource
	lo, hi    int64
	hasLo     bool
	hasHi     bool
	reset     int64
	resetLess bool
	attrs     *Attrs
}

// SignalOption configures NewSignal and Like.
type SignalOption func(*signalSpec)

// WithName sets an explicit name; the resolver is not consulted.
func WithName(name string) SignalOption {
	return func(s *signalSpec) {
		s.name = name
		s.hasName = true
	}
}

// WithResolver sets the resolver used when no explicit name is given.
func WithResolver(r NameResolver) SignalOption {
	return func(s *signalSpec) { s.resolver = r }
}

// WithShape sets width and signedness explicitly.
func WithShape(sh shape.Shape) SignalOption {
	return func(s *signalSpec) {
		s.shape = sh
		s.shapeFrom = shapeExplicit
	}
}

// WithWidth sets an explicit unsigned width.
func WithWidth(width int) SignalOption {
	return WithShape(shape.Unsigned(width))
}

// WithMin sets the inclusive lower bound of the value range (default 0).
func WithMin(lo int64) SignalOption {
	return func(s *signalSpec) {
		s.lo = lo
		s.hasLo = true
	}
}

// WithMax sets the exclusive upper bound of the value range (default 2).
func WithMax(hi int64) SignalOption {
	return func(s *signalSpec) {
		s.hi = hi
		s.hasHi = true
	}
}

// WithRange sizes the signal to hold every integer in [lo, hi).
func WithRange(lo, hi int64) SignalOption {
	return func(s *signalSpec) {
		WithMin(lo)(s)
		WithMax(hi)(s)
	}
}

// WithReset sets the reset (or combinational default) value.
func WithReset(v int64) SignalOption {
	return func(s *signalSpec) { s.reset = v }
}

// WithResetLess marks the signal as having no reset logic.
func WithResetLess(v bool) SignalOption {
	return func(s *signalSpec) { s.resetLess = v }
}

// WithAttr adds a synthesis attribute.
func WithAttr(key string, val any) SignalOption {
	return func(s *signalSpec) {
		if s.attrs == nil {
			s.attrs = NewAttrs()
		}
		s.attrs.Set(key, val)
	}
}

// WithAttrs replaces all attributes with a copy of attrs.
func WithAttrs(attrs *Attrs) SignalOption {
	return func(s *signalSpec) { s.attrs = attrs.Clone() }
}

// NewSignal declares a signal. Without a shape or range option it is one
// unsigned bit.
func NewSignal(alloc *ident.Allocator, opts ...SignalOption) (*Signal, error) {
	spec := signalSpec{}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec.build(alloc)
}

// Like declares a signal shaped like other. If other is a Signal, its reset
// value, reset-less flag and attributes are copied too. opts apply last, so
// a range option replaces the inherited shape.
func Like(alloc *ident.Allocator, other any, opts ...SignalOption) (*Signal, error) {
	v, err := Wrap(other)
	if err != nil {
		return nil, err
	}
	spec := signalSpec{shape: v.Shape(), shapeFrom: shapeInherited}
	if sig, ok := v.(*Signal); ok {
		spec.reset = sig.reset
		spec.resetLess = sig.resetLess
		spec.attrs = sig.attrs.Clone()
	}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec.build(alloc)
}

func (spec *signalSpec) build(alloc *ident.Allocator) (*Signal, error) {
	if alloc == nil {
		return nil, errorf(InvalidValue, "signal needs an identity allocator")
	}
	sh, err := spec.resolveShape()
	if err != nil {
		return nil, err
	}
	attrs := spec.attrs
	if attrs == nil {
		attrs = NewAttrs()
	}
	return &Signal{
		id:        alloc.Next(),
		name:      spec.resolveName(),
		shape:     sh,
		reset:     spec.reset,
		resetLess: spec.resetLess,
		attrs:     attrs,
	}, nil
}

func (spec *signalSpec) resolveShape() (shape.Shape, error) {
	hasRange := spec.hasLo || spec.hasHi
	switch {
	case spec.shapeFrom == shapeExplicit && hasRange:
		return shape.Shape{}, errorf(BoundsConflict, "only one of bits/signedness or bounds may be specified")
	case spec.shapeFrom != shapeDefault && !hasRange:
		if err := spec.shape.Validate(); err != nil {
			return shape.Shape{}, wrapErr(InvalidValue, err, "signal shape")
		}
		return spec.shape, nil
	}
	lo, hi := int64(0), int64(2)
	if spec.hasLo {
		lo = spec.lo
	}
	if spec.hasHi {
		hi = spec.hi
	}
	sh, err := shape.ForRange(lo, hi)
	if err != nil {
		return shape.Shape{}, wrapErr(BoundsConflict, err, "signal range")
	}
	return sh, nil
}

func (spec *signalSpec) resolveName() string {
	if spec.hasName {
		return spec.name
	}
	if spec.resolver != nil {
		if name, ok := spec.resolver.ResolveName(); ok && name != "" {
			return name
		}
	}
	return PlaceholderName
}

// ID returns the signal's identity.
func (s *Signal) ID() ident.ID { return s.id }

func (s *Signal) Name() string { return s.name }

// Reset returns the reset (or combinational default) value.
func (s *Signal) Reset() int64 { return s.reset }

func (s *Signal) ResetLess() bool { return s.resetLess }

// Attrs returns the signal's attribute map. It is owned by whoever holds
// the signal and may be changed in place.
func (s *Signal) Attrs() *Attrs { return s.attrs }

func (s *Signal) Shape() shape.Shape { return s.shape }

func (s *Signal) RHSSignals() *SignalSet { return NewSignalSet(s) }

func (s *Signal) LHSSignals() (*SignalSet, error) { return NewSignalSet(s), nil }

func (s *Signal) String() string { return "(sig " + s.name + ")" }

func (*Signal) value() {}
