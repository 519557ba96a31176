// Package design collects signals and statements into a named design.
package design

import (
	"fmt"
	"sync"

	"fhdl/internal/hdl"
	"fhdl/internal/ident"
	"fhdl/internal/naming"
	"fhdl/internal/trace"
)

// Builder owns the collaborators the IR constructors need: the identity
// allocator, the name resolver and the tracer. It is safe for concurrent
// use; statements keep the order in which Add was called.
type Builder struct {
	mu      sync.Mutex
	name    string
	alloc   *ident.Allocator
	namer   *naming.Namer
	tracer  trace.Tracer
	parent  uint64
	signals []*hdl.Signal
	byName  map[string]*hdl.Signal
	stmts   []hdl.Statement
}

// Option configures a Builder.
type Option func(*Builder)

// WithAllocator shares an allocator between builders.
func WithAllocator(a *ident.Allocator) Option {
	return func(b *Builder) { b.alloc = a }
}

// WithNamer shares a namer between builders.
func WithNamer(n *naming.Namer) Option {
	return func(b *Builder) { b.namer = n }
}

// WithTracer sets the tracer; parent is the span the node events attach to.
func WithTracer(t trace.Tracer, parent uint64) Option {
	return func(b *Builder) {
		b.tracer = t
		b.parent = parent
	}
}

// New returns an empty builder for the design called name.
func New(name string, opts ...Option) *Builder {
	b := &Builder{
		name:   name,
		byName: make(map[string]*hdl.Signal),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.alloc == nil {
		b.alloc = ident.New()
	}
	if b.namer == nil {
		b.namer = naming.New()
	}
	if b.tracer == nil {
		b.tracer = trace.Nop
	}
	trace.Point(b.tracer, trace.ScopeDesign, "design", name, b.parent)
	return b
}

func (b *Builder) Name() string { return b.name }

func (b *Builder) Allocator() *ident.Allocator { return b.alloc }

func (b *Builder) Namer() *naming.Namer { return b.namer }

// Scope runs fn with name pushed as a prefix for every signal declared
// inside it.
func (b *Builder) Scope(name string, fn func() error) error {
	leave := b.namer.Enter(name)
	defer leave()
	return fn()
}

// Signal declares a signal; repeated names get a "$n" suffix. An empty
// name takes the hint pushed on the builder's Namer, or else a unique
// placeholder name.
func (b *Builder) Signal(name string, opts ...hdl.SignalOption) (*hdl.Signal, error) {
	opts = append([]hdl.SignalOption{hdl.WithResolver(b.resolver(name))}, opts...)
	sig, err := hdl.NewSignal(b.alloc, opts...)
	if err != nil {
		return nil, fmt.Errorf("signal %q: %w", name, err)
	}
	b.register(sig)
	return sig, nil
}

// Like declares a signal shaped after other. See hdl.Like.
func (b *Builder) Like(name string, other any, opts ...hdl.SignalOption) (*hdl.Signal, error) {
	opts = append([]hdl.SignalOption{hdl.WithResolver(b.resolver(name))}, opts...)
	sig, err := hdl.Like(b.alloc, other, opts...)
	if err != nil {
		return nil, fmt.Errorf("signal %q: %w", name, err)
	}
	b.register(sig)
	return sig, nil
}

func (b *Builder) resolver(name string) hdl.NameResolver {
	if naming.Normalize(name) != "" {
		return b.namer.Hint(name)
	}
	return pendingHint{b.namer}
}

// pendingHint answers with the Namer's innermost pushed hint, falling
// back to a fresh placeholder so unnamed signals stay distinguishable.
type pendingHint struct{ namer *naming.Namer }

func (p pendingHint) ResolveName() (string, bool) {
	if name, ok := p.namer.ResolveName(); ok {
		return name, true
	}
	return p.namer.Unique(hdl.PlaceholderName), true
}

func (b *Builder) register(sig *hdl.Signal) {
	b.mu.Lock()
	b.signals = append(b.signals, sig)
	if _, dup := b.byName[sig.Name()]; !dup {
		b.byName[sig.Name()] = sig
	}
	b.mu.Unlock()
	trace.Point(b.tracer, trace.ScopeNode, "signal", sig.Name()+" "+sig.Shape().String(), b.parent)
}

// Lookup finds a declared signal by its final name.
func (b *Builder) Lookup(name string) (*hdl.Signal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sig, ok := b.byName[name]
	return sig, ok
}

// Add flattens stmts and appends them. Nothing is appended on error.
func (b *Builder) Add(stmts ...any) error {
	flat, err := hdl.FlattenStatements(stmts...)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.stmts = append(b.stmts, flat...)
	b.mu.Unlock()
	for _, st := range flat {
		trace.Point(b.tracer, trace.ScopeNode, "statement", st.String(), b.parent)
	}
	return nil
}

// Statements returns the collected statements in order.
func (b *Builder) Statements() []hdl.Statement {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]hdl.Statement(nil), b.stmts...)
}

// Signals returns the declared signals in declaration order.
func (b *Builder) Signals() []*hdl.Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*hdl.Signal(nil), b.signals...)
}

// Drivers returns every signal assigned by some statement.
func (b *Builder) Drivers() *hdl.SignalSet {
	return drivers(b.Statements())
}

func drivers(stmts []hdl.Statement) *hdl.SignalSet {
	out := hdl.NewSignalSet()
	for _, st := range stmts {
		out.Union(st.LHSSignals())
	}
	return out
}

// Inputs returns the signals read by some statement but never assigned.
func (b *Builder) Inputs() *hdl.SignalSet {
	drivers := b.Drivers()
	out := hdl.NewSignalSet()
	for _, st := range b.Statements() {
		for _, sig := range st.RHSSignals().Signals() {
			if !drivers.Has(sig) {
				out.Add(sig)
			}
		}
	}
	return out
}

// Design is an immutable snapshot of a builder.
type Design struct {
	Name       string
	Signals    []*hdl.Signal
	Statements []hdl.Statement
}

// Drivers returns every signal assigned by some statement.
func (d *Design) Drivers() *hdl.SignalSet {
	return drivers(d.Statements)
}

// Design snapshots the builder. Signals are the declared ones in
// declaration order followed by any signal the statements reference
// without having been declared here, in identity order.
func (b *Builder) Design() *Design {
	sigs := b.Signals()
	stmts := b.Statements()
	known := hdl.NewSignalSet(sigs...)
	extra := hdl.NewSignalSet()
	for _, st := range stmts {
		for _, sig := range st.LHSSignals().Union(st.RHSSignals()).Signals() {
			if !known.Has(sig) {
				extra.Add(sig)
			}
		}
	}
	return &Design{
		Name:       b.name,
		Signals:    append(sigs, extra.Signals()...),
		Statements: stmts,
	}
}
