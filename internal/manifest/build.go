package manifest

import (
	"fmt"
	"slices"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
	"fhdl/internal/irtext"
	"fhdl/internal/shape"
)

// Build declares the manifest's signals on a new builder and parses its
// statements against them.
func (m *Manifest) Build(opts ...design.Option) (*design.Builder, error) {
	b := design.New(m.Name, opts...)
	declared := make(map[string]*hdl.Signal, len(m.Signals))
	for _, decl := range m.Signals {
		sopts := decl.options()
		var (
			sig *hdl.Signal
			err error
		)
		if decl.Like != "" {
			sig, err = b.Like(decl.Name, declared[decl.Like], sopts...)
		} else {
			sig, err = b.Signal(decl.Name, sopts...)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Path, err)
		}
		declared[decl.Name] = sig
	}
	stmts, err := irtext.ParseStatements(m.Statements, m.Path, irtext.SymbolsOf(b.Signals()...))
	if err != nil {
		return nil, err
	}
	if err := b.Add(stmts); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Path, err)
	}
	return b, nil
}

func (d SignalDecl) options() []hdl.SignalOption {
	var opts []hdl.SignalOption
	if d.Width != nil {
		opts = append(opts, hdl.WithShape(shape.Shape{Width: *d.Width, Signed: d.Signed}))
	}
	if d.Min != nil {
		opts = append(opts, hdl.WithMin(*d.Min))
	}
	if d.Max != nil {
		opts = append(opts, hdl.WithMax(*d.Max))
	}
	if d.Reset != 0 {
		opts = append(opts, hdl.WithReset(d.Reset))
	}
	if d.ResetLess {
		opts = append(opts, hdl.WithResetLess(true))
	}
	keys := make([]string, 0, len(d.Attrs))
	for k := range d.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		opts = append(opts, hdl.WithAttr(k, d.Attrs[k]))
	}
	return opts
}
