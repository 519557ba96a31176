package hdl

import "fhdl/internal/shape"

// DefaultDomain is the domain used when none is named.
const DefaultDomain = "sys"

// ClockSignal stands for the clock of a domain. It is resolved to a real
// signal only by the consumer of the IR; every ClockSignal for one domain
// refers to the same clock.
type ClockSignal struct {
	domain string
}

// NewClockSignal returns the clock proxy of domain ("" means DefaultDomain).
func NewClockSignal(domain string) *ClockSignal {
	if domain == "" {
		domain = DefaultDomain
	}
	return &ClockSignal{domain: domain}
}

func (c *ClockSignal) Domain() string { return c.domain }

func (*ClockSignal) Shape() shape.Shape { return shape.Unsigned(1) }

func (*ClockSignal) RHSSignals() *SignalSet { return NewSignalSet() }

func (c *ClockSignal) LHSSignals() (*SignalSet, error) {
	return nil, errorf(NotAssignable, "value %s cannot be used in assignments", c)
}

func (c *ClockSignal) String() string { return "(clk " + c.domain + ")" }

func (*ClockSignal) value() {}

// ResetSignal stands for the reset of a domain, resolved like ClockSignal.
type ResetSignal struct {
	domain string
}

// NewResetSignal returns the reset proxy of domain ("" means DefaultDomain).
func NewResetSignal(domain string) *ResetSignal {
	if domain == "" {
		domain = DefaultDomain
	}
	return &ResetSignal{domain: domain}
}

func (r *ResetSignal) Domain() string { return r.domain }

func (*ResetSignal) Shape() shape.Shape { return shape.Unsigned(1) }

func (*ResetSignal) RHSSignals() *SignalSet { return NewSignalSet() }

func (r *ResetSignal) LHSSignals() (*SignalSet, error) {
	return nil, errorf(NotAssignable, "value %s cannot be used in assignments", r)
}

func (r *ResetSignal) String() string { return "(rst " + r.domain + ")" }

func (*ResetSignal) value() {}
