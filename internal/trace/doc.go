// Package trace records what design construction and the CLI do as a
// stream of events.
//
// Passes (load, check, dump) are spans with a begin and an end event.
// Declarations inside a design (the design itself, each signal, each
// statement) are instant points. Which events survive is decided by the
// tracer's Level against the event's Scope:
//
//	off     nothing
//	error   driver and pass spans, kept only by ring tracers for a failure dump
//	phase   driver and pass spans
//	detail  plus design points
//	debug   plus signal and statement points
//
// A tracer travels in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "load", trace.ParentFrom(ctx))
//	defer span.End("")
package trace
