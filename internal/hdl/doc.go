// Package hdl is the expression and statement IR of the fhdl hardware
// description layer.
//
// # Values
//
// Value is a closed set of immutable nodes:
//
//   - Const – a literal with an explicit or minimal shape.
//   - Signal – a named, identity-bearing variable (register or wire).
//   - Operator – a unary, binary or mux operation over other values.
//   - Slice – a static bit range [start, end) of a value.
//   - Part – a statically sized, dynamically positioned bit range.
//   - Cat – a concatenation; operand 0 occupies the low bits.
//   - Repl – a value repeated low to high.
//   - ClockSignal, ResetSignal – unresolved per-domain proxies.
//
// Every node knows its exact Shape at construction time; builders that
// cannot produce a valid node return an *Error and nothing else.
//
// Go equality on Value is pointer identity. Builders such as Eq or Lt
// construct Operator nodes, they never compare. Use Truth for the narrow
// case where an equality node has to be read as a bool, and Key for
// structural identity in containers (ValueMap, ValueSet).
//
// # Statements
//
// Assign and Switch relate values. Both expose the set of signals they
// write (LHSSignals) and read (RHSSignals). Switch keeps its cases in the
// order they were supplied; consumers treat that order as priority.
//
// # Textual form
//
// String on any node prints an s-expression that internal/irtext can read
// back, for example
//
//	(eq (sig count) (+ (sig count) (const 1'd1)))
package hdl
