// Package irtext reads the textual form printed by hdl values and
// statements back into IR nodes.
//
// The form is a parenthesised prefix notation:
//
//	(const 4'd3) (const 4'sd-3) (sig name)
//	(+ a b) (- a) (~ a) (b a) (m sel a b)
//	(slice v 0:4) (part v off 4) (cat a b) (repl v 3)
//	(clk sys) (rst sys)
//	(eq lhs rhs)
//	(switch test (case 010 stmt...) ...)
//
// Signals are not declared in the text; (sig name) is looked up in a
// Scope supplied by the caller.
package irtext
