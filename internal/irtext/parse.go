package irtext

import (
	"strconv"
	"strings"

	"fhdl/internal/hdl"
	"fhdl/internal/shape"
)

// Scope resolves signal names. design.Builder satisfies it.
type Scope interface {
	Lookup(name string) (*hdl.Signal, bool)
}

// Symbols is a Scope backed by a map.
type Symbols map[string]*hdl.Signal

func (s Symbols) Lookup(name string) (*hdl.Signal, bool) {
	sig, ok := s[name]
	return sig, ok
}

// SymbolsOf indexes sigs by name; the first signal wins on duplicates.
func SymbolsOf(sigs ...*hdl.Signal) Symbols {
	out := make(Symbols, len(sigs))
	for _, sig := range sigs {
		if _, dup := out[sig.Name()]; !dup {
			out[sig.Name()] = sig
		}
	}
	return out
}

type parser struct {
	*reader
	scope Scope
}

func newParser(src, path string, scope Scope) *parser {
	if scope == nil {
		scope = Symbols{}
	}
	return &parser{reader: newReader(src, path), scope: scope}
}

// ParseValue parses exactly one value.
func ParseValue(src string, scope Scope) (hdl.Value, error) {
	p := newParser(src, "", scope)
	n, err := p.single()
	if err != nil {
		return nil, err
	}
	return p.value(n)
}

// ParseStatement parses exactly one statement.
func ParseStatement(src string, scope Scope) (hdl.Statement, error) {
	p := newParser(src, "", scope)
	n, err := p.single()
	if err != nil {
		return nil, err
	}
	return p.statement(n)
}

// ParseStatements parses a sequence of statements. path only labels
// error positions.
func ParseStatements(src, path string, scope Scope) ([]hdl.Statement, error) {
	p := newParser(src, path, scope)
	var out []hdl.Statement
	for !p.atEOF() {
		n, err := p.read()
		if err != nil {
			return nil, err
		}
		st, err := p.statement(n)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (p *parser) single() (node, error) {
	if p.atEOF() {
		return node{}, p.errorf(p.tok.Span, "empty input")
	}
	n, err := p.read()
	if err != nil {
		return node{}, err
	}
	if !p.atEOF() {
		return node{}, p.errorf(p.tok.Span, "trailing input after the first form")
	}
	return n, nil
}

func (p *parser) wrap(n node, err error, what string) error {
	return newError(p.src, p.path, n.span, err, "invalid %s", what)
}

// form splits a list node into its head atom and arguments.
func (p *parser) form(n node) (string, []node, error) {
	if !n.isList {
		return "", nil, p.errorf(n.span, "expected '(', found %q", n.atom)
	}
	if len(n.list) == 0 || n.list[0].isList {
		return "", nil, p.errorf(n.span, "form must start with an operator name")
	}
	return n.list[0].atom, n.list[1:], nil
}

func (p *parser) arity(n node, head string, args []node, want int) error {
	if len(args) != want {
		return p.errorf(n.span, "%s takes %d arguments, got %d", head, want, len(args))
	}
	return nil
}

func (p *parser) atom(n node, what string) (string, error) {
	if n.isList {
		return "", p.errorf(n.span, "expected %s, found a list", what)
	}
	return n.atom, nil
}

func (p *parser) integer(n node, what string) (int, error) {
	text, err := p.atom(n, what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, p.errorf(n.span, "expected %s, found %q", what, text)
	}
	return v, nil
}

func (p *parser) values(args []node) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := p.value(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *parser) value(n node) (hdl.Value, error) {
	head, args, err := p.form(n)
	if err != nil {
		return nil, err
	}
	switch head {
	case "const":
		if err := p.arity(n, head, args, 1); err != nil {
			return nil, err
		}
		return p.constant(args[0])
	case "sig":
		if err := p.arity(n, head, args, 1); err != nil {
			return nil, err
		}
		name, err := p.atom(args[0], "signal name")
		if err != nil {
			return nil, err
		}
		sig, ok := p.scope.Lookup(name)
		if !ok {
			return nil, p.errorf(args[0].span, "unknown signal %q", name)
		}
		return sig, nil
	case "slice":
		return p.slice(n, args)
	case "part":
		if err := p.arity(n, head, args, 3); err != nil {
			return nil, err
		}
		ops, err := p.values(args[:2])
		if err != nil {
			return nil, err
		}
		width, err := p.integer(args[2], "part width")
		if err != nil {
			return nil, err
		}
		v, err := hdl.NewPart(ops[0], ops[1], width)
		if err != nil {
			return nil, p.wrap(n, err, "part")
		}
		return v, nil
	case "cat":
		ops, err := p.values(args)
		if err != nil {
			return nil, err
		}
		v, err := hdl.NewCat(ops...)
		if err != nil {
			return nil, p.wrap(n, err, "cat")
		}
		return v, nil
	case "repl":
		if err := p.arity(n, head, args, 2); err != nil {
			return nil, err
		}
		base, err := p.value(args[0])
		if err != nil {
			return nil, err
		}
		count, err := p.integer(args[1], "replication count")
		if err != nil {
			return nil, err
		}
		v, err := hdl.NewRepl(base, count)
		if err != nil {
			return nil, p.wrap(n, err, "repl")
		}
		return v, nil
	case "clk", "rst":
		if err := p.arity(n, head, args, 1); err != nil {
			return nil, err
		}
		domain, err := p.atom(args[0], "domain name")
		if err != nil {
			return nil, err
		}
		if head == "clk" {
			return hdl.NewClockSignal(domain), nil
		}
		return hdl.NewResetSignal(domain), nil
	}

	kind, ok := hdl.KindBySymbol(head, len(args))
	if !ok {
		return nil, p.errorf(n.list[0].span, "unknown operator %q with %d operands", head, len(args))
	}
	ops, err := p.values(args)
	if err != nil {
		return nil, err
	}
	v, err := hdl.NewOperator(kind, ops...)
	if err != nil {
		return nil, p.wrap(n, err, kind.String())
	}
	return v, nil
}

// constant parses W'dV or W'sdV.
func (p *parser) constant(n node) (hdl.Value, error) {
	text, err := p.atom(n, "constant literal")
	if err != nil {
		return nil, err
	}
	bad := func() error {
		return p.errorf(n.span, "malformed constant %q, expected W'dV or W'sdV", text)
	}
	w, rest, ok := strings.Cut(text, "'")
	if !ok {
		return nil, bad()
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return nil, bad()
	}
	signed := strings.HasPrefix(rest, "s")
	rest = strings.TrimPrefix(rest, "s")
	digits, ok := strings.CutPrefix(rest, "d")
	if !ok {
		return nil, bad()
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, bad()
	}
	c, err := hdl.NewConst(v, shape.Shape{Width: width, Signed: signed})
	if err != nil {
		return nil, p.wrap(n, err, "constant")
	}
	return c, nil
}

func (p *parser) slice(n node, args []node) (hdl.Value, error) {
	if err := p.arity(n, "slice", args, 2); err != nil {
		return nil, err
	}
	base, err := p.value(args[0])
	if err != nil {
		return nil, err
	}
	text, err := p.atom(args[1], "slice bounds")
	if err != nil {
		return nil, err
	}
	s, e, ok := strings.Cut(text, ":")
	start, err1 := strconv.Atoi(s)
	end, err2 := strconv.Atoi(e)
	if !ok || err1 != nil || err2 != nil {
		return nil, p.errorf(args[1].span, "malformed slice bounds %q, expected start:end", text)
	}
	v, err := hdl.NewSlice(base, start, end)
	if err != nil {
		return nil, p.wrap(n, err, "slice")
	}
	return v, nil
}

func (p *parser) statement(n node) (hdl.Statement, error) {
	head, args, err := p.form(n)
	if err != nil {
		return nil, err
	}
	switch head {
	case "eq":
		if err := p.arity(n, head, args, 2); err != nil {
			return nil, err
		}
		ops, err := p.values(args)
		if err != nil {
			return nil, err
		}
		st, err := hdl.NewAssign(ops[0], ops[1])
		if err != nil {
			return nil, p.wrap(n, err, "assignment")
		}
		return st, nil
	case "switch":
		if len(args) == 0 {
			return nil, p.errorf(n.span, "switch needs a test value")
		}
		test, err := p.value(args[0])
		if err != nil {
			return nil, err
		}
		arms := make([]hdl.CaseArm, 0, len(args)-1)
		for _, c := range args[1:] {
			arm, err := p.caseArm(c)
			if err != nil {
				return nil, err
			}
			arms = append(arms, arm)
		}
		st, err := hdl.NewSwitch(test, arms...)
		if err != nil {
			return nil, p.wrap(n, err, "switch")
		}
		return st, nil
	default:
		return nil, p.errorf(n.span, "unknown statement %q", head)
	}
}

// caseArm parses (case PATTERN stmt...). A zero-width test prints an
// empty pattern, so a body statement may directly follow "case".
func (p *parser) caseArm(n node) (hdl.CaseArm, error) {
	head, args, err := p.form(n)
	if err != nil {
		return hdl.CaseArm{}, err
	}
	if head != "case" {
		return hdl.CaseArm{}, p.errorf(n.span, "expected (case ...), found %q", head)
	}
	pattern := ""
	if len(args) > 0 && !args[0].isList {
		pattern = args[0].atom
		args = args[1:]
	}
	body := make([]any, 0, len(args))
	for _, a := range args {
		st, err := p.statement(a)
		if err != nil {
			return hdl.CaseArm{}, err
		}
		body = append(body, st)
	}
	return hdl.On(pattern, body...), nil
}
