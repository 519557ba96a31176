package irtext

// node is an atom or a parenthesised list.
type node struct {
	atom   string
	list   []node
	isList bool
	span   Span
}

type reader struct {
	lx   *Lexer
	src  string
	tok  Token
	path string
}

func newReader(src, path string) *reader {
	r := &reader{lx: NewLexer(src), src: src, path: path}
	r.advance()
	return r
}

func (r *reader) advance() { r.tok = r.lx.Next() }

func (r *reader) atEOF() bool { return r.tok.Kind == TokEOF }

func (r *reader) read() (node, error) {
	switch r.tok.Kind {
	case TokAtom:
		n := node{atom: r.tok.Text, span: r.tok.Span}
		r.advance()
		return n, nil
	case TokLParen:
		start := r.tok.Span.Start
		r.advance()
		var items []node
		for r.tok.Kind != TokRParen {
			if r.tok.Kind == TokEOF {
				return node{}, r.errorf(Span{start, r.tok.Span.End}, "unclosed '('")
			}
			item, err := r.read()
			if err != nil {
				return node{}, err
			}
			items = append(items, item)
		}
		end := r.tok.Span.End
		r.advance()
		return node{list: items, isList: true, span: Span{start, end}}, nil
	default:
		return node{}, r.errorf(r.tok.Span, "unexpected %s", r.tok.Kind)
	}
}

func (r *reader) errorf(sp Span, format string, args ...any) *Error {
	return newError(r.src, r.path, sp, nil, format, args...)
}
