package irtext

import "strings"

// TokenKind classifies lexer output.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokLParen
	TokRParen
	TokAtom
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of input"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range into the source.
type Span struct {
	Start, End int
}

// Token is one lexeme.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

// Lexer splits source into parentheses and atoms. Atoms are maximal runs
// of bytes that are neither whitespace nor parentheses. A ';' starts a
// comment running to the end of the line.
type Lexer struct {
	src string
	off int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token; after the end it keeps returning TokEOF.
func (lx *Lexer) Next() Token {
	lx.skipTrivia()
	if lx.off >= len(lx.src) {
		return Token{Kind: TokEOF, Span: Span{lx.off, lx.off}}
	}
	start := lx.off
	switch lx.src[lx.off] {
	case '(':
		lx.off++
		return Token{Kind: TokLParen, Text: "(", Span: Span{start, lx.off}}
	case ')':
		lx.off++
		return Token{Kind: TokRParen, Text: ")", Span: Span{start, lx.off}}
	}
	for lx.off < len(lx.src) && !isDelim(lx.src[lx.off]) {
		lx.off++
	}
	return Token{Kind: TokAtom, Text: lx.src[start:lx.off], Span: Span{start, lx.off}}
}

func (lx *Lexer) skipTrivia() {
	for lx.off < len(lx.src) {
		ch := lx.src[lx.off]
		switch {
		case isSpace(ch):
			lx.off++
		case ch == ';':
			nl := strings.IndexByte(lx.src[lx.off:], '\n')
			if nl < 0 {
				lx.off = len(lx.src)
				return
			}
			lx.off += nl + 1
		default:
			return
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDelim(ch byte) bool {
	return isSpace(ch) || ch == '(' || ch == ')' || ch == ';'
}

// Position converts a byte offset into a 1-based line and column.
func Position(src string, off int) (line, col int) {
	off = min(max(off, 0), len(src))
	line = 1 + strings.Count(src[:off], "\n")
	col = off - strings.LastIndexByte(src[:off], '\n')
	return line, col
}
