package lexer

import (
	"dims/internal/diag"
	"dims/internal/token"
)

// middleDot is accepted as an explicit multiplication sign so
// definitions written in the common kg·m/s^2 notation lex cleanly.
const middleDot = '·'

// scanOperator consumes a single operator or punctuation rune.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	lx.bumpRune()

	var kind token.Kind
	switch r {
	case '*', middleDot:
		kind = token.Star
	case '/':
		kind = token.Slash
	case '^':
		kind = token.Caret
	case '-':
		kind = token.Minus
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unexpected character in unit formula")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
