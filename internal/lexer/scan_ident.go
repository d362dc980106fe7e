package lexer

import (
	"dims/internal/token"
)

// scanIdent consumes a unit name. ASCII letters take the byte fast
// path; anything else goes through rune decoding so names like µm
// and Ω work.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		// Not a letter after all: operators and junk share this path
		// for multi-byte runes.
		return lx.scanOperator()
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}
