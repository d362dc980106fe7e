package lexer

import (
	"dims/internal/diag"
	"dims/internal/token"
)

// scanInt consumes a decimal integer literal. Exponents and the
// dimensionless literal `1` are the only numbers a unit formula may
// contain, so fractions are reported as errors but still consumed.
func (lx *Lexer) scanInt() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		// Consume the malformed tail so the parser sees one bad token,
		// not a cascade.
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "unit exponents must be integers")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}
