package token

import (
	"dims/internal/source"
)

// Token represents a single formula token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsOperator reports whether the token combines or modifies factors.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Star, Slash, Caret, Minus:
		return true
	default:
		return false
	}
}

// StartsFactor reports whether the token can open a multiplicative
// factor: a unit name, `1`, or a parenthesized group.
func (t Token) StartsFactor() bool {
	switch t.Kind {
	case Ident, IntLit, LParen:
		return true
	default:
		return false
	}
}
