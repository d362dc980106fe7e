package token

// Kind represents the category of a formula token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the formula.
	EOF

	// Ident represents a unit name.
	Ident
	// IntLit represents an integer literal: an exponent, or the
	// dimensionless literal `1`.
	IntLit

	// Star represents explicit multiplication `*`.
	Star
	// Slash represents the division separator `/`.
	Slash
	// Caret represents the exponent marker `^`.
	Caret
	// Minus represents `-` inside an exponent.
	Minus
	// LParen represents `(`.
	LParen
	// RParen represents `)`.
	RParen
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case IntLit:
		return "IntLit"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Caret:
		return "Caret"
	case Minus:
		return "Minus"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	default:
		return "Unknown"
	}
}
