package diag

import (
	"fmt"
)

// Code is a stable numeric diagnostic code. Ranges are reserved per
// phase: 1000s lexical, 2000s syntactic, 3000s unit semantics.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Syntactic
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectFactor    Code = 2002
	SynExpectExponent  Code = 2003
	SynUnclosedParen   Code = 2004
	SynMissingDividend Code = 2005
	SynTrailingInput   Code = 2006

	// Unit semantics
	UnitInfo             Code = 3000
	UnitUnknown          Code = 3001
	UnitRedeclared       Code = 3002
	UnitDefinitionCycle  Code = 3003
	UnitMismatch         Code = 3004
	UnitExponentOverflow Code = 3005
	UnitBadName          Code = 3006
)

func (c Code) String() string {
	return fmt.Sprintf("DM%04d", uint16(c))
}

// Phase names the checking stage a code belongs to.
func (c Code) Phase() string {
	switch {
	case c >= 1000 && c < 2000:
		return "lex"
	case c >= 2000 && c < 3000:
		return "syntax"
	case c >= 3000 && c < 4000:
		return "units"
	default:
		return "unknown"
	}
}
