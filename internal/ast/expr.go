// Package ast models parsed unit formulas before canonicalization.
// Nodes are immutable; spans always cover the originating source text.
package ast

import (
	"dims/internal/source"
)

// Expr is a node of a unit formula.
type Expr interface {
	Span() source.Span
	exprNode()
}

// Atom is a reference to a named unit.
type Atom struct {
	Name string
	Sp   source.Span
}

// One is the dimensionless literal `1`.
type One struct {
	Sp source.Span
}

// Pow raises a factor to an integer power.
type Pow struct {
	Base Expr
	Exp  int32
	Sp   source.Span
}

// Mul multiplies two sub-formulas. Juxtaposition and explicit `*`
// both produce Mul.
type Mul struct {
	X, Y Expr
}

// Div divides a sub-formula by a factor.
type Div struct {
	X, Y Expr
}

// Group is a parenthesized sub-formula, kept so division can
// distribute over its atoms and spans stay accurate.
type Group struct {
	Inner Expr
	Sp    source.Span
}

func (e *Atom) Span() source.Span  { return e.Sp }
func (e *One) Span() source.Span   { return e.Sp }
func (e *Pow) Span() source.Span   { return e.Sp }
func (e *Mul) Span() source.Span   { return e.X.Span().Cover(e.Y.Span()) }
func (e *Div) Span() source.Span   { return e.X.Span().Cover(e.Y.Span()) }
func (e *Group) Span() source.Span { return e.Sp }

func (*Atom) exprNode()  {}
func (*One) exprNode()   {}
func (*Pow) exprNode()   {}
func (*Mul) exprNode()   {}
func (*Div) exprNode()   {}
func (*Group) exprNode() {}
