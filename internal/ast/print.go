package ast

import (
	"fmt"
	"strings"
)

// Sprint renders an expression as an s-expression, used by the parse
// debug command and by tests asserting on tree shape.
func Sprint(e Expr) string {
	var sb strings.Builder
	sprint(&sb, e)
	return sb.String()
}

func sprint(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Atom:
		sb.WriteString(n.Name)
	case *One:
		sb.WriteString("1")
	case *Pow:
		sb.WriteString("(^ ")
		sprint(sb, n.Base)
		fmt.Fprintf(sb, " %d)", n.Exp)
	case *Mul:
		sb.WriteString("(* ")
		sprint(sb, n.X)
		sb.WriteString(" ")
		sprint(sb, n.Y)
		sb.WriteString(")")
	case *Div:
		sb.WriteString("(/ ")
		sprint(sb, n.X)
		sb.WriteString(" ")
		sprint(sb, n.Y)
		sb.WriteString(")")
	case *Group:
		sprint(sb, n.Inner)
	default:
		sb.WriteString("?")
	}
}
