// Package testkit holds invariant checks shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"dims/internal/ast"
	"dims/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a
// parsed formula:
// 1) every node span stays within file content bounds
// 2) every node span points at the file the formula came from
// 3) child spans are contained in their parent's span
func CheckSpanInvariants(expr ast.Expr, sf *source.File) error {
	if expr == nil || sf == nil {
		return fmt.Errorf("nil expr or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkNode(expr, sf.ID, lenContent)
}

func checkNode(expr ast.Expr, file source.FileID, lenContent uint32) error {
	sp := expr.Span()
	if sp.Start > sp.End {
		return fmt.Errorf("span runs backwards: %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("span points to different file id: got=%d want=%d", sp.File, file)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}

	var children []ast.Expr
	switch e := expr.(type) {
	case *ast.Atom, *ast.One:
	case *ast.Pow:
		children = []ast.Expr{e.Base}
	case *ast.Mul:
		children = []ast.Expr{e.X, e.Y}
	case *ast.Div:
		children = []ast.Expr{e.X, e.Y}
	case *ast.Group:
		children = []ast.Expr{e.Inner}
	default:
		return fmt.Errorf("unknown node %T", expr)
	}

	for _, child := range children {
		if child == nil {
			return fmt.Errorf("nil child under %T", expr)
		}
		csp := child.Span()
		if csp.Start < sp.Start || csp.End > sp.End {
			return fmt.Errorf("child span %v outside parent span %v", csp, sp)
		}
		if err := checkNode(child, file, lenContent); err != nil {
			return err
		}
	}
	return nil
}
