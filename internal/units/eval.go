package units

import (
	"fmt"

	"dims/internal/ast"
	"dims/internal/diag"
)

// Eval canonicalizes a parsed formula against the table: exponents
// accumulate per atom, zero powers cancel. Unknown units and
// exponent overflows are reported through the reporter; evaluation
// continues past them so one pass surfaces every problem. ok is
// false when anything was reported.
func Eval(tbl *Table, expr ast.Expr, reporter diag.Reporter) (Formula, bool) {
	ev := &evaluator{tbl: tbl, reporter: reporter, ok: true}
	f := ev.eval(expr)
	return f, ev.ok
}

type evaluator struct {
	tbl      *Table
	reporter diag.Reporter
	ok       bool
}

func (ev *evaluator) eval(expr ast.Expr) Formula {
	switch n := expr.(type) {
	case *ast.Atom:
		return ev.evalAtom(n)
	case *ast.One:
		return One
	case *ast.Group:
		return ev.eval(n.Inner)
	case *ast.Mul:
		return Mul(ev.eval(n.X), ev.eval(n.Y))
	case *ast.Div:
		return Div(ev.eval(n.X), ev.eval(n.Y))
	case *ast.Pow:
		base := ev.eval(n.Base)
		f, err := Pow(base, n.Exp)
		if err != nil {
			ev.errorf(diag.UnitExponentOverflow, n, "%v", err)
			return One
		}
		return f
	default:
		panic(fmt.Sprintf("units: unhandled expression %T", expr))
	}
}

func (ev *evaluator) evalAtom(n *ast.Atom) Formula {
	if id, ok := ev.tbl.Lookup(n.Name); ok {
		return AtomFormula(id)
	}

	if ev.tbl.Implicit() && !ev.tbl.Frozen() {
		id, err := ev.tbl.DeclareBase(n.Name, n.Sp)
		if err != nil {
			// Lookup said the unit is unknown, so only freezing could
			// fail here; treat it like a strict table.
			ev.errorf(diag.UnitUnknown, n, "unknown unit %q", n.Name)
			return One
		}
		return AtomFormula(id)
	}

	b := diag.ReportError(ev.reporter, diag.UnitUnknown, n.Sp,
		fmt.Sprintf("unknown unit %q", n.Name))
	if suggestion, ok := ev.tbl.SuggestName(n.Name); ok {
		if info, ok2 := ev.lookupInfo(suggestion); ok2 {
			b.WithNote(info.Span, fmt.Sprintf("did you mean %q?", suggestion))
		}
	}
	b.Emit()
	ev.ok = false
	return One
}

func (ev *evaluator) lookupInfo(name string) (UnitInfo, bool) {
	id, ok := ev.tbl.Lookup(name)
	if !ok {
		return UnitInfo{}, false
	}
	return ev.tbl.Info(id)
}

func (ev *evaluator) errorf(code diag.Code, at ast.Expr, format string, args ...any) {
	ev.ok = false
	if ev.reporter != nil {
		ev.reporter.Report(code, diag.SevError, at.Span(), fmt.Sprintf(format, args...), nil)
	}
}
