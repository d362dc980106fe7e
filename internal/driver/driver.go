// Package driver orchestrates checking sessions for the CLI and for
// embedders: ad-hoc formula canonicalization, manifest validation,
// and parallel directory checking.
package driver

import (
	"dims/internal/diag"
	"dims/internal/parser"
	"dims/internal/source"
	"dims/internal/units"
)

// Options configures a checking run.
type Options struct {
	// MaxDiagnostics caps each session's Bag. Zero means the default.
	MaxDiagnostics int
	// Timings enables phase timing collection.
	Timings bool
}

const defaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Canonicalize parses and canonicalizes one formula string against a
// table. The text is registered as a virtual file under name so
// diagnostics carry spans into it.
func Canonicalize(fileSet *source.FileSet, tbl *units.Table, name, text string, reporter diag.Reporter) (units.Formula, bool) {
	id := fileSet.AddVirtual(name, []byte(text))
	expr, ok := parser.Parse(fileSet.Get(id), reporter)
	if !ok {
		return units.One, false
	}
	return units.Eval(tbl, expr, reporter)
}

// CanonicalizeBase canonicalizes and then resolves derived units down
// to base form.
func CanonicalizeBase(fileSet *source.FileSet, tbl *units.Table, name, text string, reporter diag.Reporter) (units.Formula, bool) {
	f, ok := Canonicalize(fileSet, tbl, name, text, reporter)
	if !ok {
		return units.One, false
	}
	base, err := tbl.ResolveBase(f)
	if err != nil {
		if reporter != nil {
			reporter.Report(diag.UnitExponentOverflow, diag.SevError, source.Span{}, err.Error(), nil)
		}
		return units.One, false
	}
	return base, true
}

// Equivalent checks two formula strings for dimensional equality
// against the same table, resolving derived units to base form
// first. On mismatch a UnitMismatch diagnostic names both canonical
// forms.
func Equivalent(fileSet *source.FileSet, tbl *units.Table, a, b string, reporter diag.Reporter) (bool, bool) {
	fa, okA := CanonicalizeBase(fileSet, tbl, "<a>", a, reporter)
	fb, okB := CanonicalizeBase(fileSet, tbl, "<b>", b, reporter)
	if !okA || !okB {
		return false, false
	}

	if !fa.Equal(fb) {
		if reporter != nil {
			idA, _ := fileSet.GetLatest("<a>")
			idB, _ := fileSet.GetLatest("<b>")
			spA := source.Span{File: idA, Start: 0, End: uint32(len(a))}  // #nosec G115 -- formula strings are short
			spB := source.Span{File: idB, Start: 0, End: uint32(len(b))}  // #nosec G115
			diag.ReportError(reporter, diag.UnitMismatch, spB,
				"unit mismatch: "+tbl.Render(fb)+" is not "+tbl.Render(fa)).
				WithNote(spA, "expected "+tbl.Render(fa)+", from this formula").
				Emit()
		}
		return false, true
	}
	return true, true
}
