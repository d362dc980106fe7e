package manifest

import (
	"errors"
	"fmt"
	"strings"

	"dims/internal/diag"
	"dims/internal/parser"
	"dims/internal/source"
	"dims/internal/units"
)

// BuildTable turns a manifest into a frozen symbol table. Every
// formula string becomes a virtual file in fileSet so diagnostics
// point into the offending formula text. Returns ok=false when
// anything was reported; the table is still returned for partial
// inspection but is only frozen on success.
func BuildTable(fileSet *source.FileSet, m *Manifest, reporter diag.Reporter) (*units.Table, bool) {
	tbl := units.NewTable()
	ok := true

	// Base unit names live in one virtual file so redeclarations have
	// a span to point at.
	_, baseSpans := addNameFile(fileSet, m.Path+"#units.base", m.Base)
	for i, name := range m.Base {
		if _, err := tbl.DeclareBase(name, baseSpans[i]); err != nil {
			reportDeclError(reporter, tbl, err, baseSpans[i])
			ok = false
		}
	}

	// Phase one: declare every derived name so definitions may
	// reference each other in any order.
	defFiles := make([]source.FileID, len(m.Derived))
	declared := make([]units.AtomID, len(m.Derived))
	for i, d := range m.Derived {
		id := fileSet.AddVirtual(fmt.Sprintf("%s#units.derived.%s", m.Path, d.Name), []byte(d.Formula))
		defFiles[i] = id

		declSpan := source.Span{File: id, Start: 0, End: spanLen(d.Formula)}
		atom, err := tbl.Declare(d.Name, declSpan)
		if err != nil {
			reportDeclError(reporter, tbl, err, declSpan)
			ok = false
			continue
		}
		declared[i] = atom
	}

	// Phase two: parse and attach each definition.
	for i, d := range m.Derived {
		if declared[i] == units.NoAtomID {
			continue
		}
		expr, parsed := parser.Parse(fileSet.Get(defFiles[i]), reporter)
		if !parsed {
			ok = false
			continue
		}
		def, evaled := units.Eval(tbl, expr, reporter)
		if !evaled {
			ok = false
			continue
		}
		if err := tbl.SetDefinition(declared[i], def, d.Formula); err != nil {
			reportDeclError(reporter, tbl, err, expr.Span())
			ok = false
		}
	}

	if !ok {
		return tbl, false
	}

	if err := tbl.Freeze(); err != nil {
		var cycle *units.DefinitionCycleError
		if errors.As(err, &cycle) {
			sp := cycleSpan(tbl, cycle)
			diag.ReportError(reporter, diag.UnitDefinitionCycle, sp,
				fmt.Sprintf("unit definition cycle: %s", strings.Join(cycle.Cycle, " -> "))).Emit()
		} else {
			diag.ReportError(reporter, diag.UnitInfo, source.Span{}, err.Error()).Emit()
		}
		return tbl, false
	}
	return tbl, true
}

// AssertOutcome records how one [[assert]] fared.
type AssertOutcome struct {
	Formulas  []string
	Canonical string // base form shared on success, "" otherwise
	Passed    bool
}

// CheckAsserts evaluates every [[assert]] against a frozen table:
// all formulas of one assertion must share the same base canonical
// form. Mismatches are UnitMismatch diagnostics with the expected
// form in a note. ok is true when every assertion passed.
func CheckAsserts(fileSet *source.FileSet, tbl *units.Table, m *Manifest, reporter diag.Reporter) ([]AssertOutcome, bool) {
	ok := true
	outcomes := make([]AssertOutcome, 0, len(m.Asserts))

	for i, a := range m.Asserts {
		var (
			wantForm units.Formula
			wantSpan source.Span
			haveWant bool
		)
		passed := true
		for j, text := range a.Formulas {
			id := fileSet.AddVirtual(fmt.Sprintf("%s#assert.%d.%d", m.Path, i+1, j+1), []byte(text))
			f, resolved := resolveFormula(fileSet.Get(id), tbl, reporter)
			if !resolved {
				passed = false
				continue
			}
			sp := source.Span{File: id, Start: 0, End: spanLen(text)}

			if !haveWant {
				wantForm, wantSpan, haveWant = f, sp, true
				continue
			}
			if !f.Equal(wantForm) {
				diag.ReportError(reporter, diag.UnitMismatch, sp,
					fmt.Sprintf("unit mismatch: %s is not %s", tbl.Render(f), tbl.Render(wantForm))).
					WithNote(wantSpan, fmt.Sprintf("expected %s, from this formula", tbl.Render(wantForm))).
					Emit()
				passed = false
			}
		}

		outcome := AssertOutcome{Formulas: a.Formulas, Passed: passed}
		if passed && haveWant {
			outcome.Canonical = tbl.Render(wantForm)
		}
		outcomes = append(outcomes, outcome)
		ok = ok && passed
	}
	return outcomes, ok
}

// resolveFormula parses, canonicalizes, and base-resolves one formula
// file against a table.
func resolveFormula(file *source.File, tbl *units.Table, reporter diag.Reporter) (units.Formula, bool) {
	expr, parsed := parser.Parse(file, reporter)
	if !parsed {
		return units.One, false
	}
	f, evaled := units.Eval(tbl, expr, reporter)
	if !evaled {
		return units.One, false
	}
	base, err := tbl.ResolveBase(f)
	if err != nil {
		diag.ReportError(reporter, diag.UnitExponentOverflow, expr.Span(), err.Error()).Emit()
		return units.One, false
	}
	return base, true
}

// addNameFile stores a space-joined name list as a virtual file and
// returns the span of each name inside it.
func addNameFile(fileSet *source.FileSet, path string, names []string) (source.FileID, []source.Span) {
	content := strings.Join(names, " ")
	id := fileSet.AddVirtual(path, []byte(content))

	spans := make([]source.Span, len(names))
	var off uint32
	for i, name := range names {
		l := spanLen(name)
		spans[i] = source.Span{File: id, Start: off, End: off + l}
		off += l + 1 // separating space
	}
	return id, spans
}

func spanLen(s string) uint32 {
	return uint32(len(s)) // #nosec G115 -- formula strings are short
}

// cycleSpan picks the declaration span of the first unit on the
// cycle, falling back to an empty span.
func cycleSpan(tbl *units.Table, cycle *units.DefinitionCycleError) source.Span {
	if len(cycle.Cycle) == 0 {
		return source.Span{}
	}
	if id, ok := tbl.Lookup(cycle.Cycle[0]); ok {
		if info, ok2 := tbl.Info(id); ok2 {
			return info.Span
		}
	}
	return source.Span{}
}

func reportDeclError(reporter diag.Reporter, tbl *units.Table, err error, sp source.Span) {
	code := diag.UnitInfo
	var redeclared *units.RedeclaredUnitError
	switch {
	case errors.As(err, &redeclared):
		code = diag.UnitRedeclared
		if id, ok := tbl.Lookup(redeclared.Name); ok {
			if info, ok2 := tbl.Info(id); ok2 {
				diag.ReportError(reporter, code, sp, err.Error()).
					WithNote(info.Span, "first declared here").
					Emit()
				return
			}
		}
	default:
	}
	diag.ReportError(reporter, code, sp, err.Error()).Emit()
}
