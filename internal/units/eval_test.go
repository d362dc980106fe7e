package units

import (
	"testing"

	"dims/internal/diag"
	"dims/internal/parser"
	"dims/internal/source"
)

// canon parses and evaluates a formula against the table.
func canon(t *testing.T, tbl *Table, input string) (Formula, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(input))
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}

	expr, ok := parser.Parse(fs.Get(id), reporter)
	if !ok {
		return One, bag, false
	}
	f, ok := Eval(tbl, expr, reporter)
	return f, bag, ok
}

func siTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	declareBase(t, tbl, "kg", "m", "s")
	return tbl
}

func TestEvalCanonicalizes(t *testing.T) {
	tbl := siTable(t)

	f, bag, ok := canon(t, tbl, "kg m/s^2")
	if !ok {
		t.Fatalf("eval failed: %v", bag.Items())
	}

	kg, _ := tbl.Lookup("kg")
	m, _ := tbl.Lookup("m")
	s, _ := tbl.Lookup("s")
	if f.PowerOf(kg) != 1 || f.PowerOf(m) != 1 || f.PowerOf(s) != -2 {
		t.Errorf("powers = %d %d %d, want 1 1 -2", f.PowerOf(kg), f.PowerOf(m), f.PowerOf(s))
	}
	if got := tbl.Render(f); got != "kg m/s^2" {
		t.Errorf("Render = %q, want kg m/s^2", got)
	}
}

func TestEvalEquivalentSpellings(t *testing.T) {
	tbl := siTable(t)

	// The two spellings from the language manual example.
	a, _, okA := canon(t, tbl, "kg m s^-2")
	b, _, okB := canon(t, tbl, "m /s s * kg")
	if !okA || !okB {
		t.Fatal("eval failed")
	}
	if !a.Equal(b) {
		t.Errorf("%s != %s", tbl.Render(a), tbl.Render(b))
	}
}

func TestEvalIdempotentRoundTrip(t *testing.T) {
	tbl := siTable(t)

	inputs := []string{
		"kg m/s^2",
		"m /s s * kg",
		"1/s",
		"kg/(m s)",
		"(m/s)^2",
		"1",
		"m m m/m^3",
	}
	for _, input := range inputs {
		f, bag, ok := canon(t, tbl, input)
		if !ok {
			t.Errorf("%q: eval failed: %v", input, bag.Items())
			continue
		}
		// Rendering the canonical form and re-evaluating it must be a
		// fixed point.
		rendered := tbl.Render(f)
		again, _, ok := canon(t, tbl, rendered)
		if !ok {
			t.Errorf("%q: canonical form %q failed to re-parse", input, rendered)
			continue
		}
		if !f.Equal(again) {
			t.Errorf("%q: canonicalization not idempotent: %q vs %q",
				input, rendered, tbl.Render(again))
		}
		if tbl.Render(again) != rendered {
			t.Errorf("%q: second render differs: %q vs %q", input, tbl.Render(again), rendered)
		}
	}
}

func TestEvalGroupedDenominator(t *testing.T) {
	tbl := siTable(t)

	a, _, _ := canon(t, tbl, "kg/(m s)")
	b, _, _ := canon(t, tbl, "kg m^-1 s^-1")
	if !a.Equal(b) {
		t.Errorf("kg/(m s) = %s, want %s", tbl.Render(a), tbl.Render(b))
	}
}

func TestEvalOneIsIdentity(t *testing.T) {
	tbl := siTable(t)

	one, _, ok := canon(t, tbl, "1")
	if !ok || !one.IsDimensionless() {
		t.Fatalf("1 evaluated to %s", tbl.Render(one))
	}

	a, _, _ := canon(t, tbl, "1 kg * 1")
	b, _, _ := canon(t, tbl, "kg")
	if !a.Equal(b) {
		t.Errorf("1 kg * 1 = %s, want kg", tbl.Render(a))
	}

	if one.Equal(b) {
		t.Error("dimensionless must not equal a formula with atoms")
	}
}

func TestEvalUnknownUnit(t *testing.T) {
	tbl := siTable(t)

	_, bag, ok := canon(t, tbl, "kg furlong")
	if ok {
		t.Fatal("eval unexpectedly succeeded")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.UnitUnknown {
		t.Fatalf("diagnostics = %v, want one UnitUnknown", bag.Items())
	}
}

func TestEvalUnknownUnitSuggestsCaseMatch(t *testing.T) {
	tbl := NewTable()
	declareBase(t, tbl, "Hz")

	_, bag, ok := canon(t, tbl, "hz")
	if ok {
		t.Fatal("eval unexpectedly succeeded")
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 {
		t.Fatalf("notes = %v, want a did-you-mean note", d.Notes)
	}
}

func TestEvalImplicitTableAutoDeclares(t *testing.T) {
	tbl := NewImplicitTable()

	f, bag, ok := canon(t, tbl, "parsec/fortnight")
	if !ok {
		t.Fatalf("eval failed: %v", bag.Items())
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2 auto-declared units", tbl.Len())
	}
	if got := tbl.Render(f); got != "parsec/fortnight" {
		t.Errorf("Render = %q", got)
	}
}

func TestEvalPowerZero(t *testing.T) {
	tbl := siTable(t)
	f, _, ok := canon(t, tbl, "(kg m/s^2)^0")
	if !ok || !f.IsDimensionless() {
		t.Errorf("x^0 = %s, want 1", tbl.Render(f))
	}
}
