package units

import (
	"errors"
	"testing"

	"dims/internal/source"
)

func declareBase(t *testing.T, tbl *Table, names ...string) map[string]AtomID {
	t.Helper()
	out := make(map[string]AtomID, len(names))
	for _, name := range names {
		id, err := tbl.DeclareBase(name, source.Span{})
		if err != nil {
			t.Fatalf("DeclareBase(%q): %v", name, err)
		}
		out[name] = id
	}
	return out
}

func TestDeclareAndLookup(t *testing.T) {
	tbl := NewTable()
	ids := declareBase(t, tbl, "kg", "m", "s")

	id, ok := tbl.Lookup("m")
	if !ok || id != ids["m"] {
		t.Fatalf("Lookup(m) = %v, %v", id, ok)
	}
	if _, ok := tbl.Lookup("ft"); ok {
		t.Error("Lookup(ft) should fail")
	}
	if tbl.Len() != 3 {
		t.Errorf("Len = %d, want 3", tbl.Len())
	}
}

func TestRedeclareRejected(t *testing.T) {
	tbl := NewTable()
	declareBase(t, tbl, "kg")

	_, err := tbl.DeclareBase("kg", source.Span{})
	var redeclared *RedeclaredUnitError
	if !errors.As(err, &redeclared) {
		t.Fatalf("err = %v, want RedeclaredUnitError", err)
	}
}

func TestFrozenTableRejectsDeclarations(t *testing.T) {
	tbl := NewTable()
	declareBase(t, tbl, "m")
	if err := tbl.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	_, err := tbl.DeclareBase("s", source.Span{})
	var frozen *FrozenTableError
	if !errors.As(err, &frozen) {
		t.Fatalf("err = %v, want FrozenTableError", err)
	}
}

func TestDerivedResolvesToBase(t *testing.T) {
	// ml = cm^3 must resolve to the same base form as cm^3 directly.
	tbl := NewTable()
	ids := declareBase(t, tbl, "cm")

	def, err := Pow(AtomFormula(ids["cm"]), 3)
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}
	ml, err := tbl.DeclareDerived("ml", source.Span{}, def, "cm^3")
	if err != nil {
		t.Fatalf("DeclareDerived: %v", err)
	}
	if err := tbl.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	base, err := tbl.BaseForm(ml)
	if err != nil {
		t.Fatalf("BaseForm: %v", err)
	}
	if !base.Equal(def) {
		t.Errorf("BaseForm(ml) = %s, want cm^3", tbl.Render(base))
	}
	if base.PowerOf(ids["cm"]) != 3 {
		t.Errorf("cm power = %d, want 3", base.PowerOf(ids["cm"]))
	}
}

func TestTransitiveResolution(t *testing.T) {
	// N = kg m/s^2, Pa = N/m^2 -> Pa = kg/(m s^2).
	tbl := NewTable()
	ids := declareBase(t, tbl, "kg", "m", "s")

	newton := FromTerms([]Exponent{
		{Atom: ids["kg"], Power: 1},
		{Atom: ids["m"], Power: 1},
		{Atom: ids["s"], Power: -2},
	})
	nID, err := tbl.DeclareDerived("N", source.Span{}, newton, "kg m/s^2")
	if err != nil {
		t.Fatalf("DeclareDerived(N): %v", err)
	}

	pascal := FromTerms([]Exponent{
		{Atom: nID, Power: 1},
		{Atom: ids["m"], Power: -2},
	})
	paID, err := tbl.DeclareDerived("Pa", source.Span{}, pascal, "N/m^2")
	if err != nil {
		t.Fatalf("DeclareDerived(Pa): %v", err)
	}
	if err := tbl.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	base, err := tbl.BaseForm(paID)
	if err != nil {
		t.Fatalf("BaseForm: %v", err)
	}
	want := FromTerms([]Exponent{
		{Atom: ids["kg"], Power: 1},
		{Atom: ids["m"], Power: -1},
		{Atom: ids["s"], Power: -2},
	})
	if !base.Equal(want) {
		t.Errorf("BaseForm(Pa) = %s, want kg/m s^2", tbl.Render(base))
	}
}

func TestDirectCycleRejected(t *testing.T) {
	// A = B, B = A.
	tbl := NewTable()
	aID, err := tbl.Declare("A", source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	bID, err := tbl.Declare("B", source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetDefinition(aID, AtomFormula(bID), "B"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetDefinition(bID, AtomFormula(aID), "A"); err != nil {
		t.Fatal(err)
	}

	err = tbl.Freeze()
	var cycle *DefinitionCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("err = %v, want DefinitionCycleError", err)
	}
	if len(cycle.Cycle) != 3 {
		t.Errorf("cycle = %v, want 3 names closing the loop", cycle.Cycle)
	}
}

func TestSelfCycleRejectedAtDeclaration(t *testing.T) {
	tbl := NewTable()
	declareBase(t, tbl, "m")

	// X declared referencing itself through DeclareDerived must fail
	// immediately, which needs the two-phase escape hatch to even
	// construct: a formula mentioning X requires X declared first.
	xID, err := tbl.Declare("X", source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetDefinition(xID, AtomFormula(xID), "X"); err != nil {
		t.Fatal(err)
	}

	var cycle *DefinitionCycleError
	if err := tbl.Freeze(); !errors.As(err, &cycle) {
		t.Fatalf("err = %v, want DefinitionCycleError", err)
	}
}

func TestDeclareDerivedReportsExistingCycle(t *testing.T) {
	tbl := NewTable()
	aID, err := tbl.Declare("A", source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	bID, err := tbl.Declare("B", source.Span{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetDefinition(aID, AtomFormula(bID), "B"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetDefinition(bID, AtomFormula(aID), "A"); err != nil {
		t.Fatal(err)
	}

	// The next DeclareDerived sees the cycle without waiting for
	// Freeze.
	_, err = tbl.DeclareDerived("C", source.Span{}, AtomFormula(aID), "A")
	var cycle *DefinitionCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("err = %v, want DefinitionCycleError", err)
	}
}

func TestResolveBaseOfFormula(t *testing.T) {
	tbl := NewTable()
	ids := declareBase(t, tbl, "kg", "m", "s")
	newton := FromTerms([]Exponent{
		{Atom: ids["kg"], Power: 1},
		{Atom: ids["m"], Power: 1},
		{Atom: ids["s"], Power: -2},
	})
	nID, err := tbl.DeclareDerived("N", source.Span{}, newton, "kg m/s^2")
	if err != nil {
		t.Fatal(err)
	}
	if err := tbl.Freeze(); err != nil {
		t.Fatal(err)
	}

	// N/kg resolves to m/s^2.
	f := FromTerms([]Exponent{{Atom: nID, Power: 1}, {Atom: ids["kg"], Power: -1}})
	got, err := tbl.ResolveBase(f)
	if err != nil {
		t.Fatalf("ResolveBase: %v", err)
	}
	want := FromTerms([]Exponent{{Atom: ids["m"], Power: 1}, {Atom: ids["s"], Power: -2}})
	if !got.Equal(want) {
		t.Errorf("ResolveBase = %s, want m/s^2", tbl.Render(got))
	}
}

func TestRenderCanonicalForm(t *testing.T) {
	tbl := NewTable()
	ids := declareBase(t, tbl, "s", "kg", "m")

	tests := []struct {
		terms []Exponent
		want  string
	}{
		{nil, "1"},
		{[]Exponent{{ids["kg"], 1}}, "kg"},
		{[]Exponent{{ids["m"], 2}}, "m^2"},
		{
			[]Exponent{{ids["s"], -2}, {ids["m"], 1}, {ids["kg"], 1}},
			"kg m/s^2",
		},
		{[]Exponent{{ids["s"], -1}}, "1/s"},
		{[]Exponent{{ids["s"], -2}, {ids["m"], -1}}, "1/m s^2"},
		{
			[]Exponent{{ids["m"], 3}, {ids["kg"], -1}, {ids["s"], -2}},
			"m^3/kg s^2",
		},
	}

	for _, tt := range tests {
		got := tbl.Render(FromTerms(tt.terms))
		if got != tt.want {
			t.Errorf("Render(%v) = %q, want %q", tt.terms, got, tt.want)
		}
	}
}

func TestSuggestName(t *testing.T) {
	tbl := NewTable()
	declareBase(t, tbl, "Hz", "kg")

	if got, ok := tbl.SuggestName("hz"); !ok || got != "Hz" {
		t.Errorf("SuggestName(hz) = %q, %v; want Hz, true", got, ok)
	}
	if _, ok := tbl.SuggestName("kg"); ok {
		t.Error("exact matches should not suggest")
	}
	if _, ok := tbl.SuggestName("ft"); ok {
		t.Error("unrelated names should not suggest")
	}
}
