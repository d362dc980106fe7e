package units

import (
	"fmt"
	"slices"
	"strings"
)

// Render produces the canonical textual form of a formula: numerator
// atoms sorted by name, then `/` and the denominator atoms (their
// powers printed positive), also sorted. An empty numerator renders
// as `1`; the dimensionless formula renders as `1`.
//
// The output re-parses to an equal formula: juxtaposed atoms after
// `/` all stay in the denominator, so no grouping is needed.
func Render(f Formula, name func(AtomID) string) string {
	if f.IsDimensionless() {
		return "1"
	}

	var num, den []Exponent
	for _, tm := range f.terms {
		if tm.Power > 0 {
			num = append(num, tm)
		} else {
			den = append(den, Exponent{Atom: tm.Atom, Power: -tm.Power})
		}
	}

	byName := func(a, b Exponent) int {
		return strings.Compare(name(a.Atom), name(b.Atom))
	}
	slices.SortFunc(num, byName)
	slices.SortFunc(den, byName)

	var sb strings.Builder
	if len(num) == 0 {
		sb.WriteString("1")
	} else {
		writeSide(&sb, num, name)
	}
	if len(den) > 0 {
		sb.WriteString("/")
		writeSide(&sb, den, name)
	}
	return sb.String()
}

func writeSide(sb *strings.Builder, side []Exponent, name func(AtomID) string) {
	for i, tm := range side {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(name(tm.Atom))
		if tm.Power != 1 {
			fmt.Fprintf(sb, "^%d", tm.Power)
		}
	}
}

// Render renders the formula with this table's atom names.
func (t *Table) Render(f Formula) string {
	return Render(f, t.AtomName)
}
