package units

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// AtomID identifies an interned unit name within one session.
type AtomID uint32

// NoAtomID is the reserved invalid atom.
const NoAtomID AtomID = 0

// Exponent pairs an atom with its non-zero integer power.
type Exponent struct {
	Atom  AtomID
	Power int32
}

// Formula is a canonical unit formula: terms sorted by atom, powers
// never zero, dimensionless when empty. Formulas are immutable;
// every operation returns a new value.
type Formula struct {
	terms []Exponent
}

// One is the dimensionless formula.
var One = Formula{}

// FromTerms builds a canonical formula from arbitrary terms:
// duplicate atoms accumulate, zero powers are dropped, the result is
// sorted by atom.
func FromTerms(terms []Exponent) Formula {
	if len(terms) == 0 {
		return One
	}

	acc := make(map[AtomID]int64, len(terms))
	for _, tm := range terms {
		acc[tm.Atom] += int64(tm.Power)
	}
	return fromAccumulated(acc)
}

func fromAccumulated(acc map[AtomID]int64) Formula {
	out := make([]Exponent, 0, len(acc))
	for atom, power := range acc {
		if power == 0 {
			continue
		}
		p32, err := safecast.Conv[int32](power)
		if err != nil {
			panic(fmt.Errorf("accumulated power overflow for atom %d: %w", atom, err))
		}
		out = append(out, Exponent{Atom: atom, Power: p32})
	}
	slices.SortFunc(out, func(a, b Exponent) int {
		switch {
		case a.Atom < b.Atom:
			return -1
		case a.Atom > b.Atom:
			return 1
		default:
			return 0
		}
	})
	if len(out) == 0 {
		return One
	}
	return Formula{terms: out}
}

// IsDimensionless reports whether no atoms remain after cancellation.
func (f Formula) IsDimensionless() bool {
	return len(f.terms) == 0
}

// Terms returns a copy of the exponents, sorted by atom.
func (f Formula) Terms() []Exponent {
	return slices.Clone(f.terms)
}

// Len returns the number of distinct atoms.
func (f Formula) Len() int {
	return len(f.terms)
}

// PowerOf returns the accumulated power of an atom, zero when absent.
func (f Formula) PowerOf(atom AtomID) int32 {
	for _, tm := range f.terms {
		if tm.Atom == atom {
			return tm.Power
		}
	}
	return 0
}

// Equal reports whether two formulas have identical atom and power
// mappings, regardless of how they were written.
func (f Formula) Equal(other Formula) bool {
	return slices.Equal(f.terms, other.terms)
}

// Key returns a compact stable encoding used for hash-consing.
func (f Formula) Key() string {
	if len(f.terms) == 0 {
		return "1"
	}
	var sb strings.Builder
	for i, tm := range f.terms {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, "%d^%d", tm.Atom, tm.Power)
	}
	return sb.String()
}
