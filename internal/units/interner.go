package units

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// AtomSet interns unit names for one checking session. Atoms compare
// by identity afterwards; names are NFC-normalized first so visually
// identical Unicode spellings (µ composed vs decomposed) collapse to
// one atom.
type AtomSet struct {
	names []string          // names[0] = "" for NoAtomID
	index map[string]AtomID // normalized name -> id
}

// NewAtomSet creates an empty atom set with NoAtomID reserved.
func NewAtomSet() *AtomSet {
	return &AtomSet{
		names: []string{""},
		index: map[string]AtomID{"": NoAtomID},
	}
}

// NormalizeName returns the canonical spelling used for interning.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// Intern inserts the name and returns its id, reusing an existing id
// for a known name.
func (as *AtomSet) Intern(name string) AtomID {
	normalized := NormalizeName(name)
	if id, ok := as.index[normalized]; ok {
		return id
	}

	lenNames, err := safecast.Conv[uint32](len(as.names))
	if err != nil {
		panic(fmt.Errorf("len names overflow: %w", err))
	}
	id := AtomID(lenNames)
	as.names = append(as.names, normalized)
	as.index[normalized] = id
	return id
}

// Lookup returns the id for a name without interning it.
func (as *AtomSet) Lookup(name string) (AtomID, bool) {
	id, ok := as.index[NormalizeName(name)]
	if !ok || id == NoAtomID {
		return NoAtomID, false
	}
	return id, true
}

// Name returns the interned spelling of an atom, "" for NoAtomID or
// out-of-range ids.
func (as *AtomSet) Name(id AtomID) string {
	if int(id) >= len(as.names) {
		return ""
	}
	return as.names[id]
}

// Len returns the number of interned names, counting NoAtomID.
func (as *AtomSet) Len() int {
	return len(as.names)
}

// FormulaID identifies a hash-consed canonical formula.
type FormulaID uint32

// NoFormulaID is the reserved invalid formula id.
const NoFormulaID FormulaID = 0

// FormulaInterner hash-conses canonical formulas so repeated
// base-form resolution shares storage and compares by id.
type FormulaInterner struct {
	formulas []Formula
	index    map[string]FormulaID
}

// NewFormulaInterner creates an interner with NoFormulaID reserved.
func NewFormulaInterner() *FormulaInterner {
	in := &FormulaInterner{
		formulas: make([]Formula, 1), // slot 0 is the invalid sentinel
		index:    make(map[string]FormulaID, 16),
	}
	return in
}

// Intern ensures the formula has a stable id.
func (in *FormulaInterner) Intern(f Formula) FormulaID {
	key := f.Key()
	if id, ok := in.index[key]; ok {
		return id
	}

	lenFormulas, err := safecast.Conv[uint32](len(in.formulas))
	if err != nil {
		panic(fmt.Errorf("len formulas overflow: %w", err))
	}
	id := FormulaID(lenFormulas)
	in.formulas = append(in.formulas, f)
	in.index[key] = id
	return id
}

// Lookup returns the formula for an id.
func (in *FormulaInterner) Lookup(id FormulaID) (Formula, bool) {
	if id == NoFormulaID || int(id) >= len(in.formulas) {
		return One, false
	}
	return in.formulas[id], true
}

// MustLookup panics when id is invalid.
func (in *FormulaInterner) MustLookup(id FormulaID) Formula {
	f, ok := in.Lookup(id)
	if !ok {
		panic("units: invalid FormulaID")
	}
	return f
}

// Len returns the number of interned formulas, counting NoFormulaID.
func (in *FormulaInterner) Len() int {
	return len(in.formulas)
}
