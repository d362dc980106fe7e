package units

import (
	"slices"
	"strings"

	"dims/internal/source"
)

// UnitKind distinguishes base units from derived ones.
type UnitKind uint8

const (
	// UnitBase is an atomic unit with no definition.
	UnitBase UnitKind = iota
	// UnitDerived is a unit declared as a formula over other units.
	UnitDerived
)

func (k UnitKind) String() string {
	if k == UnitDerived {
		return "derived"
	}
	return "base"
}

// UnitInfo describes one declared unit.
type UnitInfo struct {
	ID      AtomID
	Name    string
	Kind    UnitKind
	Def     Formula // definition, derived units only
	DefText string  // surface text of the definition
	Span    source.Span

	base FormulaID // base form, memoized by Freeze
}

// Table is the symbol table of one checking session: every unit the
// session may reference, with definitions for derived units. A Table
// has a single-writer build phase; Freeze validates definitions and
// makes it safe for concurrent readers.
type Table struct {
	atoms    *AtomSet
	units    []UnitInfo // indexed by AtomID, slot 0 reserved
	formulas *FormulaInterner
	frozen   bool
	implicit bool
}

// NewTable creates an empty strict table: referencing an undeclared
// unit is an error.
func NewTable() *Table {
	return &Table{
		atoms:    NewAtomSet(),
		units:    make([]UnitInfo, 1),
		formulas: NewFormulaInterner(),
	}
}

// NewImplicitTable creates a table that auto-declares unknown atoms
// as base units on first use. Used for ad-hoc sessions with no
// manifest.
func NewImplicitTable() *Table {
	t := NewTable()
	t.implicit = true
	return t
}

// Implicit reports whether unknown atoms auto-declare.
func (t *Table) Implicit() bool {
	return t.implicit
}

// Frozen reports whether the table is sealed against declarations.
func (t *Table) Frozen() bool {
	return t.frozen
}

// Len returns the number of declared units.
func (t *Table) Len() int {
	return len(t.units) - 1
}

// AtomName returns the interned spelling of an atom.
func (t *Table) AtomName(id AtomID) string {
	return t.atoms.Name(id)
}

// Lookup finds a declared unit by name.
func (t *Table) Lookup(name string) (AtomID, bool) {
	id, ok := t.atoms.Lookup(name)
	if !ok || int(id) >= len(t.units) {
		return NoAtomID, false
	}
	return id, true
}

// Info returns a copy of the unit's metadata.
func (t *Table) Info(id AtomID) (UnitInfo, bool) {
	if id == NoAtomID || int(id) >= len(t.units) {
		return UnitInfo{}, false
	}
	return t.units[id], true
}

// Names returns all declared unit names, sorted.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.units)-1)
	for _, u := range t.units[1:] {
		out = append(out, u.Name)
	}
	slices.Sort(out)
	return out
}

// Declare adds a unit by name only; a definition may be attached
// later with SetDefinition. This two-phase form lets manifests
// reference units in any order.
func (t *Table) Declare(name string, sp source.Span) (AtomID, error) {
	if t.frozen {
		return NoAtomID, &FrozenTableError{Name: name}
	}
	if _, exists := t.Lookup(name); exists {
		return NoAtomID, &RedeclaredUnitError{Name: NormalizeName(name)}
	}

	id := t.atoms.Intern(name)
	t.units = append(t.units, UnitInfo{
		ID:   id,
		Name: t.atoms.Name(id),
		Kind: UnitBase,
		Span: sp,
	})
	return id, nil
}

// DeclareBase declares an atomic unit.
func (t *Table) DeclareBase(name string, sp source.Span) (AtomID, error) {
	return t.Declare(name, sp)
}

// SetDefinition attaches a definition to a declared unit, turning it
// into a derived unit. Every atom of def must already be declared.
// Cycle detection is deferred to Freeze, so mutually referencing
// declarations may be attached in any order.
func (t *Table) SetDefinition(id AtomID, def Formula, defText string) error {
	if t.frozen {
		return &FrozenTableError{Name: t.AtomName(id)}
	}
	u := &t.units[id]
	u.Kind = UnitDerived
	u.Def = def
	u.DefText = defText
	return nil
}

// DeclareDerived declares a unit together with its definition and
// checks immediately that the definition does not close a cycle.
func (t *Table) DeclareDerived(name string, sp source.Span, def Formula, defText string) (AtomID, error) {
	id, err := t.Declare(name, sp)
	if err != nil {
		return NoAtomID, err
	}
	if err := t.SetDefinition(id, def, defText); err != nil {
		return NoAtomID, err
	}
	if err := t.findCycle(); err != nil {
		return NoAtomID, err
	}
	return id, nil
}

// Freeze validates every definition (rejecting cycles), memoizes the
// base form of each unit, and seals the table. After Freeze the
// table is immutable and safe for concurrent readers without locks.
func (t *Table) Freeze() error {
	if t.frozen {
		return nil
	}
	if err := t.findCycle(); err != nil {
		return err
	}

	memo := make(map[AtomID]Formula, len(t.units))
	for i := 1; i < len(t.units); i++ {
		id := AtomID(i) // #nosec G115 -- bounded by AtomSet interning
		base, err := t.baseOf(id, memo)
		if err != nil {
			return err
		}
		t.units[i].base = t.formulas.Intern(base)
	}

	t.frozen = true
	return nil
}

// BaseForm returns the unit resolved to base units: the unit itself
// for base units, the fully expanded canonical formula for derived
// ones.
func (t *Table) BaseForm(id AtomID) (Formula, error) {
	if _, ok := t.Info(id); !ok {
		return One, &UnknownUnitError{Name: t.AtomName(id)}
	}
	if t.frozen {
		return t.formulas.MustLookup(t.units[id].base), nil
	}
	return t.baseOf(id, make(map[AtomID]Formula))
}

// ResolveBase expands every derived atom of f to base units and
// re-cancels.
func (t *Table) ResolveBase(f Formula) (Formula, error) {
	out := One
	for _, tm := range f.Terms() {
		base, err := t.BaseForm(tm.Atom)
		if err != nil {
			return One, err
		}
		scaled, err := Pow(base, tm.Power)
		if err != nil {
			return One, err
		}
		out = Mul(out, scaled)
	}
	return out, nil
}

// baseOf expands one unit to base form, memoizing shared subtrees.
// Callers must have run findCycle first; the traversal assumes a DAG.
func (t *Table) baseOf(id AtomID, memo map[AtomID]Formula) (Formula, error) {
	if f, ok := memo[id]; ok {
		return f, nil
	}

	u := t.units[id]
	if u.Kind == UnitBase {
		f := AtomFormula(id)
		memo[id] = f
		return f, nil
	}

	out := One
	for _, tm := range u.Def.Terms() {
		dep, err := t.baseOf(tm.Atom, memo)
		if err != nil {
			return One, err
		}
		scaled, err := Pow(dep, tm.Power)
		if err != nil {
			return One, err
		}
		out = Mul(out, scaled)
	}
	memo[id] = out
	return out, nil
}

// findCycle runs a depth-first traversal over derived-unit
// definitions and reports the first cycle found.
func (t *Table) findCycle() error {
	const (
		white = iota // unvisited
		grey         // on the current path
		black        // done
	)
	state := make([]uint8, len(t.units))
	var stack []AtomID

	var visit func(id AtomID) *DefinitionCycleError
	visit = func(id AtomID) *DefinitionCycleError {
		state[id] = grey
		stack = append(stack, id)

		for _, tm := range t.units[id].Def.Terms() {
			dep := tm.Atom
			if t.units[dep].Kind != UnitDerived {
				continue
			}
			switch state[dep] {
			case grey:
				return t.cycleFrom(stack, dep)
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = black
		return nil
	}

	for i := 1; i < len(t.units); i++ {
		if t.units[i].Kind != UnitDerived || state[i] != white {
			continue
		}
		if err := visit(AtomID(i)); err != nil { // #nosec G115 -- bounded by AtomSet interning
			return err
		}
	}
	return nil
}

// cycleFrom cuts the cycle path out of the DFS stack, starting at the
// repeated unit and closing back on it.
func (t *Table) cycleFrom(stack []AtomID, repeated AtomID) *DefinitionCycleError {
	start := 0
	for i, id := range stack {
		if id == repeated {
			start = i
			break
		}
	}
	names := make([]string, 0, len(stack)-start+1)
	for _, id := range stack[start:] {
		names = append(names, t.AtomName(id))
	}
	names = append(names, t.AtomName(repeated))
	return &DefinitionCycleError{Cycle: names}
}

// AtomFormula is the formula of a single atom with power one.
func AtomFormula(id AtomID) Formula {
	return Formula{terms: []Exponent{{Atom: id, Power: 1}}}
}

// SuggestName returns a declared name matching the given one up to
// letter case, used in unknown-unit notes.
func (t *Table) SuggestName(name string) (string, bool) {
	normalized := NormalizeName(name)
	for _, u := range t.units[1:] {
		if u.Name != normalized && strings.EqualFold(u.Name, normalized) {
			return u.Name, true
		}
	}
	return "", false
}
