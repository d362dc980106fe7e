package units

import (
	"fmt"
	"strings"
)

// UnknownUnitError reports a reference to a unit the session never
// declared.
type UnknownUnitError struct {
	Name string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Name)
}

// RedeclaredUnitError reports a duplicate declaration of a unit name.
type RedeclaredUnitError struct {
	Name string
}

func (e *RedeclaredUnitError) Error() string {
	return fmt.Sprintf("unit %q is already declared", e.Name)
}

// DefinitionCycleError reports a derived unit defined, directly or
// transitively, in terms of itself. Cycle holds the names along the
// cycle, starting and ending with the same unit.
type DefinitionCycleError struct {
	Cycle []string
}

func (e *DefinitionCycleError) Error() string {
	return fmt.Sprintf("unit definition cycle: %s", strings.Join(e.Cycle, " -> "))
}

// ExponentOverflowError reports a power that left the representable
// range during Pow.
type ExponentOverflowError struct {
	Power int64
}

func (e *ExponentOverflowError) Error() string {
	return fmt.Sprintf("unit exponent %d is out of range", e.Power)
}

// FrozenTableError reports a declaration attempted after Freeze.
type FrozenTableError struct {
	Name string
}

func (e *FrozenTableError) Error() string {
	return fmt.Sprintf("cannot declare %q: unit table is frozen", e.Name)
}
