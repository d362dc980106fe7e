// Package units implements the units-of-measure kernel: interned unit
// atoms, canonical formulas with integer powers, the algebra over
// them, and the per-session symbol table of base and derived units.
//
// Formulas are immutable values; the table is built by a single
// writer and frozen before any concurrent reads. Units exist only
// during static checking and have no runtime representation.
package units
