// Package manifest loads unit declaration tables from TOML and turns
// them into frozen symbol tables.
//
// A manifest declares the units of one checking session:
//
//	[units]
//	base = ["kg", "m", "s"]
//
//	[units.derived]
//	N  = "kg m/s^2"
//	Pa = "N/m^2"
//
//	[[assert]]
//	equal = ["N/kg", "m/s^2"]
//
// Derived definitions may reference each other in any order; cycles
// are rejected when the table freezes.
package manifest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

var (
	// ErrUnitsSectionMissing indicates the [units] section is absent.
	ErrUnitsSectionMissing = errors.New("missing [units]")
	// ErrNoUnits indicates a manifest declaring nothing at all.
	ErrNoUnits = errors.New("[units] declares no units")
	// ErrAssertTooFew indicates an [[assert]] with fewer than two formulas.
	ErrAssertTooFew = errors.New("[[assert]] needs at least two formulas in equal")
)

// DerivedDecl is one derived-unit declaration.
type DerivedDecl struct {
	Name    string
	Formula string
}

// Assert is one equality assertion over unit formulas.
type Assert struct {
	Formulas []string
}

// Manifest is a parsed declaration table, order normalized for
// deterministic processing.
type Manifest struct {
	Path    string
	Base    []string
	Derived []DerivedDecl
	Asserts []Assert
}

type fileSchema struct {
	Units struct {
		Base    []string          `toml:"base"`
		Derived map[string]string `toml:"derived"`
	} `toml:"units"`
	Assert []struct {
		Equal []string `toml:"equal"`
	} `toml:"assert"`
}

// Load parses a manifest file. Declaration content is validated only
// structurally; formula syntax and unit resolution are checked when
// the table is built.
func Load(path string) (*Manifest, error) {
	var cfg fileSchema
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("units") {
		return nil, fmt.Errorf("%s: %w", path, ErrUnitsSectionMissing)
	}
	if len(cfg.Units.Base) == 0 && len(cfg.Units.Derived) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoUnits)
	}

	m := &Manifest{
		Path: path,
		Base: slices.Clone(cfg.Units.Base),
	}

	names := make([]string, 0, len(cfg.Units.Derived))
	for name := range cfg.Units.Derived {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		m.Derived = append(m.Derived, DerivedDecl{Name: name, Formula: cfg.Units.Derived[name]})
	}

	for i, a := range cfg.Assert {
		if len(a.Equal) < 2 {
			return nil, fmt.Errorf("%s: assert %d: %w", path, i+1, ErrAssertTooFew)
		}
		m.Asserts = append(m.Asserts, Assert{Formulas: slices.Clone(a.Equal)})
	}
	return m, nil
}
