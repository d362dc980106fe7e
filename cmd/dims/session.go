package main

import (
	"fmt"

	"dims/internal/diag"
	"dims/internal/manifest"
	"dims/internal/source"
	"dims/internal/units"
)

// session bundles the state ad-hoc subcommands share: a file set for
// formula spans, a unit table, and a diagnostics bag.
type session struct {
	fileSet *source.FileSet
	tbl     *units.Table
	bag     *diag.Bag
}

func (s *session) reporter() diag.Reporter {
	return diag.BagReporter{Bag: s.bag}
}

// newSession builds a table from a manifest, or an implicit table
// that auto-declares atoms when no manifest is given.
func newSession(manifestPath string, g globalOpts) (*session, error) {
	s := &session{
		fileSet: source.NewFileSet(),
		bag:     diag.NewBag(g.driverOptions().MaxDiagnostics),
	}

	if manifestPath == "" {
		s.tbl = units.NewImplicitTable()
		return s, nil
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	tbl, ok := manifest.BuildTable(s.fileSet, m, s.reporter())
	s.tbl = tbl
	if !ok {
		printDiags(g, s.bag, s.fileSet)
		return nil, fmt.Errorf("manifest %s has errors", manifestPath)
	}
	return s, nil
}

// finish prints accumulated diagnostics and converts failure into a
// non-zero exit.
func (s *session) finish(g globalOpts, ok bool, what string) error {
	printDiags(g, s.bag, s.fileSet)
	if !ok {
		return fmt.Errorf("%s failed", what)
	}
	return nil
}
