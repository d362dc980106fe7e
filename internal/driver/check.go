package driver

import (
	"fmt"

	"dims/internal/diag"
	"dims/internal/manifest"
	"dims/internal/observ"
	"dims/internal/source"
	"dims/internal/units"
)

// UnitReport summarizes one declared unit for output.
type UnitReport struct {
	Name string
	Kind units.UnitKind
	Def  string // definition text, derived units only
	Base string // canonical base form
}

// CheckResult holds everything one manifest check produced.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	Table   *units.Table
	Bag     *diag.Bag
	Units   []UnitReport
	Asserts []manifest.AssertOutcome
	Timing  *observ.Report
}

// OK reports whether the manifest checked clean.
func (r *CheckResult) OK() bool {
	return !r.Bag.HasErrors()
}

// CheckManifest loads a manifest, builds and freezes its unit table,
// and evaluates its assertions. A returned error means the manifest
// file itself could not be read; everything else lands in the
// result's Bag.
func CheckManifest(path string, opts Options) (*CheckResult, error) {
	res := &CheckResult{
		Path:    path,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	reporter := diag.BagReporter{Bag: res.Bag}
	timer := observ.NewTimer()

	phase := timer.Begin("load")
	m, err := manifest.Load(path)
	timer.End(phase, "")
	if err != nil {
		return nil, err
	}

	phase = timer.Begin("build")
	tbl, built := manifest.BuildTable(res.FileSet, m, reporter)
	res.Table = tbl
	timer.End(phase, fmt.Sprintf("%d units", tbl.Len()))

	if built {
		phase = timer.Begin("summarize")
		res.Units = summarizeUnits(tbl)
		timer.End(phase, "")

		phase = timer.Begin("assert")
		res.Asserts, _ = manifest.CheckAsserts(res.FileSet, tbl, m, reporter)
		timer.End(phase, fmt.Sprintf("%d assertions", len(m.Asserts)))
	}

	res.Bag.Sort()
	if opts.Timings {
		report := timer.Report()
		res.Timing = &report
	}
	return res, nil
}

// summarizeUnits renders every declared unit with its base form, in
// declaration order.
func summarizeUnits(tbl *units.Table) []UnitReport {
	out := make([]UnitReport, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		id := units.AtomID(i) // #nosec G115 -- bounded by table size
		info, ok := tbl.Info(id)
		if !ok {
			continue
		}
		base, err := tbl.BaseForm(id)
		if err != nil {
			continue
		}
		out = append(out, UnitReport{
			Name: info.Name,
			Kind: info.Kind,
			Def:  info.DefText,
			Base: tbl.Render(base),
		})
	}
	return out
}
