package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"dims/internal/diagfmt"
	"dims/internal/driver"
	"dims/internal/observ"
	"dims/internal/prof"
	"dims/internal/ui"
	"dims/internal/units"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] PATH",
	Short: "Validate unit manifests",
	Long: `Check builds the unit table of a manifest, resolves every derived
unit to base form, and evaluates its assertions. A directory argument
checks every *.units.toml under it in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntP("jobs", "j", 0, "parallel workers for directory checks (0 = GOMAXPROCS)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("ui", false, "interactive progress for directory checks")
	checkCmd.Flags().String("cpuprofile", "", "write a CPU profile to this path")
	checkCmd.Flags().String("heapprofile", "", "write a heap profile to this path")
}

func runCheck(cmd *cobra.Command, args []string) error {
	g := readGlobalOpts(cmd)
	jobs, _ := cmd.Flags().GetInt("jobs")
	format, _ := cmd.Flags().GetString("format")
	useUI, _ := cmd.Flags().GetBool("ui")
	cpuProfile, _ := cmd.Flags().GetString("cpuprofile")
	heapProfile, _ := cmd.Flags().GetString("heapprofile")

	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return err
		}
		defer func() { _ = prof.StopCPU() }()
	}
	if heapProfile != "" {
		defer func() { _ = prof.WriteHeap(heapProfile) }()
	}

	var results []*driver.CheckResult
	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if info.IsDir() {
		if useUI && isTerminal(os.Stdout) {
			results, err = checkDirWithUI(cmd, args[0], g, jobs)
		} else {
			results, err = driver.CheckDir(cmd.Context(), args[0], g.driverOptions(), jobs)
		}
	} else {
		var res *driver.CheckResult
		res, err = driver.CheckManifest(args[0], g.driverOptions())
		results = []*driver.CheckResult{res}
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no %s files under %s", driver.ManifestSuffix, args[0])
	}

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}

	switch format {
	case "pretty":
		st := newCheckStyles(g.color && isTerminal(os.Stdout))
		for _, res := range results {
			printDiags(g, res.Bag, res.FileSet)
			printCheckPretty(cmd.OutOrStdout(), res, st, g)
		}
	case "json":
		if err := printCheckJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d manifests failed", failed, len(results))
	}
	return nil
}

// checkDirWithUI runs the directory check behind a progress display.
// The check itself runs in a goroutine feeding events into the model.
func checkDirWithUI(cmd *cobra.Command, dir string, g globalOpts, jobs int) ([]*driver.CheckResult, error) {
	files, err := driver.ListManifests(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 2*len(files))
	var (
		results  []*driver.CheckResult
		checkErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		results, checkErr = driver.CheckDirStream(cmd.Context(), dir, g.driverOptions(), jobs, events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, err
	}
	<-done
	return results, checkErr
}

type checkStyles struct {
	enabled bool
	path    lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
}

func newCheckStyles(enabled bool) checkStyles {
	return checkStyles{
		enabled: enabled,
		path:    lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

func (st checkStyles) render(s lipgloss.Style, text string) string {
	if !st.enabled {
		return text
	}
	return s.Render(text)
}

func printCheckPretty(w io.Writer, res *driver.CheckResult, st checkStyles, g globalOpts) {
	verdict := st.render(st.pass, "ok")
	if !res.OK() {
		verdict = st.render(st.fail, "FAIL")
	}
	fmt.Fprintf(w, "%s: %s %s\n",
		st.render(st.path, res.Path), verdict,
		st.render(st.dim, fmt.Sprintf("(%d units, %d assertions)", len(res.Units), len(res.Asserts))))

	if !g.quiet {
		nameWidth := 0
		for _, u := range res.Units {
			nameWidth = max(nameWidth, len(u.Name))
		}
		for _, u := range res.Units {
			if u.Kind == units.UnitBase {
				fmt.Fprintf(w, "  %-*s  %s\n", nameWidth, u.Name, st.render(st.dim, "base"))
				continue
			}
			fmt.Fprintf(w, "  %-*s  %s %s\n", nameWidth, u.Name,
				st.render(st.dim, "= "+u.Base), st.render(st.dim, "("+u.Def+")"))
		}
		for _, a := range res.Asserts {
			verdict := st.render(st.pass, "ok")
			if !a.Passed {
				verdict = st.render(st.fail, "FAIL")
			}
			fmt.Fprintf(w, "  assert %s: %s\n", strings.Join(a.Formulas, " = "), verdict)
		}
	}

	if g.timings && res.Timing != nil {
		printTimings(w, res.Timing, st)
	}
}

func printTimings(w io.Writer, report *observ.Report, st checkStyles) {
	fmt.Fprintln(w, st.render(st.dim, "  timings:"))
	for _, p := range report.Phases {
		line := fmt.Sprintf("    %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		fmt.Fprintln(w, st.render(st.dim, line))
	}
	fmt.Fprintln(w, st.render(st.dim, fmt.Sprintf("    %-12s %7.2f ms", "total", report.TotalMS)))
}

type checkResultJSON struct {
	Path        string                    `json:"path"`
	OK          bool                      `json:"ok"`
	Units       []unitJSON                `json:"units,omitempty"`
	Asserts     []assertJSON              `json:"asserts,omitempty"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Timings     *observ.Report            `json:"timings,omitempty"`
}

type unitJSON struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Def  string `json:"def,omitempty"`
	Base string `json:"base"`
}

type assertJSON struct {
	Formulas  []string `json:"formulas"`
	Canonical string   `json:"canonical,omitempty"`
	Passed    bool     `json:"passed"`
}

func printCheckJSON(w io.Writer, results []*driver.CheckResult) error {
	out := make([]checkResultJSON, 0, len(results))
	for _, res := range results {
		rj := checkResultJSON{
			Path: res.Path,
			OK:   res.OK(),
			Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet,
				diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}),
			Timings: res.Timing,
		}
		for _, u := range res.Units {
			rj.Units = append(rj.Units, unitJSON{
				Name: u.Name, Kind: u.Kind.String(), Def: u.Def, Base: u.Base,
			})
		}
		for _, a := range res.Asserts {
			rj.Asserts = append(rj.Asserts, assertJSON{
				Formulas: a.Formulas, Canonical: a.Canonical, Passed: a.Passed,
			})
		}
		out = append(out, rj)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
