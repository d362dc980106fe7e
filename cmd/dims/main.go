package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dims/internal/diag"
	"dims/internal/diagfmt"
	"dims/internal/driver"
	"dims/internal/source"
	"dims/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dims",
	Short: "Units-of-measure formula checker",
	Long:  `dims canonicalizes unit formulas and checks them for dimensional consistency`,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(canonCmd)
	rootCmd.AddCommand(eqCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// globalOpts collects the persistent flags every subcommand honors.
type globalOpts struct {
	color   bool
	quiet   bool
	timings bool
	maxDiag int
}

func readGlobalOpts(cmd *cobra.Command) globalOpts {
	flags := cmd.Root().PersistentFlags()
	colorFlag, _ := flags.GetString("color")
	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	maxDiag, _ := flags.GetInt("max-diagnostics")
	return globalOpts{
		color:   colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
		quiet:   quiet,
		timings: timings,
		maxDiag: maxDiag,
	}
}

func (g globalOpts) driverOptions() driver.Options {
	return driver.Options{MaxDiagnostics: g.maxDiag, Timings: g.timings}
}

// printDiags writes a sorted bag to stderr in pretty form.
func printDiags(g globalOpts, bag *diag.Bag, fileSet *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
		Color:      g.color,
		ShowNotes:  true,
		ShowSource: true,
	})
}
