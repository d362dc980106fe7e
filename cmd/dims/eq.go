package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dims/internal/driver"
)

var eqCmd = &cobra.Command{
	Use:   "eq [flags] FORMULA FORMULA",
	Short: "Check two unit formulas for dimensional equality",
	Long: `Eq canonicalizes both formulas, expands derived units to base form,
and exits non-zero when the dimensions differ.`,
	Args: cobra.ExactArgs(2),
	RunE: runEq,
}

func init() {
	eqCmd.Flags().StringP("manifest", "m", "", "unit manifest to resolve names against")
}

func runEq(cmd *cobra.Command, args []string) error {
	g := readGlobalOpts(cmd)
	manifestPath, _ := cmd.Flags().GetString("manifest")

	s, err := newSession(manifestPath, g)
	if err != nil {
		return err
	}

	equal, ok := driver.Equivalent(s.fileSet, s.tbl, args[0], args[1], s.reporter())
	printDiags(g, s.bag, s.fileSet)
	if !ok {
		return fmt.Errorf("comparison failed")
	}
	if !equal {
		return fmt.Errorf("units differ")
	}
	if !g.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "equal")
	}
	return nil
}
