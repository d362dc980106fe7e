package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dims/internal/driver"
)

var canonCmd = &cobra.Command{
	Use:   "canon [flags] FORMULA",
	Short: "Canonicalize a unit formula",
	Long: `Canon parses a unit formula, combines repeated atoms, drops zero
exponents, and prints the canonical form. With --base, derived units
from the manifest are expanded down to base units first.`,
	Args: cobra.ExactArgs(1),
	RunE: runCanon,
}

func init() {
	canonCmd.Flags().StringP("manifest", "m", "", "unit manifest to resolve names against")
	canonCmd.Flags().Bool("base", false, "expand derived units to base form")
}

func runCanon(cmd *cobra.Command, args []string) error {
	g := readGlobalOpts(cmd)
	manifestPath, _ := cmd.Flags().GetString("manifest")
	toBase, _ := cmd.Flags().GetBool("base")

	if toBase && manifestPath == "" {
		return fmt.Errorf("--base requires --manifest")
	}

	s, err := newSession(manifestPath, g)
	if err != nil {
		return err
	}

	canonicalize := driver.Canonicalize
	if toBase {
		canonicalize = driver.CanonicalizeBase
	}
	f, ok := canonicalize(s.fileSet, s.tbl, "<formula>", args[0], s.reporter())
	if err := s.finish(g, ok, "canonicalization"); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), s.tbl.Render(f))
	return nil
}
