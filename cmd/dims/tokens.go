package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dims/internal/diag"
	"dims/internal/diagfmt"
	"dims/internal/lexer"
	"dims/internal/source"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] FORMULA",
	Short: "Dump the token stream of a unit formula",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	g := readGlobalOpts(cmd)
	format, _ := cmd.Flags().GetString("format")

	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("<formula>", []byte(args[0]))

	bag := diag.NewBag(g.maxDiag)
	tokens := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	printDiags(g, bag, fileSet)

	switch format {
	case "pretty":
		diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, fileSet)
	case "json":
		if err := diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		fmt.Fprintf(os.Stderr, "%d lexical errors\n", bag.Len())
		return fmt.Errorf("tokenization failed")
	}
	return nil
}
