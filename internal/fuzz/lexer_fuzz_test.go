package fuzztests

import (
	"testing"

	"dims/internal/diag"
	"dims/internal/lexer"
	"dims/internal/source"
	"dims/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.units", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
			t.Fatal("token stream must end with EOF")
		}
		// Spans stay inside the file and never run backwards.
		for _, tok := range tokens {
			if tok.Span.Start > tok.Span.End || int(tok.Span.End) > len(file.Content) {
				t.Fatalf("bad span %v for %s", tok.Span, tok.Kind)
			}
		}
	})
}
