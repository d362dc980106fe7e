package lexer

import (
	"testing"

	"dims/internal/diag"
	"dims/internal/source"
	"dims/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(input))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexFormula(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"kg", []token.Kind{token.Ident, token.EOF}},
		{"1", []token.Kind{token.IntLit, token.EOF}},
		{"kg m/s^2", []token.Kind{
			token.Ident, token.Ident, token.Slash, token.Ident,
			token.Caret, token.IntLit, token.EOF,
		}},
		{"m /s s * kg", []token.Kind{
			token.Ident, token.Slash, token.Ident, token.Ident,
			token.Star, token.Ident, token.EOF,
		}},
		{"kg/(m s)", []token.Kind{
			token.Ident, token.Slash, token.LParen, token.Ident,
			token.Ident, token.RParen, token.EOF,
		}},
		{"s^-2", []token.Kind{
			token.Ident, token.Caret, token.Minus, token.IntLit, token.EOF,
		}},
		{"kg·m/s^2", []token.Kind{
			token.Ident, token.Star, token.Ident, token.Slash,
			token.Ident, token.Caret, token.IntLit, token.EOF,
		}},
	}

	for _, tt := range tests {
		toks, bag := lexAll(t, tt.input)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", tt.input, bag.Items())
		}
		got := kinds(toks)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLexUnicodeUnitNames(t *testing.T) {
	toks, bag := lexAll(t, "µm Ω")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "µm" {
		t.Errorf("token 0 = %v %q, want Ident µm", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "Ω" {
		t.Errorf("token 1 = %v %q, want Ident Ω", toks[1].Kind, toks[1].Text)
	}
}

func TestLexSpansAndText(t *testing.T) {
	toks, _ := lexAll(t, "kg m")
	if toks[0].Text != "kg" || toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Errorf("token 0 = %+v", toks[0])
	}
	if toks[1].Text != "m" || toks[1].Span.Start != 3 || toks[1].Span.End != 4 {
		t.Errorf("token 1 = %+v", toks[1])
	}
}

func TestLexFractionalExponentReported(t *testing.T) {
	toks, bag := lexAll(t, "m^1.5")
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("code = %v, want LexBadNumber", bag.Items()[0].Code)
	}
	// The malformed number is one Invalid token, then EOF.
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Caret, token.Invalid, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestLexUnknownChar(t *testing.T) {
	_, bag := lexAll(t, "kg % m")
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %v, want LexUnknownChar", bag.Items()[0].Code)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte("kg m"))
	lx := New(fs.Get(id), Options{})

	p := lx.Peek()
	n := lx.Next()
	if p != n {
		t.Errorf("Peek = %+v, Next = %+v", p, n)
	}
	if lx.Next().Text != "m" {
		t.Error("Peek consumed a token")
	}
}

func TestEOFIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(""))
	lx := New(fs.Get(id), Options{})
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}
