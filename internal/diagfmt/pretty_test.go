package diagfmt

import (
	"strings"
	"testing"

	"dims/internal/diag"
	"dims/internal/source"
)

func fixture(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("si.units.toml#units.derived.N", []byte("kg mm/s^2"))

	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.UnitUnknown, source.Span{File: id, Start: 3, End: 5},
		`unknown unit "mm"`).
		WithNote(source.Span{File: id, Start: 0, End: 2}, "declared units: kg, m, s"))
	return bag, fs
}

func TestPrettyFormat(t *testing.T) {
	bag, fs := fixture(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowSource: true})
	got := sb.String()

	want := []string{
		`si.units.toml#units.derived.N:1:4: ERROR DM3001: unknown unit "mm"`,
		"  kg mm/s^2",
		"     ^~",
		"si.units.toml#units.derived.N:1:1: note: declared units: kg, m, s",
		"  ^~",
	}
	for _, line := range want {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q\ngot:\n%s", line, got)
		}
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs := fixture(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	got := sb.String()

	if strings.Contains(got, "note:") {
		t.Errorf("notes shown despite ShowNotes=false:\n%s", got)
	}
	if strings.Contains(got, "^") {
		t.Errorf("source underline shown despite ShowSource=false:\n%s", got)
	}
}

func TestPrettyNoColorRendersEveryPart(t *testing.T) {
	// The no-color path must render severity, code, source line, and
	// notes without touching any color state.
	bag, fs := fixture(t)

	for _, opts := range []PrettyOpts{
		{},
		{ShowSource: true},
		{ShowNotes: true},
		{ShowNotes: true, ShowSource: true},
	} {
		var sb strings.Builder
		Pretty(&sb, bag, fs, opts)
		got := sb.String()
		if !strings.Contains(got, "ERROR DM3001") {
			t.Errorf("opts %+v: output missing header:\n%s", opts, got)
		}
		if opts.ShowSource && !strings.Contains(got, "kg mm/s^2") {
			t.Errorf("opts %+v: output missing source line:\n%s", opts, got)
		}
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	bag, fs := fixture(t)

	var plain, colored strings.Builder
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
	// fatih/color honors NO_COLOR; only check escapes when it is active.
	if !strings.Contains(colored.String(), "ERROR") {
		t.Errorf("colored output lost the severity:\n%s", colored.String())
	}
}
