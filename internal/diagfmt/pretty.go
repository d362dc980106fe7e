package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dims/internal/diag"
	"dims/internal/source"
)

type palette struct {
	severity map[diag.Severity]*color.Color
	code     *color.Color
	note     *color.Color
	caret    *color.Color
}

// newPalette returns a usable palette either way: when color is off
// every entry stays nil and paint passes text through unchanged.
func newPalette(enabled bool) *palette {
	if !enabled {
		return &palette{}
	}
	return &palette{
		severity: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
		code:  color.New(color.Bold),
		note:  color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
	}
}

func (p *palette) paint(c *color.Color, s string) string {
	if p == nil || c == nil {
		return s
	}
	return c.Sprint(s)
}

// Pretty renders diagnostics in a human-readable form. The bag is
// walked in its current order (callers Sort() beforehand). Each
// diagnostic prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending source line with a ^~~~ underline, then
// notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)

	for _, d := range bag.Items() {
		sev := pal.paint(pal.severity[d.Severity], d.Severity.String())
		code := pal.paint(pal.code, d.Code.String())
		fmt.Fprintf(w, "%s: %s %s: %s\n", location(fs, d.Primary, opts.PathMode), sev, code, d.Message)
		if opts.ShowSource {
			printSourceLine(w, fs, d.Primary, pal)
		}

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: %s: %s\n", location(fs, n.Span, opts.PathMode), pal.paint(pal.note, "note"), n.Msg)
			if opts.ShowSource {
				printSourceLine(w, fs, n.Span, pal)
			}
		}
	}
}

// location renders `<path>:<line>:<col>` for the span start.
func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, sp.File, mode), start.Line, start.Col)
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAuto:
	}
	return fs.DisplayPath(id)
}

// printSourceLine shows the line the span starts on with a caret
// underline. Widths use display columns so wide runes line up.
func printSourceLine(w io.Writer, fs *source.FileSet, sp source.Span, pal *palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	// Byte columns into the line; clamp for spans that run past it.
	startCol := int(start.Col) - 1
	endCol := len(line)
	if end.Line == start.Line {
		endCol = int(end.Col) - 1
	}
	startCol = min(startCol, len(line))
	endCol = min(endCol, len(line))
	if endCol <= startCol {
		endCol = startCol + 1
	}

	pad := runewidth.StringWidth(line[:startCol])
	width := runewidth.StringWidth(clampSlice(line, startCol, endCol))
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), pal.paint(pal.caret, underline))
}

func clampSlice(s string, lo, hi int) string {
	if lo >= len(s) {
		return ""
	}
	if hi > len(s) {
		hi = len(s)
	}
	return s[lo:hi]
}
