package lexer

import (
	"dims/internal/diag"
	"dims/internal/source"
)

// Options configures a Lexer. The Reporter may be nil, in which case
// lexical errors are dropped but lexing continues.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
