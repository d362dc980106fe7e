package diag

import (
	"dims/internal/source"
)

// Note attaches secondary context to a diagnostic (the declaration
// site of a unit, the other operand of a mismatch).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single source-located finding.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
