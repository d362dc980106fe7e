// Package diag carries the diagnostics produced by formula checking:
// severities, stable numeric codes, source-located messages and the
// Bag that accumulates them per session.
package diag
