// Package version exposes the tool version used by the CLI.
package version

// Overridden at release build time via
// -ldflags "-X dims/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)
