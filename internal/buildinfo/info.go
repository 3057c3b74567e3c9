// Package buildinfo carries the version identifiers stamped at build time.
package buildinfo

// Set via -ldflags at build time; the defaults identify a local dev build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
