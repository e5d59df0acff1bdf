// Package version carries build metadata injected at link time.
package version

var (
	// Version is the semantic version, overridden via -ldflags at release.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the UTC build timestamp.
	BuildDate = ""
)
