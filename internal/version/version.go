package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/punkt/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/punkt/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/punkt/internal/version.Date={{.Date}}
)

// Info returns the multi-line version report
func Info() string {
	return fmt.Sprintf("punkt version %s\nCommit: %s\nBuilt:  %s\n", Version, Commit, Date)
}
