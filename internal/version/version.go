// Package version holds the relnote build information.
// It has no dependencies and can be safely imported from any package.
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("relnote %s (commit %s, built %s)", Version, Commit, BuildDate)
}
