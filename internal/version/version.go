package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

// Version information (set via ldflags during build)
var (
	// Version is the current version of lintreport
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// Date is the build date
	Date = "unknown"
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
)

// GetVersion returns the current version
func GetVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// GetFullVersion returns the full version information
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s/%s, %s)",
		GetVersion(), Commit, Date, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// Banner returns "lintreport <version>" with terminal colors when enabled
func Banner(name string) string {
	return nameColor.Sprint(name) + " version " + versionColor.Sprint(GetVersion())
}
