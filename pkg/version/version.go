// Package version provides build metadata and version information.
package version

import (
	"fmt"
	"runtime"
)

// Name is the program name reported to MCP clients and in -version output.
const Name = "tripreplay"

// Set with -ldflags "-X github.com/NERVsystems/tripreplay/pkg/version.BuildCommit=..."
var (
	BuildVersion = "0.1.0"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
	GoVersion    = runtime.Version()
)

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("%s version %s (%s) built on %s with %s",
		Name, BuildVersion, BuildCommit, BuildDate, GoVersion)
}

// Info returns the build metadata as structured log attributes.
func Info() []any {
	return []any{
		"name", Name,
		"version", BuildVersion,
		"commit", BuildCommit,
		"build_date", BuildDate,
		"go_version", GoVersion,
	}
}
