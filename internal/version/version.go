// Package version exposes the build metadata stamped into the binary.
package version

// Overridden through -ldflags on release builds; the defaults identify a
// development build.
var (
	// Version is the release version string.
	Version = "0.1.0"

	// BuildTime is when the binary was produced, in UTC.
	BuildTime = "unknown"

	// GitCommit identifies the commit the binary was built from.
	GitCommit = "unknown"
)
