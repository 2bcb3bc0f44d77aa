// Package contracts holds the types shared between the service and its
// callers: the domain model under domain/ and the build version information.
package contracts

import (
	"fmt"
	"runtime"
)

// Version is the application version.
const Version = "1.0.0"

// AppName is the human-readable product name.
const AppName = "FinSight Mirror Trade Processor"

var (
	// BuildTime is set during build using ldflags.
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags.
	GitCommit = "unknown"
)

// VersionInfo contains detailed version information for health and
// diagnostic endpoints.
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

// GetVersionString returns a formatted version string.
func GetVersionString() string {
	return fmt.Sprintf("%s v%s", AppName, Version)
}
