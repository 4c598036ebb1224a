// Package buildinfo carries the version stamped into release binaries.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/archscope/archscope/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/archscope/archscope/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/archscope/archscope/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Plain `go build` binaries fall back to the VCS metadata the toolchain
// embeds, so `archscope --version` stays useful for development builds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version, or "dev" when not stamped.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

func init() {
	if Commit != "none" && Date != "unknown" {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// shortCommit trims a full SHA down to the familiar 12 characters.
func shortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, shortCommit(), Date)
}
