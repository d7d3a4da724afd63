// Package version holds build metadata injected at link time.
package version

import "runtime"

// Set via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/mjhall/chapterize/version.GitRelease=v0.2.0"
var (
	// GitRelease is the release tag or branch the binary was built from.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the date of that commit.
	GitCommitDate = "unknown"
)

// GoInfo reports the Go runtime the binary was built with.
var GoInfo = runtime.Version()
