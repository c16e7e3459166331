// Package version provides build information for the consolidate tools.
package version

import (
	"fmt"
	"runtime"
)

// Populated at build time using -ldflags, for example:
// go build -ldflags "-X 'github.com/bethropolis/consolidate/internal/version.Version=1.2.3'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info contains the version details of a binary
type Info struct {
	Program   string
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the version information for program
func Get(program string) Info {
	return Info{
		Program:   program,
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the version information on a single line.
// consolidate version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.22.1 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"%s version %s (commit: %s) built at %s with %s on %s",
		i.Program,
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
