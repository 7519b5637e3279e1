// Package version exposes the build information injected at link time, e.g.
//
//	go build -ldflags "-X github.com/information-sharing-networks/pim-catalog/internal/version.version=1.2.0"
package version

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Get returns the build information for the running binary.
func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}
