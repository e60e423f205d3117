package version

import (
	"fmt"
	"runtime"
)

// APIVersion is the public contract version reported by /health.
const APIVersion = "1.0.0"

// Set via -ldflags "-X github.com/kiosk404/pokedex/pkg/version.GitVersion=...".
var (
	GitVersion = "v0.0.0-dev"
	GitCommit  = "unknown"
	BuildDate  = "1970-01-01T00:00:00Z"
)

type Info struct {
	GitVersion string `json:"gitVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
	Platform   string `json:"platform"`
}

func Get() Info {
	return Info{
		GitVersion: GitVersion,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s)", i.GitVersion, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
