package app

import "fmt"

// Version, Commit and BuildTime are stamped with -ldflags, for example
// go build -ldflags "-X armatupc/internal/app.Version=0.3.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion renders the stamped build info as a single string for the
// startup log and the health endpoint.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
