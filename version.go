package serx

import (
	"fmt"
	"runtime/debug"
)

// Version of the serx library
const Version = "1.0.0"

// VersionInfo returns the library version, with the VCS revision embedded by the
// Go toolchain when the binary was built from a checkout.
func VersionInfo() string {
	if revision := vcsRevision(); revision != "" {
		return fmt.Sprintf("serx v%s (commit: %s)", Version, revision)
	}
	return fmt.Sprintf("serx v%s", Version)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}
