// SPDX-License-Identifier: MIT
//
// Package build manages build information embedded into the binary at
// compile time with linker flags: application name, build timestamp,
// Git commit hash and semantic version. Development builds without
// ldflags fall back to placeholder values.
package build

type ldFlags struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

// Package-level variables populated by -ldflags during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string

	buildFlags = &ldFlags{
		Name:        "fft-visualization",
		Description: "Real-time radial FFT audio visualizer",
		Time:        "unknown",
		Commit:      "unknown",
		Version:     "dev",
	}
)

// Initialize copies build information from the ldflags variables into
// the buildFlags struct. Unset flags keep their development defaults,
// so this never fails for a plain `go run`.
func Initialize() {
	if buildName != "" {
		buildFlags.Name = buildName
	}
	if buildTime != "" {
		buildFlags.Time = buildTime
	}
	if buildCommit != "" {
		buildFlags.Commit = buildCommit
	}
	if buildVersion != "" {
		buildFlags.Version = buildVersion
	}
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
