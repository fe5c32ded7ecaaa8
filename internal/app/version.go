// Package app wires the bigcalc configuration to its drivers: the two-number
// menu, one-shot calculations, the REPL and the HTTP server. It also owns
// process lifecycle and version reporting.
package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags="-X github.com/agbru/bigcalc/internal/app.Version=v1.0.0 -X github.com/agbru/bigcalc/internal/app.Commit=$(git rev-parse --short HEAD)" ./cmd/bigcalc
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// versionFlags are accepted anywhere on the command line.
var versionFlags = map[string]bool{"--version": true, "-version": true, "-V": true}

// HasVersionFlag reports whether args request the version banner. It is
// checked before flag parsing so "bigcalc -server --version" works too.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if versionFlags[arg] {
			return true
		}
	}
	return false
}

// VersionData is the machine-readable form of the version banner.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo collects the build metadata and runtime platform.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	v := GetVersionInfo()
	fmt.Fprintf(out, "bigcalc %s\n", v.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", v.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", v.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", v.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", v.OS, v.Arch)
}
