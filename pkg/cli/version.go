package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Info describes the running program. It is computed once when the App is
// built and never changes afterwards.
type Info struct {
	// Name is the program name, the root command's name.
	Name string `json:"name"`
	// Package is the main module path, when build information is available.
	Package string `json:"package,omitempty"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// computeInfo fills Info from the given version and the binary's build
// information. An explicit version wins over the module version.
func computeInfo(name, version string) Info {
	info := Info{
		Name:    name,
		Version: version,
		Commit:  "none",
		Date:    "unknown",
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Package = bi.Main.Path
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Commit = setting.Value
			case "vcs.time":
				info.Date = setting.Value
			case "vcs.modified":
				if setting.Value == "true" {
					info.Commit += "-dirty"
				}
			}
		}
	}
	if info.Version == "" || info.Version == "(devel)" {
		info.Version = "dev"
	}
	return info
}

// VersionLine renders "<name>, version <version>".
func (i Info) VersionLine() string {
	return fmt.Sprintf("%s, version %s", i.Name, i.Version)
}

// Environment renders the build and platform details printed below the
// version line.
func (i Info) Environment() string {
	var parts []string
	if i.Package != "" {
		parts = append(parts, "package "+i.Package)
	}
	if i.Commit != "none" {
		parts = append(parts, "commit "+i.Commit)
	}
	parts = append(parts, fmt.Sprintf("%s %s/%s", i.Go, i.OS, i.Arch))
	return strings.Join(parts, ", ")
}
