// Package version reports the build identity of the kaudit binary.
//
// Release builds inject Version, Commit and Date via -ldflags. Binaries built
// with "go install" carry no ldflags, so Info falls back to the module and VCS
// data the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the text printed by "kaudit version".
func Info() string {
	bi, _ := debug.ReadBuildInfo()
	v, c, d := resolve(bi)
	return fmt.Sprintf("kaudit version %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}

// resolve fills any field still at its default from bi. Injected values win.
func resolve(bi *debug.BuildInfo) (v, commit, date string) {
	v, commit, date = Version, Commit, Date
	if bi == nil {
		return v, commit, date
	}
	if v == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "none" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "unknown" {
				date = s.Value
			}
		}
	}
	return v, commit, date
}
