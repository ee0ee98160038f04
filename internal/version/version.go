// Package version reports the running build's module path and version.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const fallbackModule = "pkt.systems/panemux"

// buildVersion is set via -ldflags "-X pkt.systems/panemux/internal/version.buildVersion=...".
var buildVersion = ""

// Info describes the running build.
type Info struct {
	Module  string
	Version string
	Dirty   bool
}

// String renders "module version", with a +dirty marker when the build came
// from a modified tree.
func (i Info) String() string {
	v := i.Version
	if i.Dirty {
		v += "+dirty"
	}
	return i.Module + " " + v
}

// Describe resolves the build's identity. Preference order for the version:
// the ldflags override, the module version stamped by the toolchain, a
// pseudo-version derived from embedded VCS settings, then a fixed unknown
// marker.
func Describe() Info {
	info := Info{Module: fallbackModule, Version: "v0.0.0-unknown"}
	bi, ok := debug.ReadBuildInfo()
	if ok {
		if path := strings.TrimSpace(bi.Main.Path); path != "" {
			info.Module = path
		}
	}
	if v := strings.TrimSpace(buildVersion); v != "" {
		info.Version, info.Dirty = splitDirty(v)
		return info
	}
	if !ok {
		return info
	}
	if v := strings.TrimSpace(bi.Main.Version); v != "" && v != "(devel)" {
		info.Version, info.Dirty = splitDirty(v)
		return info
	}
	if v, dirty := vcsPseudoVersion(bi); v != "" {
		info.Version = v
		info.Dirty = dirty
	}
	return info
}

func splitDirty(v string) (string, bool) {
	trimmed := strings.TrimSuffix(v, "+dirty")
	return trimmed, trimmed != v
}

// vcsPseudoVersion derives a v0.0.0 pseudo-version from the VCS settings the
// toolchain embeds into binaries built inside a repository.
func vcsPseudoVersion(bi *debug.BuildInfo) (string, bool) {
	if bi == nil {
		return "", false
	}
	var revision, stamp string
	var modified bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			stamp = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision == "" || stamp == "" {
		return "", false
	}
	parsed, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return "", false
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return "v0.0.0-" + parsed.UTC().Format("20060102150405") + "-" + revision, modified
}
