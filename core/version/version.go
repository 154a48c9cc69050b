// Package version returns build version information.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version records build version information.
type Version struct {
	Module    string    `json:"module"`
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Date      time.Time `json:"date"`
	Dirty     bool      `json:"dirty"`
	GoVersion string    `json:"go"`
}

func (v Version) String() string {
	return v.Version
}

// V contains version information of the running executable.
var V = fromBuildInfo(debug.ReadBuildInfo())

func fromBuildInfo(bi *debug.BuildInfo, ok bool) (v Version) {
	v = Version{
		Version: "development",
		Commit:  "unknown",
		Date:    time.Now(),
		Dirty:   true,
	}
	if !ok {
		return v
	}
	v.Module, v.GoVersion = bi.Main.Path, bi.GoVersion
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}

	vcs := map[string]string{}
	for _, kv := range bi.Settings {
		vcs[kv.Key] = kv.Value
	}
	date, e := time.Parse(time.RFC3339, vcs["vcs.time"])
	if vcs["vcs"] != "git" || len(vcs["vcs.revision"]) != 40 || e != nil {
		return v
	}

	v.Commit, v.Date, v.Dirty = vcs["vcs.revision"], date, vcs["vcs.modified"] == "true"
	if v.Version == "development" {
		// pseudo-version in the form used by the go command
		v.Version = fmt.Sprintf("v0.0.0-%s-%s", v.Date.UTC().Format("20060102150405"), v.Commit[:12])
		if v.Dirty {
			v.Version += "-dirty"
		}
	}
	return v
}
