package info

import (
	"runtime/debug"
)

// BuildInfo is the default payload of the version endpoint.
type BuildInfo struct {
	Service   string `json:"service,omitempty"`
	Module    string `json:"module,omitempty"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Revision  string `json:"revision,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// BuildInfoProvider reports the build information embedded by the Go
// toolchain. The lookup runs once; the result is shared by every call.
func BuildInfoProvider(service string) InfoProvider {
	info := readBuildInfo(service, debug.ReadBuildInfo)
	return func() any {
		return info
	}
}

func readBuildInfo(service string, read func() (*debug.BuildInfo, bool)) BuildInfo {
	out := BuildInfo{Service: service, Version: "(devel)"}

	bi, ok := read()
	if !ok || bi == nil {
		return out
	}

	out.Module = bi.Main.Path
	out.GoVersion = bi.GoVersion
	if bi.Main.Version != "" {
		out.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			out.Revision = setting.Value
		case "vcs.time":
			out.BuildTime = setting.Value
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}
	return out
}
