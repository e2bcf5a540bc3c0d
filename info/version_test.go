package info

import (
	"runtime/debug"
	"testing"
)

func TestReadBuildInfo(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		got := readBuildInfo("hostweaver", func() (*debug.BuildInfo, bool) { return nil, false })
		if got.Service != "hostweaver" || got.Version != "(devel)" {
			t.Fatalf("unexpected fallback %+v", got)
		}
	})

	t.Run("vcs settings", func(t *testing.T) {
		got := readBuildInfo("hostweaver", func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				GoVersion: "go1.25.4",
				Main:      debug.Module{Path: "github.com/drblury/hostweaver", Version: "v1.4.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123abcd"},
					{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, true
		})

		want := BuildInfo{
			Service:   "hostweaver",
			Module:    "github.com/drblury/hostweaver",
			Version:   "v1.4.0",
			GoVersion: "go1.25.4",
			Revision:  "0123abcd",
			BuildTime: "2026-10-01T12:00:00Z",
			Modified:  true,
		}
		if got != want {
			t.Fatalf("got %+v want %+v", got, want)
		}
	})
}
