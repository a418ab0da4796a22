package analysis

import (
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

func TestSimplifyPlatform(t *testing.T) {
	cases := map[string]string{
		"iOS 16.6.1 (iPhone14,5)":        "iPhone",
		"Android OS 13 API 33 (samsung)": "Android",
		"Windows 10 (10.0.19045; x64)":   "Windows",
		"OS X 12.6.8 [arm 2]":            "Mac",
		"WebPlayer (websocket RFC6455)":  "Web Player",
		"Linux [x86-64 0]":               "Linux",
		"Partner sonos_one":              "Other",
		"":                               model.Unknown,
		model.Unknown:                    model.Unknown,
	}
	for in, want := range cases {
		if got := SimplifyPlatform(in); got != want {
			t.Errorf("SimplifyPlatform(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlatformStats(t *testing.T) {
	events := []model.PlayEvent{
		event("A", "X", "1", 100000, false, "2024-01-01T10:00:00Z"),
		event("B", "X", "1", 100000, false, "2024-01-02T10:00:00Z"),
		event("C", "X", "1", 100000, false, "2024-01-03T10:00:00Z"),
	}
	events[0].Platform = "iOS 16.6.1 (iPhone14,5)"
	events[1].Platform = "iOS 17.0 (iPhone15,2)"
	events[2].Platform = "Windows 10 (10.0.19045; x64)"

	stats := PlatformStats(events)
	if len(stats) != 2 {
		t.Fatalf("got %d platforms, want 2", len(stats))
	}
	if stats[0].Platform != "iPhone" || stats[0].PlayCount != 2 {
		t.Errorf("unexpected top platform: %+v", stats[0])
	}
	if stats[1].Platform != "Windows" || stats[1].TotalMs != 100000 {
		t.Errorf("unexpected second platform: %+v", stats[1])
	}
}
