package history

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func TestNormalizeExtendedRecord(t *testing.T) {
	records := []rawRecord{{
		TS:       "2023-06-15T20:30:00Z",
		Track:    "Come Together",
		Artist:   "The Beatles",
		Album:    "Abbey Road",
		MsPlayed: int64p(259000),
		Skipped:  boolp(false),
		Platform: "ios",
		TrackURI: "spotify:track:2EqlS6tkEnglzr7tkKAAYD",
	}}

	events, malformed, nonMusic := normalizeRecords(records, zap.NewNop())
	if malformed != 0 || nonMusic != 0 {
		t.Fatalf("malformed=%d nonMusic=%d, want 0/0", malformed, nonMusic)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Track != "Come Together" || e.Artist != "The Beatles" || e.Album != "Abbey Road" {
		t.Errorf("unexpected names: %+v", e)
	}
	if e.MsPlayed != 259000 {
		t.Errorf("MsPlayed = %d", e.MsPlayed)
	}
	want := time.Date(2023, 6, 15, 20, 30, 0, 0, time.UTC)
	if !e.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, want)
	}
}

func TestNormalizeLegacyRecord(t *testing.T) {
	records := []rawRecord{{
		EndTime:      "2020-01-05 14:02",
		LegacyTrack:  "Karma Police",
		LegacyArtist: "Radiohead",
		LegacyMs:     int64p(230000),
	}}

	events, _, _ := normalizeRecords(records, zap.NewNop())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Track != "Karma Police" || e.Artist != "Radiohead" {
		t.Errorf("unexpected names: %+v", e)
	}
	// Legacy export has no album, platform, or skip flag.
	if e.Album != model.Unknown || e.Platform != model.Unknown {
		t.Errorf("missing fields should default to Unknown: %+v", e)
	}
	if e.Skipped {
		t.Error("Skipped should default to false")
	}
	if e.MsPlayed != 230000 {
		t.Errorf("MsPlayed = %d", e.MsPlayed)
	}
}

func TestNormalizeDropsUnparsableTimestamps(t *testing.T) {
	records := []rawRecord{
		{TS: "not-a-timestamp", Track: "A", Artist: "X"},
		{TS: "2023-06-15T20:30:00Z", Track: "B", Artist: "Y"},
		{}, // no timestamp at all
	}

	events, malformed, _ := normalizeRecords(records, zap.NewNop())
	if malformed != 2 {
		t.Errorf("malformed = %d, want 2", malformed)
	}
	if len(events) != 1 || events[0].Track != "B" {
		t.Errorf("events = %+v", events)
	}
}

func TestNormalizeFiltersPodcastsAndAudiobooks(t *testing.T) {
	records := []rawRecord{
		{TS: "2023-06-15T20:30:00Z", EpisodeName: "Episode 12"},
		{TS: "2023-06-15T21:30:00Z", AudiobookTitle: "Dune"},
		{TS: "2023-06-15T22:30:00Z", Track: "A", Artist: "X"},
	}

	events, _, nonMusic := normalizeRecords(records, zap.NewNop())
	if nonMusic != 2 {
		t.Errorf("nonMusic = %d, want 2", nonMusic)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}

func TestNormalizeDefaultsAndClamps(t *testing.T) {
	records := []rawRecord{
		{TS: "2023-06-15T20:30:00Z"},
		{TS: "2023-06-15T20:31:00Z", Track: "A", Artist: "X", MsPlayed: int64p(-500)},
	}

	events, _, _ := normalizeRecords(records, zap.NewNop())
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Track != model.Unknown || events[0].Artist != model.Unknown {
		t.Errorf("missing names should be Unknown: %+v", events[0])
	}
	if events[0].MsPlayed != 0 {
		t.Errorf("absent ms_played should be 0, got %d", events[0].MsPlayed)
	}
	if events[1].MsPlayed != 0 {
		t.Errorf("negative ms_played should clamp to 0, got %d", events[1].MsPlayed)
	}
}

func TestNormalizeKeepsZoneOffset(t *testing.T) {
	records := []rawRecord{{TS: "2023-06-15T23:30:00+02:00", Track: "A", Artist: "X"}}
	events, _, _ := normalizeRecords(records, zap.NewNop())
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Timestamp.Hour() != 23 {
		t.Errorf("hour in embedded zone = %d, want 23", events[0].Timestamp.Hour())
	}
}

func TestNormalizePreservesArrivalOrder(t *testing.T) {
	records := []rawRecord{
		{TS: "2023-06-15T22:00:00Z", Track: "later", Artist: "X"},
		{TS: "2023-06-15T20:00:00Z", Track: "earlier", Artist: "X"},
	}
	events, _, _ := normalizeRecords(records, zap.NewNop())
	if events[0].Track != "later" || events[1].Track != "earlier" {
		t.Errorf("output should preserve arrival order, got %+v", events)
	}
}
