package analysis

import (
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// membershipSet is a Membership backed by a plain identity set.
type membershipSet map[model.TrackIdentity]bool

func (m membershipSet) ContainsAny(ids ...model.TrackIdentity) bool {
	for _, id := range ids {
		if m[id] {
			return true
		}
	}
	return false
}

func TestOneHitWonders(t *testing.T) {
	events := []model.PlayEvent{
		event("Track A", "Artist X", "Album", 150000, false, "2024-01-01T10:00:00Z"),
	}

	got := OneHitWonders(events, membershipSet{}, DefaultOneHitMinMs)
	if len(got) != 1 || got[0].Track != "Track A" {
		t.Fatalf("single substantive play off-playlist should qualify, got %v", got)
	}
}

func TestOneHitWondersFilters(t *testing.T) {
	events := []model.PlayEvent{
		// Played twice: not a one-hit.
		event("Repeat", "X", "1", 200000, false, "2024-01-01T10:00:00Z"),
		event("Repeat", "X", "1", 200000, false, "2024-01-02T10:00:00Z"),
		// Under the threshold.
		event("Brief", "X", "1", 30000, false, "2024-01-03T10:00:00Z"),
		// On a playlist.
		event("Saved", "X", "1", 200000, false, "2024-01-04T10:00:00Z"),
		// Qualifies.
		event("Wonder", "X", "1", 200000, false, "2024-01-05T10:00:00Z"),
	}
	playlists := membershipSet{model.NameIdentity("Saved", "X"): true}

	got := OneHitWonders(events, playlists, DefaultOneHitMinMs)
	if len(got) != 1 || got[0].Track != "Wonder" {
		t.Errorf("got %v, want just Wonder", got)
	}
}

func TestOneHitWondersOrderedByRecency(t *testing.T) {
	events := []model.PlayEvent{
		event("Old", "X", "1", 200000, false, "2023-01-01T10:00:00Z"),
		event("New", "X", "1", 200000, false, "2024-06-01T10:00:00Z"),
		event("Mid", "X", "1", 200000, false, "2024-01-01T10:00:00Z"),
	}

	got := OneHitWonders(events, membershipSet{}, DefaultOneHitMinMs)
	want := []string{"New", "Mid", "Old"}
	for i, name := range want {
		if got[i].Track != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Track, name)
		}
	}
}

func TestOneHitWondersMatchesByURI(t *testing.T) {
	e := event("Wonder", "X", "1", 200000, false, "2024-01-01T10:00:00Z")
	e.TrackURI = "spotify:track:abc123"
	playlists := membershipSet{model.URIIdentity("spotify:track:abc123"): true}

	if got := OneHitWonders([]model.PlayEvent{e}, playlists, DefaultOneHitMinMs); len(got) != 0 {
		t.Errorf("URI membership should exclude the track, got %v", got)
	}
}

func TestOneHitWonderStats(t *testing.T) {
	events := []model.PlayEvent{
		event("Wonder", "X", "1", 200000, false, "2024-01-01T10:00:00Z"),
		event("Repeat", "X", "1", 200000, false, "2024-01-02T10:00:00Z"),
		event("Repeat", "X", "1", 200000, false, "2024-01-03T10:00:00Z"),
		event("Brief", "X", "1", 1000, false, "2024-01-04T10:00:00Z"),
	}

	stats := OneHitWonderStats(events, membershipSet{}, DefaultOneHitMinMs)
	if stats.TotalTracks != 2 {
		t.Errorf("Brief should fall under the time floor, got %d total tracks", stats.TotalTracks)
	}
	if stats.OneHitCount != 1 || stats.OneHitPercent != 50 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestNotOnPlaylist(t *testing.T) {
	events := []model.PlayEvent{
		event("Saved", "X", "1", 100000, false, "2024-01-01T10:00:00Z"),
		event("Saved", "X", "1", 100000, false, "2024-01-02T10:00:00Z"),
		event("Loose", "X", "1", 100000, false, "2024-01-03T10:00:00Z"),
	}
	playlists := membershipSet{model.NameIdentity("Saved", "X"): true}

	got := NotOnPlaylist(events, playlists, model.MetricPlays)
	if len(got) != 1 || got[0].Track != "Loose" {
		t.Errorf("got %v, want just Loose", got)
	}
}

func TestPlaylistCoverage(t *testing.T) {
	events := []model.PlayEvent{
		event("Saved", "X", "1", 100000, false, "2024-01-01T10:00:00Z"),
		event("Loose", "X", "1", 150000, false, "2024-01-02T10:00:00Z"),
		event("Loose", "X", "1", 50000, false, "2024-01-03T10:00:00Z"),
		event("Stray", "X", "1", 100000, false, "2024-01-04T10:00:00Z"),
	}
	playlists := membershipSet{model.NameIdentity("Saved", "X"): true}

	stats := PlaylistCoverage(events, playlists)
	if stats.TotalTracks != 3 || stats.OnPlaylist != 1 || stats.NotOnPlaylist != 2 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.NotOnPlays != 3 || stats.NotOnTotalMs != 300000 {
		t.Errorf("unexpected off-playlist totals: %+v", stats)
	}
}
