package playlist

import (
	"errors"
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

func testPlaylists() []model.Playlist {
	return []model.Playlist{
		{
			ID:   "Road Trip",
			Name: "Road Trip",
			Tracks: []model.PlaylistTrack{
				{Track: "Come Together", Artist: "The Beatles", URI: "spotify:track:abc"},
				{Track: "Karma Police", Artist: "Radiohead", URI: "spotify:track:def"},
				{Track: "No Surprises", Artist: "Radiohead", URI: "spotify:track:ghi"},
			},
		},
		{
			ID:   "Chill",
			Name: "Chill",
			Tracks: []model.PlaylistTrack{
				{Track: "Come Together", Artist: "The Beatles", URI: "spotify:track:abc"},
				// Same song as Road Trip's "Karma Police" but exported without a URI.
				{Track: "karma police ", Artist: "RADIOHEAD"},
				{Track: "Holocene", Artist: "Bon Iver", URI: "spotify:track:jkl"},
			},
		},
		{
			ID:     "Empty",
			Name:   "Empty",
			Tracks: nil,
		},
	}
}

func TestContainsAnyPrefersURIButFallsBackToName(t *testing.T) {
	x := NewIndex(testPlaylists())

	byURI := model.URIIdentity("spotify:track:abc")
	if !x.ContainsAny(byURI) {
		t.Error("URI membership lookup failed")
	}
	byName := model.NameIdentity("Karma Police", "Radiohead")
	if !x.ContainsAny(byName) {
		t.Error("name membership lookup failed")
	}
	if x.ContainsAny(model.URIIdentity("spotify:track:nope")) {
		t.Error("unexpected membership for unknown URI")
	}
	// An event with an unknown URI still matches on its name form.
	event := model.PlayEvent{Track: "Holocene", Artist: "bon iver", TrackURI: "spotify:track:other"}
	if !x.ContainsAny(event.Identities()...) {
		t.Error("expected fallback to name identity")
	}
}

func TestOverlapSymmetryAndIdentityRule(t *testing.T) {
	x := NewIndex(testPlaylists())

	ab, err := x.Overlap("Road Trip", "Chill")
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}
	ba, err := x.Overlap("Chill", "Road Trip")
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}

	if len(ab) != 2 {
		t.Fatalf("got %d shared tracks, want 2: %+v", len(ab), ab)
	}
	if len(ab) != len(ba) {
		t.Fatalf("overlap must be symmetric: %d vs %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].Identity != ba[i].Identity {
			t.Errorf("overlap identity mismatch at %d: %v vs %v", i, ab[i].Identity, ba[i].Identity)
		}
	}

	// "Come Together" carries a URI on both sides; "Karma Police" matches by
	// name only.
	kinds := map[model.IdentityKind]int{}
	for _, s := range ab {
		kinds[s.Identity.Kind]++
	}
	if kinds[model.IdentityURI] != 1 || kinds[model.IdentityNameArtist] != 1 {
		t.Errorf("identity kinds = %v, want one URI and one name match", kinds)
	}
}

func TestOverlapWithSelfReturnsAllTracks(t *testing.T) {
	x := NewIndex(testPlaylists())
	shared, err := x.Overlap("Road Trip", "Road Trip")
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}
	if len(shared) != 3 {
		t.Errorf("got %d, want all 3 tracks", len(shared))
	}
}

func TestOverlapSharedURIScenario(t *testing.T) {
	x := NewIndex([]model.Playlist{
		{ID: "p1", Name: "p1", Tracks: []model.PlaylistTrack{{Track: "A", Artist: "X", URI: "spotify:track:abc"}}},
		{ID: "p2", Name: "p2", Tracks: []model.PlaylistTrack{{Track: "A", Artist: "X", URI: "spotify:track:abc"}}},
	})
	shared, err := x.Overlap("p1", "p2")
	if err != nil {
		t.Fatalf("Overlap: %v", err)
	}
	if len(shared) != 1 {
		t.Fatalf("got %d shared, want 1", len(shared))
	}
	if shared[0].Identity != model.URIIdentity("spotify:track:abc") {
		t.Errorf("identity = %v", shared[0].Identity)
	}
}

func TestUnknownPlaylistIsRecoverable(t *testing.T) {
	x := NewIndex(testPlaylists())
	if _, err := x.Overlap("Road Trip", "Nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := x.TopArtists("Nope", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := x.SharedArtists("Road Trip", "Nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTopArtistsTieBrokenAlphabetically(t *testing.T) {
	x := NewIndex(testPlaylists())
	artists, err := x.TopArtists("Road Trip", 0)
	if err != nil {
		t.Fatalf("TopArtists: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("got %d artists: %+v", len(artists), artists)
	}
	if artists[0].Artist != "Radiohead" || artists[0].Tracks != 2 {
		t.Errorf("top = %+v", artists[0])
	}

	tie := NewIndex([]model.Playlist{{ID: "p", Name: "p", Tracks: []model.PlaylistTrack{
		{Track: "1", Artist: "Zeta"},
		{Track: "2", Artist: "Alpha"},
	}}})
	artists, _ = tie.TopArtists("p", 0)
	if artists[0].Artist != "Alpha" {
		t.Errorf("alphabetical tie-break failed: %+v", artists)
	}
}

func TestSharedArtistsRequiresTwoPlaylists(t *testing.T) {
	x := NewIndex(testPlaylists())
	shared, err := x.SharedArtists()
	if err != nil {
		t.Fatalf("SharedArtists: %v", err)
	}

	// Radiohead and The Beatles appear in both non-empty playlists; Bon Iver
	// only in one.
	if _, ok := shared["Radiohead"]; !ok {
		t.Errorf("Radiohead missing from %v", shared)
	}
	if _, ok := shared["The Beatles"]; !ok {
		t.Errorf("The Beatles missing from %v", shared)
	}
	if _, ok := shared["Bon Iver"]; ok {
		t.Error("Bon Iver should not be shared")
	}
	if got := shared["Radiohead"]; len(got) != 2 || got[0] != "Chill" || got[1] != "Road Trip" {
		t.Errorf("Radiohead playlists = %v", got)
	}
}

func TestCompare(t *testing.T) {
	x := NewIndex(testPlaylists())
	c, err := x.Compare("Road Trip", "Chill")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(c.SharedTracks) != 2 {
		t.Errorf("SharedTracks = %+v", c.SharedTracks)
	}
	if len(c.UniqueToFirst) != 1 || c.UniqueToFirst[0].Track != "No Surprises" {
		t.Errorf("UniqueToFirst = %+v", c.UniqueToFirst)
	}
	if len(c.UniqueToSecond) != 1 || c.UniqueToSecond[0].Track != "Holocene" {
		t.Errorf("UniqueToSecond = %+v", c.UniqueToSecond)
	}
	if len(c.SharedArtists) != 2 {
		t.Errorf("SharedArtists = %v", c.SharedArtists)
	}
}

func TestDuplicatesCollapseURIAndNameCopies(t *testing.T) {
	x := NewIndex(testPlaylists())
	dupes := x.Duplicates()
	if len(dupes) != 2 {
		t.Fatalf("duplicates = %+v", dupes)
	}
	for _, d := range dupes {
		if len(d.Playlists) != 2 {
			t.Errorf("%s should be in 2 playlists, got %v", d.Track, d.Playlists)
		}
	}
}

func TestStatsAndSummary(t *testing.T) {
	x := NewIndex(testPlaylists())

	stats := x.Stats()
	if len(stats) != 3 {
		t.Fatalf("stats = %+v", stats)
	}
	// Largest first; two three-track playlists tie, broken by ID.
	if stats[0].ID != "Chill" || stats[0].Tracks != 3 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[2].ID != "Empty" || stats[2].Tracks != 0 {
		t.Errorf("stats[2] = %+v", stats[2])
	}

	summary := x.Summary()
	if summary.Playlists != 3 || summary.Tracks != 6 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.UniqueTracks != 4 {
		t.Errorf("UniqueTracks = %d, want 4", summary.UniqueTracks)
	}
	if summary.UniqueArtists != 3 {
		t.Errorf("UniqueArtists = %d, want 3", summary.UniqueArtists)
	}
}
