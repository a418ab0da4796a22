package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

const extendedHistory = `[
	{"ts": "2023-06-15T20:30:00Z", "master_metadata_track_name": "Come Together",
	 "master_metadata_album_artist_name": "The Beatles",
	 "master_metadata_album_album_name": "Abbey Road",
	 "ms_played": 259000, "skipped": false, "platform": "ios",
	 "spotify_track_uri": "spotify:track:2EqlS6tkEnglzr7tkKAAYD"}
]`

const legacyHistory = `[
	{"endTime": "2020-01-05 14:02", "artistName": "Radiohead",
	 "trackName": "Karma Police", "msPlayed": 230000}
]`

const playlists = `{"playlists": [
	{"name": "Favorites", "items": [
		{"track": {"trackName": "Come Together", "artistName": "The Beatles",
		           "albumName": "Abbey Road", "trackUri": "spotify:track:2EqlS6tkEnglzr7tkKAAYD"}},
		{"track": null}
	]},
	{"name": "Favorites", "items": []}
]}`

func TestLoadCombinesSchemaVariants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_2023_1.json", extendedHistory)
	writeFile(t, dir, "StreamingHistory0.json", legacyHistory)
	writeFile(t, dir, "Playlist1.json", playlists)

	snap, err := Load(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Events) != 2 {
		t.Errorf("got %d events, want 2", len(snap.Events))
	}
	if len(snap.Playlists) != 2 {
		t.Errorf("got %d playlists, want 2", len(snap.Playlists))
	}
	if snap.Stats.HistoryFiles != 2 || snap.Stats.PlaylistFiles != 1 {
		t.Errorf("stats = %+v", snap.Stats)
	}
	if snap.Version == "" {
		t.Error("snapshot version should be set")
	}
}

func TestLoadAssignsDistinctIDsToDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Playlist1.json", playlists)

	snap, err := Load(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Playlists[0].ID != "Favorites" {
		t.Errorf("first ID = %q", snap.Playlists[0].ID)
	}
	if snap.Playlists[1].ID != "Favorites #2" {
		t.Errorf("second ID = %q", snap.Playlists[1].ID)
	}
	// Null track entries are dropped.
	if len(snap.Playlists[0].Tracks) != 1 {
		t.Errorf("got %d tracks, want 1", len(snap.Playlists[0].Tracks))
	}
}

func TestLoadSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_2023_1.json", extendedHistory)
	writeFile(t, dir, "Streaming_History_Audio_2023_2.json", `{"not": "an array"}`)

	snap, err := Load(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("a bad file must not fail the whole load: %v", err)
	}
	if snap.Stats.SkippedFiles != 1 {
		t.Errorf("SkippedFiles = %d, want 1", snap.Stats.SkippedFiles)
	}
	if len(snap.Events) != 1 {
		t.Errorf("got %d events, want 1", len(snap.Events))
	}
}

func TestLoadFailsOnlyWithNoInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, zap.NewNop())
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}

	// A playlist file alone is loadable input.
	writeFile(t, dir, "Playlist1.json", playlists)
	if _, err := Load(dir, zap.NewNop()); err != nil {
		t.Errorf("Load with playlists only: %v", err)
	}
}

func TestLoadVersionTracksInputChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_2023_1.json", extendedHistory)

	first, err := Load(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	writeFile(t, dir, "Streaming_History_Audio_2023_2.json", legacyHistoryAsExtended())
	second, err := Load(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first.Version == second.Version {
		t.Error("version should change when input files change")
	}
}

func legacyHistoryAsExtended() string {
	return `[{"ts": "2020-01-05T14:02:00Z", "master_metadata_track_name": "Karma Police",
	  "master_metadata_album_artist_name": "Radiohead", "ms_played": 230000}]`
}
