// Package history loads streaming-history exports into an immutable
// in-memory snapshot that all analytical queries run against.
package history

import (
	"time"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Snapshot holds one import of streaming history and playlists. It is never
// mutated after load; reloading the export produces a new Snapshot with a
// new Version.
type Snapshot struct {
	Events    []model.PlayEvent
	Playlists []model.Playlist

	// Version fingerprints the loaded input files. Cached results keyed by
	// it stay valid until the export changes.
	Version string

	Stats LoadStats
}

// LoadStats counts what the loader accepted and rejected.
type LoadStats struct {
	HistoryFiles     int
	PlaylistFiles    int
	SkippedFiles     int
	MalformedRecords int
	NonMusicRecords  int
}

// Span returns the timestamps of the oldest and newest events. Zero times
// for an empty snapshot.
func (s *Snapshot) Span() (first, last time.Time) {
	for _, e := range s.Events {
		if first.IsZero() || e.Timestamp.Before(first) {
			first = e.Timestamp
		}
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	return first, last
}

// Playlist looks up a playlist by its load-time ID.
func (s *Snapshot) Playlist(id string) (model.Playlist, bool) {
	for _, p := range s.Playlists {
		if p.ID == id {
			return p, true
		}
	}
	return model.Playlist{}, false
}
