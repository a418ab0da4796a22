package analysis

import (
	"strings"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Search aggregates the events whose track, artist, or album name contains
// the query, case-insensitively, grouped by track and ranked by play count.
func Search(events []model.PlayEvent, query string) []Group {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var matched []model.PlayEvent
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Track), q) ||
			strings.Contains(strings.ToLower(e.Artist), q) ||
			strings.Contains(strings.ToLower(e.Album), q) {
			matched = append(matched, e)
		}
	}
	return Aggregate(matched, model.KeyTrack, model.MetricPlays)
}

// ArtistEvents filters events to one artist, matched case-insensitively.
func ArtistEvents(events []model.PlayEvent, artist string) []model.PlayEvent {
	want := strings.ToLower(strings.TrimSpace(artist))
	var out []model.PlayEvent
	for _, e := range events {
		if strings.ToLower(strings.TrimSpace(e.Artist)) == want {
			out = append(out, e)
		}
	}
	return out
}
