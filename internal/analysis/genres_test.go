package analysis

import (
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

func TestTopGenres(t *testing.T) {
	events := []model.PlayEvent{
		event("A", "Radiohead", "1", 100000, false, "2024-01-01T10:00:00Z"),
		event("B", "Radiohead", "1", 100000, false, "2024-01-02T10:00:00Z"),
		event("C", "Radiohead", "1", 100000, false, "2024-01-03T10:00:00Z"),
		event("D", "The Clash", "1", 100000, false, "2024-01-04T10:00:00Z"),
		event("E", "Unenriched", "1", 100000, false, "2024-01-05T10:00:00Z"),
	}
	genres := model.GenreMap{
		"Radiohead": {"art rock", "alternative rock"},
		"The Clash": {"punk", "alternative rock"},
	}

	got := TopGenres(events, genres, 0)
	if len(got) != 3 {
		t.Fatalf("got %d genres, want 3", len(got))
	}
	top := got[0]
	if top.Genre != "alternative rock" || top.PlayCount != 4 || top.Artists != 2 {
		t.Errorf("unexpected top genre: %+v", top)
	}
	// 4 of 8 attributed plays.
	if top.Weight != 0.5 {
		t.Errorf("weight = %v, want 0.5", top.Weight)
	}
}

func TestTopGenresLimit(t *testing.T) {
	events := []model.PlayEvent{
		event("A", "Radiohead", "1", 100000, false, "2024-01-01T10:00:00Z"),
	}
	genres := model.GenreMap{"Radiohead": {"art rock", "alternative rock", "rock"}}

	if got := TopGenres(events, genres, 2); len(got) != 2 {
		t.Errorf("limit should cap output, got %d", len(got))
	}
}

func TestTopGenresNoCoverage(t *testing.T) {
	events := []model.PlayEvent{
		event("A", "Somebody", "1", 100000, false, "2024-01-01T10:00:00Z"),
	}
	if got := TopGenres(events, model.GenreMap{}, 0); len(got) != 0 {
		t.Errorf("no enriched artists should give no genres, got %v", got)
	}
}
