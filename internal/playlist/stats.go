package playlist

import (
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Stats summarizes one playlist.
type Stats struct {
	ID            string
	Name          string
	Tracks        int
	UniqueArtists int
	Collaborators int
	LastModified  string
}

// Summary aggregates over the whole playlist collection.
type Summary struct {
	Playlists     int
	Tracks        int
	UniqueTracks  int
	UniqueArtists int
	AverageSize   float64
	Largest       string
	LargestSize   int
}

// Stats returns per-playlist statistics, largest first.
func (x *Index) Stats() []Stats {
	stats := make([]Stats, 0, len(x.playlists))
	for _, p := range x.playlists {
		artists := make(map[string]bool)
		for _, track := range p.Tracks {
			artists[normalizeArtist(track.Artist)] = true
		}
		stats = append(stats, Stats{
			ID:            p.ID,
			Name:          p.Name,
			Tracks:        len(p.Tracks),
			UniqueArtists: len(artists),
			Collaborators: len(p.Collaborators),
			LastModified:  p.LastModified,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Tracks != stats[j].Tracks {
			return stats[i].Tracks > stats[j].Tracks
		}
		return stats[i].ID < stats[j].ID
	})
	return stats
}

// Summary returns collection-wide statistics.
func (x *Index) Summary() Summary {
	var s Summary
	s.Playlists = len(x.playlists)

	tracks := make(map[model.TrackIdentity]bool)
	artists := make(map[string]bool)
	for _, p := range x.playlists {
		s.Tracks += len(p.Tracks)
		if len(p.Tracks) > s.LargestSize {
			s.LargestSize = len(p.Tracks)
			s.Largest = p.ID
		}
		for _, track := range p.Tracks {
			tracks[model.NameIdentity(track.Track, track.Artist)] = true
			artists[normalizeArtist(track.Artist)] = true
		}
	}
	s.UniqueTracks = len(tracks)
	s.UniqueArtists = len(artists)
	if s.Playlists > 0 {
		s.AverageSize = float64(s.Tracks) / float64(s.Playlists)
	}
	return s
}
