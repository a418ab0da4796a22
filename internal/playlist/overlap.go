package playlist

import (
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// SharedTrack is one track present in both sides of an overlap query.
type SharedTrack struct {
	Identity model.TrackIdentity
	Track    string
	Artist   string
}

// ArtistCount ranks an artist by the number of tracks crediting them.
type ArtistCount struct {
	Artist string
	Tracks int
}

// Comparison is the structured diff of two playlists.
type Comparison struct {
	SharedTracks   []SharedTrack
	SharedArtists  []string
	UniqueToFirst  []model.PlaylistTrack
	UniqueToSecond []model.PlaylistTrack
}

// Overlap returns the tracks shared between two playlists. It is symmetric,
// and Overlap(p, p) returns every track identity in p.
func (x *Index) Overlap(first, second string) ([]SharedTrack, error) {
	if _, err := x.Get(first); err != nil {
		return nil, err
	}
	if _, err := x.Get(second); err != nil {
		return nil, err
	}

	var shared []SharedTrack
	seen := make(map[model.TrackIdentity]bool)
	for _, track := range x.uniques[first] {
		if !x.contains(second, track) {
			continue
		}
		id := x.sharedIdentity(second, track)
		if seen[id] {
			continue
		}
		seen[id] = true
		shared = append(shared, SharedTrack{Identity: id, Track: track.Track, Artist: track.Artist})
	}

	sort.Slice(shared, func(i, j int) bool {
		return shared[i].Identity.Compare(shared[j].Identity) < 0
	})
	return shared, nil
}

// TopArtists ranks artists within one playlist by track count, ties broken
// alphabetically. n <= 0 returns all.
func (x *Index) TopArtists(id string, n int) ([]ArtistCount, error) {
	if _, err := x.Get(id); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, track := range x.uniques[id] {
		key := normalizeArtist(track.Artist)
		counts[key]++
		if _, ok := display[key]; !ok {
			display[key] = track.Artist
		}
	}

	artists := make([]ArtistCount, 0, len(counts))
	for key, count := range counts {
		artists = append(artists, ArtistCount{Artist: display[key], Tracks: count})
	}
	sort.Slice(artists, func(i, j int) bool {
		if artists[i].Tracks != artists[j].Tracks {
			return artists[i].Tracks > artists[j].Tracks
		}
		return artists[i].Artist < artists[j].Artist
	})
	if n > 0 && len(artists) > n {
		artists = artists[:n]
	}
	return artists, nil
}

// SharedArtists maps each artist appearing in at least two of the given
// playlists to the sorted IDs of those playlists. With no IDs given, all
// playlists are considered.
func (x *Index) SharedArtists(ids ...string) (map[string][]string, error) {
	if len(ids) == 0 {
		for _, p := range x.playlists {
			ids = append(ids, p.ID)
		}
	}

	membership := make(map[string]map[string]bool)
	display := make(map[string]string)
	for _, id := range ids {
		if _, err := x.Get(id); err != nil {
			return nil, err
		}
		for _, track := range x.uniques[id] {
			key := normalizeArtist(track.Artist)
			if membership[key] == nil {
				membership[key] = make(map[string]bool)
				display[key] = track.Artist
			}
			membership[key][id] = true
		}
	}

	shared := make(map[string][]string)
	for key, playlists := range membership {
		if len(playlists) < 2 {
			continue
		}
		var list []string
		for id := range playlists {
			list = append(list, id)
		}
		sort.Strings(list)
		shared[display[key]] = list
	}
	return shared, nil
}

// Compare produces the structured diff of two playlists.
func (x *Index) Compare(first, second string) (Comparison, error) {
	shared, err := x.Overlap(first, second)
	if err != nil {
		return Comparison{}, err
	}

	var c Comparison
	c.SharedTracks = shared

	sharedArtists, err := x.SharedArtists(first, second)
	if err != nil {
		return Comparison{}, err
	}
	for artist := range sharedArtists {
		c.SharedArtists = append(c.SharedArtists, artist)
	}
	sort.Strings(c.SharedArtists)

	for _, track := range x.uniques[first] {
		if !x.contains(second, track) {
			c.UniqueToFirst = append(c.UniqueToFirst, track)
		}
	}
	for _, track := range x.uniques[second] {
		if !x.contains(first, track) {
			c.UniqueToSecond = append(c.UniqueToSecond, track)
		}
	}
	return c, nil
}

// TrackSpread records a track that appears in more than one playlist.
type TrackSpread struct {
	Track     string
	Artist    string
	Playlists []string
}

// Duplicates returns the tracks present in two or more playlists, ordered by
// how many playlists hold them.
func (x *Index) Duplicates() []TrackSpread {
	type entry struct {
		track     model.PlaylistTrack
		playlists map[string]bool
	}
	byName := make(map[model.TrackIdentity]*entry)

	for _, p := range x.playlists {
		for _, track := range x.uniques[p.ID] {
			// Key duplicates by the name identity so URI-bearing and
			// URI-less copies of the same song collapse together.
			key := model.NameIdentity(track.Track, track.Artist)
			e := byName[key]
			if e == nil {
				e = &entry{track: track, playlists: make(map[string]bool)}
				byName[key] = e
			}
			e.playlists[p.ID] = true
		}
	}

	var spreads []TrackSpread
	for _, e := range byName {
		if len(e.playlists) < 2 {
			continue
		}
		var ids []string
		for id := range e.playlists {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		spreads = append(spreads, TrackSpread{Track: e.track.Track, Artist: e.track.Artist, Playlists: ids})
	}
	sort.Slice(spreads, func(i, j int) bool {
		if len(spreads[i].Playlists) != len(spreads[j].Playlists) {
			return len(spreads[i].Playlists) > len(spreads[j].Playlists)
		}
		if spreads[i].Track != spreads[j].Track {
			return spreads[i].Track < spreads[j].Track
		}
		return spreads[i].Artist < spreads[j].Artist
	})
	return spreads
}
