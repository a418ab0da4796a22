package analysis

import (
	"math"
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// GenreStat is one genre weighted by how much of the listening it covers.
type GenreStat struct {
	Genre string
	// Weight is the genre's share of all genre-attributed plays, rounded to
	// two decimals. Weights sum to roughly 1.
	Weight    float64
	PlayCount int64
	Artists   int
}

// TopGenres weights each genre by the play counts of the artists carrying
// it. Artists without an entry in the genre map contribute nothing; callers
// report them as pending enrichment instead.
func TopGenres(events []model.PlayEvent, genres model.GenreMap, n int) []GenreStat {
	type accum struct {
		plays   int64
		artists map[string]bool
	}
	byGenre := make(map[string]*accum)
	var totalPlays int64

	for _, g := range Aggregate(events, model.KeyArtist, model.MetricPlays) {
		list, ok := genres[g.Artist]
		if !ok {
			continue
		}
		for _, genre := range list {
			a := byGenre[genre]
			if a == nil {
				a = &accum{artists: make(map[string]bool)}
				byGenre[genre] = a
			}
			a.plays += g.PlayCount
			a.artists[g.Artist] = true
			totalPlays += g.PlayCount
		}
	}

	out := make([]GenreStat, 0, len(byGenre))
	for genre, a := range byGenre {
		stat := GenreStat{Genre: genre, PlayCount: a.plays, Artists: len(a.artists)}
		if totalPlays > 0 {
			stat.Weight = math.Round(float64(a.plays)/float64(totalPlays)*100) / 100
		}
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayCount != out[j].PlayCount {
			return out[i].PlayCount > out[j].PlayCount
		}
		return out[i].Genre < out[j].Genre
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
