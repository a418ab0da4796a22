package analysis

import (
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// DefaultOneHitMinMs is the minimum listening time for a single play to
// count as a one-hit wonder: two minutes.
const DefaultOneHitMinMs int64 = 2 * 60 * 1000

// Membership answers playlist membership for a set of identity forms.
// *playlist.Index satisfies it.
type Membership interface {
	ContainsAny(ids ...model.TrackIdentity) bool
}

// OneHitWonders returns tracks played exactly once, for at least minMs, and
// never saved to any playlist. Ordered most recently played first.
func OneHitWonders(events []model.PlayEvent, playlists Membership, minMs int64) []Group {
	var out []Group
	for _, g := range Aggregate(events, model.KeyTrack, model.MetricPlays) {
		if g.PlayCount != 1 || g.TotalMs < minMs {
			continue
		}
		if playlists.ContainsAny(g.Identities()...) {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastPlayed.After(out[j].LastPlayed)
	})
	return out
}

// OneHitStats summarizes how much of the substantively played library is
// one-hit wonders.
type OneHitStats struct {
	TotalTracks   int
	OneHitCount   int
	OneHitPercent float64
}

// OneHitWonderStats computes OneHitStats over tracks with at least minMs of
// total listening time.
func OneHitWonderStats(events []model.PlayEvent, playlists Membership, minMs int64) OneHitStats {
	var stats OneHitStats
	for _, g := range Aggregate(events, model.KeyTrack, model.MetricPlays) {
		if g.TotalMs < minMs {
			continue
		}
		stats.TotalTracks++
		if g.PlayCount == 1 && !playlists.ContainsAny(g.Identities()...) {
			stats.OneHitCount++
		}
	}
	if stats.TotalTracks > 0 {
		stats.OneHitPercent = float64(stats.OneHitCount) / float64(stats.TotalTracks) * 100
	}
	return stats
}

// NotOnPlaylist ranks tracks by the given metric and keeps only those absent
// from every playlist. It is a filter over Aggregate output, so ordering
// follows the same deterministic rules.
func NotOnPlaylist(events []model.PlayEvent, playlists Membership, metric model.Metric) []Group {
	var out []Group
	for _, g := range Aggregate(events, model.KeyTrack, metric) {
		if !playlists.ContainsAny(g.Identities()...) {
			out = append(out, g)
		}
	}
	return out
}

// NotOnPlaylistStats summarizes playlist coverage of the played library.
type NotOnPlaylistStats struct {
	TotalTracks   int
	OnPlaylist    int
	NotOnPlaylist int
	NotOnPercent  float64
	NotOnPlays    int64
	NotOnTotalMs  int64
}

// PlaylistCoverage computes NotOnPlaylistStats for the event set.
func PlaylistCoverage(events []model.PlayEvent, playlists Membership) NotOnPlaylistStats {
	var stats NotOnPlaylistStats
	for _, g := range Aggregate(events, model.KeyTrack, model.MetricPlays) {
		stats.TotalTracks++
		if playlists.ContainsAny(g.Identities()...) {
			stats.OnPlaylist++
		} else {
			stats.NotOnPlaylist++
			stats.NotOnPlays += g.PlayCount
			stats.NotOnTotalMs += g.TotalMs
		}
	}
	if stats.TotalTracks > 0 {
		stats.NotOnPercent = float64(stats.NotOnPlaylist) / float64(stats.TotalTracks) * 100
	}
	return stats
}
