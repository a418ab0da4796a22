package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// groupingKey extracts the grouping tuple for an event under a key. The
// tuple doubles as the deterministic tie-breaker.
func groupingKey(e model.PlayEvent, key model.AggregationKey) string {
	switch key {
	case model.KeyArtist:
		return e.Artist
	case model.KeyAlbum:
		return e.Album + "\x00" + e.Artist
	default:
		return e.Track + "\x00" + e.Artist + "\x00" + e.Album
	}
}

// Aggregate groups events by the given key and ranks the groups by the
// given metric, descending. Ties break on the other metric descending, then
// on the grouping tuple ascending, so output order is total and stable.
// An empty event set yields an empty result.
func Aggregate(events []model.PlayEvent, key model.AggregationKey, metric model.Metric) []Group {
	groups := make(map[string]*Group)
	for _, e := range events {
		k := groupingKey(e, key)
		g := groups[k]
		if g == nil {
			g = &Group{Artist: e.Artist}
			switch key {
			case model.KeyTrack:
				g.Track = e.Track
				g.Album = e.Album
			case model.KeyAlbum:
				g.Album = e.Album
			case model.KeyArtist:
				// Artist only.
			}
			groups[k] = g
		}
		g.PlayCount++
		g.TotalMs += e.MsPlayed
		if e.Skipped {
			g.Skips++
		}
		if g.FirstPlayed.IsZero() || e.Timestamp.Before(g.FirstPlayed) {
			g.FirstPlayed = e.Timestamp
		}
		if e.Timestamp.After(g.LastPlayed) {
			g.LastPlayed = e.Timestamp
		}
		if key == model.KeyTrack && g.TrackURI == "" {
			g.TrackURI = e.TrackURI
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := groups[keys[i]], groups[keys[j]]
		primary, secondary := metricValues(a, metric)
		bPrimary, bSecondary := metricValues(b, metric)
		if primary != bPrimary {
			return primary > bPrimary
		}
		if secondary != bSecondary {
			return secondary > bSecondary
		}
		return strings.Compare(keys[i], keys[j]) < 0
	})

	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		out = append(out, *groups[k])
	}
	return out
}

func metricValues(g *Group, metric model.Metric) (primary, secondary int64) {
	if metric == model.MetricTime {
		return g.TotalMs, g.PlayCount
	}
	return g.PlayCount, g.TotalMs
}

// MostSkipped ranks track groups with at least minPlays plays by skip rate
// descending, ties broken by play count descending.
func MostSkipped(events []model.PlayEvent, minPlays int64) []Group {
	groups := Aggregate(events, model.KeyTrack, model.MetricPlays)
	var out []Group
	for _, g := range groups {
		if g.PlayCount >= minPlays {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SkipRate() != out[j].SkipRate() {
			return out[i].SkipRate() > out[j].SkipRate()
		}
		return out[i].PlayCount > out[j].PlayCount
	})
	return out
}

// Between filters events to [start, end). Zero bounds are open.
func Between(events []model.PlayEvent, start, end time.Time) []model.PlayEvent {
	if start.IsZero() && end.IsZero() {
		return events
	}
	var out []model.PlayEvent
	for _, e := range events {
		if !start.IsZero() && e.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && !e.Timestamp.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}
