package analysis

import (
	"fmt"
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Period selects the bucket width for listening-over-time queries.
type Period string

const (
	PeriodYear  Period = "year"
	PeriodMonth Period = "month"
	PeriodDay   Period = "day"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodYear, PeriodMonth, PeriodDay:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q (want year, month, or day)", s)
}

func (p Period) layout() string {
	switch p {
	case PeriodYear:
		return "2006"
	case PeriodDay:
		return "2006-01-02"
	default:
		return "2006-01"
	}
}

// ActivityBucket summarizes listening within one time period.
type ActivityBucket struct {
	Period        string
	PlayCount     int64
	TotalMs       int64
	UniqueTracks  int
	UniqueArtists int
}

// Activity buckets events by period, oldest first.
func Activity(events []model.PlayEvent, period Period) []ActivityBucket {
	type accum struct {
		bucket  ActivityBucket
		tracks  map[model.TrackIdentity]bool
		artists map[string]bool
	}
	layout := period.layout()
	buckets := make(map[string]*accum)

	for _, e := range events {
		key := e.Timestamp.Format(layout)
		a := buckets[key]
		if a == nil {
			a = &accum{
				bucket:  ActivityBucket{Period: key},
				tracks:  make(map[model.TrackIdentity]bool),
				artists: make(map[string]bool),
			}
			buckets[key] = a
		}
		a.bucket.PlayCount++
		a.bucket.TotalMs += e.MsPlayed
		a.tracks[model.NameIdentity(e.Track, e.Artist)] = true
		a.artists[e.Artist] = true
	}

	out := make([]ActivityBucket, 0, len(buckets))
	for _, a := range buckets {
		a.bucket.UniqueTracks = len(a.tracks)
		a.bucket.UniqueArtists = len(a.artists)
		out = append(out, a.bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
