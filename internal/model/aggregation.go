package model

import "fmt"

// AggregationKey selects the grouping dimension for aggregate queries.
type AggregationKey string

const (
	KeyTrack  AggregationKey = "tracks"
	KeyArtist AggregationKey = "artists"
	KeyAlbum  AggregationKey = "albums"
)

// Metric selects the ranking measure for aggregate queries.
type Metric string

const (
	MetricPlays Metric = "plays"
	MetricTime  Metric = "time"
)

func ParseAggregationKey(s string) (AggregationKey, error) {
	switch AggregationKey(s) {
	case KeyTrack, KeyArtist, KeyAlbum:
		return AggregationKey(s), nil
	}
	return "", fmt.Errorf("invalid aggregation key %q (want tracks, artists, or albums)", s)
}

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricPlays, MetricTime:
		return Metric(s), nil
	}
	return "", fmt.Errorf("invalid metric %q (want plays or time)", s)
}

// GenreMap maps an artist identifier to its ordered genre list. A missing
// entry means "not yet fetched"; an empty list means "fetched, no genres
// assigned".
type GenreMap map[string][]string
