package analysis

import (
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Group is one aggregated entity with its accumulated metrics. Which entity
// fields are populated depends on the aggregation key: tracks fill all
// three, albums fill Album and Artist, artists fill Artist only.
type Group struct {
	Track  string
	Artist string
	Album  string

	// TrackURI is a representative URI for track groups, used for playlist
	// membership tests. Empty when no event in the group carried one.
	TrackURI string

	PlayCount   int64
	TotalMs     int64
	Skips       int64
	FirstPlayed time.Time
	LastPlayed  time.Time
}

// SkipRate is the fraction of plays in the group flagged as skipped.
func (g Group) SkipRate() float64 {
	if g.PlayCount == 0 {
		return 0
	}
	return float64(g.Skips) / float64(g.PlayCount)
}

// Minutes converts the accumulated listening time for display.
func (g Group) Minutes() float64 {
	return float64(g.TotalMs) / 60000
}

// Label renders the entity for the given key, e.g. "Come Together - The
// Beatles" for a track group.
func (g Group) Label(key model.AggregationKey) string {
	switch key {
	case model.KeyArtist:
		return g.Artist
	case model.KeyAlbum:
		return fmt.Sprintf("%s - %s", g.Album, g.Artist)
	default:
		return fmt.Sprintf("%s - %s", g.Track, g.Artist)
	}
}

// Identities returns the identity forms a track group can match under.
func (g Group) Identities() []model.TrackIdentity {
	if g.TrackURI != "" {
		return []model.TrackIdentity{model.URIIdentity(g.TrackURI), model.NameIdentity(g.Track, g.Artist)}
	}
	return []model.TrackIdentity{model.NameIdentity(g.Track, g.Artist)}
}
