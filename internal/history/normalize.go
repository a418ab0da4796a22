package history

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// rawRecord covers both known export schema variants: the extended schema
// ("ts" / "master_metadata_*") and the legacy schema ("endTime" /
// "trackName"). Unrecognized fields are ignored by encoding/json.
type rawRecord struct {
	// Extended schema.
	TS             string `json:"ts"`
	Track          string `json:"master_metadata_track_name"`
	Artist         string `json:"master_metadata_album_artist_name"`
	Album          string `json:"master_metadata_album_album_name"`
	MsPlayed       *int64 `json:"ms_played"`
	Skipped        *bool  `json:"skipped"`
	Platform       string `json:"platform"`
	TrackURI       string `json:"spotify_track_uri"`
	EpisodeName    string `json:"episode_name"`
	AudiobookTitle string `json:"audiobook_title"`

	// Legacy schema.
	EndTime      string `json:"endTime"`
	LegacyTrack  string `json:"trackName"`
	LegacyArtist string `json:"artistName"`
	LegacyMs     *int64 `json:"msPlayed"`
}

// Timestamp layouts accepted per schema variant. The extended export carries
// a zone offset; the legacy export is minute precision in UTC.
var extendedLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

const legacyLayout = "2006-01-02 15:04"

// normalizeRecords turns raw records into PlayEvents, preserving arrival
// order. Records with an unparsable timestamp are dropped and counted;
// podcast and audiobook plays are filtered out of the music snapshot.
func normalizeRecords(records []rawRecord, log *zap.Logger) (events []model.PlayEvent, malformed, nonMusic int) {
	for _, r := range records {
		if r.EpisodeName != "" || r.AudiobookTitle != "" {
			nonMusic++
			continue
		}

		ts, ok := parseTimestamp(r)
		if !ok {
			malformed++
			log.Warn("dropping record with unparsable timestamp",
				zap.String("ts", r.TS), zap.String("endTime", r.EndTime))
			continue
		}

		e := model.PlayEvent{
			Timestamp: ts,
			Track:     orUnknown(firstNonEmpty(r.Track, r.LegacyTrack)),
			Artist:    orUnknown(firstNonEmpty(r.Artist, r.LegacyArtist)),
			Album:     orUnknown(r.Album),
			Platform:  orUnknown(r.Platform),
			TrackURI:  strings.TrimSpace(r.TrackURI),
		}
		if ms := coalesceMs(r.MsPlayed, r.LegacyMs); ms > 0 {
			e.MsPlayed = ms
		}
		if r.Skipped != nil {
			e.Skipped = *r.Skipped
		}
		events = append(events, e)
	}
	return events, malformed, nonMusic
}

func parseTimestamp(r rawRecord) (time.Time, bool) {
	if r.TS != "" {
		for _, layout := range extendedLayouts {
			if ts, err := time.Parse(layout, r.TS); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	}
	if r.EndTime != "" {
		if ts, err := time.Parse(legacyLayout, r.EndTime); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func coalesceMs(values ...*int64) int64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.Unknown
	}
	return s
}
