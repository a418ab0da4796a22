package model

import "time"

// Unknown is the sentinel for fields missing from the export. Grouping keys
// are always non-empty.
const Unknown = "Unknown"

// PlayEvent is one listening event from the streaming history export.
// Events are immutable once constructed.
type PlayEvent struct {
	Timestamp time.Time
	Track     string
	Artist    string
	Album     string
	MsPlayed  int64
	Skipped   bool
	Platform  string
	TrackURI  string
}

// Identity returns the preferred identity for this event: the track URI when
// the export recorded one, else the normalized name pair.
func (e PlayEvent) Identity() TrackIdentity {
	if e.TrackURI != "" {
		return URIIdentity(e.TrackURI)
	}
	return NameIdentity(e.Track, e.Artist)
}

// Identities returns every identity form this event can match under, most
// specific first.
func (e PlayEvent) Identities() []TrackIdentity {
	if e.TrackURI != "" {
		return []TrackIdentity{URIIdentity(e.TrackURI), NameIdentity(e.Track, e.Artist)}
	}
	return []TrackIdentity{NameIdentity(e.Track, e.Artist)}
}
