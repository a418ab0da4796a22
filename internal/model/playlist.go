package model

// PlaylistTrack is one entry in a playlist.
type PlaylistTrack struct {
	Track  string
	Artist string
	Album  string
	URI    string
}

// Identity returns the preferred identity for this entry.
func (t PlaylistTrack) Identity() TrackIdentity {
	if t.URI != "" {
		return URIIdentity(t.URI)
	}
	return NameIdentity(t.Track, t.Artist)
}

// Identities returns every identity form this entry can match under.
func (t PlaylistTrack) Identities() []TrackIdentity {
	if t.URI != "" {
		return []TrackIdentity{URIIdentity(t.URI), NameIdentity(t.Track, t.Artist)}
	}
	return []TrackIdentity{NameIdentity(t.Track, t.Artist)}
}

// Playlist is an ordered track list from the playlist export. Names are not
// unique across an export, so callers address playlists by the ID assigned
// at load time.
type Playlist struct {
	ID            string
	Name          string
	Tracks        []PlaylistTrack
	Collaborators []string
	LastModified  string
}
