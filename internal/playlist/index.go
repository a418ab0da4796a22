// Package playlist cross-references track and artist membership across the
// playlists in a snapshot.
package playlist

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// ErrNotFound is returned when a query references a playlist ID that is not
// in the snapshot. It is recoverable; callers surface it, nothing crashes.
var ErrNotFound = errors.New("playlist not found")

// Index is the bidirectional membership index, built once per snapshot.
// Every track is indexed under all of its identity forms, so URI matches are
// preferred and name matches still work when one side lacks a URI.
type Index struct {
	playlists []model.Playlist
	byID      map[string]int

	// identity -> set of playlist IDs containing it
	trackPlaylists map[model.TrackIdentity]map[string]bool

	// playlist ID -> identity -> representative entry
	entries map[string]map[model.TrackIdentity]model.PlaylistTrack

	// playlist ID -> entries deduplicated by preferred identity, in order
	uniques map[string][]model.PlaylistTrack
}

// NewIndex builds the membership index for a snapshot's playlists.
func NewIndex(playlists []model.Playlist) *Index {
	x := &Index{
		playlists:      playlists,
		byID:           make(map[string]int, len(playlists)),
		trackPlaylists: make(map[model.TrackIdentity]map[string]bool),
		entries:        make(map[string]map[model.TrackIdentity]model.PlaylistTrack, len(playlists)),
		uniques:        make(map[string][]model.PlaylistTrack, len(playlists)),
	}

	for i, p := range playlists {
		x.byID[p.ID] = i
		byIdentity := make(map[model.TrackIdentity]model.PlaylistTrack)
		seen := make(map[model.TrackIdentity]bool)

		for _, track := range p.Tracks {
			for _, id := range track.Identities() {
				if _, ok := byIdentity[id]; !ok {
					byIdentity[id] = track
				}
				members := x.trackPlaylists[id]
				if members == nil {
					members = make(map[string]bool)
					x.trackPlaylists[id] = members
				}
				members[p.ID] = true
			}
			if preferred := track.Identity(); !seen[preferred] {
				seen[preferred] = true
				x.uniques[p.ID] = append(x.uniques[p.ID], track)
			}
		}
		x.entries[p.ID] = byIdentity
	}
	return x
}

// Playlists returns the indexed playlists in snapshot order.
func (x *Index) Playlists() []model.Playlist {
	return x.playlists
}

// Get looks up a playlist by ID.
func (x *Index) Get(id string) (model.Playlist, error) {
	i, ok := x.byID[id]
	if !ok {
		return model.Playlist{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return x.playlists[i], nil
}

// ContainsAny reports whether any playlist contains a track matching one of
// the given identity forms.
func (x *Index) ContainsAny(ids ...model.TrackIdentity) bool {
	for _, id := range ids {
		if len(x.trackPlaylists[id]) > 0 {
			return true
		}
	}
	return false
}

// PlaylistsContaining returns the sorted IDs of playlists containing a track
// matching any of the given identity forms.
func (x *Index) PlaylistsContaining(ids ...model.TrackIdentity) []string {
	set := make(map[string]bool)
	for _, id := range ids {
		for playlistID := range x.trackPlaylists[id] {
			set[playlistID] = true
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// contains reports whether one specific playlist holds a match for the track.
func (x *Index) contains(playlistID string, track model.PlaylistTrack) bool {
	byIdentity := x.entries[playlistID]
	for _, id := range track.Identities() {
		if _, ok := byIdentity[id]; ok {
			return true
		}
	}
	return false
}

// sharedIdentity picks the canonical identity for a track shared between two
// playlists: the URI when the other side indexed it too, else the name pair.
func (x *Index) sharedIdentity(otherID string, track model.PlaylistTrack) model.TrackIdentity {
	if track.URI != "" {
		uri := model.URIIdentity(track.URI)
		if _, ok := x.entries[otherID][uri]; ok {
			return uri
		}
	}
	return model.NameIdentity(track.Track, track.Artist)
}

func normalizeArtist(artist string) string {
	return strings.ToLower(strings.TrimSpace(artist))
}
