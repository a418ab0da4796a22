package model

import "strings"

// IdentityKind tags which matching rule a TrackIdentity carries.
type IdentityKind uint8

const (
	// IdentityURI matches on the stable spotify:track: URI.
	IdentityURI IdentityKind = iota
	// IdentityNameArtist matches on the normalized (track, artist) pair.
	IdentityNameArtist
)

// TrackIdentity decides whether two track references denote the same track.
// Two references match on URI when both carry one, and on the normalized
// (track, artist) pair otherwise. Equality and ordering are defined here
// once; membership and overlap code must not re-derive the rule.
type TrackIdentity struct {
	Kind   IdentityKind
	URI    string
	Name   string
	Artist string
}

// URIIdentity builds an identity from a stable track URI.
func URIIdentity(uri string) TrackIdentity {
	return TrackIdentity{Kind: IdentityURI, URI: strings.TrimSpace(uri)}
}

// NameIdentity builds the fallback identity: case-insensitive,
// whitespace-trimmed track and artist names.
func NameIdentity(name, artist string) TrackIdentity {
	return TrackIdentity{
		Kind:   IdentityNameArtist,
		Name:   normalizeName(name),
		Artist: normalizeName(artist),
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Compare defines a total order over identities: URI identities sort before
// name identities, then fields compare lexicographically.
func (a TrackIdentity) Compare(b TrackIdentity) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if a.Kind == IdentityURI {
		return strings.Compare(a.URI, b.URI)
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Artist, b.Artist)
}

func (a TrackIdentity) String() string {
	if a.Kind == IdentityURI {
		return a.URI
	}
	return a.Name + " / " + a.Artist
}
