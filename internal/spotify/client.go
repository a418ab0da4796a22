// Package spotify wraps the Spotify Web API for genre enrichment. It uses
// the client credentials flow, so it only reaches public catalog data and
// needs no user login.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// batchSize is the Web API's maximum for the batched track and artist
// endpoints.
const batchSize = 50

// ErrNotConfigured is returned when the client credentials are missing.
// Callers degrade to cached data instead of failing.
var ErrNotConfigured = errors.New("spotify client ID and secret are not configured")

// Client fetches catalog metadata, rate limited to stay inside the API's
// request budget.
type Client struct {
	api     *spotify.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// New creates a Client using the client credentials flow. Returns
// ErrNotConfigured when either credential is empty.
func New(ctx context.Context, clientID, clientSecret string, log *zap.Logger) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrNotConfigured
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting spotify token: %w", err)
	}
	httpClient := spotifyauth.New().Client(ctx, token)

	return &Client{
		api:     spotify.New(httpClient, spotify.WithRetry(true)),
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		log:     log,
	}, nil
}

// TrackIDFromURI extracts the bare ID from a spotify:track: URI.
func TrackIDFromURI(uri string) (spotify.ID, bool) {
	const prefix = "spotify:track:"
	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(uri, prefix)
	if id == "" {
		return "", false
	}
	return spotify.ID(id), true
}

// chunk splits ids into batches of at most batchSize.
func chunk(ids []spotify.ID) [][]spotify.ID {
	var out [][]spotify.ID
	for len(ids) > 0 {
		n := batchSize
		if len(ids) < n {
			n = len(ids)
		}
		out = append(out, ids[:n])
		ids = ids[n:]
	}
	return out
}

// retryIfServerError retries transient 5xx responses; client errors like 400
// and 404 fail immediately.
func retryIfServerError(err error) bool {
	var serr spotify.Error
	if errors.As(err, &serr) {
		return serr.Status >= 500
	}
	return false
}

// ResolveArtists maps track IDs to their primary artist's Spotify ID. Tracks
// the API does not know are silently omitted.
func (c *Client) ResolveArtists(ctx context.Context, trackIDs []spotify.ID) (map[string]spotify.ID, error) {
	artists := make(map[string]spotify.ID)
	for _, batch := range chunk(trackIDs) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var tracks []*spotify.FullTrack
		err := retry.Do(
			func() error {
				var err error
				tracks, err = c.api.GetTracks(ctx, batch)
				return err
			},
			retry.RetryIf(retryIfServerError),
		)
		if err != nil {
			return nil, fmt.Errorf("fetching tracks: %w", err)
		}

		for _, track := range tracks {
			if track == nil || len(track.Artists) == 0 {
				continue
			}
			primary := track.Artists[0]
			artists[primary.Name] = primary.ID
		}
		c.log.Debug("resolved track batch", zap.Int("tracks", len(batch)), zap.Int("artists", len(artists)))
	}
	return artists, nil
}

// ArtistGenres fetches the genre lists for the given artists, keyed by the
// artist name used in the input map. Artists the API returns no genres for
// get an empty list, so the lookup still counts as completed.
func (c *Client) ArtistGenres(ctx context.Context, artists map[string]spotify.ID) (map[string][]string, error) {
	names := make(map[spotify.ID]string, len(artists))
	ids := make([]spotify.ID, 0, len(artists))
	for name, id := range artists {
		names[id] = name
		ids = append(ids, id)
	}

	genres := make(map[string][]string)
	for _, batch := range chunk(ids) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var fetched []*spotify.FullArtist
		err := retry.Do(
			func() error {
				var err error
				fetched, err = c.api.GetArtists(ctx, batch...)
				return err
			},
			retry.RetryIf(retryIfServerError),
		)
		if err != nil {
			return nil, fmt.Errorf("fetching artists: %w", err)
		}

		for _, artist := range fetched {
			if artist == nil {
				continue
			}
			name, ok := names[artist.ID]
			if !ok {
				continue
			}
			list := artist.Genres
			if list == nil {
				list = []string{}
			}
			genres[name] = list
		}
		c.log.Debug("fetched artist batch", zap.Int("artists", len(batch)))
	}
	return genres, nil
}
