/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	zmb3 "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/genre"
	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/model"
	"github.com/ademuri/spotify-history-tools/internal/spotify"
)

var genresNumber int
var genresFetch bool
var genresArtist string
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "Shows your top genres, weighted by play count",
	Long: `Genres come from the Spotify Web API and are cached on disk. Without
--fetch (or without API credentials), only previously cached artists
contribute. With --artist, shows the genre list for that one artist.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printGenres(genresNumber, genresFetch, genresArtist)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)

	genresCmd.Flags().IntVarP(&genresNumber, "number", "n", 15, "number of results to return")
	genresCmd.Flags().BoolVar(&genresFetch, "fetch", false, "fetch genres for artists missing from the cache")
	genresCmd.Flags().StringVar(&genresArtist, "artist", "", "look up the genres for a single artist")
}

func printGenres(numToReturn int, fetch bool, artist string) error {
	snap, _, err := loadSnapshot()
	if err != nil {
		return err
	}
	log := newLogger()
	cache := genre.Open(viper.GetString("genre_cache"), log)

	artists := make([]string, 0)
	if artist != "" {
		artists = append(artists, artist)
	} else {
		for _, g := range analysis.Aggregate(snap.Events, model.KeyArtist, model.MetricPlays) {
			if g.Artist != model.Unknown {
				artists = append(artists, g.Artist)
			}
		}
	}

	cached, pending := cache.Lookup(artists)
	if fetch && len(pending) > 0 {
		fetched, err := fetchGenres(snap, pending)
		if errors.Is(err, spotify.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, "Warning: spotify_client_id and spotify_client_secret not set, using cached genres only")
		} else if err != nil {
			return err
		} else {
			if merr := cache.Merge(fetched); merr != nil {
				log.Warn("persisting genre cache", zap.Error(merr))
			}
			for artist, genres := range fetched {
				cached[artist] = genres
			}
			remaining := pending[:0]
			for _, artist := range pending {
				if _, ok := fetched[artist]; !ok {
					remaining = append(remaining, artist)
				}
			}
			pending = remaining
		}
	}

	if artist != "" {
		genres, ok := cached[artist]
		if !ok {
			return fmt.Errorf("no genre data for %q (run with --fetch to look it up)", artist)
		}
		if len(genres) == 0 {
			fmt.Printf("Spotify lists no genres for %s\n", artist)
			return nil
		}
		fmt.Printf("%s: %s\n", artist, strings.Join(genres, ", "))
		return nil
	}

	stats := analysis.TopGenres(snap.Events, cached, numToReturn)

	var out Analysis
	out.results = [][]string{{"#", "Genre", "Weight", "Plays", "Artists"}}
	for i, s := range stats {
		out.results = append(out.results, []string{
			strconv.Itoa(i + 1),
			s.Genre,
			fmt.Sprintf("%.2f", s.Weight),
			strconv.FormatInt(s.PlayCount, 10),
			strconv.Itoa(s.Artists),
		})
	}
	out.summary = fmt.Sprintf("%d of %d artists have genre data (%d pending; run with --fetch to enrich)",
		len(cached), len(artists), len(pending))

	fmt.Println(out)
	return nil
}

// fetchGenres resolves artists via the tracks that credit them, since the
// export carries track URIs but no artist IDs.
func fetchGenres(snap *history.Snapshot, pending []string) (model.GenreMap, error) {
	ctx := context.Background()
	client, err := spotify.New(ctx,
		viper.GetString("spotify_client_id"), viper.GetString("spotify_client_secret"), newLogger())
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(pending))
	for _, artist := range pending {
		wanted[artist] = true
	}

	// One representative track URI per pending artist is enough to find the
	// artist's ID.
	seen := make(map[string]bool)
	var trackIDs []zmb3.ID
	for _, e := range snap.Events {
		if !wanted[e.Artist] || seen[e.Artist] {
			continue
		}
		if id, ok := spotify.TrackIDFromURI(e.TrackURI); ok {
			trackIDs = append(trackIDs, id)
			seen[e.Artist] = true
		}
	}

	fmt.Printf("Fetching genres for %d artists via %d tracks\n", len(pending), len(trackIDs))
	resolved, err := client.ResolveArtists(ctx, trackIDs)
	if err != nil {
		return nil, err
	}
	for name := range resolved {
		if !wanted[name] {
			delete(resolved, name)
		}
	}

	genres, err := client.ArtistGenres(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return model.GenreMap(genres), nil
}
