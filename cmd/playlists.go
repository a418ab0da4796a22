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
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/playlist"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Lists your playlists with size and artist counts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printPlaylists()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playlistsCmd)
}

func printPlaylists() error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	out, err := withResultCache("playlists", snap, func() (Analysis, error) {
		return PlaylistsAnalyzer{}.GetResults(snap, index)
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type PlaylistsAnalyzer struct{}

func (p PlaylistsAnalyzer) GetName() string {
	return "Playlists"
}

func (p PlaylistsAnalyzer) GetResults(snap *history.Snapshot, index *playlist.Index) (Analysis, error) {
	stats := index.Stats()

	var out Analysis
	out.results = [][]string{{"Playlist", "Tracks", "Artists", "Collaborators"}}
	for _, s := range stats {
		out.results = append(out.results, []string{
			s.Name,
			strconv.Itoa(s.Tracks),
			strconv.Itoa(s.UniqueArtists),
			strconv.Itoa(s.Collaborators),
		})
	}

	summary := index.Summary()
	out.summary = fmt.Sprintf("%d playlists holding %d tracks (%d unique) by %d artists",
		summary.Playlists, summary.Tracks, summary.UniqueTracks, summary.UniqueArtists)
	return out, nil
}
