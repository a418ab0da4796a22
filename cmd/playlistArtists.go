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
)

var playlistArtistsNumber int
var playlistArtistsCmd = &cobra.Command{
	Use:   "playlist-artists <playlist>",
	Short: "Gets the artists with the most tracks on a playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printPlaylistArtists(args[0], playlistArtistsNumber)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playlistArtistsCmd)

	playlistArtistsCmd.Flags().IntVarP(&playlistArtistsNumber, "number", "n", 10, "number of results to return")
}

func printPlaylistArtists(name string, numToReturn int) error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("playlist-artists-%s-n%d", name, numToReturn)
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		artists, err := index.TopArtists(name, numToReturn)
		if err != nil {
			return Analysis{}, err
		}

		var analysis Analysis
		analysis.results = [][]string{{"#", "Artist", "Tracks"}}
		for i, a := range artists {
			analysis.results = append(analysis.results, []string{
				strconv.Itoa(i + 1),
				a.Artist,
				strconv.Itoa(a.Tracks),
			})
		}
		analysis.summary = fmt.Sprintf("Top artists on %q", name)
		return analysis, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
