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
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var sharedArtistsCmd = &cobra.Command{
	Use:   "shared-artists [playlist...]",
	Short: "Gets the artists appearing on two or more playlists",
	Long:  `With no arguments, considers every playlist in the export.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printSharedArtists(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sharedArtistsCmd)
}

func printSharedArtists(names []string) error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("shared-artists-%s", strings.Join(names, ","))
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		shared, err := index.SharedArtists(names...)
		if err != nil {
			return Analysis{}, err
		}

		artists := make([]string, 0, len(shared))
		for artist := range shared {
			artists = append(artists, artist)
		}
		sort.Slice(artists, func(i, j int) bool {
			if len(shared[artists[i]]) != len(shared[artists[j]]) {
				return len(shared[artists[i]]) > len(shared[artists[j]])
			}
			return artists[i] < artists[j]
		})

		var analysis Analysis
		analysis.results = [][]string{{"Artist", "Playlists", "On"}}
		for _, artist := range artists {
			analysis.results = append(analysis.results, []string{
				artist,
				strconv.Itoa(len(shared[artist])),
				strings.Join(shared[artist], ", "),
			})
		}
		analysis.summary = fmt.Sprintf("Found %d artists on more than one playlist", len(shared))
		return analysis, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
