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

var overlapFull bool
var overlapCmd = &cobra.Command{
	Use:   "overlap <first> <second>",
	Short: "Gets the tracks two playlists have in common",
	Long: `Tracks match by Spotify URI when both playlists carry one, and by
track and artist name otherwise. With --full, also lists the tracks unique
to each side.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printOverlap(args[0], args[1], overlapFull)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(overlapCmd)

	overlapCmd.Flags().BoolVar(&overlapFull, "full", false, "also list tracks unique to each playlist")
}

func printOverlap(first, second string, full bool) error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("overlap-%s-%s-full%t", first, second, full)
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		comparison, err := index.Compare(first, second)
		if err != nil {
			return Analysis{}, err
		}

		var analysis Analysis
		analysis.results = [][]string{{"#", "Shared track", "Artist"}}
		for i, t := range comparison.SharedTracks {
			analysis.results = append(analysis.results, []string{
				strconv.Itoa(i + 1), t.Track, t.Artist,
			})
		}

		analysis.summary = fmt.Sprintf("%q and %q share %d tracks and %d artists; %d unique to %q, %d unique to %q",
			first, second, len(comparison.SharedTracks), len(comparison.SharedArtists),
			len(comparison.UniqueToFirst), first, len(comparison.UniqueToSecond), second)

		if full {
			body := analysis.summary + "\n"
			for _, t := range comparison.UniqueToFirst {
				body += fmt.Sprintf("only in %q: %s - %s\n", first, t.Track, t.Artist)
			}
			for _, t := range comparison.UniqueToSecond {
				body += fmt.Sprintf("only in %q: %s - %s\n", second, t.Track, t.Artist)
			}
			analysis.summary = body
		}
		return analysis, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
