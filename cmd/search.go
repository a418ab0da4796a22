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
	"strings"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

var searchNumber int
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Finds plays matching a track, artist, or album name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printSearch(strings.Join(args, " "), searchNumber)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchNumber, "number", "n", 20, "number of results to return")
}

func printSearch(query string, numToReturn int) error {
	snap, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	groups := analysis.Search(snap.Events, query)

	var out Analysis
	out.results = [][]string{{"#", "Track", "Plays", "First", "Last"}}
	for i, g := range groups {
		if numToReturn > 0 && i >= numToReturn {
			break
		}
		out.results = append(out.results, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s - %s", g.Track, g.Artist),
			strconv.FormatInt(g.PlayCount, 10),
			g.FirstPlayed.Format("2006-01-02"),
			g.LastPlayed.Format("2006-01-02"),
		})
	}
	out.summary = fmt.Sprintf("Found %d tracks matching %q", len(groups), query)

	fmt.Println(out)
	return nil
}
