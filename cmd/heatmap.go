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

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

var heatmapArtist string
var heatmapCmd = &cobra.Command{
	Use:   "heatmap [from] [to (optional)]",
	Short: "Shows listening time by day of week and hour",
	Long: `Buckets follow each play's own timezone offset, so the matrix
reflects your local clock wherever you were listening.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printHeatmap(heatmapArtist, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)

	heatmapCmd.Flags().StringVar(&heatmapArtist, "artist", "", "only count plays by this artist")
}

func printHeatmap(artist string, dateArgs []string) error {
	start, end, err := parseOptionalDateRange(dateArgs)
	if err != nil {
		return err
	}

	snap, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("heatmap-%s-%d-%d", artist, start.Unix(), end.Unix())
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		events := analysis.Between(snap.Events, start, end)
		if artist != "" {
			events = analysis.ArtistEvents(events, artist)
		}
		heatmap := analysis.BuildHeatmap(events)

		header := []string{"Day"}
		for hour := 0; hour < 24; hour++ {
			header = append(header, fmt.Sprintf("%02d", hour))
		}

		var result Analysis
		result.results = [][]string{header}
		for day, cells := range heatmap {
			row := []string{analysis.DayNames[day]}
			for _, ms := range cells {
				if ms == 0 {
					row = append(row, "")
				} else {
					row = append(row, fmt.Sprintf("%.0f", float64(ms)/60000))
				}
			}
			result.results = append(result.results, row)
		}

		result.summary = fmt.Sprintf("%.0f total minutes across %d plays (cells are minutes)",
			float64(heatmap.TotalMs())/60000, len(events))
		return result, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
