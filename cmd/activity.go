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

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

var activityPeriod string
var activityCmd = &cobra.Command{
	Use:   "activity [from] [to (optional)]",
	Short: "Shows listening volume over time",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printActivity(activityPeriod, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)

	activityCmd.Flags().StringVar(&activityPeriod, "period", "month", "bucket size: year, month, or day")
}

func printActivity(periodString string, dateArgs []string) error {
	period, err := analysis.ParsePeriod(periodString)
	if err != nil {
		return err
	}
	start, end, err := parseOptionalDateRange(dateArgs)
	if err != nil {
		return err
	}

	snap, _, err := loadSnapshot()
	if err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("activity-%s-%d-%d", period, start.Unix(), end.Unix())
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		events := analysis.Between(snap.Events, start, end)
		buckets := analysis.Activity(events, period)

		var result Analysis
		result.results = [][]string{{"Period", "Plays", "Hours", "Tracks", "Artists"}}
		for _, b := range buckets {
			result.results = append(result.results, []string{
				b.Period,
				strconv.FormatInt(b.PlayCount, 10),
				fmt.Sprintf("%.1f", float64(b.TotalMs)/3600000),
				strconv.Itoa(b.UniqueTracks),
				strconv.Itoa(b.UniqueArtists),
			})
		}
		result.summary = fmt.Sprintf("Found %d plays across %d periods", len(events), len(buckets))
		return result, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
