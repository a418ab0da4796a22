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
	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/model"
	"github.com/ademuri/spotify-history-tools/internal/playlist"
)

var notOnPlaylistNumber int
var notOnPlaylistMetric string
var notOnPlaylistCmd = &cobra.Command{
	Use:   "not-on-playlist",
	Short: "Gets your most played tracks that aren't saved to any playlist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printNotOnPlaylist(notOnPlaylistNumber, notOnPlaylistMetric)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(notOnPlaylistCmd)

	notOnPlaylistCmd.Flags().IntVarP(&notOnPlaylistNumber, "number", "n", 20, "number of results to return")
	notOnPlaylistCmd.Flags().StringVar(&notOnPlaylistMetric, "by", "plays", "ranking metric: plays or time")
}

func printNotOnPlaylist(numToReturn int, metricString string) error {
	metric, err := model.ParseMetric(metricString)
	if err != nil {
		return err
	}

	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	analyzer := NotOnPlaylistAnalyzer{Metric: metric, Config: AnalyserConfig{NumToReturn: numToReturn}}
	cacheKey := fmt.Sprintf("not-on-playlist-%s-n%d", metric, numToReturn)
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		return analyzer.GetResults(snap, index)
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type NotOnPlaylistAnalyzer struct {
	Metric model.Metric
	Config AnalyserConfig
}

func (a *NotOnPlaylistAnalyzer) Configure(params map[string]string) error {
	if v, ok := params["by"]; ok {
		metric, err := model.ParseMetric(v)
		if err != nil {
			return err
		}
		a.Metric = metric
	}
	if v, ok := params["n"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid n: %q", v)
		}
		a.Config.NumToReturn = n
	}
	return nil
}

func (a NotOnPlaylistAnalyzer) GetName() string {
	return "Not on any playlist"
}

func (a NotOnPlaylistAnalyzer) GetResults(snap *history.Snapshot, index *playlist.Index) (Analysis, error) {
	metric := a.Metric
	if metric == "" {
		metric = model.MetricPlays
	}
	groups := analysis.NotOnPlaylist(snap.Events, index, metric)
	stats := analysis.PlaylistCoverage(snap.Events, index)

	var out Analysis
	out.results = [][]string{{"#", "Track", "Plays", "Minutes"}}
	for i, g := range groups {
		if a.Config.NumToReturn > 0 && i >= a.Config.NumToReturn {
			break
		}
		out.results = append(out.results, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s - %s", g.Track, g.Artist),
			strconv.FormatInt(g.PlayCount, 10),
			fmt.Sprintf("%.1f", g.Minutes()),
		})
	}

	out.summary = fmt.Sprintf("%d of %d played tracks (%.1f%%) aren't on any playlist, covering %d plays",
		stats.NotOnPlaylist, stats.TotalTracks, stats.NotOnPercent, stats.NotOnPlays)
	return out, nil
}
