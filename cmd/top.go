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

var topNumber int
var topMetric string
var topCmd = &cobra.Command{
	Use:   "top <tracks|artists|albums> [from] [to (optional)]",
	Short: "Gets your most played tracks, artists, or albums",
	Long: `Ranks by play count, or by listening time with --by=time.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTop(args[0], topMetric, topNumber, args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVarP(&topNumber, "number", "n", 10, "number of results to return")
	topCmd.Flags().StringVar(&topMetric, "by", "plays", "ranking metric: plays or time")
}

func printTop(keyString, metricString string, numToReturn int, dateArgs []string) error {
	key, err := model.ParseAggregationKey(keyString)
	if err != nil {
		return err
	}
	metric, err := model.ParseMetric(metricString)
	if err != nil {
		return err
	}
	start, end, err := parseOptionalDateRange(dateArgs)
	if err != nil {
		return err
	}

	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	analyzer := TopAnalyzer{Key: key, Metric: metric,
		Config: AnalyserConfig{NumToReturn: numToReturn, Start: start, End: end}}
	cacheKey := fmt.Sprintf("top-%s-%s-n%d-%d-%d", key, metric, numToReturn, start.Unix(), end.Unix())
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		return analyzer.GetResults(snap, index)
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopAnalyzer struct {
	Key    model.AggregationKey
	Metric model.Metric
	Config AnalyserConfig
}

func (t *TopAnalyzer) Configure(params map[string]string) error {
	if v, ok := params["n"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid n: %q", v)
		}
		t.Config.NumToReturn = n
	}
	if v, ok := params["by"]; ok {
		metric, err := model.ParseMetric(v)
		if err != nil {
			return err
		}
		t.Metric = metric
	}
	return nil
}

func (t TopAnalyzer) GetName() string {
	return fmt.Sprintf("Top %s", t.Key)
}

func (t TopAnalyzer) GetResults(snap *history.Snapshot, index *playlist.Index) (Analysis, error) {
	events := snap.Events
	var groups []analysis.Group
	if t.Config.Start.IsZero() && t.Config.End.IsZero() {
		groups = aggCache.Aggregate(snap, t.Key, t.Metric)
	} else {
		events = analysis.Between(snap.Events, t.Config.Start, t.Config.End)
		groups = analysis.Aggregate(events, t.Key, t.Metric)
	}

	var out Analysis
	header := "Track"
	switch t.Key {
	case model.KeyArtist:
		header = "Artist"
	case model.KeyAlbum:
		header = "Album"
	}
	out.results = [][]string{{"#", header, "Plays", "Minutes"}}
	for i, g := range groups {
		if t.Config.NumToReturn > 0 && i >= t.Config.NumToReturn {
			break
		}
		if t.Config.FilterThreshold > 0 && g.PlayCount <= t.Config.FilterThreshold {
			continue
		}
		out.results = append(out.results, []string{
			strconv.Itoa(i + 1),
			g.Label(t.Key),
			strconv.FormatInt(g.PlayCount, 10),
			fmt.Sprintf("%.1f", g.Minutes()),
		})
	}

	out.summary = fmt.Sprintf("Found %d %s and %d plays", len(groups), t.Key, len(events))
	return out, nil
}
