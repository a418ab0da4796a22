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
	"github.com/ademuri/spotify-history-tools/internal/playlist"
)

var mostSkippedNumber int
var mostSkippedMinPlays int64
var mostSkippedCmd = &cobra.Command{
	Use:   "most-skipped [from] [to (optional)]",
	Short: "Gets the tracks you skip most often",
	Long:  `Ranks tracks by the fraction of plays flagged as skipped. Tracks with few plays are filtered out to avoid noise.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printMostSkipped(mostSkippedNumber, mostSkippedMinPlays, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mostSkippedCmd)

	mostSkippedCmd.Flags().IntVarP(&mostSkippedNumber, "number", "n", 10, "number of results to return")
	mostSkippedCmd.Flags().Int64Var(&mostSkippedMinPlays, "min-plays", 3, "only include tracks with at least this many plays")
}

func printMostSkipped(numToReturn int, minPlays int64, dateArgs []string) error {
	start, end, err := parseOptionalDateRange(dateArgs)
	if err != nil {
		return err
	}

	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	analyzer := MostSkippedAnalyzer{MinPlays: minPlays,
		Config: AnalyserConfig{NumToReturn: numToReturn, Start: start, End: end}}
	cacheKey := fmt.Sprintf("most-skipped-n%d-p%d-%d-%d", numToReturn, minPlays, start.Unix(), end.Unix())
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		return analyzer.GetResults(snap, index)
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type MostSkippedAnalyzer struct {
	MinPlays int64
	Config   AnalyserConfig
}

func (m *MostSkippedAnalyzer) Configure(params map[string]string) error {
	if v, ok := params["min-plays"]; ok {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid min-plays: %q", v)
		}
		m.MinPlays = p
	}
	if v, ok := params["n"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid n: %q", v)
		}
		m.Config.NumToReturn = n
	}
	return nil
}

func (m MostSkippedAnalyzer) GetName() string {
	return "Most skipped"
}

func (m MostSkippedAnalyzer) GetResults(snap *history.Snapshot, index *playlist.Index) (Analysis, error) {
	events := analysis.Between(snap.Events, m.Config.Start, m.Config.End)
	groups := analysis.MostSkipped(events, m.MinPlays)

	var out Analysis
	out.results = [][]string{{"#", "Track", "Skip rate", "Plays"}}
	for i, g := range groups {
		if m.Config.NumToReturn > 0 && i >= m.Config.NumToReturn {
			break
		}
		out.results = append(out.results, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s - %s", g.Track, g.Artist),
			fmt.Sprintf("%.0f%%", g.SkipRate()*100),
			strconv.FormatInt(g.PlayCount, 10),
		})
	}

	out.summary = fmt.Sprintf("Found %d tracks with at least %d plays", len(groups), m.MinPlays)
	return out, nil
}
