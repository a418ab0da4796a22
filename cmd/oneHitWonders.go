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

var oneHitNumber int
var oneHitMinMs int64
var oneHitWondersCmd = &cobra.Command{
	Use:   "one-hit-wonders",
	Short: "Gets tracks you played substantively exactly once and never saved",
	Long: `A one-hit wonder is a track played exactly once for at least the
minimum listening time, and absent from every playlist. Ordered most
recently played first.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printOneHitWonders(oneHitNumber, oneHitMinMs)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(oneHitWondersCmd)

	oneHitWondersCmd.Flags().IntVarP(&oneHitNumber, "number", "n", 20, "number of results to return")
	oneHitWondersCmd.Flags().Int64Var(&oneHitMinMs, "min-ms", analysis.DefaultOneHitMinMs,
		"minimum listening time in milliseconds for the single play to count")
}

func printOneHitWonders(numToReturn int, minMs int64) error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	analyzer := OneHitWondersAnalyzer{MinMs: minMs, Config: AnalyserConfig{NumToReturn: numToReturn}}
	cacheKey := fmt.Sprintf("one-hit-wonders-n%d-ms%d", numToReturn, minMs)
	out, err := withResultCache(cacheKey, snap, func() (Analysis, error) {
		return analyzer.GetResults(snap, index)
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type OneHitWondersAnalyzer struct {
	MinMs  int64
	Config AnalyserConfig
}

func (o *OneHitWondersAnalyzer) Configure(params map[string]string) error {
	if v, ok := params["min-ms"]; ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid min-ms: %q", v)
		}
		o.MinMs = ms
	}
	if v, ok := params["n"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid n: %q", v)
		}
		o.Config.NumToReturn = n
	}
	return nil
}

func (o OneHitWondersAnalyzer) GetName() string {
	return "One-hit wonders"
}

func (o OneHitWondersAnalyzer) GetResults(snap *history.Snapshot, index *playlist.Index) (Analysis, error) {
	minMs := o.MinMs
	if minMs == 0 {
		minMs = analysis.DefaultOneHitMinMs
	}
	groups := analysis.OneHitWonders(snap.Events, index, minMs)
	stats := analysis.OneHitWonderStats(snap.Events, index, minMs)

	var out Analysis
	out.results = [][]string{{"#", "Track", "Played", "Minutes"}}
	for i, g := range groups {
		if o.Config.NumToReturn > 0 && i >= o.Config.NumToReturn {
			break
		}
		out.results = append(out.results, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s - %s", g.Track, g.Artist),
			g.LastPlayed.Format("2006-01-02"),
			fmt.Sprintf("%.1f", g.Minutes()),
		})
	}

	out.summary = fmt.Sprintf("%d of %d substantively played tracks (%.1f%%) are one-hit wonders",
		stats.OneHitCount, stats.TotalTracks, stats.OneHitPercent)
	return out, nil
}
