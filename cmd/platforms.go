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

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Shows which devices you listen on",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printPlatforms()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func printPlatforms() error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	out, err := withResultCache("platforms", snap, func() (Analysis, error) {
		return PlatformsAnalyzer{}.GetResults(snap, index)
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type PlatformsAnalyzer struct{}

func (p PlatformsAnalyzer) GetName() string {
	return "Platforms"
}

func (p PlatformsAnalyzer) GetResults(snap *history.Snapshot, index *playlist.Index) (Analysis, error) {
	stats := analysis.PlatformStats(snap.Events)

	var out Analysis
	out.results = [][]string{{"Platform", "Plays", "Hours"}}
	for _, s := range stats {
		out.results = append(out.results, []string{
			s.Platform,
			strconv.FormatInt(s.PlayCount, 10),
			fmt.Sprintf("%.1f", float64(s.TotalMs)/3600000),
		})
	}

	out.summary = fmt.Sprintf("Listened on %d platforms", len(stats))
	return out, nil
}
