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
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Gets the tracks saved to more than one playlist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := printDuplicates()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
}

func printDuplicates() error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	out, err := withResultCache("duplicates", snap, func() (Analysis, error) {
		spreads := index.Duplicates()

		var analysis Analysis
		analysis.results = [][]string{{"Track", "Artist", "Playlists", "On"}}
		for _, s := range spreads {
			analysis.results = append(analysis.results, []string{
				s.Track,
				s.Artist,
				strconv.Itoa(len(s.Playlists)),
				strings.Join(s.Playlists, ", "),
			})
		}
		analysis.summary = fmt.Sprintf("Found %d tracks on more than one playlist", len(spreads))
		return analysis, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
