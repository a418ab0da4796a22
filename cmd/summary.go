package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generates a YAML overview of your listening history",
	Run: func(cmd *cobra.Command, args []string) {
		err := runSummary()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating summary: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

type summaryEntry struct {
	Name  string  `yaml:"name"`
	Plays int64   `yaml:"plays"`
	Hours float64 `yaml:"hours"`
}

type summaryReport struct {
	From          string         `yaml:"from"`
	To            string         `yaml:"to"`
	Plays         int            `yaml:"plays"`
	Hours         float64        `yaml:"hours"`
	UniqueTracks  int            `yaml:"unique_tracks"`
	UniqueArtists int            `yaml:"unique_artists"`
	Playlists     int            `yaml:"playlists"`
	TopArtists    []summaryEntry `yaml:"top_artists"`
	TopTracks     []summaryEntry `yaml:"top_tracks"`
	Platforms     []summaryEntry `yaml:"platforms"`
}

func runSummary() error {
	snap, index, err := loadSnapshot()
	if err != nil {
		return err
	}

	tracks := analysis.Aggregate(snap.Events, model.KeyTrack, model.MetricPlays)
	artists := analysis.Aggregate(snap.Events, model.KeyArtist, model.MetricPlays)

	var totalMs int64
	for _, e := range snap.Events {
		totalMs += e.MsPlayed
	}

	first, last := snap.Span()
	report := summaryReport{
		From:          first.Format("2006-01-02"),
		To:            last.Format("2006-01-02"),
		Plays:         len(snap.Events),
		Hours:         float64(totalMs) / 3600000,
		UniqueTracks:  len(tracks),
		UniqueArtists: len(artists),
		Playlists:     index.Summary().Playlists,
	}

	for i, g := range artists {
		if i >= 10 {
			break
		}
		report.TopArtists = append(report.TopArtists, summaryEntry{
			Name: g.Artist, Plays: g.PlayCount, Hours: float64(g.TotalMs) / 3600000})
	}
	for i, g := range tracks {
		if i >= 10 {
			break
		}
		report.TopTracks = append(report.TopTracks, summaryEntry{
			Name: g.Label(model.KeyTrack), Plays: g.PlayCount, Hours: float64(g.TotalMs) / 3600000})
	}
	for _, p := range analysis.PlatformStats(snap.Events) {
		report.Platforms = append(report.Platforms, summaryEntry{
			Name: p.Platform, Plays: p.PlayCount, Hours: float64(p.TotalMs) / 3600000})
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	err = encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	return nil
}
