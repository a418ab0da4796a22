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
	"strings"
	"testing"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/model"
	"github.com/ademuri/spotify-history-tools/internal/playlist"
)

func testSnapshot(t *testing.T) (*history.Snapshot, *playlist.Index) {
	t.Helper()
	ts := func(s string) time.Time {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatal(err)
		}
		return parsed
	}

	snap := &history.Snapshot{
		Version: "test",
		Events: []model.PlayEvent{
			{Timestamp: ts("2024-01-01T10:00:00Z"), Track: "Karma Police", Artist: "Radiohead", Album: "OK Computer", MsPlayed: 200000},
			{Timestamp: ts("2024-01-02T10:00:00Z"), Track: "Karma Police", Artist: "Radiohead", Album: "OK Computer", MsPlayed: 150000},
			{Timestamp: ts("2024-01-03T10:00:00Z"), Track: "Come Together", Artist: "The Beatles", Album: "Abbey Road", MsPlayed: 250000},
		},
		Playlists: []model.Playlist{
			{ID: "Favorites", Name: "Favorites", Tracks: []model.PlaylistTrack{
				{Track: "Karma Police", Artist: "Radiohead"},
			}},
		},
	}
	return snap, playlist.NewIndex(snap.Playlists)
}

func TestGetActionFromName(t *testing.T) {
	valid := []string{"top-tracks", "top-artists", "top-albums", "most-skipped",
		"one-hit-wonders", "not-on-playlist", "playlists", "platforms"}
	for _, name := range valid {
		if _, err := getActionFromName(name); err != nil {
			t.Errorf("getActionFromName(%q): %v", name, err)
		}
	}

	if _, err := getActionFromName("taste-report"); err == nil {
		t.Error("getActionFromName should reject unknown names")
	}
}

func TestGenerateEmailContent(t *testing.T) {
	snap, index := testSnapshot(t)

	action, err := getActionFromName("top-tracks")
	if err != nil {
		t.Fatalf("getActionFromName: %v", err)
	}

	subject, body, err := generateEmailContent(snap, index, []Analyser{action})
	if err != nil {
		t.Fatalf("generateEmailContent: %v", err)
	}

	if !strings.Contains(subject, "2024-01-01") || !strings.Contains(subject, "2024-01-03") {
		t.Errorf("subject should carry the history span, got %q", subject)
	}
	if !strings.Contains(body, "Karma Police") {
		t.Errorf("body should contain the top track, got %q", body)
	}
	if !strings.Contains(body, "<table>") {
		t.Error("body should contain an HTML table")
	}
}

func TestConfigureTopAnalyzer(t *testing.T) {
	action, err := getActionFromName("top-tracks")
	if err != nil {
		t.Fatalf("getActionFromName: %v", err)
	}

	configurable, ok := action.(Configurable)
	if !ok {
		t.Fatal("top-tracks should be configurable")
	}
	if err := configurable.Configure(map[string]string{"n": "5", "by": "time"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := configurable.Configure(map[string]string{"n": "five"}); err == nil {
		t.Error("Configure should reject a non-numeric n")
	}
}
