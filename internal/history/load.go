package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// ErrNoInput is returned when no input file in the data directory could be
// loaded. It is the only fatal load condition; individual bad files or
// records are skipped and counted.
var ErrNoInput = errors.New("no loadable streaming history or playlist files")

// ErrUnknownSchema marks a file whose JSON doesn't match any known export
// variant. The file is skipped and counted.
var ErrUnknownSchema = errors.New("unknown schema")

// Export file name patterns. The extended export ships
// Streaming_History_Audio_*.json, the legacy export StreamingHistory*.json,
// and playlists come in Playlist*.json.
var historyPatterns = []string{"Streaming_History_Audio_*.json", "StreamingHistory*.json"}

const playlistPattern = "Playlist*.json"

type playlistFile struct {
	Playlists []rawPlaylist `json:"playlists"`
}

type rawPlaylist struct {
	Name             string    `json:"name"`
	LastModifiedDate string    `json:"lastModifiedDate"`
	Items            []rawItem `json:"items"`
	Collaborators    []string  `json:"collaborators"`
}

type rawItem struct {
	Track *rawPlaylistTrack `json:"track"`
}

type rawPlaylistTrack struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
	TrackURI   string `json:"trackUri"`
}

// Load reads every recognized export file under dir into a Snapshot.
// Malformed files and records are logged and skipped; Load fails only when
// nothing at all could be loaded.
func Load(dir string, log *zap.Logger) (*Snapshot, error) {
	snap := &Snapshot{}
	hash := fnv.New64a()

	historyFiles, err := globHistoryFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("listing history files: %w", err)
	}

	for _, path := range historyFiles {
		records, err := readHistoryFile(path)
		if err != nil {
			snap.Stats.SkippedFiles++
			log.Warn("skipping unreadable history file", zap.String("file", path), zap.Error(err))
			continue
		}
		events, malformed, nonMusic := normalizeRecords(records, log)
		snap.Events = append(snap.Events, events...)
		snap.Stats.HistoryFiles++
		snap.Stats.MalformedRecords += malformed
		snap.Stats.NonMusicRecords += nonMusic
		fingerprintFile(hash, path)
	}

	playlistFiles, err := filepath.Glob(filepath.Join(dir, playlistPattern))
	if err != nil {
		return nil, fmt.Errorf("listing playlist files: %w", err)
	}
	sort.Strings(playlistFiles)

	for _, path := range playlistFiles {
		playlists, err := readPlaylistFile(path)
		if err != nil {
			snap.Stats.SkippedFiles++
			log.Warn("skipping unreadable playlist file", zap.String("file", path), zap.Error(err))
			continue
		}
		snap.Playlists = append(snap.Playlists, playlists...)
		snap.Stats.PlaylistFiles++
		fingerprintFile(hash, path)
	}

	if snap.Stats.HistoryFiles == 0 && snap.Stats.PlaylistFiles == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInput, dir)
	}

	assignPlaylistIDs(snap.Playlists)
	snap.Version = fmt.Sprintf("%016x", hash.Sum64())

	log.Info("loaded snapshot",
		zap.Int("events", len(snap.Events)),
		zap.Int("playlists", len(snap.Playlists)),
		zap.Int("malformed_records", snap.Stats.MalformedRecords),
		zap.Int("skipped_files", snap.Stats.SkippedFiles),
		zap.String("version", snap.Version))

	return snap, nil
}

func globHistoryFiles(dir string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range historyPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func readHistoryFile(path string) ([]rawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []rawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSchema, err)
	}
	return records, nil
}

func readPlaylistFile(path string) ([]model.Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file playlistFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSchema, err)
	}

	var playlists []model.Playlist
	for _, raw := range file.Playlists {
		p := model.Playlist{
			Name:          raw.Name,
			LastModified:  raw.LastModifiedDate,
			Collaborators: raw.Collaborators,
		}
		if strings.TrimSpace(p.Name) == "" {
			p.Name = model.Unknown
		}
		for _, item := range raw.Items {
			if item.Track == nil {
				continue
			}
			p.Tracks = append(p.Tracks, model.PlaylistTrack{
				Track:  item.Track.TrackName,
				Artist: item.Track.ArtistName,
				Album:  item.Track.AlbumName,
				URI:    item.Track.TrackURI,
			})
		}
		playlists = append(playlists, p)
	}
	return playlists, nil
}

// assignPlaylistIDs gives every playlist a snapshot-unique ID. Duplicate
// names stay distinct entities, numbered in load order.
func assignPlaylistIDs(playlists []model.Playlist) {
	counts := make(map[string]int)
	for i := range playlists {
		name := playlists[i].Name
		counts[name]++
		if counts[name] == 1 {
			playlists[i].ID = name
		} else {
			playlists[i].ID = fmt.Sprintf("%s #%d", name, counts[name])
		}
	}
}

func fingerprintFile(hash io.Writer, path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(hash, "%s|unknown", path)
		return
	}
	fmt.Fprintf(hash, "%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}
