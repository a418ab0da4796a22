package analysis

import (
	"sort"
	"strings"

	"github.com/ademuri/spotify-history-tools/internal/model"
)

// PlatformStat aggregates plays for one simplified platform name.
type PlatformStat struct {
	Platform  string
	PlayCount int64
	TotalMs   int64
}

// SimplifyPlatform collapses the export's verbose platform strings (OS
// builds, device models) into a small fixed set of names.
func SimplifyPlatform(platform string) string {
	if platform == "" || platform == model.Unknown {
		return model.Unknown
	}
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "iphone"), strings.Contains(p, "ios"):
		return "iPhone"
	case strings.Contains(p, "android"):
		return "Android"
	case strings.Contains(p, "windows"):
		return "Windows"
	case strings.Contains(p, "mac"), strings.Contains(p, "osx"):
		return "Mac"
	case strings.Contains(p, "web"):
		return "Web Player"
	case strings.Contains(p, "linux"):
		return "Linux"
	default:
		return "Other"
	}
}

// PlatformStats aggregates listening per simplified platform, most played
// first.
func PlatformStats(events []model.PlayEvent) []PlatformStat {
	byPlatform := make(map[string]*PlatformStat)
	for _, e := range events {
		name := SimplifyPlatform(e.Platform)
		stat := byPlatform[name]
		if stat == nil {
			stat = &PlatformStat{Platform: name}
			byPlatform[name] = stat
		}
		stat.PlayCount++
		stat.TotalMs += e.MsPlayed
	}

	out := make([]PlatformStat, 0, len(byPlatform))
	for _, stat := range byPlatform {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayCount != out[j].PlayCount {
			return out[i].PlayCount > out[j].PlayCount
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}
