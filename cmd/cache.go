package cmd

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/store"
)

// aggCache memoizes aggregations within one invocation, so commands that
// run several analyses over the same snapshot (like email) only group the
// events once per key and metric.
var aggCache = analysis.NewCache()

type cachedAnalysis struct {
	Results [][]string
	Summary string
}

// withResultCache memoizes a rendered analysis in the SQLite result cache,
// keyed by the query name (which must encode the query's parameters) and the
// snapshot fingerprint. Cache trouble is never fatal; the analysis is just
// recomputed.
func withResultCache(name string, snap *history.Snapshot, compute func() (Analysis, error)) (Analysis, error) {
	dbPath := viper.GetString("database")
	if dbPath == "" {
		return compute()
	}

	db, err := store.New(dbPath)
	if err != nil {
		newLogger().Warn("opening result cache", zap.Error(err))
		return compute()
	}
	defer db.Close()

	var cached cachedAnalysis
	if ok, err := db.Get(name, snap.Version, &cached); err == nil && ok {
		return Analysis{results: cached.Results, summary: cached.Summary}, nil
	}

	analysis, err := compute()
	if err != nil {
		return analysis, err
	}
	if analysis.BodyOverride == "" {
		if err := db.Put(name, snap.Version, cachedAnalysis{analysis.results, analysis.summary}); err != nil {
			newLogger().Warn("writing result cache", zap.Error(err))
		}
		db.Invalidate(snap.Version)
	}
	return analysis, nil
}
