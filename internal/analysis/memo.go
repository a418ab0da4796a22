package analysis

import (
	"sync"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/model"
)

// Cache memoizes aggregation results per (snapshot version, key, metric) so
// repeated queries within a session reuse earlier work. Entries for other
// snapshot versions never match; there is no partial invalidation.
type Cache struct {
	mu     sync.Mutex
	groups map[memoKey][]Group
}

type memoKey struct {
	version string
	key     model.AggregationKey
	metric  model.Metric
}

func NewCache() *Cache {
	return &Cache{groups: make(map[memoKey][]Group)}
}

// Aggregate returns the memoized aggregation for the snapshot, computing it
// on first use.
func (c *Cache) Aggregate(snap *history.Snapshot, key model.AggregationKey, metric model.Metric) []Group {
	k := memoKey{version: snap.Version, key: key, metric: metric}

	c.mu.Lock()
	groups, ok := c.groups[k]
	c.mu.Unlock()
	if ok {
		return groups
	}

	groups = Aggregate(snap.Events, key, metric)

	c.mu.Lock()
	c.groups[k] = groups
	c.mu.Unlock()
	return groups
}
