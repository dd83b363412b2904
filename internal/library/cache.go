package library

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dmitrijs2005/mediavault/internal/metrics"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

type cacheKey struct {
	revision   uint64
	collection string
	search     string
}

// FilterCache memoizes Filter results per repository revision. Entries of
// older revisions are never hit again and age out of the LRU.
type FilterCache struct {
	cache *lru.Cache[cacheKey, []models.MediaItem]
}

func NewFilterCache(size int) (*FilterCache, error) {
	c, err := lru.New[cacheKey, []models.MediaItem](size)
	if err != nil {
		return nil, fmt.Errorf("filter cache: %w", err)
	}
	return &FilterCache{cache: c}, nil
}

// View returns Filter(repo.Snapshot(), q), from cache when possible.
// The returned slice is owned by the caller.
func (c *FilterCache) View(repo *Repository, q Query) []models.MediaItem {
	key := cacheKey{revision: repo.Revision(), collection: q.collection(), search: q.Search}

	if items, ok := c.cache.Get(key); ok {
		metrics.FilterCacheHits.Inc()
		return cloneItems(items)
	}
	metrics.FilterCacheMisses.Inc()

	items := Filter(repo.Snapshot(), q)
	c.cache.Add(key, items)
	return cloneItems(items)
}

func (c *FilterCache) Len() int {
	return c.cache.Len()
}

func (c *FilterCache) Purge() {
	c.cache.Purge()
}

func cloneItems(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
