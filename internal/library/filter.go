package library

import (
	"strings"

	"github.com/dmitrijs2005/mediavault/internal/models"
)

// Query selects a view of the library. An empty Collection means "all".
type Query struct {
	Collection string
	Search     string
}

func (q Query) collection() string {
	if q.Collection == "" {
		return models.CollectionAll
	}
	return q.Collection
}

// Filter returns the items matching q in their original order. The
// collection must match exactly; the search text is matched
// case-insensitively against the title and every tag.
func Filter(items []models.MediaItem, q Query) []models.MediaItem {
	collection := q.collection()
	needle := strings.ToLower(q.Search)

	out := make([]models.MediaItem, 0, len(items))
	for _, it := range items {
		if collection != models.CollectionAll && it.Collection != collection {
			continue
		}
		if !matchesSearch(it, needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesSearch(it models.MediaItem, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Title), needle) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
