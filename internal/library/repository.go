// Package library owns the canonical, newest-first collection of media items
// and the filtering that derives views from it.
//
// Repository is not safe for concurrent use; the vault service serializes
// access to it.
package library

import (
	"fmt"

	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

type Repository struct {
	items    []models.MediaItem
	revision uint64
}

// NewRepository builds a repository holding items in the given order.
func NewRepository(items ...models.MediaItem) *Repository {
	r := &Repository{items: make([]models.MediaItem, 0, len(items))}
	for _, it := range items {
		r.items = append(r.items, it.Clone())
	}
	return r
}

// InsertMany puts the batch in front of the existing items, keeping the
// batch's own order.
func (r *Repository) InsertMany(items []models.MediaItem) {
	if len(items) == 0 {
		return
	}
	merged := make([]models.MediaItem, 0, len(items)+len(r.items))
	for _, it := range items {
		merged = append(merged, it.Clone())
	}
	r.items = append(merged, r.items...)
	r.revision++
}

// UpdateMetadata applies patch to the item with the given id and returns the
// updated copy. Unknown ids yield common.ErrNotFound and change nothing.
func (r *Repository) UpdateMetadata(id string, patch models.MetadataPatch) (models.MediaItem, error) {
	i := r.indexOf(id)
	if i < 0 {
		return models.MediaItem{}, fmt.Errorf("media item %q: %w", id, common.ErrNotFound)
	}
	r.items[i] = r.items[i].Apply(patch)
	r.revision++
	return r.items[i].Clone(), nil
}

// ListCollections returns "all" followed by each distinct collection in the
// order it is first met.
func (r *Repository) ListCollections() []string {
	out := []string{models.CollectionAll}
	seen := map[string]struct{}{models.CollectionAll: {}}
	for _, it := range r.items {
		if _, ok := seen[it.Collection]; ok {
			continue
		}
		seen[it.Collection] = struct{}{}
		out = append(out, it.Collection)
	}
	return out
}

func (r *Repository) Get(id string) (models.MediaItem, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return models.MediaItem{}, false
	}
	return r.items[i].Clone(), true
}

func (r *Repository) Has(id string) bool {
	return r.indexOf(id) >= 0
}

// Snapshot returns a deep copy of the items in repository order.
func (r *Repository) Snapshot() []models.MediaItem {
	out := make([]models.MediaItem, len(r.items))
	for i, it := range r.items {
		out[i] = it.Clone()
	}
	return out
}

// Revision changes on every mutation.
func (r *Repository) Revision() uint64 {
	return r.revision
}

func (r *Repository) Len() int {
	return len(r.items)
}

func (r *Repository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
