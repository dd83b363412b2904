// Package media persists the canonical media collection so a vault keeps its
// library across restarts.
package media

import (
	"context"

	"github.com/dmitrijs2005/mediavault/internal/models"
)

// Repository mirrors library.Repository on disk.
type Repository interface {
	// List returns all items newest first, the order the library holds them in.
	List(ctx context.Context) ([]models.MediaItem, error)

	// InsertMany stores a batch in front of every existing item, keeping the
	// batch order.
	InsertMany(ctx context.Context, items []models.MediaItem) error

	// UpdateMetadata overwrites the editable fields (title, collection, tags)
	// of an existing item. Unknown ids yield common.ErrNotFound.
	UpdateMetadata(ctx context.Context, item models.MediaItem) error

	Count(ctx context.Context) (int, error)
}
