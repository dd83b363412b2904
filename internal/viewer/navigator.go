// Package viewer tracks which media item is open and steps through a
// filtered view with wraparound.
package viewer

import (
	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

type Navigator struct {
	current string
	open    bool
}

func (n *Navigator) Open(id string) {
	n.current = id
	n.open = true
}

func (n *Navigator) Close() {
	n.current = ""
	n.open = false
}

// Current returns the open item id, if any.
func (n *Navigator) Current() (string, bool) {
	return n.current, n.open
}

// Next moves to the following item of view, wrapping to the first.
func (n *Navigator) Next(view []models.MediaItem) (models.MediaItem, error) {
	return n.step(view, 1)
}

// Previous moves to the preceding item of view, wrapping to the last.
func (n *Navigator) Previous(view []models.MediaItem) (models.MediaItem, error) {
	return n.step(view, -1)
}

// step closes the navigator when the view is empty or no longer contains the
// open item, so a stale selection is never shown.
func (n *Navigator) step(view []models.MediaItem, delta int) (models.MediaItem, error) {
	if !n.open {
		return models.MediaItem{}, common.ErrViewerClosed
	}

	size := len(view)
	i := indexOf(view, n.current)
	if size == 0 || i < 0 {
		n.Close()
		return models.MediaItem{}, common.ErrViewerClosed
	}

	next := view[(i+delta+size)%size]
	n.current = next.ID
	return next, nil
}

func indexOf(view []models.MediaItem, id string) int {
	for i := range view {
		if view[i].ID == id {
			return i
		}
	}
	return -1
}
