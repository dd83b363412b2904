package viewer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

func view(ids ...string) []models.MediaItem {
	out := make([]models.MediaItem, len(ids))
	for i, id := range ids {
		out[i] = models.MediaItem{ID: id}
	}
	return out
}

func TestNavigator_OpenCloseCurrent(t *testing.T) {
	var n Navigator

	_, ok := n.Current()
	assert.False(t, ok)

	n.Open("a")
	id, ok := n.Current()
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	n.Close()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNavigator_Wraparound(t *testing.T) {
	v := view("a", "b", "c")
	var n Navigator

	n.Open("c")
	got, err := n.Next(v)
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	got, err = n.Previous(v)
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)

	got, err = n.Previous(v)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestNavigator_NextThenPreviousReturnsToStart(t *testing.T) {
	for size := 1; size <= 5; size++ {
		ids := make([]string, size)
		for i := range ids {
			ids[i] = fmt.Sprintf("item-%d", i)
		}
		v := view(ids...)

		for start := 0; start < size; start++ {
			var n Navigator
			n.Open(ids[start])

			_, err := n.Next(v)
			require.NoError(t, err)
			back, err := n.Previous(v)
			require.NoError(t, err)

			assert.Equal(t, ids[start], back.ID, "n=%d i=%d", size, start)
		}
	}
}

func TestNavigator_SingleItemStaysPut(t *testing.T) {
	var n Navigator
	n.Open("only")

	got, err := n.Next(view("only"))
	require.NoError(t, err)
	assert.Equal(t, "only", got.ID)
}

func TestNavigator_EmptyViewCloses(t *testing.T) {
	var n Navigator
	n.Open("a")

	_, err := n.Next(nil)
	assert.ErrorIs(t, err, common.ErrViewerClosed)
	_, ok := n.Current()
	assert.False(t, ok)
}

func TestNavigator_StaleItemCloses(t *testing.T) {
	var n Navigator
	n.Open("moved")

	_, err := n.Previous(view("a", "b"))
	assert.ErrorIs(t, err, common.ErrViewerClosed)
	_, ok := n.Current()
	assert.False(t, ok)
}

func TestNavigator_NotOpen(t *testing.T) {
	var n Navigator

	_, err := n.Next(view("a"))
	assert.ErrorIs(t, err, common.ErrViewerClosed)
}
