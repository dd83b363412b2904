package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutWritesFileAndReturnsFileURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := s.Put(context.Background(), "2025/01/02/abc-beach.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)

	want := filepath.Join(s.Root(), "2025", "01", "02", "abc-beach.jpg")
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.True(t, strings.HasPrefix(ref, "file://"))
	assert.True(t, strings.HasSuffix(ref, "/2025/01/02/abc-beach.jpg"))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "a/../../x", "/etc/passwd"} {
		_, err := s.Put(context.Background(), key, "", []byte("x"))
		assert.Error(t, err, "key %q", key)
	}
}

func TestLocalStore_HonoursCancelledContext(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Put(ctx, "k", "", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalStore_FailsOnFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o600))

	_, err := NewLocalStore(filepath.Join(f, "sub"))
	assert.Error(t, err)
}
