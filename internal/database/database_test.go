package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediavault/internal/logging"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "vault.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "settings"))
	assert.True(t, tableExists(t, db, "media_items"))
}

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES ('k', x'01')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "vault.db")

	db, err := Open(ctx, dsn, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db, logging.Discard()))
	assert.True(t, tableExists(t, db, "media_items"))
}

func TestMediaItemsRejectNegativeSize(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `
		INSERT INTO media_items (id, seq, type, url, thumbnail, title, collection, upload_date, size)
		VALUES ('x', 1, 'image', 'u', 't', 'x', 'recent', '2025-01-01T00:00:00Z', -1)`)
	assert.Error(t, err)
}
