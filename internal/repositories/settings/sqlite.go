package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mediavault/internal/dbx"
)

const (
	getSetting    = `SELECT value FROM settings WHERE key = ?`
	upsertSetting = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteSetting = `DELETE FROM settings WHERE key = ?`
)

// SQLiteRepository keeps settings in the vault database next to the
// library. It accepts a *sql.DB or a *sql.Tx.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	switch err := r.db.QueryRowContext(ctx, getSetting, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, opError("get", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, upsertSetting, key, value); err != nil {
		return opError("set", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteSetting, key); err != nil {
		return opError("delete", key, err)
	}
	return nil
}

// opError is the error shape shared by every backend:
//
//	settings: get "wallpaperConfig": connection refused
func opError(op, key string, err error) error {
	return fmt.Errorf("settings: %s %q: %w", op, key, err)
}
