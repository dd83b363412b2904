package media

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/dbx"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

// SQLiteRepository orders items by a monotonically growing seq column:
// the highest seq is the newest item.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `id, type, url, thumbnail, title, collection, tags, upload_date, size, width, height, taken_at`

func (r *SQLiteRepository) List(ctx context.Context) ([]models.MediaItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM media_items ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select media items: %w", err)
	}
	defer rows.Close()

	result := []models.MediaItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media items: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) InsertMany(ctx context.Context, items []models.MediaItem) error {
	if len(items) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var top int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM media_items`).Scan(&top); err != nil {
			return fmt.Errorf("failed to read media seq: %w", err)
		}

		n := int64(len(items))
		for i, item := range items {
			tags, err := json.Marshal(item.Tags)
			if err != nil {
				return fmt.Errorf("failed to encode tags of %s: %w", item.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO media_items (id, seq, type, url, thumbnail, title, collection, tags, upload_date, size, width, height, taken_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				item.ID, top+n-int64(i), string(item.Type), item.URL, item.Thumbnail, item.Title,
				item.Collection, string(tags), formatTime(item.UploadDate), item.Size,
				item.Width, item.Height, formatTimePtr(item.TakenAt),
			)
			if err != nil {
				return fmt.Errorf("failed to insert media item %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) UpdateMetadata(ctx context.Context, item models.MediaItem) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags of %s: %w", item.ID, err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE media_items SET title = ?, collection = ?, tags = ? WHERE id = ?`,
		item.Title, item.Collection, string(tags), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update media item %s: %w", item.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("media item %s: %w", item.ID, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count media items: %w", err)
	}
	return n, nil
}

func scanItem(rows *sql.Rows) (models.MediaItem, error) {
	var (
		item       models.MediaItem
		typ, tags  string
		uploadDate string
		takenAt    sql.NullString
	)
	err := rows.Scan(&item.ID, &typ, &item.URL, &item.Thumbnail, &item.Title, &item.Collection,
		&tags, &uploadDate, &item.Size, &item.Width, &item.Height, &takenAt)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("failed to scan media item: %w", err)
	}

	item.Type = models.MediaType(typ)
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return models.MediaItem{}, fmt.Errorf("failed to decode tags of %s: %w", item.ID, err)
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.UploadDate, err = time.Parse(time.RFC3339Nano, uploadDate); err != nil {
		return models.MediaItem{}, fmt.Errorf("failed to parse upload date of %s: %w", item.ID, err)
	}
	if takenAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, takenAt.String)
		if err != nil {
			return models.MediaItem{}, fmt.Errorf("failed to parse taken_at of %s: %w", item.ID, err)
		}
		item.TakenAt = &t
	}
	return item, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
