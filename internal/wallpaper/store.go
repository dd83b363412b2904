// Package wallpaper persists the optional background wallpaper as one JSON
// record in a settings repository.
package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/models"
	"github.com/dmitrijs2005/mediavault/internal/repositories/settings"
)

// Key is the settings key of the wallpaper record.
const Key = "wallpaperConfig"

type Store struct {
	repo settings.Repository
	log  logging.Logger
}

func NewStore(repo settings.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "wallpaper")}
}

// Load returns the stored wallpaper or nil. Read failures and records that
// are malformed or invalid are logged and treated as no wallpaper.
func (s *Store) Load(ctx context.Context) *models.WallpaperConfig {
	data, err := s.repo.Get(ctx, Key)
	if err != nil {
		s.log.Warn(ctx, "cannot read wallpaper record", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	cfg, err := Decode(data)
	if err != nil {
		s.log.Warn(ctx, "discarding persisted wallpaper", "error", err)
		return nil
	}
	return cfg
}

// Save writes cfg under Key, or deletes the record when cfg is nil.
func (s *Store) Save(ctx context.Context, cfg *models.WallpaperConfig) error {
	if cfg == nil {
		if err := s.repo.Delete(ctx, Key); err != nil {
			return fmt.Errorf("clear wallpaper: %w", err)
		}
		return nil
	}

	data, err := Encode(*cfg)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("save wallpaper: %w", err)
	}
	return nil
}

// record is the persisted layout. Pointer fields tell a missing value from a
// zero one so defaults are filled only for what is absent.
type record struct {
	Type       models.MediaType  `json:"type"`
	URL        string            `json:"url"`
	ObjectFit  *models.ObjectFit `json:"objectFit,omitempty"`
	Opacity    *float64          `json:"opacity,omitempty"`
	BlurPx     *float64          `json:"blurPx,omitempty"`
	Brightness *float64          `json:"brightness,omitempty"`
	Muted      *bool             `json:"muted,omitempty"`
	Loop       *bool             `json:"loop,omitempty"`
}

func Encode(cfg models.WallpaperConfig) ([]byte, error) {
	data, err := json.Marshal(record{
		Type:       cfg.Type,
		URL:        cfg.URL,
		ObjectFit:  &cfg.ObjectFit,
		Opacity:    &cfg.Opacity,
		BlurPx:     &cfg.BlurPx,
		Brightness: &cfg.Brightness,
		Muted:      &cfg.Muted,
		Loop:       &cfg.Loop,
	})
	if err != nil {
		return nil, fmt.Errorf("encode wallpaper: %w", err)
	}
	return data, nil
}

// Decode parses a persisted record, filling defaults for missing visual
// fields and clamping out-of-range ones. It fails with
// common.ErrInvalidPersistedState when the record is unusable.
func Decode(data []byte) (*models.WallpaperConfig, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPersistedState, err)
	}

	cfg := models.NewWallpaperConfig(rec.Type, rec.URL)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPersistedState, err)
	}

	cfg = cfg.Apply(models.WallpaperPatch{
		ObjectFit:  rec.ObjectFit,
		Opacity:    rec.Opacity,
		BlurPx:     rec.BlurPx,
		Brightness: rec.Brightness,
		Muted:      rec.Muted,
		Loop:       rec.Loop,
	})
	return &cfg, nil
}
