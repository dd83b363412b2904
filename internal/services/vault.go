// Package services holds the vault controller: the single owner of the media
// library, the current view, the viewer and the wallpaper. Every state change
// goes through one mutex, including upload completion, which arrives from a
// background goroutine.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mediavault/internal/blobstore"
	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/ingest"
	"github.com/dmitrijs2005/mediavault/internal/library"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/metrics"
	"github.com/dmitrijs2005/mediavault/internal/models"
	"github.com/dmitrijs2005/mediavault/internal/repositories/media"
	"github.com/dmitrijs2005/mediavault/internal/viewer"
	"github.com/dmitrijs2005/mediavault/internal/wallpaper"
)

type VaultService interface {
	// View returns the items matching the current collection and search.
	View() []models.MediaItem
	Query() library.Query
	SetCollection(name string)
	SetSearch(text string)
	Collections() []string
	Get(id string) (models.MediaItem, error)
	UpdateMetadata(ctx context.Context, id string, patch models.MetadataPatch) (models.MediaItem, error)

	Open(id string) (models.MediaItem, error)
	Close()
	// Current returns the open item. An item that has left the view closes
	// the viewer.
	Current() (models.MediaItem, bool)
	Next() (models.MediaItem, error)
	Previous() (models.MediaItem, error)

	Upload(ctx context.Context, files []ingest.Source) (*ingest.Batch, error)
	Uploading() bool
	// Drain blocks until the upload in flight, if any, has been added to the
	// library, or ctx ends.
	Drain(ctx context.Context) error

	Wallpaper() *models.WallpaperConfig
	SetWallpaper(ctx context.Context, id string) (models.WallpaperConfig, error)
	EditWallpaper(ctx context.Context, patch models.WallpaperPatch) (models.WallpaperConfig, error)
	ClearWallpaper(ctx context.Context) error

	Status() Status
}

type Status struct {
	Items      int
	Visible    int
	Collection string
	Search     string
	Uploading  bool
	Viewing    string
	Wallpaper  *models.WallpaperConfig
}

type Options struct {
	// Media persists the library. Nil keeps it in memory only.
	Media     media.Repository
	Wallpaper *wallpaper.Store
	Blobs     blobstore.Store

	UploadDelay     time.Duration
	FilterCacheSize int
	// SeedDemo fills an empty library with the demo items.
	SeedDemo bool

	Log logging.Logger
	Now func() time.Time
}

type vaultService struct {
	mu sync.Mutex

	repo      *library.Repository
	cache     *library.FilterCache
	query     library.Query
	nav       viewer.Navigator
	wallpaper *models.WallpaperConfig

	media    media.Repository
	store    *wallpaper.Store
	ingestor *ingest.Ingestor
	log      logging.Logger
	now      func() time.Time
}

// NewVaultService loads the persisted library and wallpaper and returns a
// ready controller.
func NewVaultService(ctx context.Context, opts Options) (VaultService, error) {
	if opts.Wallpaper == nil || opts.Blobs == nil || opts.Log == nil {
		return nil, fmt.Errorf("vault service: wallpaper store, blob store and logger are required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FilterCacheSize <= 0 {
		opts.FilterCacheSize = 128
	}

	cache, err := library.NewFilterCache(opts.FilterCacheSize)
	if err != nil {
		return nil, err
	}

	s := &vaultService{
		cache: cache,
		query: library.Query{Collection: models.CollectionAll},
		media: opts.Media,
		store: opts.Wallpaper,
		log:   opts.Log.With("component", "vault"),
		now:   opts.Now,
	}

	items, err := s.loadLibrary(ctx, opts.SeedDemo)
	if err != nil {
		return nil, err
	}
	s.repo = library.NewRepository(items...)
	s.wallpaper = s.store.Load(ctx)

	ids := ingest.NewIDGenerator(func(id string) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.repo.Has(id)
	})
	s.ingestor = ingest.NewIngestor(opts.Blobs, ids, opts.UploadDelay, opts.Log)

	s.log.Info(ctx, "vault ready", "items", s.repo.Len(), "wallpaper", s.wallpaper != nil)
	return s, nil
}

func (s *vaultService) loadLibrary(ctx context.Context, seed bool) ([]models.MediaItem, error) {
	var items []models.MediaItem
	if s.media != nil {
		var err error
		if items, err = s.media.List(ctx); err != nil {
			return nil, fmt.Errorf("load library: %w", err)
		}
	}
	if len(items) > 0 || !seed {
		return items, nil
	}

	items = library.DemoItems(s.now())
	if s.media != nil {
		if err := s.media.InsertMany(ctx, items); err != nil {
			return nil, fmt.Errorf("seed library: %w", err)
		}
	}
	return items, nil
}

func (s *vaultService) view() []models.MediaItem {
	return s.cache.View(s.repo, s.query)
}

func (s *vaultService) View() []models.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *vaultService) Query() library.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *vaultService) SetCollection(name string) {
	if name == "" {
		name = models.CollectionAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Collection = name
}

func (s *vaultService) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = text
}

func (s *vaultService) Collections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ListCollections()
}

func (s *vaultService) Get(id string) (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.repo.Get(id)
	if !ok {
		return models.MediaItem{}, fmt.Errorf("media item %q: %w", id, common.ErrNotFound)
	}
	return item, nil
}

// UpdateMetadata edits the item in memory first; a persistence error is
// returned alongside the updated item.
func (s *vaultService) UpdateMetadata(ctx context.Context, id string, patch models.MetadataPatch) (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.UpdateMetadata(id, patch)
	if err != nil {
		return models.MediaItem{}, err
	}
	metrics.MetadataUpdates.Inc()

	if s.media != nil {
		if err := s.media.UpdateMetadata(ctx, item); err != nil {
			s.log.Error(ctx, "persist metadata", "id", id, "error", err)
			return item, fmt.Errorf("persist metadata of %s: %w", id, err)
		}
	}
	return item, nil
}

func (s *vaultService) Open(id string) (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.repo.Get(id)
	if !ok {
		return models.MediaItem{}, fmt.Errorf("media item %q: %w", id, common.ErrNotFound)
	}
	s.nav.Open(id)
	return item, nil
}

func (s *vaultService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Close()
}

func (s *vaultService) Current() (models.MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.nav.Current()
	if !ok {
		return models.MediaItem{}, false
	}
	for _, it := range s.view() {
		if it.ID == id {
			return it, true
		}
	}
	s.nav.Close()
	return models.MediaItem{}, false
}

func (s *vaultService) Next() (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Next(s.view())
}

func (s *vaultService) Previous() (models.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Previous(s.view())
}

// Upload starts an ingestion batch. Its items are prepended to the library
// when the batch completes.
func (s *vaultService) Upload(ctx context.Context, files []ingest.Source) (*ingest.Batch, error) {
	return s.ingestor.Start(ctx, files, func(res ingest.Result) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.repo.InsertMany(res.Items)
		if s.media != nil && len(res.Items) > 0 {
			if err := s.media.InsertMany(context.WithoutCancel(ctx), res.Items); err != nil {
				s.log.Error(ctx, "persist uploaded items", "items", len(res.Items), "error", err)
			}
		}
	})
}

func (s *vaultService) Uploading() bool {
	return s.ingestor.Uploading()
}

func (s *vaultService) Drain(ctx context.Context) error {
	b := s.ingestor.Pending()
	if b == nil {
		return nil
	}
	_, err := b.Wait(ctx)
	return err
}

func (s *vaultService) Wallpaper() *models.WallpaperConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneWallpaper(s.wallpaper)
}

func (s *vaultService) SetWallpaper(ctx context.Context, id string) (models.WallpaperConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.repo.Get(id)
	if !ok {
		return models.WallpaperConfig{}, fmt.Errorf("media item %q: %w", id, common.ErrNotFound)
	}

	cfg := models.WallpaperFromMedia(item)
	return cfg, s.replaceWallpaper(ctx, &cfg)
}

func (s *vaultService) EditWallpaper(ctx context.Context, patch models.WallpaperPatch) (models.WallpaperConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wallpaper == nil {
		return models.WallpaperConfig{}, common.ErrNoWallpaper
	}

	cfg := s.wallpaper.Apply(patch)
	return cfg, s.replaceWallpaper(ctx, &cfg)
}

func (s *vaultService) ClearWallpaper(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceWallpaper(ctx, nil)
}

// replaceWallpaper swaps the in-memory wallpaper and writes it through with
// exactly one Save. The new value stays even if the write fails.
func (s *vaultService) replaceWallpaper(ctx context.Context, cfg *models.WallpaperConfig) error {
	s.wallpaper = cfg
	if err := s.store.Save(ctx, cfg); err != nil {
		metrics.WallpaperSaves.WithLabelValues("error").Inc()
		s.log.Error(ctx, "persist wallpaper", "error", err)
		return err
	}
	metrics.WallpaperSaves.WithLabelValues("ok").Inc()
	return nil
}

func (s *vaultService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewing, _ := s.nav.Current()
	return Status{
		Items:      s.repo.Len(),
		Visible:    len(s.view()),
		Collection: s.query.Collection,
		Search:     s.query.Search,
		Uploading:  s.ingestor.Uploading(),
		Viewing:    viewing,
		Wallpaper:  cloneWallpaper(s.wallpaper),
	}
}

func cloneWallpaper(cfg *models.WallpaperConfig) *models.WallpaperConfig {
	if cfg == nil {
		return nil
	}
	c := *cfg
	return &c
}
