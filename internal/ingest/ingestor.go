// Package ingest turns uploaded files into media items. A batch is accepted
// synchronously and completes in the background after a fixed delay.
package ingest

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/dmitrijs2005/mediavault/internal/blobstore"
	"github.com/dmitrijs2005/mediavault/internal/common"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/metrics"
	"github.com/dmitrijs2005/mediavault/internal/models"
)

const DefaultDelay = 2 * time.Second

var ErrEmptyBatch = errors.New("no files to upload")

// UploadedTag is attached to every ingested item.
const UploadedTag = "uploaded"

// CompleteFunc receives the items of a finished batch. It runs before the
// uploading flag clears.
type CompleteFunc func(res Result)

type Ingestor struct {
	store blobstore.Store
	ids   *IDGenerator
	delay time.Duration
	log   logging.Logger
	now   func() time.Time

	mu        sync.Mutex
	uploading bool
	current   *Batch
}

func NewIngestor(store blobstore.Store, ids *IDGenerator, delay time.Duration, log logging.Logger) *Ingestor {
	return &Ingestor{
		store: store,
		ids:   ids,
		delay: delay,
		log:   log.With("component", "ingest"),
		now:   time.Now,
	}
}

// Uploading reports whether a batch is in flight.
func (in *Ingestor) Uploading() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.uploading
}

// Pending returns the batch in flight, or nil. Its items have not reached
// onComplete yet.
func (in *Ingestor) Pending() *Batch {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.current
}

// Start accepts files and returns at once with the uploading flag set.
// The files are stored in the background; once the delay has passed,
// onComplete receives the result, the flag clears and the batch is done.
// Only one batch may run at a time.
func (in *Ingestor) Start(ctx context.Context, files []Source, onComplete CompleteFunc) (*Batch, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}

	in.mu.Lock()
	if in.uploading {
		in.mu.Unlock()
		return nil, common.ErrUploadInProgress
	}
	b := &Batch{size: len(files), done: make(chan struct{})}
	in.uploading = true
	in.current = b
	in.mu.Unlock()

	started := in.now()
	in.log.Info(ctx, "upload started", "files", len(files))

	// The batch outlives the request that started it.
	bgCtx := context.WithoutCancel(ctx)
	go in.run(bgCtx, b, files, started, onComplete)

	return b, nil
}

func (in *Ingestor) run(ctx context.Context, b *Batch, files []Source, started time.Time, onComplete CompleteFunc) {
	var res Result
	for i, f := range files {
		item, err := in.ingestOne(ctx, f, started, i)
		if err != nil {
			in.log.Warn(ctx, "file skipped", "name", f.Name, "error", err)
			res.Failures = append(res.Failures, Failure{Name: f.Name, Err: err})
			continue
		}
		res.Items = append(res.Items, item)
	}

	if wait := in.delay - in.now().Sub(started); wait > 0 {
		time.Sleep(wait)
	}

	if onComplete != nil {
		onComplete(res)
	}
	metrics.ItemsIngested.Add(float64(len(res.Items)))
	metrics.IngestFailures.Add(float64(len(res.Failures)))
	in.log.Info(ctx, "upload finished", "items", len(res.Items), "failures", len(res.Failures))

	in.mu.Lock()
	in.uploading = false
	in.current = nil
	in.mu.Unlock()

	b.finish(res)
}

func (in *Ingestor) ingestOne(ctx context.Context, f Source, at time.Time, ordinal int) (models.MediaItem, error) {
	data, err := readAll(f)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%w: %s: %w", common.ErrIngestionFailure, f.Name, err)
	}

	typ := models.MediaTypeFromMIME(f.ContentType)
	ref, err := in.store.Put(ctx, blobKey(at, data, f.Name), f.ContentType, data)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("%w: %s: %w", common.ErrIngestionFailure, f.Name, err)
	}

	item := models.MediaItem{
		ID:         in.ids.Next(at, ordinal),
		Type:       typ,
		URL:        ref,
		Thumbnail:  ref,
		Title:      f.Name,
		Collection: models.CollectionRecent,
		Tags:       []string{UploadedTag},
		UploadDate: at,
		Size:       int64(len(data)),
	}
	if typ == models.MediaTypeImage {
		facts := readImageFacts(data)
		item.Width, item.Height, item.TakenAt = facts.Width, facts.Height, facts.TakenAt
	}
	return item, nil
}

func readAll(f Source) ([]byte, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("source has no content")
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// blobKey spreads blobs by upload day and prefixes them with the content
// digest so identical uploads are easy to spot.
func blobKey(at time.Time, data []byte, name string) string {
	sum := blake2b.Sum256(data)
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("%04d/%02d/%02d/%s-%s%s",
		at.Year(), at.Month(), at.Day(), hex.EncodeToString(sum[:8]), uuid.New(), ext)
}
