package ingest

import (
	"context"

	"github.com/dmitrijs2005/mediavault/internal/models"
)

type Failure struct {
	Name string
	Err  error
}

// Result is the outcome of a batch. Files that failed are not in Items.
type Result struct {
	Items    []models.MediaItem
	Failures []Failure
}

func (r Result) FailureCount() int {
	return len(r.Failures)
}

// Batch tracks one upload in flight.
type Batch struct {
	size   int
	done   chan struct{}
	result Result
}

// Size is the number of files the batch was started with.
func (b *Batch) Size() int {
	return b.size
}

// Done is closed once the batch has completed.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch completes or ctx ends. Giving up on the wait
// does not cancel the batch.
func (b *Batch) Wait(ctx context.Context) (Result, error) {
	select {
	case <-b.done:
		return b.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Result returns the outcome and whether the batch has completed.
func (b *Batch) Result() (Result, bool) {
	select {
	case <-b.done:
		return b.result, true
	default:
		return Result{}, false
	}
}

func (b *Batch) finish(res Result) {
	b.result = res
	close(b.done)
}
