// Package blobstore keeps the bytes of ingested media and hands back the
// reference the library stores as the item's url and thumbnail.
package blobstore

import "context"

type Store interface {
	// Put stores data under key and returns a renderable reference to it.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
