// Package settings stores small opaque values by key. The vault keeps its
// wallpaper record here.
//
// Every backend follows the same contract: Get on a missing key returns
// (nil, nil) and Delete on a missing key is not an error.
package settings

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
