// Package common defines sentinel errors shared by the vault's packages.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Persisted wallpaper record is missing fields or cannot be decoded.
	ErrInvalidPersistedState = errors.New("invalid persisted state")

	// Ingestion errors.
	ErrIngestionFailure = errors.New("ingestion failure")
	ErrUploadInProgress = errors.New("upload already in progress")

	// Wallpaper edits require a wallpaper to be set first.
	ErrNoWallpaper = errors.New("no wallpaper set")

	// The viewer lost its item (empty view or item filtered out) and closed.
	ErrViewerClosed = errors.New("viewer closed")
)
