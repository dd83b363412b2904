// Package models contains the domain types shared by the vault packages.
package models

import (
	"slices"
	"strings"
	"time"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// MediaTypeFromMIME maps a declared content type onto a media type.
// Anything that is not video/* is treated as an image.
func MediaTypeFromMIME(contentType string) MediaType {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return MediaTypeVideo
	}
	return MediaTypeImage
}

const (
	CollectionAll    = "all"
	CollectionRecent = "recent"
)

type MediaItem struct {
	ID         string
	Type       MediaType
	URL        string
	Thumbnail  string
	Title      string
	Collection string
	Tags       []string
	UploadDate time.Time
	Size       int64

	// Optional facts read from image EXIF at ingestion time.
	Width   int
	Height  int
	TakenAt *time.Time
}

// Clone returns a copy that shares no slices or pointers with m.
func (m MediaItem) Clone() MediaItem {
	c := m
	c.Tags = slices.Clone(m.Tags)
	if m.TakenAt != nil {
		t := *m.TakenAt
		c.TakenAt = &t
	}
	return c
}

// MetadataPatch carries the user-editable fields of a media item.
// A nil field is left alone; a nil Collection keeps the current collection,
// while a blank one resets it to "recent".
type MetadataPatch struct {
	Title      *string
	Collection *string
	// Tags is a comma separated list, e.g. "beach, summer".
	Tags *string
}

// ParseTags splits a comma separated string into trimmed, non-empty tags.
// Duplicates are dropped, keeping the first occurrence.
func ParseTags(s string) []string {
	tags := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Apply returns m with the patch merged in. A blank title keeps the old one;
// a supplied blank collection falls back to "recent".
func (m MediaItem) Apply(p MetadataPatch) MediaItem {
	out := m.Clone()
	if p.Title != nil {
		if title := strings.TrimSpace(*p.Title); title != "" {
			out.Title = title
		}
	}
	if p.Collection != nil {
		out.Collection = strings.TrimSpace(*p.Collection)
		if out.Collection == "" {
			out.Collection = CollectionRecent
		}
	}
	if p.Tags != nil {
		out.Tags = ParseTags(*p.Tags)
	}
	return out
}
