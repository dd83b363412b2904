package library

import (
	"time"

	"github.com/dmitrijs2005/mediavault/internal/models"
)

const unsplash = "https://images.unsplash.com/"

// DemoItems is the fixed library a fresh vault starts with.
func DemoItems(now time.Time) []models.MediaItem {
	photo := func(id, photoID, title, collection string, tags []string, size int64) models.MediaItem {
		return models.MediaItem{
			ID:         id,
			Type:       models.MediaTypeImage,
			URL:        unsplash + photoID + "?auto=format&fit=crop&w=1200&q=80",
			Thumbnail:  unsplash + photoID + "?auto=format&fit=crop&w=400&q=80",
			Title:      title,
			Collection: collection,
			Tags:       tags,
			UploadDate: now,
			Size:       size,
		}
	}

	return []models.MediaItem{
		photo("1", "photo-1649972904349-6e44c42644a7", "Personal Photo 1", "favorites", []string{"personal", "private"}, 2048000),
		photo("2", "photo-1581091226825-a6a2a5aee158", "Personal Photo 2", "recent", []string{"personal", "work"}, 1536000),
		photo("3", "photo-1721322800607-8c38375eef04", "Personal Photo 3", "favorites", []string{"personal", "home"}, 1824000),
	}
}
