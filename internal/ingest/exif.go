package ingest

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

type imageFacts struct {
	Width   int
	Height  int
	TakenAt *time.Time
}

// readImageFacts pulls capture time and pixel size from EXIF, falling back
// to the image header for the size. Missing facts stay zero.
func readImageFacts(data []byte) imageFacts {
	var facts imageFacts

	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		if tm, err := x.DateTime(); err == nil {
			facts.TakenAt = &tm
		}
		if tag, err := x.Get(exif.PixelXDimension); err == nil {
			if w, err := tag.Int(0); err == nil {
				facts.Width = w
			}
		}
		if tag, err := x.Get(exif.PixelYDimension); err == nil {
			if h, err := tag.Int(0); err == nil {
				facts.Height = h
			}
		}
	}

	if facts.Width == 0 || facts.Height == 0 {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			facts.Width, facts.Height = cfg.Width, cfg.Height
		}
	}
	return facts
}
