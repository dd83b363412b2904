package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ObjectFit string

const (
	ObjectFitCover   ObjectFit = "cover"
	ObjectFitContain ObjectFit = "contain"
)

func (f ObjectFit) Valid() bool {
	return f == ObjectFitCover || f == ObjectFitContain
}

// WallpaperConfig describes how a single media item is rendered as the
// background. A value is always fully populated; "no wallpaper" is a nil
// *WallpaperConfig.
type WallpaperConfig struct {
	Type       MediaType
	URL        string
	ObjectFit  ObjectFit
	Opacity    float64
	BlurPx     float64
	Brightness float64
	Muted      bool
	Loop       bool
}

// NewWallpaperConfig returns a config for the given asset with default
// visual parameters.
func NewWallpaperConfig(t MediaType, url string) WallpaperConfig {
	return WallpaperConfig{
		Type:       t,
		URL:        url,
		ObjectFit:  ObjectFitCover,
		Opacity:    1,
		BlurPx:     0,
		Brightness: 1,
		Muted:      true,
		Loop:       true,
	}
}

// WallpaperFromMedia discards any previous tuning: only type and url are
// taken from the item.
func WallpaperFromMedia(item MediaItem) WallpaperConfig {
	return NewWallpaperConfig(item.Type, item.URL)
}

func (c WallpaperConfig) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("wallpaper url is empty")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("wallpaper type %q is not supported", c.Type)
	}
	if !finite(c.Opacity) || !finite(c.BlurPx) || !finite(c.Brightness) {
		return fmt.Errorf("wallpaper parameters must be finite numbers")
	}
	return nil
}

// WallpaperPatch is a partial edit. Nil fields are left untouched.
type WallpaperPatch struct {
	ObjectFit  *ObjectFit
	Opacity    *float64
	BlurPx     *float64
	Brightness *float64
	Muted      *bool
	Loop       *bool
}

// Apply returns a new config with the supplied fields merged over c.
// Opacity is clamped to [0,1], blur to >= 0. Unknown fits and NaN or
// infinite numbers are ignored.
func (c WallpaperConfig) Apply(p WallpaperPatch) WallpaperConfig {
	out := c
	if p.ObjectFit != nil && p.ObjectFit.Valid() {
		out.ObjectFit = *p.ObjectFit
	}
	if p.Opacity != nil && finite(*p.Opacity) {
		out.Opacity = min(max(*p.Opacity, 0), 1)
	}
	if p.BlurPx != nil && finite(*p.BlurPx) {
		out.BlurPx = max(*p.BlurPx, 0)
	}
	if p.Brightness != nil && finite(*p.Brightness) {
		out.Brightness = *p.Brightness
	}
	if p.Muted != nil {
		out.Muted = *p.Muted
	}
	if p.Loop != nil {
		out.Loop = *p.Loop
	}
	return out
}

// Filter renders the blur and brightness parameters as a CSS filter value.
func (c WallpaperConfig) Filter() string {
	return fmt.Sprintf("blur(%spx) brightness(%s)", formatFloat(c.BlurPx), formatFloat(c.Brightness))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
