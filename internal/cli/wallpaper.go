package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mediavault/internal/models"
)

const wallpaperUsage = "usage: wallpaper set [id] | show | fit cover|contain | opacity <v> | blur <px> | brightness <v> | muted on|off | loop on|off | clear"

func (a *App) Wallpaper(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.showWallpaper()
	}

	sub, rest := strings.ToLower(args[0]), args[1:]
	switch sub {
	case "show":
		return a.showWallpaper()
	case "set":
		return a.setWallpaper(ctx, rest)
	case "clear":
		if err := a.svc.ClearWallpaper(ctx); err != nil {
			return err
		}
		a.printf("Wallpaper cleared.\n")
		return nil
	}

	if len(rest) != 1 {
		return fmt.Errorf(wallpaperUsage)
	}
	patch, err := wallpaperPatch(sub, rest[0])
	if err != nil {
		return err
	}
	cfg, err := a.svc.EditWallpaper(ctx, patch)
	if err != nil {
		return err
	}
	a.printWallpaper(cfg)
	return nil
}

func (a *App) setWallpaper(ctx context.Context, args []string) error {
	var id string
	switch len(args) {
	case 0:
		item, ok := a.svc.Current()
		if !ok {
			return fmt.Errorf("no item open: use 'wallpaper set <id>'")
		}
		id = item.ID
	case 1:
		id = args[0]
	default:
		return fmt.Errorf(wallpaperUsage)
	}

	cfg, err := a.svc.SetWallpaper(ctx, id)
	if err != nil {
		return err
	}
	a.printWallpaper(cfg)
	return nil
}

func (a *App) showWallpaper() error {
	cfg := a.svc.Wallpaper()
	if cfg == nil {
		a.printf("No wallpaper set.\n")
		return nil
	}
	a.printWallpaper(*cfg)
	return nil
}

func (a *App) printWallpaper(c models.WallpaperConfig) {
	a.printf("Wallpaper %s %s\n", c.Type, c.URL)
	a.printf("  fit:     %s\n", c.ObjectFit)
	a.printf("  opacity: %s\n", strconv.FormatFloat(c.Opacity, 'f', -1, 64))
	a.printf("  filter:  %s\n", c.Filter())
	if c.Type == models.MediaTypeVideo {
		a.printf("  muted:   %s\n", onOff(c.Muted))
		a.printf("  loop:    %s\n", onOff(c.Loop))
	}
}

// wallpaperPatch turns one "wallpaper <field> <value>" command into a patch.
func wallpaperPatch(field, value string) (models.WallpaperPatch, error) {
	var p models.WallpaperPatch
	switch field {
	case "fit":
		fit := models.ObjectFit(strings.ToLower(value))
		if !fit.Valid() {
			return p, fmt.Errorf("fit must be cover or contain, got %q", value)
		}
		p.ObjectFit = &fit
	case "opacity":
		v, err := parseOpacity(value)
		if err != nil {
			return p, err
		}
		p.Opacity = &v
	case "blur":
		v, err := parseNumber(strings.TrimSuffix(value, "px"))
		if err != nil {
			return p, fmt.Errorf("blur must be a number of pixels, got %q", value)
		}
		p.BlurPx = &v
	case "brightness":
		v, err := parseNumber(value)
		if err != nil || v < 0 {
			return p, fmt.Errorf("brightness must be a non-negative number, got %q", value)
		}
		p.Brightness = &v
	case "muted":
		v, err := parseOnOff(value)
		if err != nil {
			return p, err
		}
		p.Muted = &v
	case "loop":
		v, err := parseOnOff(value)
		if err != nil {
			return p, err
		}
		p.Loop = &v
	default:
		return p, fmt.Errorf(wallpaperUsage)
	}
	return p, nil
}

// parseOpacity accepts a fraction ("0.4") or a percentage ("40%").
func parseOpacity(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := parseNumber(pct)
		if err != nil {
			return 0, fmt.Errorf("opacity must be a number, got %q", s)
		}
		return v / 100, nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("opacity must be a number, got %q", s)
	}
	return v, nil
}

// parseNumber is strconv.ParseFloat without NaN and the infinities.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
