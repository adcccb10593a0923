package config

import (
	"fmt"
	"image/color"
	"sync"

	tint "github.com/lrstanley/bubbletint/v2"
)

// The tint registry keeps a process-wide current theme, so lookups are serialised.
var (
	tintMu   sync.Mutex
	tintOnce sync.Once
)

// lookupTint returns the named terminal colour scheme (e.g. dracula, nord, tokyonight).
func lookupTint(id string) (*tint.Tint, bool) {
	tintMu.Lock()
	defer tintMu.Unlock()
	tintOnce.Do(func() { tint.NewDefaultRegistry() })
	if !tint.SetTintID(id) {
		return nil, false
	}
	return tint.Current(), true
}

// HasTint reports whether id names a known colour scheme.
func HasTint(id string) bool {
	_, ok := lookupTint(id)
	return ok
}

// ApplyTint recolours the accent, highlight and wallpaper gradient of p
// from a terminal colour scheme. An empty id returns p unchanged.
func ApplyTint(p Palette, id string) (Palette, error) {
	if id == "" {
		return p, nil
	}
	t, ok := lookupTint(id)
	if !ok {
		return p, fmt.Errorf("unknown tint %q", id)
	}
	p.Accent = pixelOf(t.Blue, p.Accent)
	p.Highlight = pixelOf(t.BrightBlue, p.Highlight)
	p.GradientTop = pixelOf(t.Purple, p.GradientTop)
	p.GradientBot = pixelOf(t.Bg, p.GradientBot)
	return p, nil
}

func pixelOf(c color.Color, fallback uint32) uint32 {
	if c == nil {
		return fallback
	}
	r, g, b, _ := c.RGBA()
	return (r>>8)<<16 | (g>>8)<<8 | b>>8
}
