package config

import (
	"fmt"
	"strings"
)

// Palette holds every themeable colour as a 0x00RRGGBB pixel.
type Palette struct {
	Desktop       uint32
	WindowBG      uint32
	WindowBorder  uint32
	TitleActive   uint32
	TitleInactive uint32
	TitleText     uint32
	Shadow        uint32
	MenuBG        uint32
	MenuText      uint32
	Highlight     uint32
	DockBG        uint32
	DockBorder    uint32
	Accent        uint32
	GradientTop   uint32 // wallpaper gradient start
	GradientBot   uint32 // wallpaper gradient end
}

// LightPalette is the default theme.
var LightPalette = Palette{
	Desktop:       0xFFFFFF,
	WindowBG:      0xFFFFFF,
	WindowBorder:  0xD0D0D0,
	TitleActive:   0xF0F0F0,
	TitleInactive: 0xE8E8E8,
	TitleText:     0x333333,
	Shadow:        0xAAAAAA,
	MenuBG:        0xF5F5F5,
	MenuText:      0x222222,
	Highlight:     0x007AFF,
	DockBG:        0xF0F0F0,
	DockBorder:    0xCCCCCC,
	Accent:        0x007AFF,
	GradientTop:   0xB0D4F1,
	GradientBot:   0xE8F4FC,
}

// DarkPalette is the dark theme.
var DarkPalette = Palette{
	Desktop:       0x1E1E1E,
	WindowBG:      0x2D2D2D,
	WindowBorder:  0x404040,
	TitleActive:   0x3C3C3C,
	TitleInactive: 0x333333,
	TitleText:     0xFFFFFF,
	Shadow:        0x000000,
	MenuBG:        0x2D2D2D,
	MenuText:      0xFFFFFF,
	Highlight:     0x007AFF,
	DockBG:        0x2D2D2D,
	DockBorder:    0x505050,
	Accent:        0x007AFF,
	GradientTop:   0x303050,
	GradientBot:   0x101020,
}

// Colours shared by both themes.
const (
	ColorBlack         uint32 = 0x000000
	ColorWhite         uint32 = 0xFFFFFF
	ColorButtonClose   uint32 = 0xFF5F57
	ColorButtonMin     uint32 = 0xFFBD2E
	ColorButtonZoom    uint32 = 0x28C840
	ColorButtonOff     uint32 = 0xCCCCCC
	ColorAccentHover   uint32 = 0x339FFF
	ColorClassicTitle  uint32 = 0xDDDDDD
	ColorClassicIdle   uint32 = 0xE8E8E8
	ColorGradientHiOn  uint32 = 0xE8E8E8
	ColorGradientLoOn  uint32 = 0xD0D0D0
	ColorGradientHiOff uint32 = 0xF5F5F5
	ColorGradientLoOff uint32 = 0xE8E8E8
)

// Theme selects a palette.
type Theme int

const (
	// ThemeLight is the default bright palette.
	ThemeLight Theme = iota
	// ThemeDark is the dark palette.
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Palette returns the colours for the theme.
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// ParseTheme converts a config string into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("unknown theme %q", s)
}

// Wallpaper selects how the desktop background is painted.
type Wallpaper int

const (
	// WallpaperSolid fills the desktop with the palette colour.
	WallpaperSolid Wallpaper = iota
	// WallpaperGradient paints a vertical gradient.
	WallpaperGradient
	// WallpaperPattern paints a one-pixel checkerboard.
	WallpaperPattern
)

func (w Wallpaper) String() string {
	switch w {
	case WallpaperGradient:
		return "gradient"
	case WallpaperPattern:
		return "pattern"
	default:
		return "solid"
	}
}

// ParseWallpaper converts a config string into a Wallpaper.
func ParseWallpaper(s string) (Wallpaper, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return WallpaperSolid, nil
	case "gradient":
		return WallpaperGradient, nil
	case "pattern", "checker":
		return WallpaperPattern, nil
	}
	return WallpaperSolid, fmt.Errorf("unknown wallpaper %q", s)
}
