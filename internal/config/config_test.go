package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kikios/kikidesk/internal/config"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Display.Width != config.DefaultScreenWidth || cfg.Display.Height != config.DefaultScreenHeight {
		t.Errorf("Expected %dx%d display, got %dx%d",
			config.DefaultScreenWidth, config.DefaultScreenHeight, cfg.Display.Width, cfg.Display.Height)
	}

	if cfg.Theme() != config.ThemeLight {
		t.Errorf("Expected light theme by default, got %s", cfg.Theme())
	}

	if cfg.Wallpaper() != config.WallpaperSolid {
		t.Errorf("Expected solid wallpaper by default, got %s", cfg.Wallpaper())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestDefaultDockIcons(t *testing.T) {
	icons := config.DefaultDockIcons()

	if len(icons) != 11 {
		t.Fatalf("Expected 11 dock icons, got %d", len(icons))
	}

	fullscreen := 0
	for _, icon := range icons {
		if icon.Fullscreen {
			fullscreen++
		}
	}
	if fullscreen != 3 {
		t.Errorf("Expected 3 fullscreen icons, got %d", fullscreen)
	}

	if last := icons[len(icons)-1]; last.Exec != config.SettingsExec {
		t.Errorf("Expected last icon to open settings, got %q", last.Exec)
	}
}

// =============================================================================
// Theme and Wallpaper Parsing Tests
// =============================================================================

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    config.Theme
		wantErr bool
	}{
		{"light", config.ThemeLight, false},
		{"Dark", config.ThemeDark, false},
		{"", config.ThemeLight, false},
		{"solarized", config.ThemeLight, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseTheme(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTheme(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWallpaper(t *testing.T) {
	tests := []struct {
		in      string
		want    config.Wallpaper
		wantErr bool
	}{
		{"solid", config.WallpaperSolid, false},
		{"gradient", config.WallpaperGradient, false},
		{"pattern", config.WallpaperPattern, false},
		{"checker", config.WallpaperPattern, false},
		{"photo", config.WallpaperSolid, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseWallpaper(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWallpaper(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWallpaper(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestThemePalettes(t *testing.T) {
	if config.ThemeLight.Palette().Desktop != 0xFFFFFF {
		t.Errorf("Light desktop colour = %06X", config.ThemeLight.Palette().Desktop)
	}
	if config.ThemeDark.Palette().Desktop != 0x1E1E1E {
		t.Errorf("Dark desktop colour = %06X", config.ThemeDark.Palette().Desktop)
	}
}

func TestApplyTint(t *testing.T) {
	base := config.ThemeLight.Palette()

	same, err := config.ApplyTint(base, "")
	if err != nil || same != base {
		t.Errorf("empty tint changed the palette: %+v, %v", same, err)
	}

	if _, err := config.ApplyTint(base, "no-such-scheme"); err == nil {
		t.Error("Expected an error for an unknown tint")
	}

	tinted, err := config.ApplyTint(base, "dracula")
	if err != nil {
		t.Fatalf("ApplyTint(dracula): %v", err)
	}
	if tinted.Accent == base.Accent {
		t.Error("Expected dracula to recolour the accent")
	}
	if tinted.Desktop != base.Desktop || tinted.WindowBG != base.WindowBG {
		t.Error("Tint must leave window and desktop colours alone")
	}
}

func TestNormalizeTint(t *testing.T) {
	tests := []struct {
		name string
		tint string
		want string
	}{
		{"known", "dracula", "dracula"},
		{"unknown", "no-such-tint", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Appearance.Tint = tt.tint
			cfg.Normalize()
			if cfg.Appearance.Tint != tt.want {
				t.Errorf("Normalize tint %q = %q, want %q", tt.tint, cfg.Appearance.Tint, tt.want)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate after Normalize: %v", err)
			}
		})
	}
}

func TestUnknownTintIsDropped(t *testing.T) {
	cfg, err := config.Parse([]byte("[appearance]\ntint = \"no-such-scheme\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Appearance.Tint != "" {
		t.Errorf("Expected unknown tint to be cleared, got %q", cfg.Appearance.Tint)
	}
	if cfg.Palette() != config.ThemeLight.Palette() {
		t.Error("Expected the plain light palette")
	}
}

// =============================================================================
// Loading Tests
// =============================================================================

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := config.Parse([]byte("[appearance]\ntheme = \"dark\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme() != config.ThemeDark {
		t.Errorf("Expected dark theme, got %s", cfg.Theme())
	}
	if cfg.Display.Width != config.DefaultScreenWidth {
		t.Errorf("Expected default width to survive, got %d", cfg.Display.Width)
	}
	if len(cfg.Dock.Icons) != len(config.DefaultDockIcons()) {
		t.Errorf("Expected default dock icons to survive, got %d", len(cfg.Dock.Icons))
	}
}

func TestParseNormalizesInvalidValues(t *testing.T) {
	data := `
[display]
width = 10
height = 10
fps = 0

[appearance]
theme = "neon"
wallpaper = "plaid"
`
	cfg, err := config.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Display.Width != config.DefaultScreenWidth || cfg.Display.Height != config.DefaultScreenHeight {
		t.Errorf("Expected tiny display to be replaced, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.FPS != config.NormalFPS {
		t.Errorf("Expected fps %d, got %d", config.NormalFPS, cfg.Display.FPS)
	}
	if cfg.Appearance.Theme != "light" || cfg.Appearance.Wallpaper != "solid" {
		t.Errorf("Expected fallbacks, got theme=%q wallpaper=%q", cfg.Appearance.Theme, cfg.Appearance.Wallpaper)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Normalized config should validate, got %v", err)
	}
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	if _, err := config.Parse([]byte("[display\nwidth = ")); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.FPS = -1
	cfg.Appearance.Theme = "neon"
	cfg.Appearance.Tint = "no-such-tint"
	cfg.Dock.Icons = append(cfg.Dock.Icons, config.DockIcon{Label: "Broken"})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"fps", "neon", "no-such-tint", "dock icon"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got %v", want, err)
		}
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := config.DefaultConfig()
	cfg.Appearance.Wallpaper = "gradient"
	cfg.Appearance.Classic = true

	if err := config.WriteConfig(path, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "# kikidesk configuration file") {
		t.Error("Expected header comment at top of file")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Wallpaper() != config.WallpaperGradient || !loaded.Appearance.Classic {
		t.Errorf("Round trip lost settings: %+v", loaded.Appearance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// =============================================================================
// Keybinding Tests
// =============================================================================

func TestKeybindRegistryDefaults(t *testing.T) {
	r := config.NewKeybindRegistry(config.DefaultConfig())

	if got := r.Action("ctrl+q"); got != config.ActionQuit {
		t.Errorf("Expected ctrl+q to quit, got %q", got)
	}
	if got := r.Action("CTRL+Q"); got != config.ActionQuit {
		t.Errorf("Expected key lookup to ignore case, got %q", got)
	}
	if got := r.Action("x"); got != "" {
		t.Errorf("Expected unbound key to have no action, got %q", got)
	}
}

func TestKeybindRegistryOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = map[string][]string{
		config.ActionQuit: {"ctrl+x", "f10"},
		"launch_rocket":   {"ctrl+r"},
	}
	r := config.NewKeybindRegistry(cfg)

	if got := r.Action("f10"); got != config.ActionQuit {
		t.Errorf("Expected f10 to quit, got %q", got)
	}
	if got := r.Action("ctrl+q"); got != "" {
		t.Errorf("Expected overridden default to be unbound, got %q", got)
	}
	if got := r.Action("ctrl+r"); got != "" {
		t.Errorf("Expected unknown action to be ignored, got %q", got)
	}
	if got := r.Action("ctrl+s"); got != config.ActionScreenshot {
		t.Errorf("Expected untouched default to remain, got %q", got)
	}
}

func TestGetKeybindingsSorted(t *testing.T) {
	bindings := config.GetKeybindings(config.NewKeybindRegistry(nil))
	if len(bindings) != len(config.DefaultKeybindings()) {
		t.Fatalf("Expected %d bindings, got %d", len(config.DefaultKeybindings()), len(bindings))
	}
	for _, b := range bindings {
		if b.Key == "" || b.Description == "" {
			t.Errorf("Incomplete binding %+v", b)
		}
	}
}

// =============================================================================
// Hot Reload Tests
// =============================================================================

func TestWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, _, err := config.Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Appearance.Theme = "dark"
	if err := config.WriteConfig(path, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	select {
	case got := <-updates:
		if got.Theme() != config.ThemeDark {
			t.Errorf("Expected dark theme after reload, got %s", got.Theme())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkParse(b *testing.B) {
	data, err := config.Marshal(config.DefaultConfig(), "")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for b.Loop() {
		_, _ = config.Parse(data)
	}
}
