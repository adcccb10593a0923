package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Config is the user configuration stored as TOML.
type Config struct {
	Display     DisplayConfig       `toml:"display"`
	Appearance  AppearanceConfig    `toml:"appearance"`
	Dock        DockConfig          `toml:"dock"`
	Log         LogConfig           `toml:"log"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// DisplayConfig describes the emulated framebuffer.
type DisplayConfig struct {
	Width                int  `toml:"width"`
	Height               int  `toml:"height"`
	HardwareDoubleBuffer bool `toml:"hardware_double_buffer"` // present by flipping halves
	Accelerator          bool `toml:"accelerator"`            // 2D block copy/fill engine
	FPS                  int  `toml:"fps"`
}

// AppearanceConfig holds the settings the Settings dialog also edits.
type AppearanceConfig struct {
	Theme     string `toml:"theme"`
	Wallpaper string `toml:"wallpaper"`
	Tint      string `toml:"tint,omitempty"` // terminal colour scheme for accents
	Classic   bool   `toml:"classic"`        // flat chrome; forced on with an accelerator
}

// DockConfig lists the launcher icons.
type DockConfig struct {
	Icons []DockIcon `toml:"icons"`
}

// DockIcon is one launcher entry.
type DockIcon struct {
	Label      string `toml:"label"`
	Exec       string `toml:"exec"`
	Fullscreen bool   `toml:"fullscreen,omitempty"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// SettingsExec is the pseudo executable that opens the Settings dialog instead of a program.
const SettingsExec = "__SETTINGS__"

// DefaultDockIcons returns the stock launcher set.
func DefaultDockIcons() []DockIcon {
	return []DockIcon{
		{Label: "Snake", Exec: "/bin/snake", Fullscreen: true},
		{Label: "Tetris", Exec: "/bin/tetris", Fullscreen: true},
		{Label: "DOOM", Exec: "/bin/doom", Fullscreen: true},
		{Label: "Calc", Exec: "/bin/calc"},
		{Label: "Files", Exec: "/bin/files"},
		{Label: "Paint", Exec: "/bin/paint"},
		{Label: "Hello", Exec: "/bin/hello"},
		{Label: "Term", Exec: "/bin/term"},
		{Label: "SysMon", Exec: "/bin/sysmon"},
		{Label: "KikiCode", Exec: "/bin/kikicode"},
		{Label: "Settings", Exec: SettingsExec},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  DefaultScreenWidth,
			Height: DefaultScreenHeight,
			FPS:    NormalFPS,
		},
		Appearance: AppearanceConfig{
			Theme:     ThemeLight.String(),
			Wallpaper: WallpaperSolid.String(),
		},
		Dock:        DockConfig{Icons: DefaultDockIcons()},
		Log:         LogConfig{Level: "info"},
		Keybindings: DefaultKeybindings(),
	}
}

// Theme returns the parsed theme, falling back to light.
func (c *Config) Theme() Theme {
	t, _ := ParseTheme(c.Appearance.Theme)
	return t
}

// Palette returns the theme colours with the tint applied.
func (c *Config) Palette() Palette {
	p, _ := ApplyTint(c.Theme().Palette(), c.Appearance.Tint)
	return p
}

// Wallpaper returns the parsed wallpaper, falling back to solid.
func (c *Config) Wallpaper() Wallpaper {
	w, _ := ParseWallpaper(c.Appearance.Wallpaper)
	return w
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Width < MinScreenWidth || c.Display.Height < MinScreenHeight {
		errs = append(errs, fmt.Errorf("display %dx%d is smaller than %dx%d",
			c.Display.Width, c.Display.Height, MinScreenWidth, MinScreenHeight))
	}
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.Display.FPS))
	}
	if _, err := ParseTheme(c.Appearance.Theme); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseWallpaper(c.Appearance.Wallpaper); err != nil {
		errs = append(errs, err)
	}
	if c.Appearance.Tint != "" && !HasTint(c.Appearance.Tint) {
		errs = append(errs, fmt.Errorf("unknown tint %q", c.Appearance.Tint))
	}
	for i, icon := range c.Dock.Icons {
		if strings.TrimSpace(icon.Label) == "" || strings.TrimSpace(icon.Exec) == "" {
			errs = append(errs, fmt.Errorf("dock icon %d needs a label and exec path", i))
		}
	}
	return errors.Join(errs...)
}

// Normalize replaces invalid values with defaults so a partially broken file still runs.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Display.Width < MinScreenWidth || c.Display.Height < MinScreenHeight {
		c.Display.Width, c.Display.Height = def.Display.Width, def.Display.Height
	}
	if c.Display.FPS <= 0 {
		c.Display.FPS = def.Display.FPS
	}
	c.Appearance.Theme = c.Theme().String()
	c.Appearance.Wallpaper = c.Wallpaper().String()
	if c.Appearance.Tint != "" && !HasTint(c.Appearance.Tint) {
		c.Appearance.Tint = ""
	}
	icons := c.Dock.Icons[:0]
	for _, icon := range c.Dock.Icons {
		if strings.TrimSpace(icon.Label) != "" && strings.TrimSpace(icon.Exec) != "" {
			icons = append(icons, icon)
		}
	}
	c.Dock.Icons = icons
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// GetConfigPath returns the path of the user config file under the XDG config dir.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("kikidesk", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// GetLogPath returns the path of the desktop log file under the XDG state dir.
func GetLogPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("kikidesk", "kikidesk.log"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve log path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the config file, creating it with defaults on first run.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Load reads a TOML config file. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and normalizes the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Marshal renders the config as commented TOML.
func Marshal(cfg *Config, location string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# kikidesk configuration file\n")
	sb.WriteString("# theme: light | dark\n")
	sb.WriteString("# wallpaper: solid | gradient | pattern\n")
	sb.WriteString("# tint: optional terminal colour scheme for accents (e.g. dracula, nord, tokyonight)\n")
	sb.WriteString("# Theme and wallpaper changes are picked up while the desktop runs.\n")
	if location != "" {
		sb.WriteString("#\n# Configuration location: " + location + "\n")
	}
	sb.WriteString("\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// WriteConfig writes cfg to path, creating parent directories.
func WriteConfig(path string, cfg *Config) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
