// Package config provides layout constants, colour palettes and user settings for the desktop.
package config

import "time"

// =============================================================================
// Screen Defaults
// =============================================================================

const (
	// DefaultScreenWidth is the framebuffer width used when none is configured
	DefaultScreenWidth = 1024

	// DefaultScreenHeight is the framebuffer height used when none is configured
	DefaultScreenHeight = 768

	// MinScreenWidth is the narrowest framebuffer the chrome can lay out on
	MinScreenWidth = 320

	// MinScreenHeight is the shortest framebuffer the chrome can lay out on
	MinScreenHeight = 240
)

// =============================================================================
// Chrome Layout
// =============================================================================

const (
	// MenuBarHeight is the height of the top menu strip
	MenuBarHeight = 28

	// DockHeight is the height reserved for the dock at the bottom of the screen
	DockHeight = 70

	// TitleBarHeight is the chrome height of every window; content sits below it
	TitleBarHeight = 28

	// CornerRadius is the rounding of window corners in fancy mode
	CornerRadius = 10

	// ShadowBlur is the number of shadow layers drawn around windows
	ShadowBlur = 4

	// ShadowOffset shifts the window shadow right and down
	ShadowOffset = 2

	// TrafficLightRadius is the radius of the close/minimize/maximize buttons
	TrafficLightRadius = 6

	// TrafficLightSpacing is the distance between button centres
	TrafficLightSpacing = 20

	// TrafficLightStartX is the offset of the close button centre from the window edge
	TrafficLightStartX = 14

	// ResizeHandleSize is the side of the square resize handle at the bottom-right corner
	ResizeHandleSize = 15

	// MinWindowWidth is the smallest width an interactive resize can produce
	MinWindowWidth = 100

	// MinWindowHeight is the smallest height an interactive resize can produce
	MinWindowHeight = 60

	// CursorSize is the side of the mouse cursor bitmap
	CursorSize = 16

	// GlyphWidth is the advance of one character in the built-in face
	GlyphWidth = 7

	// MenuCharWidth is the per-character width used to size dropdowns
	MenuCharWidth = 8

	// MenuItemHeight is the height of a dropdown or context menu row
	MenuItemHeight = 24
)

// =============================================================================
// Dock Layout
// =============================================================================

const (
	// DockIconSize is the side of a dock icon
	DockIconSize = 32

	// DockIconPadding is the gap between dock icons
	DockIconPadding = 32

	// DockLabelHeight is the space reserved under icons for labels
	DockLabelHeight = 14

	// DockPillHeight is the height of the rounded dock background
	DockPillHeight = 58

	// DockPillRadius is the corner radius of the dock background
	DockPillRadius = 16

	// DockPreviewWidth is the width of a minimized-window preview
	DockPreviewWidth = 40

	// DockPreviewHeight is the height of a minimized-window preview
	DockPreviewHeight = 30

	// DockPreviewGap is the space between consecutive previews
	DockPreviewGap = 8

	// ContextMenuWidth is the width of the dock icon context menu
	ContextMenuWidth = 120

	// ContextMenuHeight is the height of the dock icon context menu
	ContextMenuHeight = 32
)

// =============================================================================
// Dialogs
// =============================================================================

const (
	// AboutWidth is the width of the About dialog
	AboutWidth = 320

	// AboutHeight is the height of the About dialog
	AboutHeight = 220

	// SettingsWidth is the width of the Settings dialog
	SettingsWidth = 360

	// SettingsHeight is the height of the Settings dialog
	SettingsHeight = 280

	// DialogButtonWidth is the width of the Settings option buttons
	DialogButtonWidth = 100

	// DialogButtonHeight is the height of the Settings option buttons
	DialogButtonHeight = 30
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxWindows is the number of window slots in the registry
	MaxWindows = 16

	// MaxTitleLen bounds window titles; titles keep at most MaxTitleLen-1 bytes
	MaxTitleLen = 32

	// EventQueueSize is the per-window event queue capacity
	EventQueueSize = 32

	// MaxLogMessages bounds the in-memory desktop log
	MaxLogMessages = 100
)

// =============================================================================
// Timing
// =============================================================================

const (
	// NormalFPS is the tick rate of the desktop loop
	NormalFPS = 60

	// ClockRefreshInterval is how often the menu bar clock is repainted
	ClockRefreshInterval = time.Second

	// ConfigReloadDebounce collapses bursts of filesystem events into one reload
	ConfigReloadDebounce = 100 * time.Millisecond
)
