// Package app holds the desktop state: the window registry, per-window event
// queues and the chrome (menu bar, dock, dialogs) that surrounds them.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
)

// LogMessage is one entry of the in-memory desktop log.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Desktop owns every window and all chrome state. It is driven from a single
// goroutine and holds no locks.
type Desktop struct {
	Width  int
	Height int

	windows      [config.MaxWindows]Window
	order        []Handle // front to back
	focused      Handle
	currentOwner string // process id stamped on new windows
	dropped      int    // events lost to full queues
	serial       uint64 // last window serial handed out

	devices   hal.Devices
	theme     config.Theme
	palette   config.Palette
	tint      string
	wallpaper config.Wallpaper
	classic   bool
	running   bool

	needsFullRedraw bool
	cursorMoved     bool

	// Chrome
	dock      []DockIcon
	dockPill  dockPill
	openMenu  MenuID
	menuSel   int // keyboard selection in the open menu
	modal     Modal
	ctxMenu   contextMenu
	clockDate string
	clockTime string
	lastClock time.Time

	SessionID   string
	LogMessages []LogMessage
	logger      *log.Logger
}

// Option customises a Desktop at construction.
type Option func(*Desktop)

// WithLogger sends desktop log lines to l as well as to the in-memory log.
func WithLogger(l *log.Logger) Option {
	return func(d *Desktop) { d.logger = l }
}

// New builds a desktop for the framebuffer in devices using the appearance
// and dock settings from cfg.
func New(devices hal.Devices, cfg *config.Config, opts ...Option) (*Desktop, error) {
	if devices.Framebuffer == nil {
		return nil, errors.New("desktop needs a framebuffer")
	}
	if devices.Allocator == nil {
		return nil, errors.New("desktop needs an allocator")
	}
	if devices.Clock == nil {
		devices.Clock = hal.SystemClock{}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	d := &Desktop{
		Width:     devices.Framebuffer.Width(),
		Height:    devices.Framebuffer.Height(),
		focused:   InvalidHandle,
		devices:   devices,
		running:   true,
		openMenu:  MenuNone,
		menuSel:   -1,
		ctxMenu:   contextMenu{icon: -1},
		SessionID: uuid.NewString(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.Width < config.MinScreenWidth || d.Height < config.MinScreenHeight {
		return nil, fmt.Errorf("framebuffer %dx%d is smaller than %dx%d",
			d.Width, d.Height, config.MinScreenWidth, config.MinScreenHeight)
	}

	d.ApplyAppearance(cfg)
	d.layoutDock(cfg.Dock.Icons)
	d.RefreshClock()
	d.needsFullRedraw = true
	d.LogInfo("Desktop started (%dx%d, session %s)", d.Width, d.Height, d.SessionID[:8])
	return d, nil
}

// Devices returns the collaborators the desktop was built with.
func (d *Desktop) Devices() hal.Devices { return d.devices }

// Logger returns the structured logger.
func (d *Desktop) Logger() *log.Logger { return d.logger }

// Log adds a message to the in-memory log and forwards it to the logger.
func (d *Desktop) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	d.LogMessages = append(d.LogMessages, LogMessage{
		Time:    d.devices.Clock.Now(),
		Level:   level,
		Message: message,
	})
	if len(d.LogMessages) > config.MaxLogMessages {
		d.LogMessages = d.LogMessages[len(d.LogMessages)-config.MaxLogMessages:]
	}

	switch level {
	case "ERROR":
		d.logger.Error(message)
	case "WARN":
		d.logger.Warn(message)
	default:
		d.logger.Info(message)
	}
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (d *Desktop) LogWarn(format string, args ...any) {
	d.Log("WARN", format, args...)
}

// LogError logs an error message.
func (d *Desktop) LogError(format string, args ...any) {
	d.Log("ERROR", format, args...)
}

// RequestRedraw schedules a full recomposition.
func (d *Desktop) RequestRedraw() { d.needsFullRedraw = true }

// NeedsFullRedraw reports whether a full recomposition is pending.
func (d *Desktop) NeedsFullRedraw() bool { return d.needsFullRedraw }

// MarkCursorMoved records pointer motion that changed nothing else.
func (d *Desktop) MarkCursorMoved() { d.cursorMoved = true }

// CursorMoved reports whether the cursor needs repainting.
func (d *Desktop) CursorMoved() bool { return d.cursorMoved }

// FrameDone clears the redraw flags after a render cycle. Window dirty flags
// are cleared only when the cycle recomposed the whole frame.
func (d *Desktop) FrameDone(full bool) {
	if full {
		d.ClearDirty()
		d.needsFullRedraw = false
	}
	d.cursorMoved = false
}

// Running reports whether the desktop loop should keep going.
func (d *Desktop) Running() bool { return d.running }

// Quit stops the desktop loop after the current tick.
func (d *Desktop) Quit() {
	d.running = false
	d.LogInfo("Quit requested")
}

// Focused returns the focused window, or InvalidHandle.
func (d *Desktop) Focused() Handle { return d.focused }

// Order returns a copy of the z-order, front to back.
func (d *Desktop) Order() []Handle {
	return append([]Handle(nil), d.order...)
}

// ActiveCount returns the number of open windows.
func (d *Desktop) ActiveCount() int { return len(d.order) }

// DroppedEvents returns how many events were discarded because a queue was full.
func (d *Desktop) DroppedEvents() int { return d.dropped }

// SetCurrentOwner sets the process id recorded on windows created from now on.
func (d *Desktop) SetCurrentOwner(pid string) { d.currentOwner = pid }

// Theme returns the active theme.
func (d *Desktop) Theme() config.Theme { return d.theme }

// Palette returns the colours of the active theme.
func (d *Desktop) Palette() config.Palette { return d.palette }

// Wallpaper returns the active wallpaper style.
func (d *Desktop) Wallpaper() config.Wallpaper { return d.wallpaper }

// Classic reports whether chrome is drawn flat.
func (d *Desktop) Classic() bool { return d.classic }

// SetTheme switches palettes.
func (d *Desktop) SetTheme(t config.Theme) {
	p, _ := config.ApplyTint(t.Palette(), d.tint)
	if d.theme == t && d.palette == p {
		return
	}
	d.theme = t
	d.palette = p
	d.LogInfo("Theme set to %s", t)
	d.RequestRedraw()
}

// SetWallpaper switches the desktop background style.
func (d *Desktop) SetWallpaper(w config.Wallpaper) {
	if d.wallpaper == w {
		return
	}
	d.wallpaper = w
	d.LogInfo("Wallpaper set to %s", w)
	d.RequestRedraw()
}

// SetClassic toggles flat chrome. It stays on while an accelerator is present.
func (d *Desktop) SetClassic(on bool) {
	on = on || d.devices.Accelerated()
	if d.classic == on {
		return
	}
	d.classic = on
	d.RequestRedraw()
}

// ApplyAppearance takes theme, wallpaper and classic mode from cfg.
func (d *Desktop) ApplyAppearance(cfg *config.Config) {
	d.theme = cfg.Theme()
	d.tint = cfg.Appearance.Tint
	d.palette = cfg.Palette()
	d.wallpaper = cfg.Wallpaper()
	d.classic = cfg.Appearance.Classic || d.devices.Accelerated()
	d.RequestRedraw()
}

// RefreshClock updates the menu bar clock text at most once per
// ClockRefreshInterval and requests a redraw when it changes.
func (d *Desktop) RefreshClock() {
	now := d.devices.Clock.Now()
	if !d.lastClock.IsZero() && now.Sub(d.lastClock) < config.ClockRefreshInterval {
		return
	}
	d.lastClock = now
	date, clock := now.Format("Mon Jan 2"), now.Format("15:04")
	if date != d.clockDate || clock != d.clockTime {
		d.clockDate, d.clockTime = date, clock
		d.RequestRedraw()
	}
}

// ClockText returns the cached menu bar date and time.
func (d *Desktop) ClockText() (date, clock string) { return d.clockDate, d.clockTime }
