// Package render composes the desktop into a backbuffer and presents it to
// the framebuffer.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
	"github.com/kikios/kikidesk/internal/pixel"
)

// Mode is how a finished frame reaches the screen. It is chosen once when the
// compositor is built.
type Mode int

const (
	// ModeFlip draws into the hidden half of a double-height framebuffer and
	// flips to it.
	ModeFlip Mode = iota
	// ModeAccelCopy copies a private backbuffer with the 2D accelerator.
	ModeAccelCopy
	// ModeCopy copies a private backbuffer on the CPU.
	ModeCopy
)

func (m Mode) String() string {
	switch m {
	case ModeFlip:
		return "hardware flip"
	case ModeAccelCopy:
		return "accelerated copy"
	default:
		return "software copy"
	}
}

// Frame reports what a Render call did.
type Frame int

const (
	// FrameNone means nothing changed on screen.
	FrameNone Frame = iota
	// FrameFull means the whole desktop was recomposed and presented.
	FrameFull
	// FrameCursor means only the pointer moved on the visible buffer.
	FrameCursor
)

// ErrNoBackbuffer is returned when the compositor cannot get memory to draw into.
var ErrNoBackbuffer = errors.New("failed to allocate backbuffer")

// Stats counts compositor work since startup.
type Stats struct {
	FullFrames    int
	CursorFrames  int
	PresentErrors int
}

// Compositor renders one desktop.
type Compositor struct {
	desk    *app.Desktop
	fb      hal.Framebuffer
	accel   hal.Accelerator // nil unless the device reports Available
	alloc   hal.Allocator
	mode    Mode
	back    *pixel.View
	current int // framebuffer half being drawn in ModeFlip
	cursor  *Cursor
	version string
	stats   Stats
}

// Option customises a Compositor.
type Option func(*Compositor)

// WithVersion sets the version line of the About dialog.
func WithVersion(v string) Option {
	return func(c *Compositor) { c.version = v }
}

// New picks the presentation mode for the desktop's framebuffer and obtains a
// backbuffer. A backbuffer that cannot be allocated is fatal.
func New(d *app.Desktop, opts ...Option) (*Compositor, error) {
	dev := d.Devices()
	c := &Compositor{
		desk:    d,
		fb:      dev.Framebuffer,
		alloc:   dev.Allocator,
		cursor:  NewCursor(),
		version: "dev",
	}
	if dev.Accelerated() {
		c.accel = dev.Accelerator
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.fb.HasHWDoubleBuffer():
		c.mode = ModeFlip
		c.back = c.fb.Backbuffer()
		if c.back == nil {
			return nil, fmt.Errorf("framebuffer reported no hidden half: %w", ErrNoBackbuffer)
		}
		// The half we draw into is the one the next flip shows.
		c.current = 1
		if c.back.Aliases(c.fb.Base()) {
			c.current = 0
		}
	default:
		c.mode = ModeCopy
		if c.accel != nil {
			c.mode = ModeAccelCopy
		}
		back, err := c.alloc.Alloc(d.Width, d.Height)
		if err != nil {
			d.LogError("Backbuffer allocation failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrNoBackbuffer, err)
		}
		c.back = back
	}

	d.LogInfo("Compositor using %s", c.mode)
	return c, nil
}

// Mode returns the presentation mode.
func (c *Compositor) Mode() Mode { return c.mode }

// Backbuffer returns the frame being drawn.
func (c *Compositor) Backbuffer() *pixel.View { return c.back }

// Stats returns frame counters.
func (c *Compositor) Stats() Stats { return c.stats }

// Cursor returns the pointer overlay.
func (c *Compositor) Cursor() *Cursor { return c.cursor }

// Visible returns the frame currently on screen.
func (c *Compositor) Visible() *pixel.View {
	if c.mode != ModeFlip {
		return c.fb.Base()
	}
	return c.half(1 - c.current)
}

func (c *Compositor) half(i int) *pixel.View {
	w, h := c.fb.Width(), c.fb.Height()
	return c.fb.Base().Sub(image.Rect(0, i*h, w, (i+1)*h))
}

// Render brings the screen up to date for a pointer at (px, py). A pending
// full redraw recomposes and presents the whole desktop; otherwise a moved
// pointer is redrawn in place on the visible frame.
func (c *Compositor) Render(px, py int) Frame {
	d := c.desk
	switch {
	case d.NeedsFullRedraw():
		c.Compose(px, py)
		// Save the clean background before the pointer covers it.
		c.cursor.Stamp(c.back, px, py)
		c.present()
		d.FrameDone(true)
		c.stats.FullFrames++
		return FrameFull
	case d.CursorMoved():
		c.cursor.Move(c.Visible(), px, py)
		d.FrameDone(false)
		c.stats.CursorFrames++
		return FrameCursor
	}
	return FrameNone
}

// Compose draws the desktop into the backbuffer without the cursor.
func (c *Compositor) Compose(px, py int) {
	d := c.desk
	s := c.scene(px, py)

	s.background()
	s.menuBar()
	order := d.Order()
	for i := len(order) - 1; i >= 0; i-- {
		s.window(order[i])
	}
	s.dock()
	if d.ContextMenuOpen() {
		s.contextMenu()
	}
	if d.OpenMenu() != app.MenuNone {
		s.dropdown(d.OpenMenu())
	}
	switch d.Modal() {
	case app.ModalAbout:
		s.about(c.version)
	case app.ModalSettings:
		s.settings()
	}
}

func (c *Compositor) present() {
	switch c.mode {
	case ModeFlip:
		if err := c.fb.Flip(c.current); err != nil {
			c.presentFailed(err)
			return
		}
		c.current = 1 - c.current
		c.back = c.fb.Backbuffer()
	case ModeAccelCopy:
		if err := c.accel.FrameCopy(c.fb.Base(), c.back); err != nil {
			c.presentFailed(err)
			c.fb.Base().CopyFrom(c.back)
		}
	default:
		c.fb.Base().CopyFrom(c.back)
	}
}

func (c *Compositor) presentFailed(err error) {
	c.stats.PresentErrors++
	if c.stats.PresentErrors == 1 {
		c.desk.LogWarn("Present (%s) failed: %v", c.mode, err)
	}
}

// Shutdown blanks the screen, shows the first framebuffer half again and
// releases a private backbuffer.
func (c *Compositor) Shutdown() {
	base := c.fb.Base()
	if c.accel != nil {
		if err := c.accel.Fill(base, config.ColorBlack); err != nil {
			base.Fill(config.ColorBlack)
		}
	} else {
		base.Fill(config.ColorBlack)
	}

	if c.mode == ModeFlip {
		if err := c.fb.Flip(0); err != nil {
			c.desk.LogWarn("Reset flip failed: %v", err)
		}
	} else if c.back != nil {
		c.alloc.Free(c.back)
	}
	c.back = nil
	c.cursor.Invalidate()
	c.desk.LogInfo("Desktop exited")
}
