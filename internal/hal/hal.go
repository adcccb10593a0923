// Package hal defines the hardware and system collaborators the desktop talks
// to, together with host implementations that let it run inside a terminal or
// headless under test.
package hal

import (
	"errors"
	"time"

	"github.com/kikios/kikidesk/internal/pixel"
)

// ErrOutOfMemory is returned by allocators that cannot satisfy a request.
var ErrOutOfMemory = errors.New("out of memory")

// ErrNotAccelerated is returned by an accelerator asked to do work it cannot do.
var ErrNotAccelerated = errors.New("operation not accelerated")

// Framebuffer is the display driver.
//
// In hardware double buffer mode the memory holds two stacked frames; Flip
// selects which one is scanned out and Backbuffer returns the other.
type Framebuffer interface {
	Width() int
	Height() int
	Base() *pixel.View // whole framebuffer memory
	HasHWDoubleBuffer() bool
	Flip(buffer int) error
	Backbuffer() *pixel.View
}

// Accelerator is an optional 2D block engine.
type Accelerator interface {
	Available() bool
	// Copy2D copies src to (x, y) in dst. The destination rectangle must lie
	// entirely inside dst.
	Copy2D(dst *pixel.View, x, y int, src *pixel.View) error
	Fill(dst *pixel.View, c uint32) error
	// FrameCopy copies a whole frame of identical geometry.
	FrameCopy(dst, src *pixel.View) error
}

// Pointer is the mouse driver.
type Pointer interface {
	Poll()
	Position() (x, y int)
	Buttons() uint8
}

// Keyboard is the key queue of the input driver.
type Keyboard interface {
	HasKey() bool
	GetKey() int
}

// Allocator owns window content memory.
type Allocator interface {
	Alloc(w, h int) (*pixel.View, error)
	Free(v *pixel.View)
}

// Launcher starts client programs.
type Launcher interface {
	// Spawn starts a windowed program alongside the desktop and returns its process id.
	Spawn(path string) (string, error)
	// Exec runs a fullscreen program that takes over the display until it exits.
	Exec(path string) error
}

// Clock provides wall time for the menu bar.
type Clock interface {
	Now() time.Time
}

// SysInfo reports the figures shown in the About dialog.
type SysInfo interface {
	Memory() (total, used uint64, err error)
	Uptime() (time.Duration, error)
}

// Clipboard backs the Edit menu.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Devices bundles every collaborator the desktop needs. Accelerator may be nil.
type Devices struct {
	Framebuffer Framebuffer
	Accelerator Accelerator
	Pointer     Pointer
	Keyboard    Keyboard
	Allocator   Allocator
	Launcher    Launcher
	Clock       Clock
	SysInfo     SysInfo
	Clipboard   Clipboard
}

// Accelerated reports whether d carries a usable accelerator.
func (d Devices) Accelerated() bool {
	return d.Accelerator != nil && d.Accelerator.Available()
}

// SystemClock reads the host clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }
