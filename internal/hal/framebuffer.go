package hal

import (
	"fmt"
	"image"

	"github.com/kikios/kikidesk/internal/pixel"
)

// MemoryFramebuffer is a framebuffer in host memory. The terminal host scans
// out Displayed() every frame.
type MemoryFramebuffer struct {
	base   *pixel.View
	width  int
	height int
	double bool
	shown  int
	flips  int
}

// NewMemoryFramebuffer allocates a width×height framebuffer, twice as tall when
// double is set.
func NewMemoryFramebuffer(width, height int, double bool) (*MemoryFramebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	rows := height
	if double {
		rows *= 2
	}
	return &MemoryFramebuffer{
		base:   pixel.New(width, rows),
		width:  width,
		height: height,
		double: double,
	}, nil
}

func (f *MemoryFramebuffer) half(i int) *pixel.View {
	return f.base.Sub(image.Rect(0, i*f.height, f.width, (i+1)*f.height))
}

// Width implements Framebuffer.
func (f *MemoryFramebuffer) Width() int { return f.width }

// Height implements Framebuffer.
func (f *MemoryFramebuffer) Height() int { return f.height }

// Base implements Framebuffer.
func (f *MemoryFramebuffer) Base() *pixel.View { return f.base }

// HasHWDoubleBuffer implements Framebuffer.
func (f *MemoryFramebuffer) HasHWDoubleBuffer() bool { return f.double }

// Flip implements Framebuffer.
func (f *MemoryFramebuffer) Flip(buffer int) error {
	if !f.double {
		return fmt.Errorf("flip on single-buffered framebuffer: %w", ErrNotAccelerated)
	}
	if buffer != 0 && buffer != 1 {
		return fmt.Errorf("invalid buffer index %d", buffer)
	}
	f.shown = buffer
	f.flips++
	return nil
}

// Backbuffer implements Framebuffer. On a single-buffered framebuffer it
// returns nil.
func (f *MemoryFramebuffer) Backbuffer() *pixel.View {
	if !f.double {
		return nil
	}
	return f.half(1 - f.shown)
}

// Displayed returns the frame currently scanned out.
func (f *MemoryFramebuffer) Displayed() *pixel.View {
	if !f.double {
		return f.base
	}
	return f.half(f.shown)
}

// Flips returns how many times Flip succeeded.
func (f *MemoryFramebuffer) Flips() int { return f.flips }
