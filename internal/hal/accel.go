package hal

import (
	"fmt"
	"image"

	"github.com/kikios/kikidesk/internal/pixel"
)

// SoftAccelerator emulates a 2D block engine on the CPU and counts the work it
// is given.
type SoftAccelerator struct {
	Copies      int
	Fills       int
	FrameCopies int
}

// Available implements Accelerator.
func (a *SoftAccelerator) Available() bool { return true }

// Copy2D implements Accelerator.
func (a *SoftAccelerator) Copy2D(dst *pixel.View, x, y int, src *pixel.View) error {
	r := image.Rect(x, y, x+src.Width(), y+src.Height())
	if !r.In(dst.Bounds()) {
		return fmt.Errorf("block %v outside destination %v: %w", r, dst.Bounds(), ErrNotAccelerated)
	}
	dst.Blit(x, y, src)
	a.Copies++
	return nil
}

// Fill implements Accelerator.
func (a *SoftAccelerator) Fill(dst *pixel.View, c uint32) error {
	dst.Fill(c)
	a.Fills++
	return nil
}

// FrameCopy implements Accelerator.
func (a *SoftAccelerator) FrameCopy(dst, src *pixel.View) error {
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		return fmt.Errorf("frame copy %dx%d into %dx%d: %w",
			src.Width(), src.Height(), dst.Width(), dst.Height(), ErrNotAccelerated)
	}
	dst.CopyFrom(src)
	a.FrameCopies++
	return nil
}
