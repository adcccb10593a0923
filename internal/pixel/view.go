// Package pixel provides a bounds-checked 2D view over 32-bit XRGB pixel memory
// and the drawing primitives the desktop renders with.
package pixel

import (
	"errors"
	"image"
	"image/color"
)

// ErrBadGeometry is returned by Wrap when the backing slice cannot hold the view.
var ErrBadGeometry = errors.New("pixel: backing slice too small for view geometry")

// View is a rectangular window onto XRGB pixel memory (0x00RRGGBB).
// Every accessor clips against the view bounds, so callers never compute offsets.
type View struct {
	pix    []uint32
	width  int
	height int
	stride int // pixels per row in pix, >= width
}

// New allocates a zeroed view of the given size. Non-positive sizes yield an empty view.
func New(width, height int) *View {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &View{
		pix:    make([]uint32, width*height),
		width:  width,
		height: height,
		stride: width,
	}
}

// Wrap builds a view over existing memory, e.g. one half of a double-height framebuffer.
func Wrap(pix []uint32, width, height, stride int) (*View, error) {
	if width < 0 || height < 0 || stride < width {
		return nil, ErrBadGeometry
	}
	if height > 0 && len(pix) < (height-1)*stride+width {
		return nil, ErrBadGeometry
	}
	return &View{pix: pix, width: width, height: height, stride: stride}, nil
}

// Width returns the view width in pixels.
func (v *View) Width() int { return v.width }

// Height returns the view height in pixels.
func (v *View) Height() int { return v.height }

// Stride returns the row pitch in pixels.
func (v *View) Stride() int { return v.stride }

// Size returns the number of addressable pixels.
func (v *View) Size() int { return v.width * v.height }

func (v *View) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.width && y < v.height
}

// Pixel returns the pixel at (x, y), or 0 outside the view.
func (v *View) Pixel(x, y int) uint32 {
	if !v.inside(x, y) {
		return 0
	}
	return v.pix[y*v.stride+x]
}

// SetPixel writes one pixel; writes outside the view are dropped.
func (v *View) SetPixel(x, y int, c uint32) {
	if !v.inside(x, y) {
		return
	}
	v.pix[y*v.stride+x] = c
}

// Row returns the pixels of row y (length Width), or nil when y is out of range.
// The slice aliases the view memory.
func (v *View) Row(y int) []uint32 {
	if y < 0 || y >= v.height {
		return nil
	}
	off := y * v.stride
	return v.pix[off : off+v.width]
}

// Fill sets every pixel of the view to c.
func (v *View) Fill(c uint32) {
	for y := 0; y < v.height; y++ {
		row := v.Row(y)
		for i := range row {
			row[i] = c
		}
	}
}

// CopyRow copies src into row dstY starting at column dstX, clipping on both
// sides. It returns the number of pixels written.
func (v *View) CopyRow(dstX, dstY int, src []uint32) int {
	row := v.Row(dstY)
	if row == nil {
		return 0
	}
	if dstX < 0 {
		if -dstX >= len(src) {
			return 0
		}
		src = src[-dstX:]
		dstX = 0
	}
	if dstX >= v.width {
		return 0
	}
	return copy(row[dstX:], src)
}

// Sub returns a view sharing memory with v, restricted to r ∩ bounds.
func (v *View) Sub(r image.Rectangle) *View {
	r = r.Intersect(image.Rect(0, 0, v.width, v.height))
	if r.Empty() {
		return &View{}
	}
	off := r.Min.Y*v.stride + r.Min.X
	end := (r.Max.Y-1)*v.stride + r.Max.X
	return &View{
		pix:    v.pix[off:end],
		width:  r.Dx(),
		height: r.Dy(),
		stride: v.stride,
	}
}

// CopyFrom copies the overlapping top-left region of src into v row by row.
func (v *View) CopyFrom(src *View) {
	h := min(v.height, src.height)
	for y := 0; y < h; y++ {
		copy(v.Row(y), src.Row(y))
	}
}

// Equal reports whether both views have the same size and pixels.
func (v *View) Equal(o *View) bool {
	if v.width != o.width || v.height != o.height {
		return false
	}
	for y := 0; y < v.height; y++ {
		a, b := v.Row(y), o.Row(y)
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// Aliases reports whether v and o start at the same pixel in memory.
func (v *View) Aliases(o *View) bool {
	if o == nil || len(v.pix) == 0 || len(o.pix) == 0 {
		return false
	}
	return &v.pix[0] == &o.pix[0]
}

// Clone returns a tightly packed copy of v.
func (v *View) Clone() *View {
	c := New(v.width, v.height)
	c.CopyFrom(v)
	return c
}

// ColorModel implements image.Image.
func (v *View) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (v *View) Bounds() image.Rectangle { return image.Rect(0, 0, v.width, v.height) }

// At implements image.Image.
func (v *View) At(x, y int) color.Color { return ToColor(v.Pixel(x, y)) }

// Set implements draw.Image so x/image text and scalers can render straight into a view.
func (v *View) Set(x, y int, c color.Color) { v.SetPixel(x, y, FromColor(c)) }

// RGBA converts the view into a standalone image.RGBA.
func (v *View) RGBA() *image.RGBA {
	img := image.NewRGBA(v.Bounds())
	for y := 0; y < v.height; y++ {
		row := v.Row(y)
		for x, c := range row {
			o := img.PixOffset(x, y)
			img.Pix[o+0] = R(c)
			img.Pix[o+1] = G(c)
			img.Pix[o+2] = B(c)
			img.Pix[o+3] = 0xff
		}
	}
	return img
}

// R, G and B extract colour channels from an XRGB pixel.
func R(c uint32) uint8 { return uint8(c >> 16) }
func G(c uint32) uint8 { return uint8(c >> 8) }
func B(c uint32) uint8 { return uint8(c) }

// RGB packs channels into an XRGB pixel.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ToColor converts an XRGB pixel to an opaque color.RGBA.
func ToColor(c uint32) color.RGBA {
	return color.RGBA{R: R(c), G: G(c), B: B(c), A: 0xff}
}

// FromColor converts any colour to XRGB, dropping alpha.
func FromColor(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
