package pixel

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the bitmap face all chrome text is drawn with.
var Face font.Face = basicfont.Face7x13

// TextHeight is the line height of Face in pixels.
const TextHeight = 13

// DrawString draws s with its top-left corner at (x, y). Only glyph pixels are
// touched, so the caller paints the background first.
func (v *View) DrawString(x, y int, s string, fg uint32) {
	if s == "" {
		return
	}
	d := font.Drawer{
		Dst:  v,
		Src:  image.NewUniform(ToColor(fg)),
		Face: Face,
		Dot:  fixed.P(x, y+Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// MeasureString returns the advance width of s in pixels.
func MeasureString(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// TruncateToWidth shortens s so it fits in maxW pixels, ending with ".." when cut.
func TruncateToWidth(s string, maxW int) string {
	if MeasureString(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if c := string(r) + ".."; MeasureString(c) <= maxW {
			return c
		}
	}
	return ""
}
