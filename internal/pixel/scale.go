package pixel

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ScaleInto resamples src to fill dst entirely.
func ScaleInto(dst, src *View) {
	if dst.Size() == 0 || src.Size() == 0 {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// Thumbnail returns a w×h nearest-neighbour copy of src.
func Thumbnail(src *View, w, h int) *View {
	dst := New(w, h)
	if dst.Size() == 0 || src.Size() == 0 {
		return dst
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// FromImage converts any image into a packed view.
func FromImage(img image.Image) *View {
	b := img.Bounds()
	v := New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := v.Row(y)
		for x := range row {
			row[x] = FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return v
}
