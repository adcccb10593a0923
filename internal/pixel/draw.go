package pixel

import "image"

// clip intersects a rectangle given by origin and size with the view bounds.
func (v *View) clip(x, y, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+w, y+h).Intersect(v.Bounds())
}

// FillRect fills a clipped rectangle with c.
func (v *View) FillRect(x, y, w, h int, c uint32) {
	r := v.clip(x, y, w, h)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := v.Row(py)[r.Min.X:r.Max.X]
		for i := range row {
			row[i] = c
		}
	}
}

// HLine draws a horizontal line of width w.
func (v *View) HLine(x, y, w int, c uint32) { v.FillRect(x, y, w, 1, c) }

// VLine draws a vertical line of height h.
func (v *View) VLine(x, y, h int, c uint32) { v.FillRect(x, y, 1, h, c) }

// DrawRect draws a one-pixel rectangle outline.
func (v *View) DrawRect(x, y, w, h int, c uint32) {
	v.HLine(x, y, w, c)
	v.HLine(x, y+h-1, w, c)
	v.VLine(x, y, h, c)
	v.VLine(x+w-1, y, h, c)
}

// Blend mixes src over dst with alpha in 0..255.
func Blend(src, dst uint32, alpha uint8) uint32 {
	switch alpha {
	case 255:
		return src
	case 0:
		return dst
	}
	a := uint32(alpha)
	inv := 255 - a
	r := (uint32(R(src))*a + uint32(R(dst))*inv) / 255
	g := (uint32(G(src))*a + uint32(G(dst))*inv) / 255
	b := (uint32(B(src))*a + uint32(B(dst))*inv) / 255
	return r<<16 | g<<8 | b
}

// Lerp interpolates from c1 (t=0) to c2 (t=255).
func Lerp(c1, c2 uint32, t uint8) uint32 {
	tt := uint32(t)
	inv := 255 - tt
	r := (uint32(R(c1))*inv + uint32(R(c2))*tt) / 255
	g := (uint32(G(c1))*inv + uint32(G(c2))*tt) / 255
	b := (uint32(B(c1))*inv + uint32(B(c2))*tt) / 255
	return r<<16 | g<<8 | b
}

// BlendPixel blends c over the pixel at (x, y).
func (v *View) BlendPixel(x, y int, c uint32, alpha uint8) {
	if !v.inside(x, y) {
		return
	}
	i := y*v.stride + x
	v.pix[i] = Blend(c, v.pix[i], alpha)
}

// FillRectAlpha blends c over a clipped rectangle.
func (v *View) FillRectAlpha(x, y, w, h int, c uint32, alpha uint8) {
	r := v.clip(x, y, w, h)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := v.Row(py)[r.Min.X:r.Max.X]
		for i := range row {
			row[i] = Blend(c, row[i], alpha)
		}
	}
}

// GradientV fills a rectangle with a vertical gradient. The interpolation
// parameter is computed from the clipped height.
func (v *View) GradientV(x, y, w, h int, top, bottom uint32) {
	r := v.clip(x, y, w, h)
	ch := r.Dy()
	den := max(ch-1, 1)
	for py := 0; py < ch; py++ {
		c := Lerp(top, bottom, uint8(py*255/den))
		row := v.Row(r.Min.Y + py)[r.Min.X:r.Max.X]
		for i := range row {
			row[i] = c
		}
	}
}

// FillPattern paints a one-pixel checkerboard: c1 where x+y is even, c2 where odd.
func (v *View) FillPattern(x, y, w, h int, c1, c2 uint32) {
	r := v.clip(x, y, w, h)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := v.Row(py)
		for px := r.Min.X; px < r.Max.X; px++ {
			if (px+py)&1 == 1 {
				row[px] = c2
			} else {
				row[px] = c1
			}
		}
	}
}

func clampRadius(w, h, r int) int {
	return min(r, w/2, h/2)
}

// cornerInside reports whether corner offset (cx, cy) lies in a quarter disc of radius r.
func cornerInside(cx, cy, r int) bool {
	dx := r - 1 - cx
	dy := r - 1 - cy
	return dx*dx+dy*dy <= r*r
}

// FillRounded fills a rectangle with rounded corners.
func (v *View) FillRounded(x, y, w, h, r int, c uint32) {
	r = clampRadius(w, h, r)
	if r < 1 {
		v.FillRect(x, y, w, h, c)
		return
	}
	v.FillRect(x+r, y, w-2*r, h, c)
	v.FillRect(x, y+r, r, h-2*r, c)
	v.FillRect(x+w-r, y+r, r, h-2*r, c)
	for cy := 0; cy < r; cy++ {
		for cx := 0; cx < r; cx++ {
			if cornerInside(cx, cy, r) {
				v.SetPixel(x+cx, y+cy, c)
				v.SetPixel(x+w-1-cx, y+cy, c)
				v.SetPixel(x+cx, y+h-1-cy, c)
				v.SetPixel(x+w-1-cx, y+h-1-cy, c)
			}
		}
	}
}

// FillRoundedAlpha blends a rounded rectangle over the view.
func (v *View) FillRoundedAlpha(x, y, w, h, r int, c uint32, alpha uint8) {
	r = clampRadius(w, h, r)
	if r < 1 {
		v.FillRectAlpha(x, y, w, h, c, alpha)
		return
	}
	v.FillRectAlpha(x+r, y, w-2*r, h, c, alpha)
	v.FillRectAlpha(x, y+r, r, h-2*r, c, alpha)
	v.FillRectAlpha(x+w-r, y+r, r, h-2*r, c, alpha)
	for cy := 0; cy < r; cy++ {
		for cx := 0; cx < r; cx++ {
			if cornerInside(cx, cy, r) {
				v.BlendPixel(x+cx, y+cy, c, alpha)
				v.BlendPixel(x+w-1-cx, y+cy, c, alpha)
				v.BlendPixel(x+cx, y+h-1-cy, c, alpha)
				v.BlendPixel(x+w-1-cx, y+h-1-cy, c, alpha)
			}
		}
	}
}

// DrawRounded draws a rounded rectangle outline with midpoint-circle corners.
func (v *View) DrawRounded(x, y, w, h, r int, c uint32) {
	r = clampRadius(w, h, r)
	if r < 1 {
		v.DrawRect(x, y, w, h, c)
		return
	}
	v.HLine(x+r, y, w-2*r, c)
	v.HLine(x+r, y+h-1, w-2*r, c)
	v.VLine(x, y+r, h-2*r, c)
	v.VLine(x+w-1, y+r, h-2*r, c)

	cx, cy := r-1, 0
	d := 1 - r
	for cx >= cy {
		v.SetPixel(x+r-1-cx, y+r-1-cy, c)
		v.SetPixel(x+r-1-cy, y+r-1-cx, c)
		v.SetPixel(x+w-r+cx, y+r-1-cy, c)
		v.SetPixel(x+w-r+cy, y+r-1-cx, c)
		v.SetPixel(x+r-1-cx, y+h-r+cy, c)
		v.SetPixel(x+r-1-cy, y+h-r+cx, c)
		v.SetPixel(x+w-r+cx, y+h-r+cy, c)
		v.SetPixel(x+w-r+cy, y+h-r+cx, c)
		cy++
		if d < 0 {
			d += 2*cy + 1
		} else {
			cx--
			d += 2*(cy-cx) + 1
		}
	}
}

// BoxShadowRounded approximates a blurred shadow with stacked translucent
// rounded rectangles that grow outward and fade.
func (v *View) BoxShadowRounded(x, y, w, h, r, blur, offX, offY int, c uint32) {
	if blur <= 0 {
		v.FillRoundedAlpha(x+offX, y+offY, w, h, r, c, 128)
		return
	}
	for i := blur; i >= 0; i-- {
		expand := blur - i
		alpha := uint8(255 * (blur - i + 1) / (blur * 4))
		v.FillRoundedAlpha(x+offX-expand, y+offY-expand, w+expand*2, h+expand*2, r+expand, c, alpha)
	}
}

// FillCircle fills a disc using a squared-distance test.
func (v *View) FillCircle(cx, cy, r int, c uint32) {
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r2 {
				v.SetPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// Blit copies src to (x, y), clipping rows against the destination.
func (v *View) Blit(x, y int, src *View) {
	for sy := 0; sy < src.height; sy++ {
		v.CopyRow(x, y+sy, src.Row(sy))
	}
}

// Stamp draws a mask bitmap of size w×h: 0 is transparent, any other value
// selects palette[value-1].
func (v *View) Stamp(x, y, w, h int, mask []uint8, palette ...uint32) {
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			m := mask[py*w+px]
			if m == 0 || int(m) > len(palette) {
				continue
			}
			v.SetPixel(x+px, y+py, palette[m-1])
		}
	}
}
