package render

import (
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/pixel"
)

// cursorArt is the arrow pointer: '#' outline, '.' fill, space transparent.
var cursorArt = []string{
	"#",
	"##",
	"#.#",
	"#..#",
	"#...#",
	"#....#",
	"#.....#",
	"#......#",
	"#.......#",
	"#........#",
	"#.....#####",
	"#..#..#",
	"#.##..#",
	"##  #..#",
	"#    #..#",
	"      ##",
}

var cursorMask = bitmap(cursorArt, config.CursorSize, config.CursorSize)

// bitmap converts ASCII art into a Stamp mask. Rows shorter than w are padded
// with transparency.
func bitmap(art []string, w, h int) []uint8 {
	mask := make([]uint8, w*h)
	for y, row := range art {
		if y >= h {
			break
		}
		for x := 0; x < len(row) && x < w; x++ {
			switch row[x] {
			case '#':
				mask[y*w+x] = 1
			case '.':
				mask[y*w+x] = 2
			}
		}
	}
	return mask
}

// DrawCursor stamps the pointer with its hotspot at (x, y).
func DrawCursor(v *pixel.View, x, y int) {
	v.Stamp(x, y, config.CursorSize, config.CursorSize, cursorMask, config.ColorBlack, config.ColorWhite)
}

// Cursor keeps the pixels hidden under the pointer so it can be moved without
// recomposing the frame.
type Cursor struct {
	save  [config.CursorSize * config.CursorSize]uint32
	x, y  int
	valid bool
}

// NewCursor returns an overlay with nothing saved.
func NewCursor() *Cursor {
	return &Cursor{x: -100, y: -100}
}

// Position returns where the background was last saved.
func (c *Cursor) Position() (x, y int, ok bool) {
	return c.x, c.y, c.valid
}

// Stamp saves the background at (x, y) in v and draws the cursor over it.
func (c *Cursor) Stamp(v *pixel.View, x, y int) {
	c.saveUnder(v, x, y)
	DrawCursor(v, x, y)
}

// Move puts back the background at the saved position, then stamps the
// cursor at (x, y).
func (c *Cursor) Move(v *pixel.View, x, y int) {
	c.Restore(v)
	c.Stamp(v, x, y)
}

// Restore writes the saved background back into v. Pixels that were off
// screen when saved are skipped.
func (c *Cursor) Restore(v *pixel.View) {
	if !c.valid {
		return
	}
	const n = config.CursorSize
	for py := 0; py < n; py++ {
		for px := 0; px < n; px++ {
			v.SetPixel(c.x+px, c.y+py, c.save[py*n+px])
		}
	}
}

func (c *Cursor) saveUnder(v *pixel.View, x, y int) {
	const n = config.CursorSize
	for py := 0; py < n; py++ {
		for px := 0; px < n; px++ {
			// Off-screen pixels read as black.
			c.save[py*n+px] = v.Pixel(x+px, y+py)
		}
	}
	c.x, c.y = x, y
	c.valid = true
}

// Invalidate forgets the saved background, e.g. after the buffer it came
// from was recomposed.
func (c *Cursor) Invalidate() {
	c.valid = false
}
