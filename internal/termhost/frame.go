package termhost

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/kikios/kikidesk/internal/pixel"
)

// upperHalf draws the top pixel of a cell in the foreground colour and the
// bottom pixel in the background colour.
const upperHalf = "▀"

const sgrReset = "\x1b[0m"

// cellStyle returns the SGR sequence for a half-block cell, with colours
// reduced to what the terminal profile can show.
func cellStyle(top, bottom uint32, p colorprofile.Profile) string {
	var st ansi.Style
	if fg := convert(top, p); fg != nil {
		st = st.ForegroundColor(ansi.Color(fg))
	}
	if bg := convert(bottom, p); bg != nil {
		st = st.BackgroundColor(ansi.Color(bg))
	}
	return st.String()
}

func convert(c uint32, p colorprofile.Profile) color.Color {
	if p == colorprofile.TrueColor {
		return pixel.ToColor(c)
	}
	return p.Convert(pixel.ToColor(c))
}

// renderHalfBlocks writes v as rows of half-block cells, two pixel rows per
// text line. A trailing odd pixel row is ignored. Style sequences are only
// emitted when a cell's colours differ from its left neighbour.
func renderHalfBlocks(sb *strings.Builder, v *pixel.View, p colorprofile.Profile) {
	w := v.Width()
	sb.Grow(w * v.Height() / 2 * 4)
	for y := 0; y+1 < v.Height(); y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		top, bottom := v.Row(y), v.Row(y+1)
		for x := range w {
			if x == 0 || top[x] != top[x-1] || bottom[x] != bottom[x-1] {
				sb.WriteString(cellStyle(top[x], bottom[x], p))
			}
			sb.WriteString(upperHalf)
		}
		sb.WriteString(sgrReset)
	}
}

// cellToPixel maps the centre of terminal cell (col, row) on a cols by rows
// grid to a pixel of a w by h framebuffer.
func cellToPixel(col, row, cols, rows, w, h int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	x := (2*col + 1) * w / (2 * cols)
	y := (2*row + 1) * h / (2 * rows)
	return min(max(x, 0), w-1), min(max(y, 0), h-1)
}
