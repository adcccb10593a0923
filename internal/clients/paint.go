package clients

import "github.com/kikios/kikidesk/internal/app"

// paintColors is the brush palette right clicks cycle through.
var paintColors = [...]uint32{
	0x00000000, 0x00FF3B30, 0x00FF9500, 0x00FFCC00,
	0x0034C759, 0x00007AFF, 0x00AF52DE, 0x00FFFFFF,
}

const (
	paintBG    = 0x00FFFFFF
	brushSize  = 3
	swatchSize = 10
)

// Paint is a freehand drawing program. Left button draws, right button picks
// the next colour and 'c' clears the canvas.
type Paint struct {
	win          window
	color        int
	down         bool
	lastX, lastY int
}

// NewPaint returns a Paint that opens its window on the first step.
func NewPaint() *Paint {
	return &Paint{win: window{h: app.InvalidHandle}}
}

// Color returns the current brush colour.
func (c *Paint) Color() uint32 { return paintColors[c.color] }

// Step implements sched.Task.
func (c *Paint) Step(api app.WindowAPI) bool {
	if c.win.buf == nil {
		if !c.win.open(api, 160, 80, 400, 300, "Paint") {
			return false
		}
		c.clear(api)
	}

	for {
		ev, ok := api.PollEvent(c.win.h)
		if !ok {
			return true
		}
		switch ev.Type {
		case app.EventClose:
			c.win.close(api)
			return false
		case app.EventMouseDown:
			c.press(api, ev.Data1, ev.Data2, uint8(ev.Data3))
		case app.EventMouseMove:
			if c.down && uint8(ev.Data3)&app.ButtonLeft != 0 {
				c.line(c.lastX, c.lastY, ev.Data1, ev.Data2)
				c.lastX, c.lastY = ev.Data1, ev.Data2
				api.Invalidate(c.win.h)
			}
		case app.EventMouseUp:
			c.down = false
		case app.EventKey:
			if ev.Data1 == 'c' || ev.Data1 == 'C' {
				c.clear(api)
			}
		case app.EventResize:
			if !c.win.refresh(api) {
				return false
			}
			c.clear(api)
		}
	}
}

func (c *Paint) press(api app.WindowAPI, x, y int, buttons uint8) {
	switch {
	case buttons&app.ButtonLeft != 0:
		c.down = true
		c.lastX, c.lastY = x, y
		c.dab(x, y)
	case buttons&app.ButtonRight != 0:
		c.color = (c.color + 1) % len(paintColors)
		c.swatch()
	default:
		return
	}
	api.Invalidate(c.win.h)
}

func (c *Paint) dab(x, y int) {
	c.win.buf.FillRect(x-brushSize/2, y-brushSize/2, brushSize, brushSize, c.Color())
}

// line joins two dabs with Bresenham steps so fast strokes leave no gaps.
func (c *Paint) line(x0, y0, x1, y1 int) {
	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := -abs(y1-y0), sign(y1-y0)
	e := dx + dy
	for {
		c.dab(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Paint) swatch() {
	v := c.win.buf
	v.FillRect(v.Width()-swatchSize-2, 2, swatchSize, swatchSize, c.Color())
	v.DrawRect(v.Width()-swatchSize-3, 1, swatchSize+2, swatchSize+2, 0x00888888)
}

func (c *Paint) clear(api app.WindowAPI) {
	c.win.buf.Fill(paintBG)
	c.swatch()
	api.Invalidate(c.win.h)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
