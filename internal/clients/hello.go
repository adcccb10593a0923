package clients

import (
	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/pixel"
)

const helloTitle = "Hello"

// Hello paints a gradient greeting and echoes typed keys into its title.
type Hello struct {
	win     window
	typed   []rune
	focused bool
}

// NewHello returns a Hello that opens its window on the first step.
func NewHello() *Hello {
	return &Hello{win: window{h: app.InvalidHandle}, focused: true}
}

// Step implements sched.Task.
func (c *Hello) Step(api app.WindowAPI) bool {
	if c.win.buf == nil {
		if !c.win.open(api, 120, 90, 320, 200, helloTitle) {
			return false
		}
		c.draw(api)
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
		case app.EventKey:
			c.key(api, ev.Data1)
		case app.EventFocus, app.EventUnfocus:
			c.focused = ev.Type == app.EventFocus
			c.draw(api)
		case app.EventResize:
			if !c.win.refresh(api) {
				return false
			}
			c.draw(api)
		}
	}
}

func (c *Hello) key(api app.WindowAPI, code int) {
	switch {
	case code == app.KeyBackspace:
		if len(c.typed) > 0 {
			c.typed = c.typed[:len(c.typed)-1]
		}
	case code >= 0x20 && code < 0x7F:
		c.typed = append(c.typed, rune(code))
	default:
		return
	}
	title := helloTitle
	if len(c.typed) > 0 {
		title += ": " + string(c.typed)
	}
	api.SetTitle(c.win.h, title)
}

func (c *Hello) draw(api app.WindowAPI) {
	v := c.win.buf
	w, h := v.Width(), v.Height()
	v.GradientV(0, 0, w, h, 0x00B0D4F1, 0x00007AFF)

	line := "Hello from kikidesk!"
	v.DrawString((w-pixel.MeasureString(line))/2, h/2-pixel.TextHeight, line, 0x00FFFFFF)
	status := "Type to set the title"
	if !c.focused {
		status = "Click to focus"
	}
	v.DrawString((w-pixel.MeasureString(status))/2, h/2+4, status, 0x00E8F4FC)
	api.Invalidate(c.win.h)
}
