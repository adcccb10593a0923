package clients

import (
	"strings"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/pixel"
)

const (
	termBG     = 0x001E1E1E
	termFG     = 0x00D4D4D4
	termPrompt = "$ "
	termPad    = 4
	maxLines   = 200
)

// Term is a line-oriented console. It understands echo, clear, help and exit.
type Term struct {
	win   window
	lines []string
	input []rune
}

// NewTerm returns a Term that opens its window on the first step.
func NewTerm() *Term {
	return &Term{
		win:   window{h: app.InvalidHandle},
		lines: []string{"kikidesk terminal", "type help for commands"},
	}
}

// Lines returns the scrollback, oldest first.
func (c *Term) Lines() []string { return c.lines }

// Step implements sched.Task.
func (c *Term) Step(api app.WindowAPI) bool {
	if c.win.buf == nil {
		if !c.win.open(api, 200, 120, 480, 300, "Terminal") {
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
			if !c.key(ev.Data1) {
				c.win.close(api)
				return false
			}
			c.draw(api)
		case app.EventResize:
			if !c.win.refresh(api) {
				return false
			}
			c.draw(api)
		}
	}
}

// key edits the input line. It returns false once the user typed exit.
func (c *Term) key(code int) bool {
	switch {
	case code == app.KeyEnter || code == app.KeyReturn:
		line := string(c.input)
		c.input = c.input[:0]
		c.print(termPrompt + line)
		return c.exec(strings.TrimSpace(line))
	case code == app.KeyBackspace:
		if len(c.input) > 0 {
			c.input = c.input[:len(c.input)-1]
		}
	case code >= 0x20 && code < 0x7F:
		c.input = append(c.input, rune(code))
	}
	return true
}

func (c *Term) exec(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "":
	case "clear":
		c.lines = c.lines[:0]
	case "echo":
		c.print(arg)
	case "help":
		c.print("commands: clear echo exit help")
	case "exit":
		return false
	default:
		c.print(cmd + ": command not found")
	}
	return true
}

func (c *Term) print(s string) {
	c.lines = append(c.lines, s)
	if n := len(c.lines) - maxLines; n > 0 {
		c.lines = c.lines[n:]
	}
}

func (c *Term) draw(api app.WindowAPI) {
	v := c.win.buf
	v.Fill(termBG)

	rows := max((v.Height()-2*termPad)/pixel.TextHeight, 1)
	visible := append(c.lines[max(len(c.lines)-(rows-1), 0):len(c.lines):len(c.lines)], termPrompt+string(c.input)+"_")
	maxW := v.Width() - 2*termPad
	for i, line := range visible {
		v.DrawString(termPad, termPad+i*pixel.TextHeight, pixel.TruncateToWidth(line, maxW), termFG)
	}
	api.Invalidate(c.win.h)
}
