// Package clients holds the programs that ship with the desktop. They talk to
// it only through app.WindowAPI.
package clients

import (
	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/pixel"
	"github.com/kikios/kikidesk/internal/sched"
)

// Executable paths of the built-in programs.
const (
	HelloPath = "/bin/hello"
	PaintPath = "/bin/paint"
	TermPath  = app.TerminalExec
)

// Builtins returns the launcher table for every built-in program.
func Builtins() map[string]sched.Program {
	return map[string]sched.Program{
		HelloPath: func() sched.Task { return NewHello() },
		PaintPath: func() sched.Task { return NewPaint() },
		TermPath:  func() sched.Task { return NewTerm() },
	}
}

// window is the state every client keeps about its one window.
type window struct {
	h   app.Handle
	buf *pixel.View
}

// open creates the window on first use. It reports false when the desktop
// refused it.
func (w *window) open(api app.WindowAPI, x, y, width, height int, title string) bool {
	if w.buf != nil {
		return true
	}
	w.h = api.Create(x, y, width, height, title)
	if w.h == app.InvalidHandle {
		return false
	}
	return w.refresh(api)
}

// refresh refetches the content buffer, which changes on resize.
func (w *window) refresh(api app.WindowAPI) bool {
	buf, _, _ := api.GetBuffer(w.h)
	w.buf = buf
	return buf != nil
}

func (w *window) close(api app.WindowAPI) {
	api.Destroy(w.h)
	w.h, w.buf = app.InvalidHandle, nil
}
