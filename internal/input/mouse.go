// Package input turns pointer and keyboard samples into window events and
// chrome actions.
package input

import (
	"image"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
)

// State is the pointer interaction mode. Exactly one is active at a time.
type State int

const (
	// StateIdle routes clicks by position.
	StateIdle State = iota
	// StateDraggingWindow moves a window with the pointer.
	StateDraggingWindow
	// StateResizingWindow sizes a window from its bottom-right corner.
	StateResizingWindow
	// StateMenuOpen means a dropdown or the dock context menu is showing.
	StateMenuOpen
	// StateModalCapture means a dialog receives all input.
	StateModalCapture
)

func (s State) String() string {
	switch s {
	case StateDraggingWindow:
		return "dragging"
	case StateResizingWindow:
		return "resizing"
	case StateMenuOpen:
		return "menu"
	case StateModalCapture:
		return "modal"
	default:
		return "idle"
	}
}

// Router holds the pointer state machine for one desktop.
type Router struct {
	desk *app.Desktop

	grab        State      // dragging, resizing or idle
	target      app.Handle // window being dragged or resized
	targetID    uint64     // serial of target when grabbed
	dragOffsetX int
	dragOffsetY int
	startW      int // size when the resize began
	startH      int
	startX      int // pointer when the resize began
	startY      int

	lastX        int
	lastY        int
	lastButtons  uint8
	hoverDock    int
	contentPress bool // the left press went to a window's content
}

// NewRouter returns a router for d with the pointer assumed at the origin.
func NewRouter(d *app.Desktop) *Router {
	return &Router{desk: d, target: app.InvalidHandle, hoverDock: -1}
}

// State returns the current interaction mode.
func (r *Router) State() State {
	if r.grab != StateIdle {
		return r.grab
	}
	if r.desk.Modal() != app.ModalNone {
		return StateModalCapture
	}
	if r.desk.OpenMenu() != app.MenuNone || r.desk.ContextMenuOpen() {
		return StateMenuOpen
	}
	return StateIdle
}

// Pointer returns the last sampled position and buttons.
func (r *Router) Pointer() (x, y int, buttons uint8) {
	return r.lastX, r.lastY, r.lastButtons
}

// HoverDock returns the dock icon under the pointer, or -1.
func (r *Router) HoverDock() int { return r.hoverDock }

// HandlePointer processes one pointer sample.
func (r *Router) HandlePointer(x, y int, buttons uint8) {
	d := r.desk
	moved := x != r.lastX || y != r.lastY

	hover := d.DockHoverAt(x, y)
	hoverChanged := hover != r.hoverDock
	r.hoverDock = hover

	pressed := buttons &^ r.lastButtons & (app.ButtonLeft | app.ButtonRight)
	released := r.lastButtons &^ buttons & app.ButtonLeft

	if pressed != 0 {
		r.click(x, y, pressed)
	}
	if released != 0 {
		r.release(x, y, released)
	}
	if moved {
		r.move(x, y, buttons)
	}

	// Hover highlights live in the composed frame.
	if hoverChanged {
		d.RequestRedraw()
	}
	if moved {
		if s := r.State(); s == StateMenuOpen || s == StateModalCapture {
			d.RequestRedraw()
		}
		d.MarkCursorMoved()
	}

	r.lastX, r.lastY, r.lastButtons = x, y, buttons
}

func (r *Router) click(x, y int, buttons uint8) {
	d := r.desk
	left := buttons&app.ButtonLeft != 0

	if d.Modal() != app.ModalNone {
		d.ClickModal(x, y, buttons)
		return
	}
	if left && d.ContextMenuOpen() {
		d.ClickContextMenu(x, y)
		return
	}
	if left && d.OpenMenu() != app.MenuNone && y >= config.MenuBarHeight {
		d.ClickDropdown(x, y)
		return
	}
	if left && y < config.MenuBarHeight {
		d.ClickMenuBar(x)
		return
	}

	if buttons&app.ButtonRight != 0 {
		if i := d.DockIconAt(x, y); i >= 0 {
			d.OpenContextMenu(i)
			return
		}
	}
	if left {
		if h := d.MinimizedAt(x, y); h != app.InvalidHandle {
			d.Restore(h)
			return
		}
		if i := d.DockIconAt(x, y); i >= 0 {
			d.LaunchDockIcon(i)
			return
		}
	}

	r.clickWindow(x, y, buttons)
}

func (r *Router) clickWindow(x, y int, buttons uint8) {
	d := r.desk
	h := d.WindowAtPoint(x, y)
	if h == app.InvalidHandle {
		return
	}
	d.BringToFront(h)
	w := d.Window(h)
	left := buttons&app.ButtonLeft != 0

	if app.InTitleBar(w, x, y) {
		if !left {
			return
		}
		switch app.TrafficLightAt(w, x, y) {
		case app.LightClose:
			d.PushEvent(h, app.EventClose, 0, 0, 0)
		case app.LightMinimize:
			d.Minimize(h)
		case app.LightZoom:
			d.ToggleMaximize(h)
		default:
			r.grab = StateDraggingWindow
			r.target, r.targetID = h, w.Serial()
			r.dragOffsetX = x - w.X
			r.dragOffsetY = y - w.Y
		}
		return
	}

	if left && image.Pt(x, y).In(app.ResizeHandleRect(w)) {
		r.grab = StateResizingWindow
		r.target, r.targetID = h, w.Serial()
		r.startW, r.startH = w.W, w.H
		r.startX, r.startY = x, y
		return
	}
	lx, ly := app.ContentLocal(w, x, y)
	d.PushEvent(h, app.EventMouseDown, lx, ly, int(buttons))
	if left {
		r.contentPress = true
	}
}

func (r *Router) release(x, y int, buttons uint8) {
	d := r.desk
	switch r.grab {
	case StateResizingWindow:
		if r.grabbed() != nil {
			d.FinishResize(r.target, r.startW, r.startH)
		}
		r.endGrab()
		return
	case StateDraggingWindow:
		r.endGrab()
	}

	// Only a press that reached content gets a matching MOUSE_UP.
	if !r.contentPress {
		return
	}
	r.contentPress = false
	h := d.WindowAtPoint(x, y)
	if h == app.InvalidHandle {
		return
	}
	if w := d.Window(h); app.InContent(w, x, y) {
		lx, ly := app.ContentLocal(w, x, y)
		d.PushEvent(h, app.EventMouseUp, lx, ly, int(buttons))
	}
}

func (r *Router) move(x, y int, buttons uint8) {
	d := r.desk
	if r.grabbing() && r.grabbed() == nil {
		r.endGrab()
		return
	}
	switch r.grab {
	case StateDraggingWindow:
		d.MoveWindow(r.target, x-r.dragOffsetX, y-r.dragOffsetY)
		return
	case StateResizingWindow:
		d.ResizeWindow(r.target, r.startW+x-r.startX, r.startH+y-r.startY)
		return
	}
	if d.Modal() != app.ModalNone {
		return
	}

	h := d.WindowAtPoint(x, y)
	if h == app.InvalidHandle {
		return
	}
	if w := d.Window(h); app.InContent(w, x, y) {
		lx, ly := app.ContentLocal(w, x, y)
		d.PushEvent(h, app.EventMouseMove, lx, ly, int(buttons))
	}
}

func (r *Router) grabbing() bool {
	return r.grab == StateDraggingWindow || r.grab == StateResizingWindow
}

// grabbed returns the window the drag or resize started on, or nil once it
// has been destroyed, even if a new window has taken its slot.
func (r *Router) grabbed() *app.Window {
	w := r.desk.Window(r.target)
	if w == nil || w.Serial() != r.targetID {
		return nil
	}
	return w
}

func (r *Router) endGrab() {
	r.grab = StateIdle
	r.target = app.InvalidHandle
	r.targetID = 0
}
