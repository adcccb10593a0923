package app

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"unicode/utf8"

	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/pixel"
	"github.com/kikios/kikidesk/internal/queue"
)

// Handle identifies a window slot. Handles are reused after Destroy.
type Handle int

// InvalidHandle is returned when a window cannot be created.
const InvalidHandle Handle = -1

var (
	// ErrNoFreeSlot means every window slot is in use.
	ErrNoFreeSlot = errors.New("no free window slot")
	// ErrAllocFailed means the content buffer could not be allocated.
	ErrAllocFailed = errors.New("window buffer allocation failed")
	// ErrInvalidHandle means the handle does not name an active window.
	ErrInvalidHandle = errors.New("invalid window handle")
)

// Window is one client surface. Geometry includes the title bar.
type Window struct {
	X, Y, W, H int

	// Geometry to return to when un-maximizing
	RestoreX, RestoreY, RestoreW, RestoreH int

	Title     string
	Owner     string // process id of the client that created it
	Active    bool
	Minimized bool
	Maximized bool
	Dirty     bool

	serial uint64 // distinguishes windows that reuse a slot
	buffer *pixel.View
	events queue.Ring[Event]
}

// Serial identifies this window among every window that has used its slot.
func (w *Window) Serial() uint64 { return w.serial }

// Rect returns the window rectangle on screen.
func (w *Window) Rect() image.Rectangle {
	return image.Rect(w.X, w.Y, w.X+w.W, w.Y+w.H)
}

// Buffer returns the content buffer.
func (w *Window) Buffer() *pixel.View { return w.buffer }

// Pending returns the number of queued events.
func (w *Window) Pending() int { return w.events.Len() }

// ContentHeight returns the content buffer height for a window of total height h.
func ContentHeight(h int) int {
	return max(h-config.TitleBarHeight, 1)
}

// truncateTitle cuts s to the title capacity without splitting a rune.
func truncateTitle(s string) string {
	if len(s) <= config.MaxTitleLen-1 {
		return s
	}
	n := config.MaxTitleLen - 1
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (d *Desktop) window(h Handle) *Window {
	if h < 0 || int(h) >= len(d.windows) || !d.windows[h].Active {
		return nil
	}
	return &d.windows[h]
}

// Window returns the active window for h, or nil.
func (d *Desktop) Window(h Handle) *Window { return d.window(h) }

func (d *Desktop) findFreeSlot() (Handle, error) {
	for i := range d.windows {
		if !d.windows[i].Active {
			return Handle(i), nil
		}
	}
	return InvalidHandle, ErrNoFreeSlot
}

func (d *Desktop) allocContent(w, h int) (*pixel.View, error) {
	buf, err := d.devices.Allocator.Alloc(w, ContentHeight(h))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocFailed, err)
	}
	d.clearBuffer(buf, d.palette.WindowBG)
	return buf, nil
}

func (d *Desktop) clearBuffer(buf *pixel.View, c uint32) {
	if d.devices.Accelerated() {
		if err := d.devices.Accelerator.Fill(buf, c); err == nil {
			return
		}
	}
	buf.Fill(c)
}

func (d *Desktop) createWindow(x, y, w, h int, title string) (Handle, error) {
	id, err := d.findFreeSlot()
	if err != nil {
		return InvalidHandle, err
	}
	buf, err := d.allocContent(w, h)
	if err != nil {
		return InvalidHandle, err
	}

	d.serial++
	d.windows[id] = Window{
		X: x, Y: y, W: w, H: h,
		RestoreX: x, RestoreY: y, RestoreW: w, RestoreH: h,
		Title:  truncateTitle(title),
		Owner:  d.currentOwner,
		Active: true,
		Dirty:  true,
		serial: d.serial,
		buffer: buf,
		events: queue.New[Event](config.EventQueueSize),
	}
	d.order = slices.Insert(d.order, 0, id)
	// A new window starts focused; only the window losing focus is told.
	d.setFocus(id, false)
	d.RequestRedraw()
	return id, nil
}

// Create opens a window of w by h pixels (title bar included) at (x, y).
// It returns InvalidHandle when no slot is free or the buffer cannot be allocated.
func (d *Desktop) Create(x, y, w, h int, title string) Handle {
	id, err := d.createWindow(x, y, w, h, title)
	if err != nil {
		d.LogError("Failed to create window %q: %v", title, err)
		return InvalidHandle
	}
	d.LogInfo("Created window %d: %q (%dx%d at %d,%d)", id, d.windows[id].Title, w, h, x, y)
	return id
}

// Destroy releases the window and its buffer. Invalid handles are ignored.
func (d *Desktop) Destroy(h Handle) {
	win := d.window(h)
	if win == nil {
		return
	}
	if win.buffer != nil {
		d.devices.Allocator.Free(win.buffer)
		win.buffer = nil
	}
	title := win.Title
	*win = Window{}

	if i := slices.Index(d.order, h); i >= 0 {
		d.order = slices.Delete(d.order, i, i+1)
	}
	if d.focused == h {
		d.focused = InvalidHandle
		if next := d.frontVisible(); next != InvalidHandle {
			d.setFocus(next, true)
		}
	}
	d.LogInfo("Destroyed window %d: %q", h, title)
	d.RequestRedraw()
}

// GetBuffer returns the content buffer and its dimensions, or nil for an
// invalid handle.
func (d *Desktop) GetBuffer(h Handle) (*pixel.View, int, int) {
	win := d.window(h)
	if win == nil {
		return nil, 0, 0
	}
	return win.buffer, win.buffer.Width(), win.buffer.Height()
}

// SetTitle replaces the window title, truncated to the title capacity.
func (d *Desktop) SetTitle(h Handle, title string) {
	win := d.window(h)
	if win == nil {
		return
	}
	win.Title = truncateTitle(title)
	win.Dirty = true
	d.RequestRedraw()
}

// Invalidate marks the window for repaint on the next render.
func (d *Desktop) Invalidate(h Handle) {
	win := d.window(h)
	if win == nil {
		return
	}
	win.Dirty = true
	d.RequestRedraw()
}

// BringToFront raises h to the top of the z-order and focuses it.
func (d *Desktop) BringToFront(h Handle) {
	if d.window(h) == nil {
		return
	}
	i := slices.Index(d.order, h)
	if i < 0 {
		return
	}
	copy(d.order[1:i+1], d.order[:i])
	d.order[0] = h
	d.setFocus(h, true)
	d.RequestRedraw()
}

// WindowAtPoint returns the front-most visible window containing (x, y).
func (d *Desktop) WindowAtPoint(x, y int) Handle {
	pt := image.Pt(x, y)
	for _, h := range d.order {
		w := &d.windows[h]
		if w.Active && !w.Minimized && pt.In(w.Rect()) {
			return h
		}
	}
	return InvalidHandle
}

// PushEvent queues an event for h. Events for inactive windows, and events
// arriving while the queue is full, are dropped.
func (d *Desktop) PushEvent(h Handle, typ EventType, d1, d2, d3 int) {
	win := d.window(h)
	if win == nil {
		return
	}
	if !win.events.Push(Event{Type: typ, Data1: d1, Data2: d2, Data3: d3}) {
		d.dropped++
	}
}

// PollEvent removes the oldest queued event for h.
func (d *Desktop) PollEvent(h Handle) (Event, bool) {
	win := d.window(h)
	if win == nil {
		return Event{}, false
	}
	return win.events.Pop()
}

// setFocus moves keyboard focus to h and, when notify is set, tells h it
// gained focus. The previously focused window always receives UNFOCUS.
func (d *Desktop) setFocus(h Handle, notify bool) {
	if d.focused == h {
		return
	}
	old := d.focused
	d.focused = h
	if old != InvalidHandle {
		d.PushEvent(old, EventUnfocus, 0, 0, 0)
	}
	if notify && h != InvalidHandle {
		d.PushEvent(h, EventFocus, 0, 0, 0)
	}
}

// frontVisible returns the topmost window that is not minimized.
func (d *Desktop) frontVisible() Handle {
	for _, o := range d.order {
		if !d.windows[o].Minimized {
			return o
		}
	}
	return InvalidHandle
}

// Minimize hides h in the dock and focuses the next visible window.
func (d *Desktop) Minimize(h Handle) {
	win := d.window(h)
	if win == nil || win.Minimized {
		return
	}
	win.Minimized = true
	next := d.frontVisible()
	if next == InvalidHandle {
		old := d.focused
		d.focused = InvalidHandle
		if old != InvalidHandle {
			d.PushEvent(old, EventUnfocus, 0, 0, 0)
		}
	} else {
		d.setFocus(next, true)
	}
	d.RequestRedraw()
}

// Restore brings a minimized window back and raises it.
func (d *Desktop) Restore(h Handle) {
	win := d.window(h)
	if win == nil {
		return
	}
	win.Minimized = false
	d.BringToFront(h)
}

// Minimized returns the minimized windows in slot order, which is the order
// the dock shows them in.
func (d *Desktop) Minimized() []Handle {
	var out []Handle
	for i := range d.windows {
		if d.windows[i].Active && d.windows[i].Minimized {
			out = append(out, Handle(i))
		}
	}
	return out
}

// UsableArea is the screen region between the menu bar and the dock.
func (d *Desktop) UsableArea() image.Rectangle {
	return image.Rect(0, config.MenuBarHeight, d.Width, d.Height-config.DockHeight)
}

// ToggleMaximize fills the usable area with h, or returns it to the geometry
// it had before maximizing. If the new buffer cannot be allocated the window
// keeps its previous geometry and buffer.
func (d *Desktop) ToggleMaximize(h Handle) {
	win := d.window(h)
	if win == nil {
		return
	}
	prev := *win
	if win.Maximized {
		win.X, win.Y, win.W, win.H = win.RestoreX, win.RestoreY, win.RestoreW, win.RestoreH
		win.Maximized = false
	} else {
		win.RestoreX, win.RestoreY, win.RestoreW, win.RestoreH = win.X, win.Y, win.W, win.H
		area := d.UsableArea()
		win.X, win.Y, win.W, win.H = area.Min.X, area.Min.Y, area.Dx(), area.Dy()
		win.Maximized = true
	}
	if err := d.reallocContent(h); err != nil {
		d.LogWarn("Maximize of window %d cancelled: %v", h, err)
		win.X, win.Y, win.W, win.H = prev.X, prev.Y, prev.W, prev.H
		win.RestoreX, win.RestoreY, win.RestoreW, win.RestoreH = prev.RestoreX, prev.RestoreY, prev.RestoreW, prev.RestoreH
		win.Maximized = prev.Maximized
	}
	d.RequestRedraw()
}

// FinishResize gives h a buffer matching its current size after an
// interactive resize. On failure the window returns to fromW by fromH and
// keeps its old buffer.
func (d *Desktop) FinishResize(h Handle, fromW, fromH int) {
	win := d.window(h)
	if win == nil {
		return
	}
	if err := d.reallocContent(h); err != nil {
		d.LogWarn("Resize of window %d cancelled: %v", h, err)
		win.W, win.H = fromW, fromH
	}
	d.RequestRedraw()
}

// reallocContent swaps in a cleared buffer sized for the current geometry
// and notifies the client. The old buffer is kept if allocation fails.
func (d *Desktop) reallocContent(h Handle) error {
	win := &d.windows[h]
	buf, err := d.allocContent(win.W, win.H)
	if err != nil {
		return err
	}
	d.devices.Allocator.Free(win.buffer)
	win.buffer = buf
	win.Dirty = true
	d.PushEvent(h, EventResize, buf.Width(), buf.Height(), 0)
	return nil
}

// MoveWindow places h at (x, y), kept inside the usable area.
func (d *Desktop) MoveWindow(h Handle, x, y int) {
	win := d.window(h)
	if win == nil {
		return
	}
	win.X, win.Y = d.ClampPosition(x, y, win.W, win.H)
	d.RequestRedraw()
}

// ResizeWindow sets the size of h, kept between the minimum window size and
// the edges of the usable area. The buffer is not touched until FinishResize.
func (d *Desktop) ResizeWindow(h Handle, w, hgt int) {
	win := d.window(h)
	if win == nil {
		return
	}
	win.W, win.H = d.ClampSize(win.X, win.Y, w, hgt)
	d.RequestRedraw()
}

// ClampPosition keeps a w by h window below the menu bar and above the dock.
func (d *Desktop) ClampPosition(x, y, w, h int) (int, int) {
	area := d.UsableArea()
	if x+w > d.Width {
		x = d.Width - w
	}
	if y+h > area.Max.Y {
		y = area.Max.Y - h
	}
	// The menu bar wins over the dock for windows taller than the usable area.
	return max(x, 0), max(y, area.Min.Y)
}

// ClampSize bounds a window at (x, y) to the minimum size and the usable area.
func (d *Desktop) ClampSize(x, y, w, h int) (int, int) {
	area := d.UsableArea()
	w = max(w, config.MinWindowWidth)
	h = max(h, config.MinWindowHeight)
	if x+w > d.Width {
		w = d.Width - x
	}
	if y+h > area.Max.Y {
		h = area.Max.Y - y
	}
	return w, h
}

// ClearDirty resets the dirty flag on every window after a render.
func (d *Desktop) ClearDirty() {
	for i := range d.windows {
		d.windows[i].Dirty = false
	}
}
