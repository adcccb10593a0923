package app

import (
	"image"

	"github.com/kikios/kikidesk/internal/config"
)

// DockIcon is a launcher entry with its computed screen position.
type DockIcon struct {
	Label      string
	Exec       string
	Fullscreen bool
	X, Y       int
}

// Rect returns the clickable icon square.
func (i DockIcon) Rect() image.Rectangle {
	return image.Rect(i.X, i.Y, i.X+config.DockIconSize, i.Y+config.DockIconSize)
}

// HoverRect returns the icon plus its label, the area that highlights on hover.
func (i DockIcon) HoverRect() image.Rectangle {
	return image.Rect(i.X, i.Y, i.X+config.DockIconSize, i.Y+config.DockIconSize+config.DockLabelHeight)
}

type dockPill struct {
	x, y, w, h int
}

type contextMenu struct {
	visible bool
	icon    int // dock icon the menu belongs to, -1 when closed
	x, y    int // anchor: top-left of the icon
}

const dockStep = config.DockIconSize + config.DockIconPadding

func (d *Desktop) layoutDock(icons []config.DockIcon) {
	n := len(icons)
	d.dockPill = dockPill{
		w: n*dockStep - config.DockIconPadding + 40,
		y: d.Height - config.DockHeight + 6,
		h: config.DockPillHeight,
	}
	d.dockPill.x = (d.Width - d.dockPill.w) / 2

	total := n*dockStep - config.DockIconPadding + 32
	startX := (d.Width-total)/2 + 16
	d.dock = make([]DockIcon, n)
	for i, ic := range icons {
		d.dock[i] = DockIcon{
			Label:      ic.Label,
			Exec:       ic.Exec,
			Fullscreen: ic.Fullscreen,
			X:          startX + i*dockStep,
			Y:          d.dockPill.y + 4,
		}
	}
}

// Dock returns the laid out dock icons.
func (d *Desktop) Dock() []DockIcon { return d.dock }

// DockPill returns the rounded dock background rectangle.
func (d *Desktop) DockPill() image.Rectangle {
	p := d.dockPill
	return image.Rect(p.x, p.y, p.x+p.w, p.y+p.h)
}

// DockIconAt returns the index of the icon whose square contains (x, y), or -1.
func (d *Desktop) DockIconAt(x, y int) int {
	pt := image.Pt(x, y)
	for i, ic := range d.dock {
		if pt.In(ic.Rect()) {
			return i
		}
	}
	return -1
}

// DockHoverAt returns the icon highlighted for a pointer at (x, y), or -1.
func (d *Desktop) DockHoverAt(x, y int) int {
	pt := image.Pt(x, y)
	for i, ic := range d.dock {
		if pt.In(ic.HoverRect()) {
			return i
		}
	}
	return -1
}

// DockSeparatorX returns the x of the line between icons and minimized previews.
func (d *Desktop) DockSeparatorX() int {
	return d.dockPill.x + d.dockPill.w - 4
}

// Preview is a minimized window's thumbnail slot in the dock.
type Preview struct {
	Handle Handle
	Rect   image.Rectangle
}

// Previews lays out the minimized windows to the right of the dock separator.
func (d *Desktop) Previews() []Preview {
	var out []Preview
	x := d.DockSeparatorX() + 8
	y := d.dockPill.y + (d.dockPill.h-config.DockPreviewHeight)/2
	for _, h := range d.Minimized() {
		out = append(out, Preview{
			Handle: h,
			Rect:   image.Rect(x, y, x+config.DockPreviewWidth, y+config.DockPreviewHeight),
		})
		x += config.DockPreviewWidth + config.DockPreviewGap
	}
	return out
}

// MinimizedAt returns the minimized window whose preview contains (x, y).
func (d *Desktop) MinimizedAt(x, y int) Handle {
	pt := image.Pt(x, y)
	for _, p := range d.Previews() {
		if pt.In(p.Rect) {
			return p.Handle
		}
	}
	return InvalidHandle
}

// LaunchDockIcon runs the program behind icon i. The Settings icon opens the
// Settings dialog instead.
func (d *Desktop) LaunchDockIcon(i int) {
	if i < 0 || i >= len(d.dock) {
		return
	}
	ic := d.dock[i]
	if ic.Exec == config.SettingsExec {
		d.OpenModal(ModalSettings)
		return
	}
	d.launch(ic.Exec, ic.Fullscreen)
}

func (d *Desktop) launch(path string, fullscreen bool) {
	if d.devices.Launcher == nil {
		d.LogWarn("Cannot launch %s: no launcher", path)
		return
	}
	if fullscreen {
		if err := d.devices.Launcher.Exec(path); err != nil {
			d.LogError("Failed to run %s: %v", path, err)
		}
		// The program drew over the whole screen.
		d.RequestRedraw()
		return
	}
	pid, err := d.devices.Launcher.Spawn(path)
	if err != nil {
		d.LogError("Failed to spawn %s: %v", path, err)
		return
	}
	d.LogInfo("Spawned %s as %s", path, pid)
}

// OpenContextMenu shows the "New Window" menu for dock icon i.
func (d *Desktop) OpenContextMenu(i int) {
	if i < 0 || i >= len(d.dock) {
		return
	}
	d.ctxMenu = contextMenu{visible: true, icon: i, x: d.dock[i].X, y: d.dock[i].Y}
	d.RequestRedraw()
}

// CloseContextMenu hides the dock context menu.
func (d *Desktop) CloseContextMenu() {
	if !d.ctxMenu.visible {
		return
	}
	d.ctxMenu = contextMenu{icon: -1}
	d.RequestRedraw()
}

// ContextMenuOpen reports whether the dock context menu is showing.
func (d *Desktop) ContextMenuOpen() bool { return d.ctxMenu.visible && d.ctxMenu.icon >= 0 }

// ContextMenuIcon returns the icon the context menu belongs to, or -1.
func (d *Desktop) ContextMenuIcon() int { return d.ctxMenu.icon }

// ContextMenuRect returns the menu rectangle: above its icon, or below it
// when there is no room, and never past the right screen edge.
func (d *Desktop) ContextMenuRect() image.Rectangle {
	x := d.ctxMenu.x
	y := d.ctxMenu.y - config.ContextMenuHeight - 8
	if x+config.ContextMenuWidth > d.Width {
		x = d.Width - config.ContextMenuWidth
	}
	if y < config.MenuBarHeight {
		y = d.ctxMenu.y + 8
	}
	return image.Rect(x, y, x+config.ContextMenuWidth, y+config.ContextMenuHeight)
}

// ContextMenuItemRect returns the "New Window" row.
func (d *Desktop) ContextMenuItemRect() image.Rectangle {
	r := d.ContextMenuRect()
	top := r.Min.Y + 4
	return image.Rect(r.Min.X+4, top, r.Max.X-4, top+config.MenuItemHeight)
}

// ClickContextMenu handles a left click while the context menu is open: a
// click on "New Window" launches the icon's program, and any click closes it.
func (d *Desktop) ClickContextMenu(x, y int) {
	hit := image.Pt(x, y).In(d.ContextMenuItemRect())
	icon := d.ctxMenu.icon
	d.ctxMenu = contextMenu{icon: -1}
	if hit {
		d.LaunchDockIcon(icon)
	}
	d.RequestRedraw()
}
