package app

import (
	"image"

	"github.com/kikios/kikidesk/internal/config"
)

// MenuID names a menu bar menu.
type MenuID int

// Menus in bar order.
const (
	MenuNone MenuID = iota - 1
	MenuApple
	MenuFile
	MenuEdit
	MenuSettings
	menuCount
)

// Action is what a menu item does.
type Action int

// Menu actions.
const (
	ActionNone Action = iota
	ActionAbout
	ActionQuit
	ActionNewTerminal
	ActionCloseWindow
	ActionCut
	ActionCopy
	ActionPaste
	ActionThemeLight
	ActionThemeDark
	ActionWallpaperSolid
	ActionWallpaperGradient
	ActionWallpaperPattern
)

// TerminalExec is the program File > New Terminal starts.
const TerminalExec = "/bin/term"

// MenuItem is a dropdown row. An item with an empty Label is a separator.
type MenuItem struct {
	Label  string
	Action Action
}

// Separator reports whether the row is a divider line.
func (m MenuItem) Separator() bool { return m.Label == "" }

// MenuTitle is a menu bar entry and its clickable span.
type MenuTitle struct {
	Label string // empty for the logo menu
	X, W  int
	Items []MenuItem
}

var menus = [menuCount]MenuTitle{
	MenuApple: {X: 4, W: 20, Items: []MenuItem{
		{"About This Computer", ActionAbout},
		{},
		{"Quit Desktop", ActionQuit},
	}},
	MenuFile: {Label: "File", X: 28, W: 32, Items: []MenuItem{
		{"New Terminal", ActionNewTerminal},
		{"Close Window", ActionCloseWindow},
	}},
	MenuEdit: {Label: "Edit", X: 68, W: 32, Items: []MenuItem{
		{"Cut", ActionCut},
		{"Copy", ActionCopy},
		{"Paste", ActionPaste},
	}},
	MenuSettings: {Label: "Settings", X: 108, W: 64, Items: []MenuItem{
		{"Theme: Light", ActionThemeLight},
		{"Theme: Dark", ActionThemeDark},
		{},
		{"Wallpaper: Solid", ActionWallpaperSolid},
		{"Wallpaper: Gradient", ActionWallpaperGradient},
		{"Wallpaper: Pattern", ActionWallpaperPattern},
	}},
}

// Menus returns the menu bar definition.
func Menus() []MenuTitle { return menus[:] }

// Menu returns one menu. It panics on MenuNone.
func Menu(id MenuID) MenuTitle { return menus[id] }

// MenuAt returns the menu whose title span contains x, or MenuNone.
func MenuAt(x int) MenuID {
	for i, m := range menus {
		if x >= m.X && x < m.X+m.W {
			return MenuID(i)
		}
	}
	return MenuNone
}

// DropdownRect returns the rectangle of menu id's open dropdown.
func DropdownRect(id MenuID) image.Rectangle {
	m := menus[id]
	longest := 0
	for _, it := range m.Items {
		longest = max(longest, len(it.Label))
	}
	x := m.X - 4
	if id == MenuApple {
		x = m.X - 2
	}
	y := config.MenuBarHeight + 4
	w := longest*config.MenuCharWidth + 32
	h := len(m.Items)*config.MenuItemHeight + 8
	return image.Rect(x, y, x+w, y+h)
}

// DropdownItemAt returns the index of the row of menu id under (x, y), or -1.
// Separators count as rows.
func DropdownItemAt(id MenuID, x, y int) int {
	r := DropdownRect(id)
	if x < r.Min.X || x >= r.Max.X || y < r.Min.Y {
		return -1
	}
	row := (y - r.Min.Y - 4)
	if row < 0 {
		return -1
	}
	row /= config.MenuItemHeight
	if row >= len(menus[id].Items) {
		return -1
	}
	return row
}

// OpenMenu returns the open dropdown, or MenuNone.
func (d *Desktop) OpenMenu() MenuID { return d.openMenu }

// MenuSelection returns the keyboard-selected row of the open menu, or -1.
func (d *Desktop) MenuSelection() int { return d.menuSel }

// SetOpenMenu opens menu id, or closes the dropdown for MenuNone.
func (d *Desktop) SetOpenMenu(id MenuID) {
	d.menuSel = -1
	if d.openMenu == id {
		return
	}
	d.openMenu = id
	d.RequestRedraw()
}

// ClickMenuBar handles a left click on the menu bar strip: a title toggles
// its menu, anywhere else closes the open one.
func (d *Desktop) ClickMenuBar(x int) {
	id := MenuAt(x)
	if id == d.openMenu {
		id = MenuNone
	}
	d.SetOpenMenu(id)
	d.RequestRedraw()
}

// ClickDropdown handles a left click below the menu bar while a menu is open.
// The hit item runs and the menu closes either way.
func (d *Desktop) ClickDropdown(x, y int) {
	id := d.openMenu
	if id == MenuNone {
		return
	}
	action := ActionNone
	if i := DropdownItemAt(id, x, y); i >= 0 {
		action = menus[id].Items[i].Action
	}
	d.SetOpenMenu(MenuNone)
	d.DoAction(action)
	d.RequestRedraw()
}

// CycleMenu opens the menu delta places away from the open one, wrapping.
func (d *Desktop) CycleMenu(delta int) {
	if d.openMenu == MenuNone {
		return
	}
	n := int(menuCount)
	d.SetOpenMenu(MenuID(((int(d.openMenu)+delta)%n + n) % n))
}

// MoveMenuSelection steps the keyboard selection through the open menu,
// skipping separators.
func (d *Desktop) MoveMenuSelection(delta int) {
	if d.openMenu == MenuNone {
		return
	}
	items := menus[d.openMenu].Items
	sel := d.menuSel
	for range items {
		sel += delta
		if sel < 0 {
			sel = len(items) - 1
		} else if sel >= len(items) {
			sel = 0
		}
		if !items[sel].Separator() {
			break
		}
	}
	d.menuSel = sel
	d.RequestRedraw()
}

// ActivateMenuSelection runs the keyboard-selected item and closes the menu.
func (d *Desktop) ActivateMenuSelection() {
	if d.openMenu == MenuNone {
		return
	}
	action := ActionNone
	if d.menuSel >= 0 {
		action = menus[d.openMenu].Items[d.menuSel].Action
	}
	d.SetOpenMenu(MenuNone)
	d.DoAction(action)
	d.RequestRedraw()
}

// DoAction performs a menu action.
func (d *Desktop) DoAction(a Action) {
	switch a {
	case ActionAbout:
		d.OpenModal(ModalAbout)
	case ActionQuit:
		d.Quit()
	case ActionNewTerminal:
		d.launch(TerminalExec, false)
	case ActionCloseWindow:
		if d.focused != InvalidHandle {
			d.PushEvent(d.focused, EventClose, 0, 0, 0)
		}
	case ActionCut:
		if d.copyFocusedTitle() {
			d.PushEvent(d.focused, EventKey, keyCut, 0, 0)
		}
	case ActionCopy:
		d.copyFocusedTitle()
	case ActionPaste:
		d.paste()
	case ActionThemeLight:
		d.SetTheme(config.ThemeLight)
	case ActionThemeDark:
		d.SetTheme(config.ThemeDark)
	case ActionWallpaperSolid:
		d.SetWallpaper(config.WallpaperSolid)
	case ActionWallpaperGradient:
		d.SetWallpaper(config.WallpaperGradient)
	case ActionWallpaperPattern:
		d.SetWallpaper(config.WallpaperPattern)
	}
}

// keyCut is Ctrl+X, sent to the focused window after Edit > Cut.
const keyCut = 0x18

func (d *Desktop) copyFocusedTitle() bool {
	win := d.window(d.focused)
	if win == nil || d.devices.Clipboard == nil {
		return false
	}
	if err := d.devices.Clipboard.WriteAll(win.Title); err != nil {
		d.LogWarn("Copy failed: %v", err)
		return false
	}
	return true
}

// paste types the clipboard into the focused window as KEY events. Only
// byte-sized characters are delivered so text never collides with the
// special key codes.
func (d *Desktop) paste() {
	if d.window(d.focused) == nil || d.devices.Clipboard == nil {
		return
	}
	text, err := d.devices.Clipboard.ReadAll()
	if err != nil {
		d.LogWarn("Paste failed: %v", err)
		return
	}
	for _, r := range text {
		if r < 0x100 {
			d.PushEvent(d.focused, EventKey, int(r), 0, 0)
		}
	}
}
