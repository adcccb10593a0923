package app

import (
	"fmt"
	"image"
	"time"

	"github.com/kikios/kikidesk/internal/config"
)

// Modal identifies the dialog capturing input.
type Modal int

// Dialogs.
const (
	ModalNone Modal = iota
	ModalAbout
	ModalSettings
)

func (m Modal) String() string {
	switch m {
	case ModalAbout:
		return "about"
	case ModalSettings:
		return "settings"
	default:
		return "none"
	}
}

// Modal returns the open dialog.
func (d *Desktop) Modal() Modal { return d.modal }

// OpenModal shows a dialog. Menus close underneath it.
func (d *Desktop) OpenModal(m Modal) {
	d.modal = m
	d.SetOpenMenu(MenuNone)
	d.CloseContextMenu()
	d.RequestRedraw()
}

// CloseModal dismisses the open dialog.
func (d *Desktop) CloseModal() {
	if d.modal == ModalNone {
		return
	}
	d.modal = ModalNone
	d.RequestRedraw()
}

// AboutRect returns the About dialog rectangle.
func (d *Desktop) AboutRect() image.Rectangle {
	x := (d.Width - config.AboutWidth) / 2
	y := (d.Height-config.AboutHeight)/2 - 40
	return image.Rect(x, y, x+config.AboutWidth, y+config.AboutHeight)
}

// AboutOKRect returns the About dialog's OK button.
func (d *Desktop) AboutOKRect() image.Rectangle {
	r := d.AboutRect()
	x := r.Min.X + (config.AboutWidth-80)/2
	y := r.Max.Y - 45
	return image.Rect(x, y, x+80, y+28)
}

// SettingsRect returns the Settings dialog rectangle.
func (d *Desktop) SettingsRect() image.Rectangle {
	x := (d.Width - config.SettingsWidth) / 2
	y := (d.Height-config.SettingsHeight)/2 - 20
	return image.Rect(x, y, x+config.SettingsWidth, y+config.SettingsHeight)
}

// SettingsButton is a clickable option in the Settings dialog.
type SettingsButton struct {
	Label  string
	Rect   image.Rectangle
	Action Action // ActionNone for the Close button
}

// Selected reports whether the button shows the active setting.
func (d *Desktop) Selected(b SettingsButton) bool {
	switch b.Action {
	case ActionThemeLight:
		return d.theme == config.ThemeLight
	case ActionThemeDark:
		return d.theme == config.ThemeDark
	case ActionWallpaperSolid:
		return d.wallpaper == config.WallpaperSolid
	case ActionWallpaperGradient:
		return d.wallpaper == config.WallpaperGradient
	case ActionWallpaperPattern:
		return d.wallpaper == config.WallpaperPattern
	}
	return false
}

// SettingsButtons lays out the theme and wallpaper buttons followed by Close.
func (d *Desktop) SettingsButtons() []SettingsButton {
	r := d.SettingsRect()
	sx, sy := r.Min.X, r.Min.Y
	btn := func(label string, x, y int, a Action) SettingsButton {
		return SettingsButton{
			Label:  label,
			Rect:   image.Rect(x, y, x+config.DialogButtonWidth, y+config.DialogButtonHeight),
			Action: a,
		}
	}
	closeX := sx + (config.SettingsWidth-80)/2
	closeY := sy + config.SettingsHeight - 50
	return []SettingsButton{
		btn("Light", sx+40, sy+75, ActionThemeLight),
		btn("Dark", sx+160, sy+75, ActionThemeDark),
		btn("Solid", sx+30, sy+155, ActionWallpaperSolid),
		btn("Gradient", sx+135, sy+155, ActionWallpaperGradient),
		btn("Pattern", sx+240, sy+155, ActionWallpaperPattern),
		{Label: "Close", Rect: image.Rect(closeX, closeY, closeX+80, closeY+30)},
	}
}

// ClickModal handles a click while a dialog is open. Only left clicks act:
// buttons do their job and a click outside the dialog dismisses it. Every
// click is consumed.
func (d *Desktop) ClickModal(x, y int, buttons uint8) {
	if buttons&ButtonLeft == 0 {
		return
	}
	pt := image.Pt(x, y)
	switch d.modal {
	case ModalAbout:
		if pt.In(d.AboutOKRect()) || !pt.In(d.AboutRect()) {
			d.CloseModal()
		}
	case ModalSettings:
		for _, b := range d.SettingsButtons() {
			if !pt.In(b.Rect) {
				continue
			}
			if b.Action == ActionNone {
				d.CloseModal()
			} else {
				d.DoAction(b.Action)
			}
			return
		}
		if !pt.In(d.SettingsRect()) {
			d.CloseModal()
		}
	}
}

// AboutInfo returns the memory and uptime lines of the About dialog.
func (d *Desktop) AboutInfo() (memory, uptime string) {
	memory, uptime = "Memory: unknown", "Uptime: unknown"
	if d.devices.SysInfo == nil {
		return memory, uptime
	}
	if total, used, err := d.devices.SysInfo.Memory(); err == nil {
		memory = fmt.Sprintf("Memory: %d / %d KB", used/1024, total/1024)
	}
	if up, err := d.devices.SysInfo.Uptime(); err == nil {
		uptime = "Uptime: " + formatUptime(up)
	}
	return memory, uptime
}

func formatUptime(up time.Duration) string {
	secs := int(up / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
