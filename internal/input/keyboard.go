package input

import (
	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/hal"
)

// HandleKeys drains the keyboard queue.
func (r *Router) HandleKeys(kb hal.Keyboard) {
	for kb.HasKey() {
		r.HandleKey(kb.GetKey())
	}
}

// HandleKey routes one key code. Dialogs and open menus consume keys;
// otherwise the key goes to the focused window.
func (r *Router) HandleKey(code int) {
	d := r.desk
	switch r.State() {
	case StateModalCapture:
		switch code {
		case app.KeyEscape, app.KeyEnter, app.KeyReturn:
			d.CloseModal()
		}
		return

	case StateMenuOpen:
		if d.ContextMenuOpen() {
			if code == app.KeyEscape {
				d.CloseContextMenu()
			}
			return
		}
		switch code {
		case app.KeyEscape:
			d.SetOpenMenu(app.MenuNone)
		case app.KeyLeft:
			d.CycleMenu(-1)
		case app.KeyRight:
			d.CycleMenu(1)
		case app.KeyUp:
			d.MoveMenuSelection(-1)
		case app.KeyDown:
			d.MoveMenuSelection(1)
		case app.KeyEnter, app.KeyReturn:
			d.ActivateMenuSelection()
		}
		return
	}

	if f := d.Focused(); f != app.InvalidHandle {
		d.PushEvent(f, app.EventKey, code, 0, 0)
	}
}
