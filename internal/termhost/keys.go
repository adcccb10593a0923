package termhost

import (
	tea "charm.land/bubbletea/v2"
	"github.com/kikios/kikidesk/internal/app"
)

var specialKeys = map[rune]int{
	tea.KeyEnter:     app.KeyEnter,
	tea.KeyTab:       app.KeyTab,
	tea.KeyBackspace: app.KeyBackspace,
	tea.KeyEscape:    app.KeyEscape,
	tea.KeySpace:     ' ',
	tea.KeyUp:        app.KeyUp,
	tea.KeyDown:      app.KeyDown,
	tea.KeyLeft:      app.KeyLeft,
	tea.KeyRight:     app.KeyRight,
	tea.KeyHome:      app.KeyHome,
	tea.KeyEnd:       app.KeyEnd,
	tea.KeyDelete:    app.KeyDelete,
	tea.KeyPgUp:      app.KeyPageUp,
	tea.KeyPgDown:    app.KeyPageDown,
}

// keyCodes converts a terminal key press into desktop key codes. Ctrl+letter
// becomes the matching control character; keys the desktop has no code for
// yield nothing.
func keyCodes(k tea.Key) []int {
	if k.Mod&tea.ModCtrl != 0 {
		switch {
		case k.Code >= 'a' && k.Code <= 'z':
			return []int{int(k.Code-'a') + 1}
		case k.Code >= 'A' && k.Code <= 'Z':
			return []int{int(k.Code-'A') + 1}
		}
		return nil
	}
	if code, ok := specialKeys[k.Code]; ok {
		return []int{code}
	}
	if k.Mod&tea.ModAlt != 0 {
		return nil
	}
	var out []int
	for _, r := range k.Text {
		out = append(out, int(r))
	}
	return out
}

// mouseButton maps a terminal button to a desktop button bit.
func mouseButton(b tea.MouseButton) uint8 {
	switch b {
	case tea.MouseLeft:
		return app.ButtonLeft
	case tea.MouseRight:
		return app.ButtonRight
	case tea.MouseMiddle:
		return app.ButtonMiddle
	}
	return 0
}
