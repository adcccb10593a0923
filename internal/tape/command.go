package tape

import (
	"fmt"
	"strings"
	"time"

	"github.com/kikios/kikidesk/internal/app"
)

// CommandType represents the type of a tape command
type CommandType string

const (
	CommandType_Type      CommandType = "Type"
	CommandType_Enter     CommandType = "Enter"
	CommandType_Space     CommandType = "Space"
	CommandType_Backspace CommandType = "Backspace"
	CommandType_Delete    CommandType = "Delete"
	CommandType_Tab       CommandType = "Tab"
	CommandType_Escape    CommandType = "Escape"

	CommandType_Up       CommandType = "Up"
	CommandType_Down     CommandType = "Down"
	CommandType_Left     CommandType = "Left"
	CommandType_Right    CommandType = "Right"
	CommandType_Home     CommandType = "Home"
	CommandType_End      CommandType = "End"
	CommandType_PageUp   CommandType = "PageUp"
	CommandType_PageDown CommandType = "PageDown"

	// Ctrl+X
	CommandType_KeyCombo CommandType = "KeyCombo"

	CommandType_Move       CommandType = "Move"
	CommandType_Click      CommandType = "Click"
	CommandType_RightClick CommandType = "RightClick"
	CommandType_Drag       CommandType = "Drag"

	CommandType_Sleep CommandType = "Sleep"
	CommandType_Tick  CommandType = "Tick"

	CommandType_Open       CommandType = "Open"
	CommandType_Screenshot CommandType = "Screenshot"

	CommandType_Set    CommandType = "Set"
	CommandType_Output CommandType = "Output"
)

// keyCodes maps the single-key commands to the codes the desktop receives.
var keyCodes = map[CommandType]int{
	CommandType_Enter:     app.KeyEnter,
	CommandType_Space:     ' ',
	CommandType_Backspace: app.KeyBackspace,
	CommandType_Delete:    app.KeyDelete,
	CommandType_Tab:       app.KeyTab,
	CommandType_Escape:    app.KeyEscape,
	CommandType_Up:        app.KeyUp,
	CommandType_Down:      app.KeyDown,
	CommandType_Left:      app.KeyLeft,
	CommandType_Right:     app.KeyRight,
	CommandType_Home:      app.KeyHome,
	CommandType_End:       app.KeyEnd,
	CommandType_PageUp:    app.KeyPageUp,
	CommandType_PageDown:  app.KeyPageDown,
}

// Command represents a parsed tape command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Pause after each key, or the Sleep length
	Line   int           // Source line number
	Column int           // Source column number
}

// String returns a string representation of the command
func (c *Command) String() string {
	switch c.Type {
	case CommandType_Type:
		return fmt.Sprintf("Type %q", strings.Join(c.Args, ""))
	case CommandType_KeyCombo:
		return strings.Join(c.Args, "")
	case CommandType_Open, CommandType_Screenshot, CommandType_Output:
		return fmt.Sprintf("%s %q", c.Type, strings.Join(c.Args, ""))
	case CommandType_Sleep:
		return fmt.Sprintf("Sleep %v", c.Delay)
	}
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return string(c.Type) + " " + strings.Join(c.Args, " ")
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// ParseKeyCombo turns "Ctrl+C" into the control code 0x03. Only Ctrl with a
// letter has a code on the desktop keyboard.
func ParseKeyCombo(s string) (int, error) {
	parts := strings.Split(s, "+")
	if len(parts) != 2 || parts[0] != "Ctrl" {
		return 0, fmt.Errorf("unsupported key combo %q", s)
	}
	key := strings.ToLower(parts[1])
	if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		return 0, fmt.Errorf("unsupported key combo %q", s)
	}
	return int(key[0]-'a') + 1, nil
}
