package config

import (
	"sort"
	"strings"
)

// Host shortcut actions. Keys bound to these are consumed by the terminal host
// and never reach the desktop keyboard queue.
const (
	ActionQuit           = "quit"
	ActionScreenshot     = "screenshot"
	ActionCloseWindow    = "close_window"
	ActionMinimizeWindow = "minimize_window"
	ActionMaximizeWindow = "maximize_window"
	ActionNextWindow     = "next_window"
	ActionToggleHelp     = "toggle_help"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

var actionDescriptions = map[string]string{
	ActionQuit:           "Quit the desktop",
	ActionScreenshot:     "Save a screenshot",
	ActionCloseWindow:    "Close focused window",
	ActionMinimizeWindow: "Minimize focused window",
	ActionMaximizeWindow: "Maximize or restore focused window",
	ActionNextWindow:     "Cycle window focus",
	ActionToggleHelp:     "Show or hide this help",
}

// DefaultKeybindings returns the stock host shortcuts.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionQuit:           {"ctrl+q"},
		ActionScreenshot:     {"ctrl+s"},
		ActionCloseWindow:    {"ctrl+w"},
		ActionMinimizeWindow: {"ctrl+n"},
		ActionMaximizeWindow: {"ctrl+f"},
		ActionNextWindow:     {"ctrl+t"},
		ActionToggleHelp:     {"f1"},
	}
}

// KeybindRegistry maps key strings to actions.
type KeybindRegistry struct {
	actions map[string]string   // key -> action
	keys    map[string][]string // action -> keys
}

// NewKeybindRegistry builds a registry from the config. Unknown actions are ignored
// and actions missing from the config keep their defaults.
func NewKeybindRegistry(cfg *Config) *KeybindRegistry {
	r := &KeybindRegistry{
		actions: make(map[string]string),
		keys:    make(map[string][]string),
	}
	bindings := DefaultKeybindings()
	if cfg != nil {
		for action, keys := range cfg.Keybindings {
			if _, ok := actionDescriptions[action]; ok {
				bindings[action] = keys
			}
		}
	}
	for action, keys := range bindings {
		for _, k := range keys {
			k = normalizeKey(k)
			if k == "" {
				continue
			}
			r.actions[k] = action
			r.keys[action] = append(r.keys[action], k)
		}
	}
	return r
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// Action returns the action bound to key, or "" if none.
func (r *KeybindRegistry) Action(key string) string {
	return r.actions[normalizeKey(key)]
}

// GetKeysForDisplay returns the keys for an action joined for help output.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return strings.Join(r.keys[action], ", ")
}

// GetKeybindings lists every bound action sorted by action name.
func GetKeybindings(r *KeybindRegistry) []Keybinding {
	actions := make([]string, 0, len(actionDescriptions))
	for a := range actionDescriptions {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	out := make([]Keybinding, 0, len(actions))
	for _, a := range actions {
		keys := r.GetKeysForDisplay(a)
		if keys == "" {
			continue
		}
		out = append(out, Keybinding{Key: keys, Description: actionDescriptions[a]})
	}
	return out
}
