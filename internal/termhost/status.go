package termhost

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
)

var (
	pillStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#007AFF")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
	barStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0b0"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808090")).Italic(true)
)

// statusBar renders the line under the desktop: the focused window on the
// left, any status message and the help hint on the right.
func (h *Host) statusBar() string {
	left := pillStyle.Render("kikidesk")
	if f := h.desk.Focused(); f != app.InvalidHandle {
		left += " " + barStyle.Render(h.desk.Window(f).Title)
	}

	right := hintStyle.Render(h.keys.GetKeysForDisplay(config.ActionToggleHelp) + " help")
	if h.status != "" && h.desk.Devices().Clock.Now().Before(h.statusUntil) {
		if withStatus := barStyle.Render(h.status) + "  " + right; fits(h.cols, left, withStatus) {
			right = withStatus
		}
	}
	if !fits(h.cols, left, right) {
		return left
	}
	return left + strings.Repeat(" ", h.cols-lipgloss.Width(left)-lipgloss.Width(right)) + right
}

func fits(cols int, left, right string) bool {
	return lipgloss.Width(left)+lipgloss.Width(right) < cols
}

// helpView lists the host shortcuts in a table.
func helpView(keys *config.KeybindRegistry) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, kb := range config.GetKeybindings(keys) {
		rows = append(rows, []string{kb.Key, kb.Description})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("kikidesk shortcuts")
	note := hintStyle.Render("Other keys go to the focused window. Esc closes this help.")
	return lipgloss.JoinVertical(lipgloss.Center, title, "", t.Render(), "", note)
}
