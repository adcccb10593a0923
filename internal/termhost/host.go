// Package termhost runs the desktop inside a terminal. The framebuffer is
// shown as half-block cells and terminal mouse and keyboard events drive the
// virtual input devices.
package termhost

import (
	"fmt"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/disintegration/imaging"
	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
	"github.com/kikios/kikidesk/internal/pixel"
	"github.com/kikios/kikidesk/internal/pool"
	"github.com/kikios/kikidesk/internal/render"
	"github.com/kikios/kikidesk/internal/sched"
)

// statusLines is the number of terminal rows below the desktop image.
const statusLines = 1

// statusTTL is how long a status message stays up.
const statusTTL = 3 * time.Second

type tickMsg time.Time

// Options configures a Host.
type Options struct {
	Desktop     *app.Desktop
	Scheduler   *sched.Scheduler
	Framebuffer *hal.MemoryFramebuffer
	Input       *hal.VirtualInput
	Keybinds    *config.KeybindRegistry

	// Profile limits the colours written to the terminal. The zero value
	// selects TrueColor.
	Profile colorprofile.Profile
	FPS     int

	// ScreenshotDir is where the screenshot action saves PNGs.
	ScreenshotDir string
}

// Host is the Bubble Tea model around a running desktop.
type Host struct {
	desk    *app.Desktop
	sched   *sched.Scheduler
	fb      *hal.MemoryFramebuffer
	in      *hal.VirtualInput
	keys    *config.KeybindRegistry
	profile colorprofile.Profile
	fps     int
	shotDir string

	cols, rows int
	scaled     *pixel.View
	frame      string
	stale      bool
	buttons    uint8

	showHelp    bool
	status      string
	statusUntil time.Time
}

// New returns a host for a fully wired desktop.
func New(opts Options) *Host {
	h := &Host{
		desk:    opts.Desktop,
		sched:   opts.Scheduler,
		fb:      opts.Framebuffer,
		in:      opts.Input,
		keys:    opts.Keybinds,
		profile: opts.Profile,
		fps:     opts.FPS,
		shotDir: opts.ScreenshotDir,
		stale:   true,
	}
	if h.keys == nil {
		h.keys = config.NewKeybindRegistry(nil)
	}
	if h.fps <= 0 {
		h.fps = config.NormalFPS
	}
	if h.profile == 0 {
		h.profile = colorprofile.TrueColor
	}
	return h
}

func (h *Host) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(h.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (h *Host) Init() tea.Cmd { return h.tick() }

// step runs one desktop tick.
func (h *Host) step() tea.Cmd {
	if h.sched.Tick() != render.FrameNone {
		h.stale = true
	}
	if !h.desk.Running() {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if cmd := h.step(); cmd != nil {
			return h, cmd
		}
		return h, h.tick()

	case tea.WindowSizeMsg:
		h.cols, h.rows = msg.Width, msg.Height
		h.scaled = nil
		h.stale = true
		return h, nil

	case tea.KeyPressMsg:
		return h, h.handleKey(msg)

	case tea.MouseClickMsg:
		m := msg.Mouse()
		h.moveTo(m.X, m.Y)
		h.buttons |= mouseButton(m.Button)
		h.in.SetButtons(h.buttons)
		// A press and release inside one tick would otherwise cancel out.
		return h, h.step()

	case tea.MouseReleaseMsg:
		m := msg.Mouse()
		h.moveTo(m.X, m.Y)
		if b := mouseButton(m.Button); b != 0 {
			h.buttons &^= b
		} else {
			h.buttons = 0
		}
		h.in.SetButtons(h.buttons)
		return h, h.step()

	case tea.MouseMotionMsg:
		m := msg.Mouse()
		h.moveTo(m.X, m.Y)
		return h, nil

	case tea.MouseMsg:
		return h, nil
	}
	return h, nil
}

func (h *Host) frameRows() int { return max(h.rows-statusLines, 1) }

func (h *Host) moveTo(col, row int) {
	x, y := cellToPixel(col, row, h.cols, h.frameRows(), h.desk.Width, h.desk.Height)
	h.in.MoveTo(x, y)
}

func (h *Host) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if action := h.keys.Action(msg.String()); action != "" {
		return h.runAction(action)
	}
	if h.showHelp {
		if msg.Key().Code == tea.KeyEscape {
			h.showHelp = false
			h.stale = true
		}
		return nil
	}
	for _, code := range keyCodes(msg.Key()) {
		if !h.in.TypeKey(code) {
			h.desk.LogWarn("Key buffer full, dropped %#x", code)
		}
	}
	return nil
}

func (h *Host) runAction(action string) tea.Cmd {
	d := h.desk
	focused := d.Focused()
	switch action {
	case config.ActionQuit:
		d.Quit()
		return tea.Quit
	case config.ActionScreenshot:
		path, err := h.Screenshot()
		if err != nil {
			d.LogError("Screenshot failed: %v", err)
			h.setStatus("Screenshot failed")
		} else {
			h.setStatus("Saved " + filepath.Base(path))
		}
	case config.ActionCloseWindow:
		if focused != app.InvalidHandle {
			d.PushEvent(focused, app.EventClose, 0, 0, 0)
		}
	case config.ActionMinimizeWindow:
		if focused != app.InvalidHandle {
			d.Minimize(focused)
		}
	case config.ActionMaximizeWindow:
		if focused != app.InvalidHandle {
			d.ToggleMaximize(focused)
		}
	case config.ActionNextWindow:
		h.cycleFocus()
	case config.ActionToggleHelp:
		h.showHelp = !h.showHelp
	}
	h.stale = true
	return nil
}

// cycleFocus raises the back-most visible window.
func (h *Host) cycleFocus() {
	order := h.desk.Order()
	for i := len(order) - 1; i > 0; i-- {
		if w := h.desk.Window(order[i]); w != nil && !w.Minimized {
			h.desk.BringToFront(order[i])
			return
		}
	}
}

func (h *Host) setStatus(s string) {
	h.status = s
	h.statusUntil = h.desk.Devices().Clock.Now().Add(statusTTL)
}

// Screenshot writes the displayed frame to a timestamped PNG and returns its
// path.
func (h *Host) Screenshot() (string, error) {
	name := "kikidesk-" + h.desk.Devices().Clock.Now().Format("20060102-150405") + ".png"
	path := filepath.Join(h.shotDir, name)
	if err := imaging.Save(h.fb.Displayed().Clone(), path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	h.desk.LogInfo("Saved screenshot %s", path)
	return path, nil
}

// View implements tea.Model.
func (h *Host) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion

	if h.cols <= 0 || h.rows <= 0 {
		v.SetContent("starting kikidesk...")
		return v
	}
	if h.showHelp {
		v.SetContent(lipgloss.Place(h.cols, h.rows, lipgloss.Center, lipgloss.Center, helpView(h.keys)))
		return v
	}
	if h.stale {
		h.frame = h.renderFrame()
		h.stale = false
	}
	v.SetContent(h.frame + "\n" + h.statusBar())
	return v
}

func (h *Host) renderFrame() string {
	if h.scaled == nil || h.scaled.Width() != h.cols || h.scaled.Height() != h.frameRows()*2 {
		h.scaled = pixel.New(h.cols, h.frameRows()*2)
	}
	pixel.ScaleInto(h.scaled, h.fb.Displayed())

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	renderHalfBlocks(sb, h.scaled, h.profile)
	return sb.String()
}
