package server

import (
	"context"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/kikios/kikidesk/internal/termhost"
)

// WebConfig holds configuration for the browser front end.
type WebConfig struct {
	Host           string
	Port           string
	ReadOnly       bool // clients watch but cannot type or click
	MaxConnections int  // zero means no limit
	Debug          bool

	Logger *log.Logger

	// NewDesktop builds a fresh desktop for one browser tab.
	NewDesktop func() (termhost.Options, error)
}

// ServeWeb serves a desktop to every browser that connects, until ctx is
// cancelled.
func ServeWeb(ctx context.Context, cfg WebConfig) error {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	sipConfig := sip.DefaultConfig()
	sipConfig.Host = cfg.Host
	sipConfig.Port = cfg.Port
	sipConfig.ReadOnly = cfg.ReadOnly
	sipConfig.MaxConnections = cfg.MaxConnections
	sipConfig.Debug = cfg.Debug

	cfg.Logger.Info("Starting web server", "addr", cfg.Host+":"+cfg.Port, "read_only", cfg.ReadOnly)
	return sip.NewServer(sipConfig).Serve(ctx, func(sip.Session) (tea.Model, []tea.ProgramOption) {
		return cfg.model()
	})
}

// model builds the program for one connection. Browser terminals always
// render true colour.
func (cfg WebConfig) model() (tea.Model, []tea.ProgramOption) {
	opts, err := cfg.NewDesktop()
	if err != nil {
		cfg.Logger.Error("Failed to start desktop for web session", "err", err)
		return errorModel{err: err}, nil
	}
	opts.Profile = colorprofile.TrueColor
	return termhost.New(opts), []tea.ProgramOption{tea.WithFPS(opts.FPS)}
}

// errorModel tells the client the desktop could not start.
type errorModel struct {
	err error
}

func (m errorModel) Init() tea.Cmd { return nil }

func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m errorModel) View() tea.View {
	var v tea.View
	v.SetContent("kikidesk could not start a desktop: " + m.err.Error() + "\n\nPress any key to disconnect.")
	return v
}
