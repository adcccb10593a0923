// Package server serves the desktop over SSH. Every connection gets its own
// desktop, drawn into the client's terminal the same way the local host does.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/kikios/kikidesk/internal/termhost"
)

const shutdownTimeout = 5 * time.Second

// Config holds configuration for the SSH server.
type Config struct {
	Host    string
	Port    string
	KeyPath string // generated on first start if missing

	// MaxSessions caps concurrent desktops. Zero means no limit.
	MaxSessions int

	Logger *log.Logger

	// NewDesktop builds a fresh desktop for one connection.
	NewDesktop func() (termhost.Options, error)
}

// Server accepts SSH connections and runs a desktop for each.
type Server struct {
	cfg    Config
	active atomic.Int64
}

// New creates a server. A nil logger discards output.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg}
}

// DefaultKeyPath returns the host key location under the XDG data dir.
func DefaultKeyPath() (string, error) {
	path, err := xdg.DataFile(filepath.Join("kikidesk", "ssh_host_ed25519"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve host key path: %w", err)
	}
	return path, nil
}

// Active returns the number of connected desktops.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	keyPath := s.cfg.KeyPath
	if keyPath == "" {
		var err error
		if keyPath, err = DefaultKeyPath(); err != nil {
			return err
		}
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(s.cfg.Host, s.cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.handler),
			s.limit,
			logging.MiddlewareWithLogger(s.cfg.Logger),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("Starting SSH server", "addr", srv.Addr, "key", keyPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("Shutting down SSH server", "sessions", s.Active())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// limit refuses connections beyond MaxSessions.
func (s *Server) limit(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)
		if s.cfg.MaxSessions > 0 && n > int64(s.cfg.MaxSessions) {
			s.cfg.Logger.Warn("Refusing SSH session", "user", sess.User(), "active", n-1)
			fmt.Fprintln(sess.Stderr(), "kikidesk: too many desktops open, try again later")
			_ = sess.Exit(1)
			return
		}
		next(sess)
	}
}

// handler creates a desktop for each SSH session.
func (s *Server) handler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		s.cfg.Logger.Warn("SSH session without a terminal", "user", sess.User())
		return nil, nil
	}

	opts, err := s.cfg.NewDesktop()
	if err != nil {
		s.cfg.Logger.Error("Failed to start desktop for SSH session", "user", sess.User(), "err", err)
		return nil, nil
	}
	opts.Profile = colorprofile.Env(append(sess.Environ(), "TERM="+pty.Term))

	s.cfg.Logger.Info("Desktop started for SSH session",
		"user", sess.User(),
		"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
		"profile", opts.Profile)

	return termhost.New(opts), []tea.ProgramOption{tea.WithFPS(opts.FPS)}
}
