package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/server"
	"github.com/kikios/kikidesk/internal/termhost"
	"golang.org/x/term"
)

// loadConfig reads the config named by --config, or the user config. A
// broken file falls back to the defaults with a warning.
func loadConfig(logger *log.Logger) (*config.Config, string) {
	path := configFile
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		path, _ = config.GetConfigPath()
		cfg, err = config.LoadUserConfig()
	}
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "path", path, "err", err)
		cfg = config.DefaultConfig()
	}
	return cfg, path
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "kikidesk",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// applyLevel sets the configured level unless --debug already lowered it.
func applyLevel(logger *log.Logger, cfg *config.Config) {
	if debugMode {
		return
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("Unknown log level", "level", cfg.Log.Level)
		return
	}
	logger.SetLevel(level)
}

// watchConfig starts hot reload of path. Reload errors are logged.
func watchConfig(ctx context.Context, s *session, path string, logger *log.Logger) {
	if path == "" {
		return
	}
	updates, errs, err := config.Watch(ctx, path)
	if err != nil {
		logger.Warn("Config hot reload disabled", "err", err)
		return
	}
	s.scheduler.WatchConfig(updates)
	go func() {
		for err := range errs {
			logger.Warn("Config reload failed", "err", err)
		}
	}()
}

func runLocal(open []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal, use --headless to run without a display")
	}

	logPath, err := config.GetLogPath()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	cfg, path := loadConfig(logger)
	applyLevel(logger, cfg)
	logger.Info("Configuration", "path", path)

	s, err := newSession(cfg, logger, true)
	if err != nil {
		logger.Error("Failed to start desktop", "err", err)
		return err
	}
	if err := s.open(open); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchConfig(ctx, s, path, logger)

	opts := s.hostOptions()
	opts.Profile = colorprofile.Detect(os.Stdout, os.Environ())
	host := termhost.New(opts)

	p := tea.NewProgram(
		host,
		tea.WithFPS(cfg.Display.FPS),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	_, err = p.Run()
	s.scheduler.Shutdown()
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runHeadless(ctx context.Context, open []string) error {
	logger := newLogger(os.Stderr)
	cfg, path := loadConfig(logger)
	applyLevel(logger, cfg)

	s, err := newSession(cfg, logger, true)
	if err != nil {
		logger.Error("Failed to start desktop", "err", err)
		return err
	}
	if err := s.open(open); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	watchConfig(ctx, s, path, logger)

	logger.Info("Running headless", "fps", cfg.Display.FPS)
	if err := s.scheduler.Run(ctx, cfg.Display.FPS); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runSSHServer(host, port, keyPath string, maxSessions int) error {
	logger := newLogger(os.Stderr)
	cfg, path := loadConfig(logger)
	applyLevel(logger, cfg)
	logger.Info("Configuration", "path", path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Host:        host,
		Port:        port,
		KeyPath:     keyPath,
		MaxSessions: maxSessions,
		Logger:      logger,
		NewDesktop: func() (termhost.Options, error) {
			s, err := newSession(cfg, logger, false)
			if err != nil {
				return termhost.Options{}, err
			}
			return s.hostOptions(), nil
		},
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(host, port string, readOnly bool, maxConnections int) error {
	logger := newLogger(os.Stderr)
	cfg, path := loadConfig(logger)
	applyLevel(logger, cfg)
	logger.Info("Configuration", "path", path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := server.ServeWeb(ctx, server.WebConfig{
		Host:           host,
		Port:           port,
		ReadOnly:       readOnly,
		MaxConnections: maxConnections,
		Debug:          debugMode,
		Logger:         logger,
		NewDesktop: func() (termhost.Options, error) {
			s, err := newSession(cfg, logger, false)
			if err != nil {
				return termhost.Options{}, err
			}
			return s.hostOptions(), nil
		},
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
