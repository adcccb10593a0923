// Package main implements kikidesk, a pixel desktop compositor that runs in a
// terminal or headless.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode  bool
	configFile string
)

func main() {
	var (
		headless bool
		open     []string
	)

	rootCmd := &cobra.Command{
		Use:   "kikidesk",
		Short: "Pixel desktop compositor",
		Long: `kikidesk - a windowed pixel desktop

Runs the desktop compositor on an emulated framebuffer and shows it in the
terminal using half-block cells. Mouse and keyboard input from the terminal
drive the desktop's pointer and keyboard.`,
		Example: `  # Run the desktop in this terminal
  kikidesk

  # Start with two programs open
  kikidesk --open /bin/hello --open /bin/paint

  # Run without a display until interrupted
  kikidesk --headless

  # Save a picture of the desktop
  kikidesk screenshot -o desk.png --open /bin/hello`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if headless {
				return runHeadless(cmd.Context(), open)
			}
			return runLocal(open)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is the XDG config path)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Run without a terminal display")
	rootCmd.Flags().StringArrayVar(&open, "open", nil, "Program to start, may be repeated")

	var (
		sshHost, sshPort, sshKeyPath string
		sshMaxSessions               int
	)
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve desktops over SSH",
		Long: `Run an SSH server that gives every connecting terminal its own desktop.

The host key is generated on first start when it does not exist.`,
		Example: `  # Start SSH server on default port
  kikidesk ssh

  # Listen on all interfaces, at most 4 desktops at a time
  kikidesk ssh --host 0.0.0.0 --max-sessions 4

  # Connect
  ssh -p 2222 localhost`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath, sshMaxSessions)
		},
	}
	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	sshCmd.Flags().IntVar(&sshMaxSessions, "max-sessions", 8, "Concurrent desktops allowed (0 for no limit)")

	var (
		webHost, webPort  string
		webReadOnly       bool
		webMaxConnections int
	)
	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve desktops to web browsers",
		Long: `Serve the desktop through the browser. Each tab gets its own desktop.

Uses WebTransport where the browser supports it and falls back to
WebSocket. A self-signed certificate is generated for development.`,
		Example: `  # Start web server on default port (7681)
  kikidesk web

  # View only, at most 10 tabs
  kikidesk web --read-only --max-connections 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebServer(webHost, webPort, webReadOnly, webMaxConnections)
		},
	}
	webCmd.Flags().StringVar(&webPort, "port", "7681", "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "Web server host")
	webCmd.Flags().BoolVar(&webReadOnly, "read-only", false, "Disable input from clients (view only)")
	webCmd.Flags().IntVar(&webMaxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")

	rootCmd.AddCommand(sshCmd, webCmd, newScreenshotCmd(), newPlayCmd(), newConfigCmd(), newKeysCmd(), newProgramsCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}
