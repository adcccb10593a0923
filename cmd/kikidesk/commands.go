package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/kikios/kikidesk/internal/clients"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/sched"
	"github.com/kikios/kikidesk/internal/tape"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// ============================================================================
// screenshot
// ============================================================================

type screenshotOptions struct {
	output string
	open   []string
	ticks  int
	width  int
	look   appearanceFlags
}

func newScreenshotCmd() *cobra.Command {
	var opts screenshotOptions
	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Render the desktop without a display and save it as an image",
		Long: `Render the desktop headless for a few ticks and save the displayed frame.

The format follows the output file extension (png, jpg, gif, bmp, tiff).`,
		Example: `  # Desktop with the paint program open
  kikidesk screenshot -o paint.png --open /bin/paint

  # Dark theme, scaled down to 512 pixels wide
  kikidesk screenshot --theme dark --width 512`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreenshot(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "kikidesk.png", "Output image file")
	cmd.Flags().StringArrayVar(&opts.open, "open", nil, "Program to start, may be repeated")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 3, "Ticks to run before capturing")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Scale the image to this width (0 keeps the framebuffer size)")
	opts.look.register(cmd)
	return cmd
}

func runScreenshot(out io.Writer, opts screenshotOptions) error {
	if opts.ticks < 1 {
		return fmt.Errorf("--ticks must be at least 1, got %d", opts.ticks)
	}
	if _, err := imaging.FormatFromFilename(opts.output); err != nil {
		return err
	}

	logger := newLogger(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	cfg, _ := loadConfig(logger)
	if err := opts.look.apply(cfg); err != nil {
		return err
	}

	s, err := newSession(cfg, logger, false)
	if err != nil {
		return err
	}
	if err := s.open(opts.open); err != nil {
		return err
	}
	for range opts.ticks {
		s.scheduler.Tick()
	}

	s.shotWidth = opts.width
	b, err := s.save(opts.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s (%dx%d)\n", opts.output, b.Dx(), b.Dy())
	return nil
}

// appearanceFlags override the configured look for one run.
type appearanceFlags struct {
	theme     string
	wallpaper string
	tint      string
}

func (f *appearanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.theme, "theme", "", "Override the theme (light, dark)")
	cmd.Flags().StringVar(&f.wallpaper, "wallpaper", "", "Override the wallpaper (solid, gradient, pattern)")
	cmd.Flags().StringVar(&f.tint, "tint", "", "Accent colours from a terminal scheme (e.g. dracula, nord)")
}

func (f appearanceFlags) apply(cfg *config.Config) error {
	if f.theme != "" {
		if _, err := config.ParseTheme(f.theme); err != nil {
			return err
		}
		cfg.Appearance.Theme = f.theme
	}
	if f.wallpaper != "" {
		if _, err := config.ParseWallpaper(f.wallpaper); err != nil {
			return err
		}
		cfg.Appearance.Wallpaper = f.wallpaper
	}
	if f.tint != "" {
		if !config.HasTint(f.tint) {
			return fmt.Errorf("unknown tint %q", f.tint)
		}
		cfg.Appearance.Tint = f.tint
	}
	return nil
}

// ============================================================================
// play
// ============================================================================

func newPlayCmd() *cobra.Command {
	var (
		output string
		width  int
		look   appearanceFlags
	)
	cmd := &cobra.Command{
		Use:   "play <script.tape>",
		Short: "Drive the desktop headless from a tape script",
		Long: `Play a tape script against a headless desktop.

Scripts move and click the pointer, type keys, open programs and save
screenshots. One command per line:

  Open "/bin/paint"          start a program
  Click 200 150              left click (RightClick for the right button)
  Drag 100 100 300 200       press, move and release
  Move 40 40                 move the pointer
  Type "hello"               type text (Type@20ms "..." sets the pace)
  Enter | Escape | Up 3      named keys with an optional repeat count
  Ctrl+C                     control codes
  Sleep 500ms | Tick 5       let the desktop run
  Screenshot "step.png"      save the displayed frame
  Output "final.png"         save when the script ends
  Set FPS 30 | Set TypingSpeed 50ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			commands, err := tape.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			logger := newLogger(os.Stderr)
			logger.SetLevel(log.WarnLevel)
			if debugMode {
				logger.SetLevel(log.DebugLevel)
			}
			cfg, _ := loadConfig(logger)
			if err := look.apply(cfg); err != nil {
				return err
			}
			s, err := newSession(cfg, logger, false)
			if err != nil {
				return err
			}
			s.shotWidth = width

			p := tape.NewPlayer(commands, s.in, s, tape.WithFPS(cfg.Display.FPS), tape.WithLogger(logger))
			if err := p.Run(cmd.Context()); err != nil {
				return err
			}
			if p.Output() == "" && output != "" {
				if err := s.Screenshot(output); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Played %d commands in %d ticks\n", p.TotalCommands(), p.Ticks())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Save the final frame here unless the script sets Output")
	cmd.Flags().IntVar(&width, "width", 0, "Scale saved images to this width")
	look.register(cmd)
	return cmd
}

// ============================================================================
// config
// ============================================================================

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kikidesk configuration",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("could not determine config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path := loadConfig(newLogger(os.Stderr))
			if problems := cfg.Validate(); problems != nil {
				fmt.Fprintln(os.Stderr, noteStyle.Render(problems.Error()))
			}
			data, err := config.Marshal(cfg, path)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the configuration file to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfig(cmd.InOrStdin(), cmd.OutOrStdout(), yes)
		},
	}
	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(pathCmd, showCmd, editCmd, resetCmd)
	return cmd
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", path)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found, set $EDITOR")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resetConfig(in io.Reader, out io.Writer, yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !yes {
		fmt.Fprintf(out, "This will overwrite your configuration at:\n  %s\n\n", path)
		fmt.Fprint(out, "Reset to defaults? (yes/no): ")
		var response string
		fmt.Fscanln(in, &response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Configuration reset to defaults\n  Location: %s\n", path)
	return nil
}

// ============================================================================
// keys
// ============================================================================

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the terminal host shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig(newLogger(os.Stderr))
			printKeybindingsTable(cmd.OutOrStdout(), config.NewKeybindRegistry(cfg))
			return nil
		},
	}
}

func printKeybindingsTable(out io.Writer, registry *config.KeybindRegistry) {
	t := newTable("Keys", "Action")
	for _, kb := range config.GetKeybindings(registry) {
		t.Row(kb.Key, kb.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("kikidesk shortcuts"))
	fmt.Fprintln(out, t.Render())
	fmt.Fprintln(out, noteStyle.Render("Every other key is typed into the focused window."))
	fmt.Fprintln(out)
}

// ============================================================================
// programs
// ============================================================================

func newProgramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the built-in programs and the dock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadConfig(newLogger(os.Stderr))
			printPrograms(cmd.OutOrStdout(), sched.NewLauncher(clients.Builtins()), cfg.Dock.Icons)
			return nil
		},
	}
}

func printPrograms(out io.Writer, l *sched.Launcher, icons []config.DockIcon) {
	programs := l.Programs()

	t := newTable("Path", "Dock", "Mode")
	for _, p := range programs {
		label := "-"
		mode := "windowed"
		for _, icon := range icons {
			if icon.Exec == p {
				label = icon.Label
				if icon.Fullscreen {
					mode = "fullscreen"
				}
			}
		}
		t.Row(p, label, mode)
	}

	var missing []string
	for _, icon := range icons {
		if icon.Exec != config.SettingsExec && !slices.Contains(programs, icon.Exec) {
			missing = append(missing, icon.Label)
		}
	}

	fmt.Fprintln(out, titleStyle.Render("Built-in programs"))
	fmt.Fprintln(out, t.Render())
	if len(missing) > 0 {
		fmt.Fprintln(out, noteStyle.Render("Dock icons without a program: "+strings.Join(missing, ", ")))
	}
}
