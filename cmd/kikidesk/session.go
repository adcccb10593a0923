package main

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/clients"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
	"github.com/kikios/kikidesk/internal/input"
	"github.com/kikios/kikidesk/internal/pool"
	"github.com/kikios/kikidesk/internal/render"
	"github.com/kikios/kikidesk/internal/sched"
	"github.com/kikios/kikidesk/internal/termhost"
)

// session is one fully wired desktop.
type session struct {
	cfg       *config.Config
	fb        *hal.MemoryFramebuffer
	in        *hal.VirtualInput
	launcher  *sched.Launcher
	desk      *app.Desktop
	comp      *render.Compositor
	scheduler *sched.Scheduler

	shotWidth int // scale saved images to this width, 0 keeps the size
}

// newSession builds the devices described by cfg and a desktop on top of
// them. host selects the host clipboard and system figures over in-memory
// stand-ins.
func newSession(cfg *config.Config, logger *log.Logger, host bool) (*session, error) {
	fb, err := hal.NewMemoryFramebuffer(cfg.Display.Width, cfg.Display.Height, cfg.Display.HardwareDoubleBuffer)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}
	in := hal.NewVirtualInput(cfg.Display.Width/2, cfg.Display.Height/2)
	launcher := sched.NewLauncher(clients.Builtins())

	dev := hal.Devices{
		Framebuffer: fb,
		Pointer:     in,
		Keyboard:    in,
		Allocator:   hal.NewHeapAllocator(0),
		Launcher:    launcher,
		Clock:       hal.SystemClock{},
		SysInfo:     hal.HostSysInfo{},
		Clipboard:   hal.SystemClipboard{},
	}
	if !host {
		dev.SysInfo = hal.StaticSysInfo{Total: 64 << 20, Used: 12 << 20}
		dev.Clipboard = &hal.MemoryClipboard{}
	}
	if cfg.Display.Accelerator {
		dev.Accelerator = &hal.SoftAccelerator{}
	}

	desk, err := app.New(dev, cfg, app.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	comp, err := render.New(desk, render.WithVersion(version))
	if err != nil {
		return nil, err
	}
	logger.Info("desktop ready",
		"size", fmt.Sprintf("%dx%d", desk.Width, desk.Height),
		"present", comp.Mode(),
		"programs", len(launcher.Programs()))

	return &session{
		cfg:       cfg,
		fb:        fb,
		in:        in,
		launcher:  launcher,
		desk:      desk,
		comp:      comp,
		scheduler: sched.New(desk, input.NewRouter(desk), comp, launcher),
	}, nil
}

// hostOptions wires the session into a terminal host.
func (s *session) hostOptions() termhost.Options {
	return termhost.Options{
		Desktop:       s.desk,
		Scheduler:     s.scheduler,
		Framebuffer:   s.fb,
		Input:         s.in,
		Keybinds:      config.NewKeybindRegistry(s.cfg),
		FPS:           s.cfg.Display.FPS,
		ScreenshotDir: xdg.UserDirs.Pictures,
	}
}

// open spawns each program path before the first tick.
func (s *session) open(paths []string) error {
	for _, p := range paths {
		if _, err := s.launcher.Spawn(p); err != nil {
			return err
		}
	}
	return nil
}

// Tick runs one scheduler tick.
func (s *session) Tick() { s.scheduler.Tick() }

// Open spawns a windowed program.
func (s *session) Open(path string) error {
	_, err := s.launcher.Spawn(path)
	return err
}

// Screenshot saves the displayed frame to path.
func (s *session) Screenshot(path string) error {
	_, err := s.save(path)
	return err
}

// save encodes the displayed frame in the format named by the path
// extension and returns the saved bounds.
func (s *session) save(path string) (image.Rectangle, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return image.Rectangle{}, err
	}

	var img image.Image = s.fb.Displayed().Clone()
	if s.shotWidth > 0 {
		img = imaging.Resize(img, s.shotWidth, 0, imaging.Lanczos)
	}

	bufp := pool.GetByteSlice()
	defer pool.PutByteSlice(bufp)
	buf := bytes.NewBuffer((*bufp)[:0])
	if err := imaging.Encode(buf, img, format); err != nil {
		return image.Rectangle{}, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return image.Rectangle{}, fmt.Errorf("write %s: %w", path, err)
	}
	return img.Bounds(), nil
}
