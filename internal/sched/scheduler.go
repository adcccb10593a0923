package sched

import (
	"context"
	"time"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/input"
	"github.com/kikios/kikidesk/internal/render"
)

// Scheduler owns one tick of desktop work: sample input, route it, apply
// config reloads, render, then let every client run once.
type Scheduler struct {
	desk     *app.Desktop
	router   *input.Router
	comp     *render.Compositor
	launcher *Launcher
	configs  <-chan *config.Config
	ticks    uint64
}

// New wires a scheduler. The launcher is bound to d.
func New(d *app.Desktop, r *input.Router, c *render.Compositor, l *Launcher) *Scheduler {
	l.Bind(d)
	return &Scheduler{desk: d, router: r, comp: c, launcher: l}
}

// WatchConfig makes each tick apply the newest config received on ch.
func (s *Scheduler) WatchConfig(ch <-chan *config.Config) { s.configs = ch }

// Ticks returns how many ticks have run.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Tick runs one iteration of the desktop loop.
func (s *Scheduler) Tick() render.Frame {
	d := s.desk
	dev := d.Devices()

	if p := dev.Pointer; p != nil {
		p.Poll()
		x, y := p.Position()
		s.router.HandlePointer(x, y, p.Buttons())
	}
	if kb := dev.Keyboard; kb != nil {
		s.router.HandleKeys(kb)
	}
	s.drainConfig()
	d.RefreshClock()

	x, y, _ := s.router.Pointer()
	frame := s.comp.Render(x, y)

	s.launcher.Step()
	s.ticks++
	return frame
}

func (s *Scheduler) drainConfig() {
	var latest *config.Config
drain:
	for {
		select {
		case cfg, ok := <-s.configs:
			if !ok {
				s.configs = nil
				break drain
			}
			latest = cfg
		default:
			break drain
		}
	}
	s.apply(latest)
}

func (s *Scheduler) apply(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.desk.ApplyAppearance(cfg)
	s.desk.LogInfo("Config reloaded (theme %s, wallpaper %s)", s.desk.Theme(), s.desk.Wallpaper())
}

// Run ticks at fps until the desktop quits or ctx is cancelled, then shuts
// the compositor down.
func (s *Scheduler) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = config.NormalFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	defer s.Shutdown()
	for s.desk.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Shutdown stops all processes and blanks the display.
func (s *Scheduler) Shutdown() {
	s.launcher.Kill()
	s.comp.Shutdown()
}
