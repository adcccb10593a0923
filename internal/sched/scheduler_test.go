package sched

import (
	"context"
	"slices"
	"testing"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
	"github.com/kikios/kikidesk/internal/input"
	"github.com/kikios/kikidesk/internal/render"
)

type schedRig struct {
	d  *app.Desktop
	in *hal.VirtualInput
	l  *Launcher
	s  *Scheduler
	fb *hal.MemoryFramebuffer
}

func newSchedRig(t *testing.T, tasks map[string]*scripted) *schedRig {
	t.Helper()
	in := hal.NewVirtualInput(500, 400)
	l := NewLauncher(programs(tasks))
	d := newDesktop(t, l, in)
	c, err := render.New(d)
	if err != nil {
		t.Fatal(err)
	}
	return &schedRig{
		d:  d,
		in: in,
		l:  l,
		s:  New(d, input.NewRouter(d), c, l),
		fb: d.Devices().Framebuffer.(*hal.MemoryFramebuffer),
	}
}

// ============================================================================
// Tick
// ============================================================================

func TestTickFrames(t *testing.T) {
	g := newSchedRig(t, nil)

	if f := g.s.Tick(); f != render.FrameFull {
		t.Fatalf("first tick = %v, want full frame", f)
	}
	if f := g.s.Tick(); f != render.FrameNone {
		t.Errorf("idle tick = %v, want no frame", f)
	}
	g.in.MoveTo(510, 405)
	if f := g.s.Tick(); f != render.FrameCursor {
		t.Errorf("pointer tick = %v, want cursor frame", f)
	}
	if g.s.Ticks() != 3 {
		t.Errorf("Ticks() = %d, want 3", g.s.Ticks())
	}
}

func TestTickRoutesInputToClients(t *testing.T) {
	task := &scripted{life: -1}
	g := newSchedRig(t, map[string]*scripted{"/bin/app": task})
	if _, err := g.l.Spawn("/bin/app"); err != nil {
		t.Fatal(err)
	}
	g.s.Tick() // client opens its window

	w := g.d.Window(task.h)
	if w == nil {
		t.Fatal("client window was not created")
	}
	g.in.MoveTo(w.X+50, w.Y+80)
	g.s.Tick()
	g.in.Press(app.ButtonLeft)
	g.s.Tick()
	g.in.Release(app.ButtonLeft)
	g.in.TypeKey('k')
	g.s.Tick()

	want := []app.EventType{app.EventMouseMove, app.EventMouseDown, app.EventMouseUp, app.EventKey}
	if got := task.types(); !slices.Equal(got, want) {
		t.Fatalf("client saw %v, want %v", got, want)
	}
	if key := task.events[3].Data1; key != 'k' {
		t.Errorf("key = %q, want 'k'", rune(key))
	}
}

func TestClientsRunAfterRender(t *testing.T) {
	task := &scripted{life: -1}
	g := newSchedRig(t, map[string]*scripted{"/bin/app": task})
	if _, err := g.l.Spawn("/bin/app"); err != nil {
		t.Fatal(err)
	}

	g.s.Tick()
	if !g.d.NeedsFullRedraw() {
		t.Fatal("window created during the tick did not request a redraw")
	}
	if f := g.s.Tick(); f != render.FrameFull {
		t.Errorf("tick after create = %v, want full frame", f)
	}
}

// ============================================================================
// Config reload
// ============================================================================

func TestConfigReloadAppliesNewest(t *testing.T) {
	g := newSchedRig(t, nil)
	ch := make(chan *config.Config, 4)
	g.s.WatchConfig(ch)

	classic := config.DefaultConfig()
	classic.Appearance.Classic = true
	dark := config.DefaultConfig()
	dark.Appearance.Theme = config.ThemeDark.String()
	ch <- classic
	ch <- dark
	g.s.Tick()

	if g.d.Theme() != config.ThemeDark {
		t.Errorf("theme = %v, want dark", g.d.Theme())
	}
	if g.d.Classic() {
		t.Error("an older queued config was applied over the newest")
	}

	close(ch)
	g.s.Tick()
	g.s.Tick()
	if g.d.Theme() != config.ThemeDark {
		t.Error("closed channel changed the theme")
	}
}

// ============================================================================
// Run
// ============================================================================

func TestRunStopsOnQuit(t *testing.T) {
	task := &scripted{life: -1}
	g := newSchedRig(t, map[string]*scripted{"/bin/app": task})
	task.onStep = func(n int) {
		if n == 3 {
			g.d.Quit()
		}
	}
	if _, err := g.l.Spawn("/bin/app"); err != nil {
		t.Fatal(err)
	}

	if err := g.s.Run(context.Background(), 1000); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.s.Ticks() != 3 {
		t.Errorf("ran %d ticks, want 3", g.s.Ticks())
	}
	if n := len(g.l.Processes()); n != 0 {
		t.Errorf("%d processes survived shutdown", n)
	}
	if px := g.fb.Displayed().Pixel(10, 10); px != 0 {
		t.Errorf("display after shutdown = %#06x, want black", px)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := newSchedRig(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.s.Run(ctx, 0); err != context.Canceled {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if g.s.Ticks() != 0 {
		t.Errorf("ran %d ticks after cancel, want 0", g.s.Ticks())
	}
}
