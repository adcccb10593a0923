package render

import (
	"errors"
	"image"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
	"github.com/kikios/kikidesk/internal/pixel"
)

const (
	screenW = config.DefaultScreenWidth
	screenH = config.DefaultScreenHeight
)

type setup struct {
	double  bool
	accel   bool
	classic bool
	budget  int
}

type rig struct {
	d     *app.Desktop
	c     *Compositor
	fb    *hal.MemoryFramebuffer
	accel *hal.SoftAccelerator
	alloc *hal.HeapAllocator
}

func newRig(t testing.TB, s setup) *rig {
	t.Helper()
	fb, err := hal.NewMemoryFramebuffer(screenW, screenH, s.double)
	if err != nil {
		t.Fatal(err)
	}
	g := &rig{fb: fb, alloc: hal.NewHeapAllocator(s.budget)}
	dev := hal.Devices{
		Framebuffer: fb,
		Allocator:   g.alloc,
		Clock:       hal.FixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		SysInfo:     hal.StaticSysInfo{Total: 64 << 20, Used: 16 << 20, Up: time.Hour},
	}
	if s.accel {
		g.accel = &hal.SoftAccelerator{}
		dev.Accelerator = g.accel
	}
	cfg := config.DefaultConfig()
	cfg.Appearance.Classic = s.classic
	cfg.Appearance.Wallpaper = config.WallpaperGradient.String()

	g.d, err = app.New(dev, cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.c, err = New(g.d, WithVersion("test"))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// populate opens overlapping windows with distinct content, one of them
// minimized, and drops the File menu.
func (g *rig) populate(t testing.TB) {
	t.Helper()
	d := g.d
	a := d.Create(40, 60, 300, 200, "alpha")
	b := d.Create(200, 150, 360, 240, "beta")
	c := d.Create(600, 100, 200, 150, "gamma")
	if a == app.InvalidHandle || b == app.InvalidHandle || c == app.InvalidHandle {
		t.Fatal("create failed")
	}
	paint(d.Window(a).Buffer(), 0x00FF0000)
	d.Window(b).Buffer().GradientV(0, 0, 360, 212, 0x00112233, 0x00AABBCC)
	paint(d.Window(c).Buffer(), 0x0000FF00)
	d.Minimize(c)
	d.SetOpenMenu(app.MenuFile)
}

func paint(v *pixel.View, c uint32) { v.Fill(c) }

// =============================================================================
// Cursor overlay
// =============================================================================

func randomView(w, h int, seed uint64) *pixel.View {
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	v := pixel.New(w, h)
	for y := 0; y < h; y++ {
		row := v.Row(y)
		for i := range row {
			row[i] = r.Uint32() & 0x00FFFFFF
		}
	}
	return v
}

func TestCursorRestoreLeavesFrameIdentical(t *testing.T) {
	positions := []image.Point{
		{10, 10}, {0, 0}, {-5, -7}, {120, 90}, {125, 95}, {-20, 50},
	}
	for _, p := range positions {
		v := randomView(128, 96, uint64(p.X*1000+p.Y+5000))
		want := v.Clone()

		c := NewCursor()
		c.Stamp(v, p.X, p.Y)
		c.Restore(v)
		if !v.Equal(want) {
			t.Errorf("stamp+restore at %v changed the frame", p)
		}
	}
}

func TestCursorMoveLeavesNoTrail(t *testing.T) {
	v := pixel.New(200, 200)
	v.Fill(0x00123456)
	c := NewCursor()

	c.Stamp(v, 10, 10)
	if got := v.Pixel(10, 10); got != config.ColorBlack {
		t.Fatalf("hotspot = %06x, want outline", got)
	}
	if got := v.Pixel(11, 12); got != config.ColorWhite {
		t.Fatalf("fill = %06x, want white", got)
	}

	c.Move(v, 60, 80)
	for y := 10; y < 10+config.CursorSize; y++ {
		for x := 10; x < 10+config.CursorSize; x++ {
			if v.Pixel(x, y) != 0x00123456 {
				t.Fatalf("trail left at (%d,%d)", x, y)
			}
		}
	}
	if x, y, ok := c.Position(); !ok || x != 60 || y != 80 {
		t.Errorf("Position = %d,%d,%v", x, y, ok)
	}
}

func TestCursorRestoreWithoutSave(t *testing.T) {
	v := pixel.New(32, 32)
	v.Fill(0x00ABCDEF)
	c := NewCursor()
	c.Restore(v)
	if _, _, ok := c.Position(); ok {
		t.Error("fresh cursor reports a saved background")
	}
	if v.Pixel(0, 0) != 0x00ABCDEF {
		t.Error("restore without a save wrote pixels")
	}
}

// =============================================================================
// Presentation
// =============================================================================

func TestModeSelection(t *testing.T) {
	tests := []struct {
		name string
		s    setup
		want Mode
	}{
		{"double buffer", setup{double: true}, ModeFlip},
		{"double buffer wins over accelerator", setup{double: true, accel: true}, ModeFlip},
		{"accelerator", setup{accel: true}, ModeAccelCopy},
		{"plain", setup{}, ModeCopy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newRig(t, tt.s)
			if got := g.c.Mode(); got != tt.want {
				t.Errorf("Mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresentationModesMatch(t *testing.T) {
	for _, classic := range []bool{true, false} {
		setups := []setup{
			{double: true, classic: classic},
			{classic: classic},
		}
		if classic {
			// The accelerator forces classic chrome, so it can only be
			// compared against classic frames.
			setups = append(setups, setup{accel: true, classic: true})
		}

		var frames []*pixel.View
		for _, s := range setups {
			g := newRig(t, s)
			g.populate(t)
			// Two frames so flip mode has drawn into both halves.
			g.c.Render(500, 400)
			g.d.RequestRedraw()
			if got := g.c.Render(510, 410); got != FrameFull {
				t.Fatalf("%+v: Render = %v, want full frame", s, got)
			}
			frames = append(frames, g.c.Visible().Clone())
		}
		for i := 1; i < len(frames); i++ {
			if !frames[i].Equal(frames[0]) {
				t.Errorf("classic=%v: %+v frame differs from %+v", classic, setups[i], setups[0])
			}
		}
	}
}

func TestFlipAlternatesHalves(t *testing.T) {
	g := newRig(t, setup{double: true})
	for i := 1; i <= 4; i++ {
		g.d.RequestRedraw()
		g.c.Render(300, 300)
		if g.fb.Flips() != i {
			t.Fatalf("flips = %d, want %d", g.fb.Flips(), i)
		}
		if !g.c.Visible().Aliases(g.fb.Displayed()) {
			t.Fatalf("frame %d: Visible is not the displayed half", i)
		}
		if !g.c.Backbuffer().Aliases(g.fb.Backbuffer()) {
			t.Fatalf("frame %d: drawing into the displayed half", i)
		}
		if g.c.Backbuffer().Aliases(g.c.Visible()) {
			t.Fatalf("frame %d: backbuffer and visible frame coincide", i)
		}
	}
}

func TestAcceleratorDoesTheCopies(t *testing.T) {
	g := newRig(t, setup{accel: true})
	g.d.Create(100, 100, 200, 150, "on screen")
	g.c.Render(0, 0)
	if g.accel.FrameCopies != 1 {
		t.Errorf("FrameCopies = %d, want 1", g.accel.FrameCopies)
	}
	if g.accel.Copies != 1 {
		t.Errorf("Copies = %d, want 1 content blit", g.accel.Copies)
	}

	// A window hanging off the right edge falls back to clipped rows.
	g.d.Create(screenW-50, 100, 200, 150, "clipped")
	g.c.Render(0, 0)
	if g.accel.Copies != 2 {
		t.Errorf("Copies = %d, want only the on-screen window accelerated", g.accel.Copies)
	}
}

func TestBackbufferAllocationFailure(t *testing.T) {
	fb, err := hal.NewMemoryFramebuffer(screenW, screenH, false)
	if err != nil {
		t.Fatal(err)
	}
	d, err := app.New(hal.Devices{Framebuffer: fb, Allocator: hal.NewHeapAllocator(1000)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(d)
	if !errors.Is(err, ErrNoBackbuffer) {
		t.Fatalf("New = %v, want ErrNoBackbuffer", err)
	}
	if !errors.Is(err, hal.ErrOutOfMemory) {
		t.Errorf("allocator cause lost: %v", err)
	}
}

// =============================================================================
// Redraw decision
// =============================================================================

func TestRenderDecision(t *testing.T) {
	g := newRig(t, setup{})
	d := g.d

	if got := g.c.Render(100, 100); got != FrameFull {
		t.Fatalf("first frame = %v, want full", got)
	}
	if d.NeedsFullRedraw() || d.CursorMoved() {
		t.Fatal("flags survived a full frame")
	}
	if got := g.c.Render(100, 100); got != FrameNone {
		t.Fatalf("idle frame = %v, want none", got)
	}

	d.MarkCursorMoved()
	if got := g.c.Render(300, 300); got != FrameCursor {
		t.Fatalf("cursor frame = %v", got)
	}
	if d.CursorMoved() {
		t.Error("cursor flag survived")
	}
	if g.fb.Base().Pixel(300, 300) != config.ColorBlack {
		t.Error("cursor not drawn on the visible frame")
	}

	h := d.Create(50, 50, 120, 80, "w")
	d.ClearDirty()
	d.Invalidate(h)
	if got := g.c.Render(300, 300); got != FrameFull {
		t.Fatalf("invalidate frame = %v, want full", got)
	}
	if d.Window(h).Dirty {
		t.Error("dirty flag survived a full frame")
	}
	if s := g.c.Stats(); s.FullFrames != 2 || s.CursorFrames != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestCursorOnlyUpdateMatchesFullRedraw(t *testing.T) {
	for _, double := range []bool{false, true} {
		moved := newRig(t, setup{double: double})
		moved.c.Render(100, 100)
		moved.d.MarkCursorMoved()
		if got := moved.c.Render(400, 300); got != FrameCursor {
			t.Fatalf("double=%v: Render = %v", double, got)
		}

		fresh := newRig(t, setup{double: double})
		fresh.c.Render(400, 300)

		if !moved.c.Visible().Equal(fresh.c.Visible()) {
			t.Errorf("double=%v: cursor-only update differs from a full redraw", double)
		}
	}
}

// =============================================================================
// Scene
// =============================================================================

func TestWindowContentReachesScreen(t *testing.T) {
	g := newRig(t, setup{classic: true})
	h := g.d.Create(100, 100, 200, 150, "red")
	paint(g.d.Window(h).Buffer(), 0x00FF0000)
	g.c.Render(0, 0)

	screen := g.fb.Base()
	if got := screen.Pixel(101+10, 129+10); got != 0x00FF0000 {
		t.Errorf("content pixel = %06x", got)
	}
	if got := screen.Pixel(100, 100); got != config.LightPalette.WindowBorder {
		t.Errorf("border pixel = %06x", got)
	}
	if got := screen.Pixel(100+14, 100+14); got != config.ColorButtonClose {
		t.Errorf("close light = %06x on focused window", got)
	}
}

func TestClippedWindow(t *testing.T) {
	g := newRig(t, setup{classic: true})
	h := g.d.Create(screenW-60, 200, 200, 150, "edge")
	paint(g.d.Window(h).Buffer(), 0x000000FF)
	g.c.Render(0, 0)

	if got := g.fb.Base().Pixel(screenW-1, 250); got != 0x000000FF {
		t.Errorf("last column = %06x, want clipped content", got)
	}
}

func TestInactiveWindowLights(t *testing.T) {
	g := newRig(t, setup{classic: true})
	back := g.d.Create(100, 100, 200, 150, "back")
	g.d.Create(500, 300, 200, 150, "front")
	g.c.Render(0, 0)

	w := g.d.Window(back)
	p := app.TrafficLightCenter(w, app.LightZoom)
	if got := g.fb.Base().Pixel(p.X, p.Y); got != config.ColorButtonOff {
		t.Errorf("unfocused zoom light = %06x", got)
	}
}

func TestMinimizedThumbnail(t *testing.T) {
	g := newRig(t, setup{classic: true})
	h := g.d.Create(100, 100, 200, 150, "thumb")
	paint(g.d.Window(h).Buffer(), 0x0000FF00)
	g.d.Minimize(h)
	g.c.Render(0, 0)

	pv := g.d.Previews()
	if len(pv) != 1 {
		t.Fatalf("previews = %d", len(pv))
	}
	r := pv[0].Rect
	if got := g.fb.Base().Pixel(r.Min.X+20, r.Min.Y+20); got != 0x0000FF00 {
		t.Errorf("thumbnail pixel = %06x", got)
	}
	if got := g.fb.Base().Pixel(r.Min.X+30, r.Min.Y+3); got != config.LightPalette.TitleActive {
		t.Errorf("thumbnail title strip = %06x", got)
	}
}

func TestMenuTitleHighlight(t *testing.T) {
	g := newRig(t, setup{classic: true})
	g.d.SetOpenMenu(app.MenuEdit)
	g.c.Render(0, 0)

	m := app.Menu(app.MenuEdit)
	if got := g.fb.Base().Pixel(m.X-5, 5); got != config.LightPalette.Highlight {
		t.Errorf("open title background = %06x", got)
	}
	f := app.Menu(app.MenuFile)
	if got := g.fb.Base().Pixel(f.X-5, 5); got == config.LightPalette.Highlight {
		t.Error("closed title highlighted")
	}
}

func TestDropdownKeyboardSelection(t *testing.T) {
	g := newRig(t, setup{classic: true})
	g.d.SetOpenMenu(app.MenuFile)
	g.d.MoveMenuSelection(1)
	g.c.Render(0, 0)

	r := app.DropdownRect(app.MenuFile)
	if got := g.fb.Base().Pixel(r.Min.X+6, r.Min.Y+6); got != config.LightPalette.Highlight {
		t.Errorf("selected row = %06x", got)
	}
}

func TestWallpapers(t *testing.T) {
	// The dock and its shadow cover the bottom rows, so the gradient is
	// sampled just above the dock against a standalone rendering.
	ref := pixel.New(screenW, screenH)
	ref.GradientV(0, 0, screenW, screenH, config.LightPalette.GradientTop, config.LightPalette.GradientBot)
	aboveDock := image.Pt(500, screenH-config.DockHeight-1)

	tests := []struct {
		wallpaper config.Wallpaper
		at        image.Point
		want      uint32
	}{
		{config.WallpaperSolid, image.Pt(500, 400), config.LightPalette.Desktop},
		{config.WallpaperPattern, image.Pt(500, 400), config.ColorBlack},
		{config.WallpaperPattern, image.Pt(501, 400), config.ColorWhite},
		{config.WallpaperGradient, aboveDock, ref.Pixel(aboveDock.X, aboveDock.Y)},
	}
	for _, tt := range tests {
		t.Run(tt.wallpaper.String(), func(t *testing.T) {
			g := newRig(t, setup{})
			g.d.SetWallpaper(tt.wallpaper)
			g.c.Compose(0, 0)
			if got := g.c.Backbuffer().Pixel(tt.at.X, tt.at.Y); got != tt.want {
				t.Errorf("pixel at %v = %06x, want %06x", tt.at, got, tt.want)
			}
		})
	}
}

func TestModalsRender(t *testing.T) {
	for _, m := range []app.Modal{app.ModalAbout, app.ModalSettings} {
		t.Run(m.String(), func(t *testing.T) {
			g := newRig(t, setup{classic: true})
			g.d.OpenModal(m)
			g.c.Render(0, 0)

			r := g.d.AboutRect()
			if m == app.ModalSettings {
				r = g.d.SettingsRect()
			}
			if got := g.fb.Base().Pixel(r.Min.X+2, r.Min.Y+2); got != colorDialogLight {
				t.Errorf("dialog background = %06x", got)
			}
		})
	}
}

func TestSettingsShowsSelection(t *testing.T) {
	g := newRig(t, setup{classic: true})
	g.d.OpenModal(app.ModalSettings)
	g.c.Render(0, 0)

	for _, b := range g.d.SettingsButtons() {
		if b.Action == app.ActionNone {
			continue
		}
		got := g.fb.Base().Pixel(b.Rect.Min.X+2, b.Rect.Min.Y+2)
		if sel := g.d.Selected(b); sel != (got == config.LightPalette.Accent) {
			t.Errorf("%s: selected=%v but fill=%06x", b.Label, sel, got)
		}
	}
}

// =============================================================================
// Shutdown
// =============================================================================

func TestShutdown(t *testing.T) {
	t.Run("copy", func(t *testing.T) {
		g := newRig(t, setup{})
		g.c.Render(10, 10)
		g.c.Shutdown()
		if g.alloc.Live() != 0 {
			t.Errorf("live allocations = %d after shutdown", g.alloc.Live())
		}
		if g.fb.Base().Pixel(500, 10) != config.ColorBlack {
			t.Error("screen not blanked")
		}
	})
	t.Run("flip", func(t *testing.T) {
		g := newRig(t, setup{double: true})
		g.c.Render(10, 10)
		g.c.Shutdown()
		top := g.fb.Base().Sub(image.Rect(0, 0, screenW, screenH))
		if !g.fb.Displayed().Aliases(top) {
			t.Error("shutdown did not show the first half")
		}
		if g.fb.Displayed().Pixel(500, 10) != config.ColorBlack {
			t.Error("screen not blanked")
		}
	})
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkFullFrame(b *testing.B) {
	g := newRig(b, setup{})
	g.populate(b)
	for b.Loop() {
		g.d.RequestRedraw()
		g.c.Render(500, 400)
	}
}

func BenchmarkCursorFrame(b *testing.B) {
	g := newRig(b, setup{})
	g.populate(b)
	g.c.Render(500, 400)
	x := 0
	for b.Loop() {
		x = (x + 1) % 400
		g.d.MarkCursorMoved()
		g.c.Render(300+x, 300)
	}
}
