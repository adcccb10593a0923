package tape

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/hal"
)

// frame is what the desktop saw on one tick.
type frame struct {
	x, y    int
	buttons uint8
	keys    []int
}

type recorder struct {
	in      *hal.VirtualInput
	frames  []frame
	opened  []string
	shots   []string
	openErr error
}

func newRecorder() *recorder {
	return &recorder{in: hal.NewVirtualInput(0, 0)}
}

func (r *recorder) Tick() {
	r.in.Poll()
	f := frame{buttons: r.in.Buttons()}
	f.x, f.y = r.in.Position()
	for r.in.HasKey() {
		f.keys = append(f.keys, r.in.GetKey())
	}
	r.frames = append(r.frames, f)
}

func (r *recorder) Open(path string) error {
	if r.openErr != nil {
		return r.openErr
	}
	r.opened = append(r.opened, path)
	return nil
}

func (r *recorder) Screenshot(path string) error {
	r.shots = append(r.shots, path)
	return nil
}

func (r *recorder) keys() []int {
	var out []int
	for _, f := range r.frames {
		out = append(out, f.keys...)
	}
	return out
}

func play(t *testing.T, script string, opts ...Option) (*recorder, *Player) {
	t.Helper()
	cmds, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := newRecorder()
	p := NewPlayer(cmds, r.in, r, opts...)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return r, p
}

// ============================================================================
// Keyboard
// ============================================================================

func TestPlayerKeys(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []int
	}{
		{"type", `Type "ab"`, []int{'a', 'b'}},
		{"type skips wide runes", `Type "a€b"`, []int{'a', 'b'}},
		{"type latin-1", `Type "é"`, []int{'é'}},
		{"named keys", "Enter\nEscape\nPageUp", []int{app.KeyEnter, app.KeyEscape, app.KeyPageUp}},
		{"repeat", `Left 3`, []int{app.KeyLeft, app.KeyLeft, app.KeyLeft}},
		{"ctrl", `Ctrl+V`, []int{0x16}},
		{"space", `Space`, []int{' '}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := play(t, tt.script)
			if got := r.keys(); !slices.Equal(got, tt.want) {
				t.Errorf("Expected keys %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPlayerTypingSpeed(t *testing.T) {
	// 100ms per key at 30 fps is 3 ticks each.
	_, p := play(t, "Type@100ms \"abc\"")
	if p.Ticks() != 9 {
		t.Errorf("Expected 9 ticks, got %d", p.Ticks())
	}

	_, p = play(t, "Set TypingSpeed 0s\nType \"abc\"")
	if p.Ticks() != 3 {
		t.Errorf("Expected one tick per key, got %d", p.Ticks())
	}
}

// ============================================================================
// Pointer
// ============================================================================

func TestPlayerClick(t *testing.T) {
	r, _ := play(t, `Click 30 40`)
	want := []frame{
		{x: 30, y: 40},
		{x: 30, y: 40, buttons: app.ButtonLeft},
		{x: 30, y: 40},
	}
	if len(r.frames) != len(want) {
		t.Fatalf("Expected %d frames, got %d", len(want), len(r.frames))
	}
	for i, f := range want {
		if r.frames[i].x != f.x || r.frames[i].y != f.y || r.frames[i].buttons != f.buttons {
			t.Errorf("frame %d: expected %+v, got %+v", i, f, r.frames[i])
		}
	}
}

func TestPlayerRightClick(t *testing.T) {
	r, _ := play(t, `RightClick 1 2`)
	if r.frames[1].buttons != app.ButtonRight {
		t.Errorf("Expected right button held, got %#x", r.frames[1].buttons)
	}
}

func TestPlayerDrag(t *testing.T) {
	r, _ := play(t, `Drag 0 0 80 16`)

	if got := len(r.frames); got != dragSteps+3 {
		t.Fatalf("Expected %d frames, got %d", dragSteps+3, got)
	}
	if r.frames[0].buttons != 0 || r.frames[1].buttons != app.ButtonLeft {
		t.Error("Expected the press after the first move")
	}
	mid := r.frames[1+dragSteps/2]
	if mid.x != 40 || mid.y != 8 || mid.buttons != app.ButtonLeft {
		t.Errorf("Expected the pointer halfway with the button held, got %+v", mid)
	}
	last := r.frames[len(r.frames)-1]
	if last.x != 80 || last.y != 16 || last.buttons != 0 {
		t.Errorf("Expected release at the end point, got %+v", last)
	}
}

// ============================================================================
// Timing and desktop
// ============================================================================

func TestPlayerTiming(t *testing.T) {
	tests := []struct {
		name   string
		script string
		opts   []Option
		want   int
	}{
		{"sleep", `Sleep 1s`, nil, 30},
		{"sleep rounds up", `Sleep 10ms`, nil, 1},
		{"sleep zero still ticks", `Sleep 0s`, nil, 1},
		{"fps option", `Sleep 1s`, []Option{WithFPS(10)}, 10},
		{"set fps", "Set FPS 5\nSleep 2s", nil, 10},
		{"tick", `Tick`, nil, 1},
		{"tick count", `Tick 7`, nil, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p := play(t, tt.script, tt.opts...)
			if p.Ticks() != tt.want {
				t.Errorf("Expected %d ticks, got %d", tt.want, p.Ticks())
			}
		})
	}
}

func TestPlayerDesktopCommands(t *testing.T) {
	r, p := play(t, "Open \"/bin/hello\"\nScreenshot \"a.png\"\nOutput \"final.png\"")

	if !slices.Equal(r.opened, []string{"/bin/hello"}) {
		t.Errorf("opened = %v", r.opened)
	}
	if !slices.Equal(r.shots, []string{"a.png", "final.png"}) {
		t.Errorf("screenshots = %v", r.shots)
	}
	if p.Output() != "final.png" {
		t.Errorf("Output() = %q", p.Output())
	}
	if !p.IsFinished() || p.Progress() != 100 {
		t.Errorf("Expected finished playback, progress %d", p.Progress())
	}
}

func TestPlayerErrorsCarryLine(t *testing.T) {
	cmds, err := Parse("Tick\nOpen \"/bin/nope\"\nTick")
	if err != nil {
		t.Fatal(err)
	}
	r := newRecorder()
	r.openErr = errors.New("no such program")
	p := NewPlayer(cmds, r.in, r)

	err = p.Run(context.Background())
	if err == nil || !errors.Is(err, r.openErr) {
		t.Fatalf("Expected the open error, got %v", err)
	}
	if want := `line 2: Open "/bin/nope": no such program`; err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
	if p.CurrentIndex() != 2 {
		t.Errorf("Expected playback to stop after command 2, at %d", p.CurrentIndex())
	}
}

func TestPlayerStopsOnCancel(t *testing.T) {
	cmds, _ := Parse("Tick\nTick")
	r := newRecorder()
	p := NewPlayer(cmds, r.in, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if p.Ticks() != 0 {
		t.Errorf("Expected no ticks, got %d", p.Ticks())
	}
}

func TestPlayerKeyBufferFull(t *testing.T) {
	r := newRecorder()
	for r.in.TypeKey('x') {
	}
	p := NewPlayer([]Command{{Type: CommandType_Enter, Line: 1}}, r.in, noTick{r})
	if err := p.Run(context.Background()); err == nil {
		t.Error("Expected an error when the key buffer is full")
	}
}

// noTick never drains input.
type noTick struct{ *recorder }

func (noTick) Tick() {}

func BenchmarkParse(b *testing.B) {
	script := `Set FPS 30
Open "/bin/paint"
Drag 100 100 300 200
Type "hello world"
Enter 3
Screenshot "out.png"
`
	for b.Loop() {
		if _, err := Parse(script); err != nil {
			b.Fatal(err)
		}
	}
}
