package tape

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kikios/kikidesk/internal/app"
)

// Settings accepted by Set.
const (
	SettingFPS         = "FPS"
	SettingTypingSpeed = "TypingSpeed"
)

const (
	defaultFPS         = 30
	defaultTypingSpeed = 50 * time.Millisecond
	dragSteps          = 8
)

// Input is the virtual pointer and keyboard a script drives. Changes become
// visible to the desktop on its next tick.
type Input interface {
	MoveTo(x, y int)
	Press(mask uint8)
	Release(mask uint8)
	TypeKey(code int) bool
}

// Driver runs the desktop the script plays against.
type Driver interface {
	Tick()
	Open(path string) error
	Screenshot(path string) error
}

// Player manages script playback
type Player struct {
	commands []Command
	index    int
	in       Input
	drv      Driver
	fps      int
	typing   time.Duration
	output   string
	ticks    int
	logger   *log.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithFPS sets the tick rate used to turn durations into ticks.
func WithFPS(fps int) Option {
	return func(p *Player) {
		if fps > 0 {
			p.fps = fps
		}
	}
}

// WithLogger logs each command at debug level.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// NewPlayer creates a new script player from a list of commands
func NewPlayer(commands []Command, in Input, drv Driver, opts ...Option) *Player {
	p := &Player{
		commands: commands,
		in:       in,
		drv:      drv,
		fps:      defaultFPS,
		typing:   defaultTypingSpeed,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsFinished returns true if all commands have been executed
func (p *Player) IsFinished() bool {
	return p.index >= len(p.commands)
}

// CurrentIndex returns the current command index
func (p *Player) CurrentIndex() int {
	return p.index
}

// TotalCommands returns the total number of commands
func (p *Player) TotalCommands() int {
	return len(p.commands)
}

// Progress returns a value between 0 and 100 representing playback progress
func (p *Player) Progress() int {
	if len(p.commands) == 0 {
		return 100
	}
	return (p.index * 100) / len(p.commands)
}

// Ticks returns how many desktop ticks playback has run.
func (p *Player) Ticks() int {
	return p.ticks
}

// Output returns the path set by the last Output command.
func (p *Player) Output() string {
	return p.output
}

// Run plays every remaining command, then saves the Output screenshot if
// one was set.
func (p *Player) Run(ctx context.Context) error {
	for !p.IsFinished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Step(); err != nil {
			return err
		}
	}
	if p.output != "" {
		return p.drv.Screenshot(p.output)
	}
	return nil
}

// Step plays the next command.
func (p *Player) Step() error {
	if p.IsFinished() {
		return nil
	}
	cmd := p.commands[p.index]
	p.index++

	if p.logger != nil {
		p.logger.Debug("tape", "line", cmd.Line, "command", cmd.String())
	}
	if err := p.exec(cmd); err != nil {
		return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.String(), err)
	}
	return nil
}

func (p *Player) tick(n int) {
	for range n {
		p.drv.Tick()
		p.ticks++
	}
}

// ticksFor converts a duration to ticks at the current rate, at least one.
func (p *Player) ticksFor(d time.Duration) int {
	n := int((d*time.Duration(p.fps) + time.Second - 1) / time.Second)
	return max(n, 1)
}

func (p *Player) key(code int, delay time.Duration) error {
	if !p.in.TypeKey(code) {
		return fmt.Errorf("key buffer full")
	}
	p.tick(p.ticksFor(delay))
	return nil
}

func (p *Player) click(x, y int, button uint8) {
	p.in.MoveTo(x, y)
	p.tick(1)
	p.in.Press(button)
	p.tick(1)
	p.in.Release(button)
	p.tick(1)
}

func (p *Player) exec(cmd Command) error {
	if code, ok := keyCodes[cmd.Type]; ok {
		repeat := 1
		if len(cmd.Args) > 0 {
			repeat, _ = strconv.Atoi(cmd.Args[0])
		}
		for range repeat {
			if err := p.key(code, cmd.Delay); err != nil {
				return err
			}
		}
		return nil
	}

	n := ints(cmd.Args)
	switch cmd.Type {
	case CommandType_Type:
		delay := p.typing
		if cmd.Delay > 0 {
			delay = cmd.Delay
		}
		for _, r := range cmd.Args[0] {
			if r >= 0x100 {
				continue
			}
			if err := p.key(int(r), delay); err != nil {
				return err
			}
		}

	case CommandType_KeyCombo:
		code, err := ParseKeyCombo(cmd.Args[0])
		if err != nil {
			return err
		}
		return p.key(code, 0)

	case CommandType_Move:
		p.in.MoveTo(n[0], n[1])
		p.tick(1)

	case CommandType_Click:
		p.click(n[0], n[1], app.ButtonLeft)

	case CommandType_RightClick:
		p.click(n[0], n[1], app.ButtonRight)

	case CommandType_Drag:
		x0, y0, x1, y1 := n[0], n[1], n[2], n[3]
		p.in.MoveTo(x0, y0)
		p.tick(1)
		p.in.Press(app.ButtonLeft)
		p.tick(1)
		for i := 1; i <= dragSteps; i++ {
			p.in.MoveTo(x0+(x1-x0)*i/dragSteps, y0+(y1-y0)*i/dragSteps)
			p.tick(1)
		}
		p.in.Release(app.ButtonLeft)
		p.tick(1)

	case CommandType_Sleep:
		p.tick(p.ticksFor(cmd.Delay))

	case CommandType_Tick:
		count := 1
		if len(n) > 0 {
			count = n[0]
		}
		p.tick(count)

	case CommandType_Open:
		if err := p.drv.Open(cmd.Args[0]); err != nil {
			return err
		}
		p.tick(1)

	case CommandType_Screenshot:
		return p.drv.Screenshot(cmd.Args[0])

	case CommandType_Output:
		p.output = cmd.Args[0]

	case CommandType_Set:
		switch cmd.Args[0] {
		case SettingFPS:
			p.fps = n[1]
		case SettingTypingSpeed:
			d, err := ParseDuration(cmd.Args[1])
			if err != nil {
				return err
			}
			p.typing = d
		}

	default:
		return fmt.Errorf("unknown command %s", cmd.Type)
	}
	return nil
}

// ints converts the numeric arguments; anything else becomes 0.
func ints(args []string) []int {
	out := make([]int, len(args))
	for i, a := range args {
		out[i], _ = strconv.Atoi(a)
	}
	return out
}
