// Package sched runs the desktop tick loop and the client programs that share
// it cooperatively.
package sched

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kikios/kikidesk/internal/app"
)

// ErrNoSuchProgram is returned when a path has no registered program.
var ErrNoSuchProgram = errors.New("no such program")

// ErrExecTimeout is returned when a fullscreen program does not finish within
// ExecStepLimit steps.
var ErrExecTimeout = errors.New("program did not exit")

// ExecStepLimit bounds how long a fullscreen program may hold the display.
const ExecStepLimit = 100_000

// Task is a client program. Step does one slice of work without blocking and
// reports whether the program is still running.
type Task interface {
	Step(api app.WindowAPI) bool
}

// Program creates a fresh task for each launch.
type Program func() Task

// Process is a running task.
type Process struct {
	PID     string
	Path    string
	Started time.Time
	Steps   int

	task Task
}

// Launcher maps executable paths to built-in programs and keeps the process
// table. It implements hal.Launcher.
type Launcher struct {
	programs map[string]Program
	procs    []*Process
	desk     *app.Desktop
}

// NewLauncher returns a launcher for the given programs keyed by path.
func NewLauncher(programs map[string]Program) *Launcher {
	return &Launcher{programs: programs}
}

// Bind attaches the desktop whose window API tasks receive. It must be called
// before the first Step.
func (l *Launcher) Bind(d *app.Desktop) { l.desk = d }

// Programs returns the registered paths in sorted order.
func (l *Launcher) Programs() []string {
	paths := make([]string, 0, len(l.programs))
	for p := range l.programs {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (l *Launcher) lookup(path string) (Program, error) {
	prog, ok := l.programs[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSuchProgram)
	}
	return prog, nil
}

// Spawn starts a windowed program. It first runs on the next Step.
func (l *Launcher) Spawn(path string) (string, error) {
	prog, err := l.lookup(path)
	if err != nil {
		return "", err
	}
	p := &Process{
		PID:     uuid.NewString(),
		Path:    path,
		Started: time.Now(),
		task:    prog(),
	}
	l.procs = append(l.procs, p)
	return p.PID, nil
}

// Exec runs a fullscreen program to completion before returning.
func (l *Launcher) Exec(path string) error {
	prog, err := l.lookup(path)
	if err != nil {
		return err
	}
	p := &Process{PID: uuid.NewString(), Path: path, Started: time.Now(), task: prog()}
	for p.Steps < ExecStepLimit {
		if !l.step(p) {
			return nil
		}
	}
	return fmt.Errorf("%s after %d steps: %w", path, p.Steps, ErrExecTimeout)
}

// Step gives every process one slice, in launch order, and reaps those that
// finished.
func (l *Launcher) Step() {
	l.procs = slices.DeleteFunc(l.procs, func(p *Process) bool {
		if l.step(p) {
			return false
		}
		l.desk.LogInfo("Process %s (%s) exited after %d steps", p.PID[:8], p.Path, p.Steps)
		return true
	})
}

// step runs one slice with windows created during it owned by p.
func (l *Launcher) step(p *Process) bool {
	l.desk.SetCurrentOwner(p.PID)
	defer l.desk.SetCurrentOwner("")
	p.Steps++
	return p.task.Step(l.desk)
}

// Processes returns a snapshot of the process table.
func (l *Launcher) Processes() []Process {
	out := make([]Process, len(l.procs))
	for i, p := range l.procs {
		out[i] = *p
	}
	return out
}

// Kill drops every process. Their windows stay until the desktop exits.
func (l *Launcher) Kill() {
	if n := len(l.procs); n > 0 {
		l.desk.LogInfo("Stopping %d processes", n)
	}
	l.procs = nil
}
