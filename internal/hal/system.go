package hal

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostSysInfo reads memory and uptime from the host OS.
type HostSysInfo struct{}

// Memory implements SysInfo.
func (HostSysInfo) Memory() (uint64, uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read memory stats: %w", err)
	}
	return vm.Total, vm.Used, nil
}

// Uptime implements SysInfo.
func (HostSysInfo) Uptime() (time.Duration, error) {
	secs, err := host.Uptime()
	if err != nil {
		return 0, fmt.Errorf("failed to read uptime: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}

// StaticSysInfo returns fixed figures.
type StaticSysInfo struct {
	Total, Used uint64
	Up          time.Duration
}

// Memory implements SysInfo.
func (s StaticSysInfo) Memory() (uint64, uint64, error) { return s.Total, s.Used, nil }

// Uptime implements SysInfo.
func (s StaticSysInfo) Uptime() (time.Duration, error) { return s.Up, nil }

// ErrClipboardUnavailable is returned when no system clipboard can be reached.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// SystemClipboard uses the host clipboard.
type SystemClipboard struct{}

// ReadAll implements Clipboard.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	return clipboard.ReadAll()
}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the clipboard in process memory.
type MemoryClipboard struct {
	text string
}

// ReadAll implements Clipboard.
func (c *MemoryClipboard) ReadAll() (string, error) { return c.text, nil }

// WriteAll implements Clipboard.
func (c *MemoryClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}
