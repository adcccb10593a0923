package hal

import "github.com/kikios/kikidesk/internal/queue"

// keyBufferSize bounds keys typed between two ticks.
const keyBufferSize = 64

// VirtualInput is a pointer and keyboard driven programmatically, by the
// terminal host or by tests. Writes become visible to the desktop on the next
// Poll, which mirrors a driver that latches hardware state once per tick.
type VirtualInput struct {
	x, y       int
	buttons    uint8
	pendX      int
	pendY      int
	pendButton uint8
	keys       queue.Ring[int]
}

// NewVirtualInput returns an input device with the pointer at (x, y).
func NewVirtualInput(x, y int) *VirtualInput {
	return &VirtualInput{
		x: x, y: y,
		pendX: x, pendY: y,
		keys: queue.New[int](keyBufferSize),
	}
}

// MoveTo sets the pointer position seen after the next Poll.
func (in *VirtualInput) MoveTo(x, y int) {
	in.pendX, in.pendY = x, y
}

// SetButtons sets the button mask seen after the next Poll.
func (in *VirtualInput) SetButtons(mask uint8) {
	in.pendButton = mask
}

// Press adds buttons to the pending mask.
func (in *VirtualInput) Press(mask uint8) {
	in.pendButton |= mask
}

// Release removes buttons from the pending mask.
func (in *VirtualInput) Release(mask uint8) {
	in.pendButton &^= mask
}

// TypeKey queues a key code. It reports false when the buffer is full.
func (in *VirtualInput) TypeKey(code int) bool {
	return in.keys.Push(code)
}

// Poll implements Pointer.
func (in *VirtualInput) Poll() {
	in.x, in.y = in.pendX, in.pendY
	in.buttons = in.pendButton
}

// Position implements Pointer.
func (in *VirtualInput) Position() (int, int) { return in.x, in.y }

// Buttons implements Pointer.
func (in *VirtualInput) Buttons() uint8 { return in.buttons }

// HasKey implements Keyboard.
func (in *VirtualInput) HasKey() bool { return !in.keys.Empty() }

// GetKey implements Keyboard. It returns 0 when no key is queued.
func (in *VirtualInput) GetKey() int {
	k, _ := in.keys.Pop()
	return k
}
