package app

import "fmt"

// EventType tags an Event. The numeric values are part of the client ABI.
type EventType int

// Window event types.
const (
	EventNone EventType = iota
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventKey
	EventClose
	EventFocus
	EventUnfocus
	EventResize
)

var eventNames = [...]string{
	EventNone:      "NONE",
	EventMouseDown: "MOUSE_DOWN",
	EventMouseUp:   "MOUSE_UP",
	EventMouseMove: "MOUSE_MOVE",
	EventKey:       "KEY",
	EventClose:     "CLOSE",
	EventFocus:     "FOCUS",
	EventUnfocus:   "UNFOCUS",
	EventResize:    "RESIZE",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is one entry in a window's queue.
//
// Payloads: MOUSE_DOWN, MOUSE_UP and MOUSE_MOVE carry content-local x, y and
// the button mask; KEY carries the key code in Data1; RESIZE carries the new
// content width and height.
type Event struct {
	Type  EventType
	Data1 int
	Data2 int
	Data3 int
}

// Mouse button bits.
const (
	ButtonLeft   uint8 = 0x01
	ButtonRight  uint8 = 0x02
	ButtonMiddle uint8 = 0x04
)

// Key codes above the byte range for keys without a character.
const (
	KeyUp       = 0x100
	KeyDown     = 0x101
	KeyLeft     = 0x102
	KeyRight    = 0x103
	KeyHome     = 0x104
	KeyEnd      = 0x105
	KeyDelete   = 0x106
	KeyPageUp   = 0x107
	KeyPageDown = 0x108
)

// Control characters the router recognises.
const (
	KeyEnter     = '\n'
	KeyReturn    = '\r'
	KeyEscape    = 0x1B
	KeyBackspace = 0x08
	KeyTab       = '\t'
)
