package app

import "github.com/kikios/kikidesk/internal/pixel"

// WindowAPI is the capability set handed to client programs.
type WindowAPI interface {
	Create(x, y, w, h int, title string) Handle
	Destroy(h Handle)
	GetBuffer(h Handle) (*pixel.View, int, int)
	PollEvent(h Handle) (Event, bool)
	Invalidate(h Handle)
	SetTitle(h Handle, title string)
}

var _ WindowAPI = (*Desktop)(nil)
