package app

import (
	"image"

	"github.com/kikios/kikidesk/internal/config"
)

// TrafficLight names a title bar button.
type TrafficLight int

// Title bar buttons from left to right.
const (
	LightNone TrafficLight = iota - 1
	LightClose
	LightMinimize
	LightZoom
)

// TrafficLightCenter returns the centre of button b on window w.
func TrafficLightCenter(w *Window, b TrafficLight) image.Point {
	return image.Pt(
		w.X+config.TrafficLightStartX+int(b)*config.TrafficLightSpacing,
		w.Y+config.TitleBarHeight/2,
	)
}

// TrafficLightAt returns the button whose circle contains (x, y).
func TrafficLightAt(w *Window, x, y int) TrafficLight {
	const r2 = config.TrafficLightRadius * config.TrafficLightRadius
	for b := LightClose; b <= LightZoom; b++ {
		c := TrafficLightCenter(w, b)
		dx, dy := x-c.X, y-c.Y
		if dx*dx+dy*dy <= r2 {
			return b
		}
	}
	return LightNone
}

// InTitleBar reports whether (x, y) lies on the title bar rows of w.
func InTitleBar(w *Window, x, y int) bool {
	return x >= w.X && x < w.X+w.W && y >= w.Y && y < w.Y+config.TitleBarHeight
}

// InContent reports whether (x, y) lies below the title bar of w.
func InContent(w *Window, x, y int) bool {
	return x >= w.X && x < w.X+w.W && y >= w.Y+config.TitleBarHeight && y < w.Y+w.H
}

// ResizeHandleRect returns the square in the bottom-right corner of w that
// starts an interactive resize.
func ResizeHandleRect(w *Window) image.Rectangle {
	return image.Rect(w.X+w.W-config.ResizeHandleSize, w.Y+w.H-config.ResizeHandleSize, w.X+w.W, w.Y+w.H)
}

// ContentLocal converts screen coordinates to coordinates inside the content
// area of w, whose origin sits one pixel inside the border.
func ContentLocal(w *Window, x, y int) (int, int) {
	return x - w.X - 1, y - w.Y - config.TitleBarHeight - 1
}
