package render

import (
	"image"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/hal"
	"github.com/kikios/kikidesk/internal/pixel"
)

// Fixed chrome colours that do not follow the theme.
const (
	colorMenuLine    uint32 = 0xCCCCCC
	colorSeparator   uint32 = 0xDDDDDD
	colorTitleRule   uint32 = 0xBBBBBB
	colorResizeDots  uint32 = 0x999999
	colorDockShadow  uint32 = 0x999999
	colorMenuShadow  uint32 = 0x888888
	colorHoverFlat   uint32 = 0xCCCCCC
	colorDialogLight uint32 = 0xFAFAFA
	colorDialogDark  uint32 = 0x2D2D2D
	colorDimText     uint32 = 0x555555
	colorButton      uint32 = 0xE0E0E0
	colorButtonHover uint32 = 0xCCCCCC
	colorButtonEdge  uint32 = 0xAAAAAA
)

// titleInsets trims the title bar gradient to the rounded top corners.
var titleInsets = [config.CornerRadius]int{5, 3, 2, 2, 1, 1, 1, 0, 0, 0}

// scene is the state shared by the drawing helpers for one frame.
type scene struct {
	d       *app.Desktop
	v       *pixel.View
	accel   hal.Accelerator
	pal     config.Palette
	classic bool
	mouse   image.Point
}

func (c *Compositor) scene(px, py int) *scene {
	return &scene{
		d:       c.desk,
		v:       c.back,
		accel:   c.accel,
		pal:     c.desk.Palette(),
		classic: c.desk.Classic(),
		mouse:   image.Pt(px, py),
	}
}

func (s *scene) hovered(r image.Rectangle) bool { return s.mouse.In(r) }

// panel fills r flat in classic mode or as a translucent rounded card with a
// shadow otherwise.
func (s *scene) panel(r image.Rectangle, radius, blur int, off image.Point, shadow, bg uint32, alpha uint8, border uint32) {
	x, y, w, h := r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	if s.classic {
		s.v.FillRect(x, y, w, h, bg)
		s.v.DrawRect(x, y, w, h, border)
		return
	}
	s.v.BoxShadowRounded(x, y, w, h, radius, blur, off.X, off.Y, shadow)
	s.v.FillRoundedAlpha(x, y, w, h, radius, bg, alpha)
}

// highlight paints a selection bar.
func (s *scene) highlight(x, y, w, h int, c uint32) {
	if s.classic {
		s.v.FillRect(x, y, w, h, c)
		return
	}
	s.v.FillRounded(x, y, w, h, 4, c)
}

// centered draws s horizontally centred in [x, x+w).
func (s *scene) centered(x, y, w int, text string, c uint32) {
	s.v.DrawString(x+(w-pixel.MeasureString(text))/2, y, text, c)
}

func (s *scene) background() {
	w, h := s.d.Width, s.d.Height
	switch s.d.Wallpaper() {
	case config.WallpaperGradient:
		s.v.GradientV(0, 0, w, h, s.pal.GradientTop, s.pal.GradientBot)
	case config.WallpaperPattern:
		s.v.FillPattern(0, 0, w, h, config.ColorBlack, config.ColorWhite)
	default:
		if s.accel != nil && s.accel.Fill(s.v, s.pal.Desktop) == nil {
			return
		}
		s.v.FillRect(0, 0, w, h, s.pal.Desktop)
	}
}

func (s *scene) window(h app.Handle) {
	w := s.d.Window(h)
	if w == nil || w.Minimized {
		return
	}
	focused := h == s.d.Focused()
	v := s.v

	if s.classic {
		v.FillRect(w.X, w.Y, w.W, w.H, s.pal.WindowBG)
		v.DrawRect(w.X, w.Y, w.W, w.H, s.pal.WindowBorder)
		title := config.ColorClassicIdle
		if focused {
			title = config.ColorClassicTitle
		}
		v.FillRect(w.X+1, w.Y+1, w.W-2, config.TitleBarHeight-1, title)
	} else {
		v.BoxShadowRounded(w.X, w.Y, w.W, w.H, config.CornerRadius,
			config.ShadowBlur, config.ShadowOffset, config.ShadowOffset, s.pal.Shadow)
		v.FillRounded(w.X, w.Y, w.W, w.H, config.CornerRadius, s.pal.WindowBG)
		v.DrawRounded(w.X, w.Y, w.W, w.H, config.CornerRadius, s.pal.WindowBorder)

		top, bot := config.ColorGradientHiOff, config.ColorGradientLoOff
		if focused {
			top, bot = config.ColorGradientHiOn, config.ColorGradientLoOn
		}
		for py := 0; py < config.TitleBarHeight; py++ {
			c := pixel.Lerp(top, bot, uint8(py*255/(config.TitleBarHeight-1)))
			inset := 0
			if py < config.CornerRadius {
				inset = titleInsets[py]
			}
			v.HLine(w.X+inset, w.Y+py, w.W-2*inset, c)
		}
	}
	v.HLine(w.X, w.Y+config.TitleBarHeight, w.W, colorTitleRule)

	lights := [...]uint32{config.ColorButtonClose, config.ColorButtonMin, config.ColorButtonZoom}
	for b := app.LightClose; b <= app.LightZoom; b++ {
		c := config.ColorButtonOff
		if focused {
			c = lights[b]
		}
		p := app.TrafficLightCenter(w, b)
		v.FillCircle(p.X, p.Y, config.TrafficLightRadius, c)
	}

	// Keep the title clear of the buttons on both sides.
	room := w.W - 2*(config.TrafficLightStartX+2*config.TrafficLightSpacing+config.TrafficLightRadius+4)
	title := pixel.TruncateToWidth(w.Title, room)
	s.centered(w.X, w.Y+(config.TitleBarHeight-pixel.TextHeight)/2, w.W, title, s.pal.TitleText)

	s.content(w)

	rx, ry := w.X+w.W-14, w.Y+w.H-14
	for row := 0; row < 3; row++ {
		for col := row; col < 3; col++ {
			v.FillRect(rx+(2-col)*4+2, ry+row*4+2, 2, 2, colorResizeDots)
		}
	}
}

// content copies the window's buffer under the title bar. The bottom edge
// stays clear of the rounded corners in fancy mode.
func (s *scene) content(w *app.Window) {
	buf := w.Buffer()
	if buf == nil {
		return
	}
	bottom := config.CornerRadius
	if s.classic {
		bottom = 1
	}
	cx, cy := w.X+1, w.Y+config.TitleBarHeight+1
	cw := min(max(w.W-2, 1), buf.Width())
	ch := min(max(w.H-config.TitleBarHeight-bottom-1, 1), buf.Height())
	src := buf.Sub(image.Rect(0, 0, cw, ch))

	dst := image.Rect(cx, cy, cx+cw, cy+ch)
	if s.accel != nil && dst.In(s.v.Bounds()) {
		if err := s.accel.Copy2D(s.v, cx, cy, src); err == nil {
			return
		}
	}
	s.v.Blit(cx, cy, src)
}

func (s *scene) menuBar() {
	w := s.d.Width
	if s.classic {
		s.v.FillRect(0, 0, w, config.MenuBarHeight, s.pal.MenuBG)
	} else {
		s.v.FillRectAlpha(0, 0, w, config.MenuBarHeight, s.pal.MenuBG, 220)
	}
	s.v.HLine(0, config.MenuBarHeight-1, w, colorMenuLine)

	textY := (config.MenuBarHeight - pixel.TextHeight) / 2
	open := s.d.OpenMenu()
	for i, m := range app.Menus() {
		fg := s.pal.MenuText
		if app.MenuID(i) == open {
			pad := 6
			if m.Label == "" {
				pad = 4
			}
			s.highlight(m.X-pad, 4, m.W+2*pad, config.MenuBarHeight-8, s.pal.Highlight)
			fg = config.ColorWhite
		}
		if m.Label == "" {
			s.v.Stamp(m.X, (config.MenuBarHeight-logoSize)/2, logoSize, logoSize, logoMask, fg)
			continue
		}
		s.v.DrawString(m.X, textY, m.Label, fg)
	}

	date, clock := s.d.ClockText()
	timeX := w - 56
	dateX := timeX - pixel.MeasureString(date) - 16
	s.v.DrawString(dateX, textY, date, s.pal.MenuText)
	s.v.DrawString(timeX, textY, clock, s.pal.MenuText)
}

func (s *scene) dropdown(id app.MenuID) {
	r := app.DropdownRect(id)
	s.panel(r, 8, 8, image.Pt(2, 4), config.ColorBlack, s.pal.MenuBG, 245, s.pal.WindowBorder)

	sel := s.d.MenuSelection()
	y := r.Min.Y + 4
	for i, it := range app.Menu(id).Items {
		if it.Separator() {
			s.v.HLine(r.Min.X+8, y+11, r.Dx()-16, colorSeparator)
			y += config.MenuItemHeight
			continue
		}
		row := image.Rect(r.Min.X+4, y, r.Max.X-4, y+config.MenuItemHeight)
		fg := s.pal.MenuText
		if i == sel || s.hovered(row) {
			s.highlight(row.Min.X, y, row.Dx(), config.MenuItemHeight-2, s.pal.Highlight)
			fg = config.ColorWhite
		}
		s.v.DrawString(r.Min.X+16, y+(config.MenuItemHeight-pixel.TextHeight)/2, it.Label, fg)
		y += config.MenuItemHeight
	}
}

func (s *scene) contextMenu() {
	r := s.d.ContextMenuRect()
	s.panel(r, 8, 6, image.Pt(2, 3), colorMenuShadow, s.pal.MenuBG, 250, s.pal.DockBorder)
	if !s.classic {
		s.v.DrawRounded(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), 8, s.pal.DockBorder)
	}

	item := s.d.ContextMenuItemRect()
	fg := s.pal.MenuText
	if s.hovered(item) {
		s.highlight(item.Min.X, item.Min.Y, item.Dx(), item.Dy(), s.pal.Highlight)
		fg = config.ColorWhite
	}
	s.v.DrawString(r.Min.X+12, item.Min.Y+(item.Dy()-pixel.TextHeight)/2, "New Window", fg)
}
