package render

import (
	"image"

	"github.com/kikios/kikidesk/internal/app"
	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/pixel"
)

func (s *scene) about(version string) {
	r := s.d.AboutRect()
	x, y, w := r.Min.X, r.Min.Y, r.Dx()
	s.panel(r, 12, 4, image.Pt(2, 2), s.pal.Shadow, colorDialogLight, 250, s.pal.WindowBorder)

	// Logo at three times its menu bar size.
	lx, ly := x+(w-3*logoSize)/2, y+20
	for py := 0; py < logoSize; py++ {
		for px := 0; px < logoSize; px++ {
			if logoMask[py*logoSize+px] != 0 {
				s.v.FillRect(lx+px*3, ly+py*3, 3, 3, config.LightPalette.MenuText)
			}
		}
	}

	s.centered(x, y+74, w, "kikidesk", config.LightPalette.MenuText)
	s.centered(x, y+94, w, "Version "+version, 0x666666)
	s.v.HLine(x+30, y+116, w-60, colorSeparator)

	memory, uptime := s.d.AboutInfo()
	s.centered(x, y+130, w, memory, colorDimText)
	s.centered(x, y+150, w, uptime, colorDimText)

	s.button(s.d.AboutOKRect(), "OK")
}

// button draws a push button that darkens under the pointer.
func (s *scene) button(r image.Rectangle, label string) {
	x, y, w, h := r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	bg := colorButton
	if s.hovered(r) {
		bg = colorButtonHover
	}
	if s.classic {
		s.v.FillRect(x, y, w, h, bg)
		s.v.DrawRect(x, y, w, h, colorButtonEdge)
	} else {
		s.v.FillRounded(x, y, w, h, 6, bg)
		s.v.DrawRounded(x, y, w, h, 6, colorButtonEdge)
	}
	s.centered(x, y+(h-pixel.TextHeight)/2, w, label, config.LightPalette.MenuText)
}

func (s *scene) settings() {
	r := s.d.SettingsRect()
	x, y, w := r.Min.X, r.Min.Y, r.Dx()

	dark := s.d.Theme() == config.ThemeDark
	bg, text, section, rule := colorDialogLight, uint32(0x333333), uint32(0x666666), colorSeparator
	if dark {
		bg, text, section, rule = colorDialogDark, config.ColorWhite, 0x888888, 0x505050
	}
	s.panel(r, 12, 4, image.Pt(2, 2), s.pal.Shadow, bg, 250, s.pal.WindowBorder)

	s.centered(x, y+16, w, "Settings", text)
	s.v.HLine(x+20, y+40, w-40, rule)
	s.v.DrawString(x+20, y+55, "Theme", section)
	s.v.HLine(x+20, y+120, w-40, rule)
	s.v.DrawString(x+20, y+135, "Wallpaper", section)

	for _, b := range s.d.SettingsButtons() {
		if b.Action == app.ActionNone {
			s.button(b.Rect, b.Label)
			continue
		}
		bx, by, bw, bh := b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Dx(), b.Rect.Dy()
		fill, fg := config.ColorClassicIdle, uint32(0x333333)
		switch {
		case s.d.Selected(b):
			fill, fg = s.pal.Accent, config.ColorWhite
		case s.hovered(b.Rect):
			fill = config.ColorClassicTitle
		}
		if s.classic {
			s.v.FillRect(bx, by, bw, bh, fill)
			s.v.DrawRect(bx, by, bw, bh, s.pal.WindowBorder)
		} else {
			s.v.FillRounded(bx, by, bw, bh, 6, fill)
		}
		s.centered(bx, by+(bh-pixel.TextHeight)/2, bw, b.Label, fg)
	}
}
