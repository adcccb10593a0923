package render

import (
	"hash/fnv"
	"strings"

	"github.com/kikios/kikidesk/internal/config"
	"github.com/kikios/kikidesk/internal/pixel"
)

const logoSize = 16

var logoMask = bitmap([]string{
	"  ############  ",
	" ############## ",
	"####  ####  ####",
	"####  ###  #####",
	"####  ##  ######",
	"####  #  #######",
	"####    ########",
	"####   #########",
	"####    ########",
	"####  #  #######",
	"####  ##  ######",
	"####  ###  #####",
	"####  ####  ####",
	"################",
	" ############## ",
	"  ############  ",
}, logoSize, logoSize)

// iconColors tint dock icons, picked by label so an icon keeps its colour when
// the dock is reordered.
var iconColors = [...]uint32{
	0x007AFF, 0x34C759, 0xFF9500, 0xAF52DE, 0xFF2D55, 0x5AC8FA, 0x8E8E93, 0xFFCC00,
}

func iconColor(label string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(label))
	return iconColors[h.Sum32()%uint32(len(iconColors))]
}

func (s *scene) dock() {
	p := s.d.DockPill()
	x, y, w, h := p.Min.X, p.Min.Y, p.Dx(), p.Dy()
	if s.classic {
		s.v.FillRect(x, y, w, h, s.pal.DockBG)
		s.v.DrawRect(x, y, w, h, s.pal.DockBorder)
	} else {
		s.v.BoxShadowRounded(x, y, w, h, config.DockPillRadius, 4, 0, 2, colorDockShadow)
		s.v.FillRounded(x, y, w, h, config.DockPillRadius, s.pal.DockBG)
		s.v.DrawRounded(x, y, w, h, config.DockPillRadius, s.pal.DockBorder)
	}

	for _, ic := range s.d.Dock() {
		hover := s.hovered(ic.HoverRect())
		if hover {
			hx, hy := ic.X-6, ic.Y-4
			hw, hh := config.DockIconSize+12, config.DockIconSize+config.DockLabelHeight+8
			if s.classic {
				s.v.FillRect(hx, hy, hw, hh, colorHoverFlat)
			} else {
				s.v.FillRoundedAlpha(hx, hy, hw, hh, 8, s.pal.Accent, 40)
			}
		}
		s.icon(ic.X, ic.Y, ic.Label)

		fg := s.pal.MenuText
		if hover {
			fg = config.ColorWhite
		}
		label := pixel.TruncateToWidth(ic.Label, config.DockIconSize+config.DockIconPadding-4)
		s.centered(ic.X, ic.Y+config.DockIconSize+2, config.DockIconSize, label, fg)
	}

	previews := s.d.Previews()
	if len(previews) == 0 {
		return
	}
	s.v.VLine(s.d.DockSeparatorX(), y+10, h-20, s.pal.DockBorder)
	for _, pv := range previews {
		r := pv.Rect
		px, py, pw, ph := r.Min.X, r.Min.Y, r.Dx(), r.Dy()
		if s.hovered(r) {
			if s.classic {
				s.v.FillRect(px-2, py-2, pw+4, ph+4, colorHoverFlat)
			} else {
				s.v.FillRoundedAlpha(px-2, py-2, pw+4, ph+4, 4, s.pal.Accent, 60)
			}
		}
		if s.classic {
			s.v.FillRect(px, py, pw, ph, s.pal.WindowBG)
			s.v.DrawRect(px, py, pw, ph, s.pal.WindowBorder)
		} else {
			s.v.FillRounded(px, py, pw, ph, 4, s.pal.WindowBG)
			s.v.DrawRounded(px, py, pw, ph, 4, s.pal.WindowBorder)
		}
		if w := s.d.Window(pv.Handle); w != nil && w.Buffer() != nil {
			s.v.Blit(px+1, py+9, pixel.Thumbnail(w.Buffer(), pw-2, ph-10))
		}
		s.v.FillRect(px+1, py+1, pw-2, 8, s.pal.TitleActive)
		s.v.FillCircle(px+5, py+5, 2, config.ColorButtonClose)
		s.v.FillCircle(px+11, py+5, 2, config.ColorButtonMin)
		s.v.FillCircle(px+17, py+5, 2, config.ColorButtonZoom)
	}
}

// icon draws a launcher tile: a tinted square with the label's initial.
func (s *scene) icon(x, y int, label string) {
	const n = config.DockIconSize
	initial := "?"
	if label != "" {
		initial = strings.ToUpper(label[:1])
	}
	bg := iconColor(label)
	if s.classic {
		s.v.FillRect(x, y, n, n, bg)
		s.v.DrawRect(x, y, n, n, config.ColorBlack)
	} else {
		s.v.FillRounded(x, y, n, n, 8, bg)
	}
	s.centered(x, y+(n-pixel.TextHeight)/2, n, initial, config.ColorWhite)
}
