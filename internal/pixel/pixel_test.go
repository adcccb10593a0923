package pixel

import (
	"image"
	"testing"
)

func TestWrapRejectsShortSlice(t *testing.T) {
	tests := []struct {
		name          string
		n, w, h, strd int
		wantErr       bool
	}{
		{name: "exact fit", n: 12, w: 4, h: 3, strd: 4},
		{name: "stride padding", n: 2*6 + 4, w: 4, h: 3, strd: 6},
		{name: "too short", n: 11, w: 4, h: 3, strd: 4, wantErr: true},
		{name: "stride below width", n: 100, w: 4, h: 3, strd: 3, wantErr: true},
		{name: "empty", n: 0, w: 0, h: 0, strd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Wrap(make([]uint32, tt.n), tt.w, tt.h, tt.strd)
			if (err != nil) != tt.wantErr {
				t.Errorf("Wrap() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPixelAccessIsBoundsChecked(t *testing.T) {
	v := New(4, 3)
	v.SetPixel(-1, 0, 0xFF)
	v.SetPixel(4, 0, 0xFF)
	v.SetPixel(0, 3, 0xFF)
	v.SetPixel(3, 2, 0x123456)

	if got := v.Pixel(3, 2); got != 0x123456 {
		t.Errorf("Pixel(3,2) = %06X, want 123456", got)
	}
	if got := v.Pixel(10, 10); got != 0 {
		t.Errorf("Pixel outside view = %06X, want 0", got)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if (x != 3 || y != 2) && v.Pixel(x, y) != 0 {
				t.Fatalf("stray write at (%d,%d)", x, y)
			}
		}
	}
}

func TestCopyRowClips(t *testing.T) {
	tests := []struct {
		name    string
		x       int
		want    []uint32
		written int
	}{
		{name: "inside", x: 1, want: []uint32{0, 1, 2, 3, 0}, written: 3},
		{name: "left clip", x: -2, want: []uint32{3, 0, 0, 0, 0}, written: 1},
		{name: "right clip", x: 3, want: []uint32{0, 0, 0, 1, 2}, written: 2},
		{name: "fully left", x: -3, want: []uint32{0, 0, 0, 0, 0}, written: 0},
		{name: "fully right", x: 5, want: []uint32{0, 0, 0, 0, 0}, written: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(5, 1)
			n := v.CopyRow(tt.x, 0, []uint32{1, 2, 3})
			if n != tt.written {
				t.Errorf("CopyRow wrote %d, want %d", n, tt.written)
			}
			for i, w := range tt.want {
				if v.Pixel(i, 0) != w {
					t.Errorf("pixel %d = %d, want %d", i, v.Pixel(i, 0), w)
				}
			}
		})
	}
}

func TestSubSharesMemory(t *testing.T) {
	v := New(10, 10)
	s := v.Sub(image.Rect(2, 3, 6, 5))
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("Sub size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	s.Fill(7)
	if v.Pixel(2, 3) != 7 || v.Pixel(5, 4) != 7 {
		t.Error("Sub writes did not reach parent")
	}
	if v.Pixel(6, 4) != 0 || v.Pixel(2, 5) != 0 {
		t.Error("Sub fill leaked outside its rectangle")
	}
	if empty := v.Sub(image.Rect(20, 20, 30, 30)); empty.Size() != 0 {
		t.Error("Sub outside bounds should be empty")
	}
}

func TestFillRectNegativeSizeIsNoop(t *testing.T) {
	v := New(4, 4)
	v.FillRect(3, 3, -2, -2, 9)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v.Pixel(x, y) != 0 {
				t.Fatalf("unexpected write at (%d,%d)", x, y)
			}
		}
	}
}

func TestBlendAndLerp(t *testing.T) {
	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"blend opaque", Blend(0xFF0000, 0x0000FF, 255), 0xFF0000},
		{"blend transparent", Blend(0xFF0000, 0x0000FF, 0), 0x0000FF},
		{"blend half", Blend(0xFFFFFF, 0x000000, 128), 0x808080},
		{"lerp start", Lerp(0x102030, 0xFFFFFF, 0), 0x102030},
		{"lerp end", Lerp(0x102030, 0xFFFFFF, 255), 0xFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %06X, want %06X", tt.got, tt.want)
			}
		})
	}
}

func TestGradientEndpoints(t *testing.T) {
	v := New(3, 10)
	v.GradientV(0, 0, 3, 10, 0x000000, 0xFFFFFF)
	if v.Pixel(1, 0) != 0x000000 {
		t.Errorf("top = %06X", v.Pixel(1, 0))
	}
	if v.Pixel(1, 9) != 0xFFFFFF {
		t.Errorf("bottom = %06X", v.Pixel(1, 9))
	}
}

func TestFillPatternParity(t *testing.T) {
	v := New(4, 4)
	v.FillPattern(0, 0, 4, 4, 1, 2)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint32(1)
			if (x+y)%2 == 1 {
				want = 2
			}
			if v.Pixel(x, y) != want {
				t.Fatalf("(%d,%d) = %d, want %d", x, y, v.Pixel(x, y), want)
			}
		}
	}
}

func TestFillRoundedLeavesCornersOpen(t *testing.T) {
	v := New(20, 20)
	v.FillRounded(0, 0, 20, 20, 8, 5)
	if v.Pixel(0, 0) != 0 {
		t.Error("corner pixel should stay unpainted")
	}
	if v.Pixel(10, 10) != 5 || v.Pixel(0, 10) != 5 || v.Pixel(10, 0) != 5 {
		t.Error("edges and centre should be painted")
	}
}

func TestDrawStringTouchesOnlyGlyphs(t *testing.T) {
	v := New(40, TextHeight)
	v.Fill(0xFFFFFF)
	v.DrawString(0, 0, "Hi", 0x000000)

	dark := 0
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			if v.Pixel(x, y) != 0xFFFFFF {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected glyph pixels to be drawn")
	}
	for y := 0; y < v.Height(); y++ {
		for x := MeasureString("Hi"); x < v.Width(); x++ {
			if v.Pixel(x, y) != 0xFFFFFF {
				t.Fatalf("pixel beyond text advance touched at (%d,%d)", x, y)
			}
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := TruncateToWidth("Short", 100); got != "Short" {
		t.Errorf("got %q", got)
	}
	got := TruncateToWidth("A rather long window title", 70)
	if MeasureString(got) > 70 {
		t.Errorf("%q is wider than 70px", got)
	}
	if len(got) < 2 || got[len(got)-2:] != ".." {
		t.Errorf("%q should end with ..", got)
	}
}

func TestThumbnailSize(t *testing.T) {
	src := New(200, 100)
	src.Fill(0x00FF00)
	th := Thumbnail(src, 40, 30)
	if th.Width() != 40 || th.Height() != 30 {
		t.Fatalf("thumbnail %dx%d", th.Width(), th.Height())
	}
	if th.Pixel(20, 15) != 0x00FF00 {
		t.Errorf("thumbnail centre = %06X", th.Pixel(20, 15))
	}
}

func TestRGBAConversion(t *testing.T) {
	v := New(2, 1)
	v.SetPixel(1, 0, 0x102030)
	img := v.RGBA()
	c := img.RGBAAt(1, 0)
	if c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0xFF {
		t.Errorf("RGBAAt = %+v", c)
	}
	if back := FromImage(img); !back.Equal(v) {
		t.Error("FromImage(RGBA()) should round trip")
	}
}

func BenchmarkFillRect(b *testing.B) {
	v := New(1024, 768)
	for b.Loop() {
		v.FillRect(0, 0, 1024, 768, 0x336699)
	}
}

func BenchmarkFillRoundedAlpha(b *testing.B) {
	v := New(1024, 768)
	for b.Loop() {
		v.FillRoundedAlpha(100, 100, 400, 300, 10, 0x000000, 64)
	}
}
