package ui

import (
	"image/color"

	"cubeviz/quarkgl"

	"tinygo.org/x/drivers"
)

// targetDisplayer adapts a quarkgl.Target to drivers.Displayer so tinyfont
// can draw into it. Clipping is left to the target.
type targetDisplayer struct {
	t quarkgl.Target
}

var _ drivers.Displayer = (*targetDisplayer)(nil)

func (d *targetDisplayer) Size() (x, y int16) {
	if d.t == nil {
		return 0, 0
	}
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.t == nil {
		return
	}
	d.t.SetPixel(int(x), int(y), quarkgl.RGB(c.R, c.G, c.B))
}

func (d *targetDisplayer) Display() error { return nil }

func toRGBA(c quarkgl.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
