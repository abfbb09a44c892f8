package ui

import "image"

// Grid splits a w x h area into cols x rows cells separated and surrounded
// by gap pixels, returned row by row.
func Grid(w, h, cols, rows, gap int) []image.Rectangle {
	if cols <= 0 || rows <= 0 || gap < 0 {
		return nil
	}
	cw := (w - gap*(cols+1)) / cols
	ch := (h - gap*(rows+1)) / rows
	if cw <= 0 || ch <= 0 {
		return nil
	}
	out := make([]image.Rectangle, 0, cols*rows)
	for r := 0; r < rows; r++ {
		y := gap + r*(ch+gap)
		for c := 0; c < cols; c++ {
			x := gap + c*(cw+gap)
			out = append(out, image.Rect(x, y, x+cw, y+ch))
		}
	}
	return out
}

// At returns the index of the first rectangle containing x, y, or -1.
func At(cells []image.Rectangle, x, y int) int {
	pt := image.Pt(x, y)
	for i, r := range cells {
		if pt.In(r) {
			return i
		}
	}
	return -1
}
