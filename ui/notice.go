package ui

import (
	"strings"
	"unicode/utf8"

	"cubeviz/hal"
	"cubeviz/quarkgl"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Notice clears the whole framebuffer to bg and writes lines from the top,
// wrapping long lines at the screen width. Lines that do not fit are dropped.
func Notice(fb hal.Framebuffer, lines []string, fg, bg quarkgl.Color) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	t := &quarkgl.RGB565Target{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()}
	t.Clear(bg)

	font := &proggy.TinySZ8pt7b
	lineHeight := int(font.GetYAdvance())
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	charWidth := int(outboxWidth)
	if lineHeight <= 0 || charWidth <= 0 {
		return
	}
	cols := (t.W - 2*padding) / charWidth

	d := &targetDisplayer{t: t}
	y := padding
	for _, line := range lines {
		for {
			if y+lineHeight > t.H {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, padding, int16(y+lineHeight-2), chunk, toRGBA(fg))
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
			if line == "" {
				break
			}
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
