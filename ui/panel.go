// Package ui lays out titled panels over the framebuffer: a title bar, a 3D
// drawing surface and a text area for the matrix listing.
package ui

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"cubeviz/hal"
	"cubeviz/quarkgl"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	// ErrNoFramebuffer reports a missing framebuffer.
	ErrNoFramebuffer = errors.New("no framebuffer")
	// ErrFormat reports a framebuffer pixel format other than RGB565.
	ErrFormat = errors.New("unsupported pixel format")
	// ErrBounds reports a panel rectangle that is empty or not inside the
	// framebuffer.
	ErrBounds = errors.New("panel out of bounds")
)

const (
	titleHeight = 12
	padding     = 4

	// surfaceShare is the part of the area below the title bar given to
	// the drawing surface, in percent.
	surfaceShare = 62
)

var (
	defaultBackground = quarkgl.Hex(0x101014)
	defaultTitleBG    = quarkgl.Hex(0x2a2a33)
	defaultTitleFG    = quarkgl.Hex(0xeeeeee)
	defaultTextFG     = quarkgl.Hex(0xb8c0cc)
)

// Panel is one titled cell of the screen.
type Panel struct {
	Title   string
	Columns int // text columns; 0 means 2

	Background quarkgl.Color
	TitleBG    quarkgl.Color
	TitleFG    quarkgl.Color
	TextFG     quarkgl.Color

	bounds  image.Rectangle
	fbt     *quarkgl.RGB565Target
	title   *quarkgl.Viewport
	surface *quarkgl.Viewport
	textbox *quarkgl.Viewport

	font       tinyfont.Fonter
	lineHeight int
	charWidth  int

	text string
}

// NewPanel splits bounds into a title bar, a drawing surface and a text
// area over fb.
func NewPanel(fb hal.Framebuffer, bounds image.Rectangle, title string) (*Panel, error) {
	if fb == nil {
		return nil, fmt.Errorf("ui: panel %q: %w", title, ErrNoFramebuffer)
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("ui: panel %q: format %d: %w", title, fb.Format(), ErrFormat)
	}
	full := image.Rect(0, 0, fb.Width(), fb.Height())
	if bounds.Empty() || !bounds.In(full) || bounds.Dy() <= titleHeight+2*padding {
		return nil, fmt.Errorf("ui: panel %q: %v in %v: %w", title, bounds, full, ErrBounds)
	}

	fbt := &quarkgl.RGB565Target{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
	body := bounds.Dy() - titleHeight
	surfaceH := body * surfaceShare / 100

	p := &Panel{
		Title:      title,
		Columns:    2,
		Background: defaultBackground,
		TitleBG:    defaultTitleBG,
		TitleFG:    defaultTitleFG,
		TextFG:     defaultTextFG,
		bounds:     bounds,
		fbt:        fbt,
		title:      &quarkgl.Viewport{Parent: fbt, X: bounds.Min.X, Y: bounds.Min.Y, W: bounds.Dx(), H: titleHeight},
		surface:    &quarkgl.Viewport{Parent: fbt, X: bounds.Min.X, Y: bounds.Min.Y + titleHeight, W: bounds.Dx(), H: surfaceH},
		textbox: &quarkgl.Viewport{
			Parent: fbt,
			X:      bounds.Min.X,
			Y:      bounds.Min.Y + titleHeight + surfaceH,
			W:      bounds.Dx(),
			H:      body - surfaceH,
		},
	}
	p.initFont()
	return p, nil
}

func (p *Panel) initFont() {
	font := &proggy.TinySZ8pt7b
	p.font = font
	p.lineHeight = int(font.GetYAdvance())
	if p.lineHeight <= 0 {
		p.lineHeight = 10
	}
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	p.charWidth = int(outboxWidth)
	if p.charWidth <= 0 {
		p.charWidth = 6
	}
}

// Bounds returns the whole panel rectangle in framebuffer coordinates.
func (p *Panel) Bounds() image.Rectangle { return p.bounds }

// Surface returns the drawing surface for the 3D view.
func (p *Panel) Surface() quarkgl.Target { return p.surface }

// SurfaceBounds returns the drawing surface rectangle in framebuffer
// coordinates.
func (p *Panel) SurfaceBounds() image.Rectangle {
	return image.Rect(p.surface.X, p.surface.Y, p.surface.X+p.surface.W, p.surface.Y+p.surface.H)
}

// Contains reports whether the framebuffer point x, y lies in the panel.
func (p *Panel) Contains(x, y int) bool {
	return image.Pt(x, y).In(p.bounds)
}

// SetText stores preformatted text for the text area. Blocks are separated
// by blank lines.
func (p *Panel) SetText(s string) { p.text = s }

// Text returns the stored text.
func (p *Panel) Text() string { return p.text }

// Draw paints the title bar and the text area. The surface is left to the
// renderer.
func (p *Panel) Draw() {
	p.title.Clear(p.TitleBG)
	p.textbox.Clear(p.Background)

	baseline := int16(p.lineHeight - 2)
	maxChars := (p.title.W - 2*padding) / p.charWidth
	tinyfont.WriteLine(&targetDisplayer{t: p.title}, p.font, padding, baseline, clip(p.Title, maxChars), toRGBA(p.TitleFG))

	cols := p.Columns
	if cols <= 0 {
		cols = 2
	}
	colW := (p.textbox.W - padding) / cols
	maxLines := (p.textbox.H - padding) / p.lineHeight
	d := &targetDisplayer{t: p.textbox}
	fg := toRGBA(p.TextFG)
	for c, lines := range flowBlocks(p.text, cols, maxLines) {
		x := int16(padding + c*colW)
		for i, line := range lines {
			y := int16(padding+i*p.lineHeight) + baseline
			tinyfont.WriteLine(d, p.font, x, y, clip(line, colW/p.charWidth), fg)
		}
	}
}

// flowBlocks fills cols columns of at most maxLines lines with the blank-line
// separated blocks of text. A block moves to the next column rather than
// splitting, unless it is taller than a whole column. Whatever does not fit
// is dropped.
func flowBlocks(text string, cols, maxLines int) [][]string {
	if cols <= 0 || maxLines <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	out := make([][]string, 1, cols)
	for _, block := range strings.Split(text, "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		for len(lines) > 0 {
			cur := out[len(out)-1]
			gap := 0
			if len(cur) > 0 {
				gap = 1
			}
			room := maxLines - len(cur) - gap
			if len(lines) <= room {
				if gap > 0 {
					cur = append(cur, "")
				}
				out[len(out)-1] = append(cur, lines...)
				lines = nil
				continue
			}
			if len(cur) == 0 {
				// Taller than a column: split it.
				out[len(out)-1] = append(cur, lines[:maxLines]...)
				lines = lines[maxLines:]
			}
			if len(out) == cols {
				return out
			}
			out = append(out, nil)
		}
	}
	return out
}

func clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}
