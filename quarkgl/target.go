package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects how a mesh is rasterized.
type RenderMode uint8

const (
	RenderSolidFlat RenderMode = iota
	RenderWireframe
	MeshHidden
)

// Viewport is a rectangular window onto a parent Target. Coordinates are
// relative to (X, Y) and clipped to W x H.
type Viewport struct {
	Parent Target
	X, Y   int
	W, H   int
}

func (v *Viewport) Size() (w, h int) { return v.W, v.H }

func (v *Viewport) SetPixel(x, y int, c Color) {
	if v == nil || v.Parent == nil || x < 0 || y < 0 || x >= v.W || y >= v.H {
		return
	}
	v.Parent.SetPixel(v.X+x, v.Y+y, c)
}

func (v *Viewport) Clear(c Color) {
	if v == nil || v.Parent == nil {
		return
	}
	for y := 0; y < v.H; y++ {
		for x := 0; x < v.W; x++ {
			v.Parent.SetPixel(v.X+x, v.Y+y, c)
		}
	}
}
