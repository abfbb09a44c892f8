package quarkgl

// Renderer is a fixed-pipeline software renderer.
//
// Create it once per Target and reuse it to avoid allocations. A Renderer
// is not safe for concurrent use; give each goroutine its own.
type Renderer struct {
	Depth      bool
	ClearColor Color

	depthBuf []float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(1)
	if h != 0 {
		aspect = Scalar(w) / Scalar(h)
	}
	vp := Mat4Mul(s.Camera.Projection(aspect), s.Camera.View())

	for i := range s.meshes {
		if s.meshes[i].Enabled {
			r.renderMesh(t, w, h, vp, &s.meshes[i], s.Light)
		}
	}
	for i := range s.lines {
		if s.lines[i].Enabled {
			r.renderLines(t, w, h, vp, &s.lines[i])
		}
	}
	for i := range s.points {
		if s.points[i].Enabled {
			r.renderPoints(t, w, h, vp, &s.points[i])
		}
	}
}

func (r *Renderer) renderPoints(t Target, w, h int, vp Mat4, p *PointCloud) {
	half := p.Size / 2
	for _, pos := range p.Positions {
		ndc, ok := clipToNDC(Mat4MulV4(vp, Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: 1}))
		if !ok {
			continue
		}
		x, y := ndcToScreen(ndc, w, h)
		for dy := 0; dy < p.Size; dy++ {
			for dx := 0; dx < p.Size; dx++ {
				t.SetPixel(x-half+dx, y-half+dy, p.Color)
			}
		}
	}
}

func (r *Renderer) renderLines(t Target, w, h int, vp Mat4, l *Lines) {
	for i := 0; i+1 < len(l.Indices); i += 2 {
		i0 := int(l.Indices[i])
		i1 := int(l.Indices[i+1])
		if i0 >= len(l.Positions) || i1 >= len(l.Positions) {
			continue
		}
		a, b := l.Positions[i0], l.Positions[i1]
		na, okA := clipToNDC(Mat4MulV4(vp, Vec4{X: a.X, Y: a.Y, Z: a.Z, W: 1}))
		nb, okB := clipToNDC(Mat4MulV4(vp, Vec4{X: b.X, Y: b.Y, Z: b.Z, W: 1}))
		if !okA || !okB {
			continue
		}
		c := l.Color
		if seg := i / 2; seg < len(l.Colors) {
			c = l.Colors[seg]
		}
		x0, y0 := ndcToScreen(na, w, h)
		x1, y1 := ndcToScreen(nb, w, h)
		r.drawLine(t, w, h, x0, y0, x1, y1, c)
	}
}

func (r *Renderer) renderMesh(t Target, w, h int, vp Mat4, m *Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	mvp := Mat4Mul(vp, m.Transform)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		ndc0, ok0 := clipToNDC(Mat4MulV4(mvp, Vec4{X: v0.Pos.X, Y: v0.Pos.Y, Z: v0.Pos.Z, W: 1}))
		ndc1, ok1 := clipToNDC(Mat4MulV4(mvp, Vec4{X: v1.Pos.X, Y: v1.Pos.Y, Z: v1.Pos.Z, W: 1}))
		ndc2, ok2 := clipToNDC(Mat4MulV4(mvp, Vec4{X: v2.Pos.X, Y: v2.Pos.Y, Z: v2.Pos.Z, W: 1}))
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		// Screen coords.
		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		base := m.Material.BaseColor
		if light.Mode == LightAmbientDirectional {
			n := triangleNormal(v0.Pos, v1.Pos, v2.Pos)
			base = base.MulScalar(lightIntensity(light, n))
		}

		switch m.Mode {
		case RenderWireframe:
			r.drawLine(t, w, h, x0, y0, x1, y1, base)
			r.drawLine(t, w, h, x1, y1, x2, y2, base)
			r.drawLine(t, w, h, x2, y2, x0, y0, base)
		default:
			r.fillTriangleFlat(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, base)
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

// clipToNDC divides by w. Points behind the eye (w <= 0) are rejected.
func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= 0 {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{
		X: p.X * invW,
		Y: p.Y * invW,
		Z: p.Z * invW,
	}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := (z*0.5 + 0.5)
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) drawLine(t Target, w, h int, x0, y0, x1, y1 int, c Color) {
	// Far off-screen endpoints would make Bresenham walk millions of pixels.
	lim := 4 * (w + h)
	if absInt(x0) > lim || absInt(x1) > lim || absInt(y0) > lim || absInt(y1) > lim {
		return
	}
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangleFlat culls triangles that are clockwise in NDC (back faces).
func (r *Renderer) fillTriangleFlat(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color) {
	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area <= 0 {
		return
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
