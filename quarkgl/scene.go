package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is an ambient plus directional light setup. Only meshes are lit;
// points and lines keep their base color.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	// Perspective.
	FOVYRad Scalar

	// Orthographic (half-height).
	OrthoSize Scalar

	Near Scalar
	Far  Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	switch c.Type {
	case CameraOrtho:
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		top := size
		bottom := -size
		right := size * aspect
		left := -right
		return Mat4Ortho(left, right, bottom, top, c.Near, c.Far)
	default:
		fov := c.FOVYRad
		if fov == 0 {
			fov = Scalar(1.0)
		}
		return Mat4Perspective(fov, aspect, c.Near, c.Far)
	}
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
	Mode      RenderMode
}

// PointCloud draws each position as a square dot.
type PointCloud struct {
	Enabled bool

	Positions []Vec3
	Color     Color
	Size      int // dot edge in pixels
}

// Lines draws segments between pairs of positions.
type Lines struct {
	Enabled bool

	Positions []Vec3
	Indices   []uint16 // segment list
	Colors    []Color  // optional, per segment
	Color     Color
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	points []PointCloud
	lines  []Lines
}

// CreateScene returns a scene with the default camera and light.
func CreateScene() *Scene {
	return &Scene{
		Camera: Camera{
			Type:      CameraPerspective,
			Position:  V3(0, 0, 3),
			Target:    V3(0, 0, 0),
			Up:        V3(0, 1, 0),
			FOVYRad:   Scalar(1.0),
			Near:      Scalar(0.05),
			Far:       Scalar(100),
			OrthoSize: Scalar(1),
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   Scalar(0.25),
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: Scalar(0.75),
		},
	}
}

// AddMesh adds a mesh and returns its id.
func (s *Scene) AddMesh(m Mesh) int {
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}
	if m.Material.BaseColor == (Color{}) {
		m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
	}
	m.Enabled = true
	s.meshes = append(s.meshes, m)
	return len(s.meshes) - 1
}

// AddPoints adds a point cloud and returns its id.
func (s *Scene) AddPoints(p PointCloud) int {
	if p.Size <= 0 {
		p.Size = 1
	}
	p.Enabled = true
	s.points = append(s.points, p)
	return len(s.points) - 1
}

// AddLines adds a line set and returns its id.
func (s *Scene) AddLines(l Lines) int {
	l.Enabled = true
	s.lines = append(s.lines, l)
	return len(s.lines) - 1
}

// SetMeshMode shows a mesh with the given mode, or hides it for MeshHidden.
func (s *Scene) SetMeshMode(id int, mode RenderMode) {
	if id < 0 || id >= len(s.meshes) {
		return
	}
	s.meshes[id].Enabled = mode != MeshHidden
	s.meshes[id].Mode = mode
}

// AxesLines returns an axis indicator of the given length: X red, Y green,
// Z blue.
func AxesLines(length Scalar) Lines {
	return Lines{
		Positions: []Vec3{
			V3(0, 0, 0), V3(length, 0, 0),
			V3(0, 0, 0), V3(0, length, 0),
			V3(0, 0, 0), V3(0, 0, length),
		},
		Indices: []uint16{0, 1, 2, 3, 4, 5},
		Colors: []Color{
			RGB(0xE0, 0x40, 0x40),
			RGB(0x40, 0xC0, 0x40),
			RGB(0x40, 0x70, 0xF0),
		},
	}
}
