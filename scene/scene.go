// Package scene turns a construction history of transforms into an isolated,
// renderable 3D scene of the transformed cube.
//
// The cumulative transform is applied to the cube once, at construction.
// Camera input never touches the geometry.
package scene

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"cubeviz/cube"
	"cubeviz/quarkgl"
	"cubeviz/xform"
)

// Scene is one labeled cube view with its own camera, orbit controller and
// renderer.
type Scene struct {
	name       string
	steps      xform.Sequence
	cumulative xform.Transform
	geom       cube.Geometry
	text       string
	color      quarkgl.Color
	opts       options
	log        *slog.Logger

	gl       *quarkgl.Scene
	orbit    quarkgl.OrbitController
	faceMesh int
	faces    quarkgl.RenderMode

	target   quarkgl.Target
	renderer *quarkgl.Renderer

	running atomic.Bool
}

// New builds a scene from steps, outermost first. Errors are returned as
// *ConstructionError.
func New(name string, steps xform.Sequence, color quarkgl.Color, opts ...Option) (*Scene, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if name == "" {
		return nil, &ConstructionError{Scene: name, Err: ErrEmptyName}
	}

	geom, err := cube.New(o.edge)
	if err != nil {
		return nil, &ConstructionError{Scene: name, Err: err}
	}
	cum, err := steps.Compose()
	if err != nil {
		return nil, &ConstructionError{Scene: name, Err: err}
	}
	geom.Transform(cum.M)
	if err := geom.Validate(); err != nil {
		return nil, &ConstructionError{Scene: name, Err: err}
	}

	s := &Scene{
		name:       name,
		steps:      steps.Clone(),
		cumulative: cum,
		geom:       geom,
		text:       steps.Format(),
		color:      color,
		opts:       o,
		log:        o.logger().With("scene", name),
	}
	s.build()
	s.log.Debug("scene built", "steps", len(steps), "det", cum.M.Det())
	return s, nil
}

func (s *Scene) build() {
	positions := make([]quarkgl.Vec3, len(s.geom.Points))
	verts := make([]quarkgl.Vertex, len(s.geom.Points))
	for i, p := range s.geom.Points {
		positions[i] = quarkgl.V3(quarkgl.Scalar(p.X), quarkgl.Scalar(p.Y), quarkgl.Scalar(p.Z))
		verts[i] = quarkgl.Vertex{Pos: positions[i]}
	}

	edges := make([]uint16, 0, 2*len(s.geom.Edges))
	for _, e := range s.geom.Edges {
		edges = append(edges, uint16(e[0]), uint16(e[1]))
	}

	gl := quarkgl.CreateScene()
	s.faceMesh = gl.AddMesh(quarkgl.Mesh{
		Vertices: verts,
		Indices:  faceIndices(s.cumulative.M.Det() < 0),
		Material: quarkgl.Material{BaseColor: s.color},
	})
	gl.AddLines(quarkgl.Lines{Positions: positions, Indices: edges, Color: s.color})
	gl.AddLines(quarkgl.AxesLines(s.opts.axes))
	gl.AddPoints(quarkgl.PointCloud{Positions: positions, Color: quarkgl.Hex(0xffffff), Size: s.opts.pointSize})
	s.gl = gl
	s.setFaces(s.opts.faces)

	s.orbit = quarkgl.OrbitController{
		Yaw:       0.6,
		Pitch:     0.45,
		Radius:    6,
		MinRadius: 1.5,
		MaxRadius: 30,
		Damping:   s.opts.damping,
	}
	s.orbit.SaveHome()
	s.orbit.Apply(&s.gl.Camera)
}

// faceIndices returns the cube triangles as an index list. A reflection
// turns the cube inside out, so flip reverses the winding to keep the outside
// front-facing.
func faceIndices(flip bool) []uint16 {
	tris := cube.Triangles()
	out := make([]uint16, 0, 3*len(tris))
	for _, t := range tris {
		if flip {
			t[1], t[2] = t[2], t[1]
		}
		out = append(out, uint16(t[0]), uint16(t[1]), uint16(t[2]))
	}
	return out
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Color returns the scene accent color.
func (s *Scene) Color() quarkgl.Color { return s.color }

// Steps returns a copy of the construction history, outermost first.
func (s *Scene) Steps() xform.Sequence { return s.steps.Clone() }

// Cumulative returns the composed transform.
func (s *Scene) Cumulative() xform.Transform { return s.cumulative }

// Points returns a copy of the transformed cube vertices.
func (s *Scene) Points() []xform.Vec3 {
	return append([]xform.Vec3(nil), s.geom.Points...)
}

// Edges returns a copy of the cube edges.
func (s *Scene) Edges() []cube.Edge {
	return append([]cube.Edge(nil), s.geom.Edges...)
}

// Text returns the formatted matrix listing, innermost step first.
func (s *Scene) Text() string { return s.text }

// Orbit returns the camera controller. Input queued on it takes effect on
// the next Tick.
func (s *Scene) Orbit() *quarkgl.OrbitController { return &s.orbit }

// Camera returns the current camera.
func (s *Scene) Camera() quarkgl.Camera { return s.gl.Camera }

// Faces returns the face display mode.
func (s *Scene) Faces() quarkgl.RenderMode { return s.faces }

// SetFaces sets the face display mode.
func (s *Scene) SetFaces(mode quarkgl.RenderMode) {
	if mode == s.faces {
		return
	}
	s.setFaces(mode)
	s.log.Debug("faces", "mode", mode)
}

func (s *Scene) setFaces(mode quarkgl.RenderMode) {
	if mode > quarkgl.MeshHidden {
		mode = quarkgl.MeshHidden
	}
	s.faces = mode
	s.gl.SetMeshMode(s.faceMesh, mode)
}

// Ortho reports whether the camera uses an orthographic projection.
func (s *Scene) Ortho() bool { return s.gl.Camera.Type == quarkgl.CameraOrtho }

// SetOrtho switches between orthographic and perspective projection.
func (s *Scene) SetOrtho(on bool) {
	if on {
		s.gl.Camera.Type = quarkgl.CameraOrtho
	} else {
		s.gl.Camera.Type = quarkgl.CameraPerspective
	}
}

// ResetCamera returns the camera to its initial pose.
func (s *Scene) ResetCamera() {
	s.orbit.Reset()
	s.orbit.Apply(&s.gl.Camera)
}

// Attach binds the drawing surface. A nil or zero-area target is a
// *RenderSurfaceError.
func (s *Scene) Attach(t quarkgl.Target) error {
	if t == nil {
		return &RenderSurfaceError{Scene: s.name, Err: ErrNoSurface}
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return &RenderSurfaceError{Scene: s.name, Err: fmt.Errorf("%dx%d: %w", w, h, ErrNoSurface)}
	}
	s.target = t
	s.renderer = quarkgl.NewRenderer(w, h, true)
	s.renderer.ClearColor = s.opts.background
	s.log.Debug("surface attached", "w", w, "h", h)
	return nil
}

// Attached reports whether a surface is bound.
func (s *Scene) Attached() bool { return s.target != nil }

// Start enables rendering on Tick.
func (s *Scene) Start() { s.running.Store(true) }

// Stop disables rendering on Tick.
func (s *Scene) Stop() { s.running.Store(false) }

// Running reports whether the scene renders on Tick.
func (s *Scene) Running() bool { return s.running.Load() }

// Tick advances the orbit damping and renders one frame. A stopped scene
// does nothing.
func (s *Scene) Tick() error {
	if !s.Running() {
		return nil
	}
	if s.target == nil {
		return &RenderSurfaceError{Scene: s.name, Err: ErrNoSurface}
	}
	s.orbit.Update()
	s.orbit.Apply(&s.gl.Camera)
	if s.gl.Camera.Type == quarkgl.CameraOrtho {
		// Keep the framing close to the perspective view at this radius.
		s.gl.Camera.OrthoSize = s.orbit.Radius * 0.55
	}
	s.renderer.Render(s.target, s.gl)
	return nil
}
