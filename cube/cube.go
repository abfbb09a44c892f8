// Package cube provides the fixed cube geometry shown in every scene.
package cube

import (
	"errors"
	"fmt"
	"math"

	"cubeviz/xform"
)

const (
	// NumPoints is the number of cube corners.
	NumPoints = 8
	// NumEdges is the number of cube edges.
	NumEdges = 12
)

var (
	ErrEdgeLength  = errors.New("edge length must be positive and finite")
	ErrVertexCount = errors.New("cube must have 8 vertices")
	ErrEdgeCount   = errors.New("cube must have 12 edges")
	ErrEdgeIndex   = errors.New("edge index out of range")
)

// Edge is a pair of indices into Geometry.Points.
type Edge [2]int

// edges lists the bottom face, the top face, then the verticals.
var edges = [NumEdges]Edge{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// faces lists two triangles per face, counter-clockwise seen from outside
// the untransformed cube.
var faces = [NumEdges][3]int{
	{0, 3, 2}, {0, 2, 1}, // z = 0
	{4, 5, 6}, {4, 6, 7}, // z = p
	{0, 1, 5}, {0, 5, 4}, // y = 0
	{3, 7, 6}, {3, 6, 2}, // y = p
	{0, 4, 7}, {0, 7, 3}, // x = 0
	{1, 2, 6}, {1, 6, 5}, // x = p
}

// Geometry holds cube corners and the edges connecting them.
type Geometry struct {
	Points []xform.Vec3
	Edges  []Edge
}

// New returns a fresh cube with edge length p and one corner at the origin.
func New(p float64) (Geometry, error) {
	if !(p > 0) || math.IsInf(p, 0) {
		return Geometry{}, fmt.Errorf("cube: %g: %w", p, ErrEdgeLength)
	}
	g := Geometry{
		Points: []xform.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: p, Y: 0, Z: 0},
			{X: p, Y: p, Z: 0},
			{X: 0, Y: p, Z: 0},
			{X: 0, Y: 0, Z: p},
			{X: p, Y: 0, Z: p},
			{X: p, Y: p, Z: p},
			{X: 0, Y: p, Z: p},
		},
		Edges: append([]Edge(nil), edges[:]...),
	}
	return g, nil
}

// Unit returns a fresh cube with unit edge length.
func Unit() Geometry {
	g, _ := New(1)
	return g
}

// Triangles returns the twelve triangles covering the cube faces as index
// triples into Points.
func Triangles() [][3]int {
	return append([][3]int(nil), faces[:]...)
}

// Validate checks the vertex and edge invariants.
func (g Geometry) Validate() error {
	if len(g.Points) != NumPoints {
		return fmt.Errorf("cube: %d vertices: %w", len(g.Points), ErrVertexCount)
	}
	if len(g.Edges) != NumEdges {
		return fmt.Errorf("cube: %d edges: %w", len(g.Edges), ErrEdgeCount)
	}
	for i, e := range g.Edges {
		if e[0] < 0 || e[1] < 0 || e[0] >= len(g.Points) || e[1] >= len(g.Points) || e[0] == e[1] {
			return fmt.Errorf("cube: edge %d %v: %w", i, e, ErrEdgeIndex)
		}
	}
	return nil
}

// Clone returns a deep copy of g.
func (g Geometry) Clone() Geometry {
	return Geometry{
		Points: append([]xform.Vec3(nil), g.Points...),
		Edges:  append([]Edge(nil), g.Edges...),
	}
}

// Transform applies m to every point in place.
func (g Geometry) Transform(m xform.Mat4) {
	m.ApplyAll(g.Points)
}
