// Package xform builds and composes labeled affine transforms.
//
// Matrices are 4x4, column-major (m[col*4+row]) and act on column vectors,
// so a composed matrix l·r applies r to a point first and l last.
package xform

import (
	"errors"
	"math"
)

var (
	// ErrDegenerate reports a step parameter that would produce a
	// non-invertible or non-finite transform.
	ErrDegenerate = errors.New("degenerate transform")
	// ErrSingular reports a matrix with no inverse.
	ErrSingular = errors.New("singular matrix")
	// ErrAxis reports an unknown axis.
	ErrAxis = errors.New("unknown axis")
)

// singularEps bounds |det| below which a matrix is treated as singular.
const singularEps = 1e-12

// Vec3 is a point in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mat4 is a column-major 4x4 matrix of float64.
type Mat4 [16]float64

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row, col.
func (m Mat4) At(row, col int) float64 { return m[col*4+row] }

// Mul returns m · o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				m[0*4+row]*o[col*4+0] +
					m[1*4+row]*o[col*4+1] +
					m[2*4+row]*o[col*4+2] +
					m[3*4+row]*o[col*4+3]
		}
	}
	return out
}

// Apply transforms the point v (w = 1).
func (m Mat4) Apply(v Vec3) Vec3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 1 && w != 0 {
		x, y, z = x/w, y/w, z/w
	}
	return Vec3{X: x, Y: y, Z: z}
}

// ApplyAll transforms pts in place.
func (m Mat4) ApplyAll(pts []Vec3) {
	for i := range pts {
		pts[i] = m.Apply(pts[i])
	}
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// Det returns the determinant of m.
func (m Mat4) Det() float64 {
	// LU decomposition with partial pivoting on a row-major copy.
	var a [4][4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			a[row][col] = m.At(row, col)
		}
	}
	sign := 1.0
	for k := 0; k < 4; k++ {
		pivot := k
		maxAbs := math.Abs(a[k][k])
		for i := k + 1; i < 4; i++ {
			if v := math.Abs(a[i][k]); v > maxAbs {
				maxAbs = v
				pivot = i
			}
		}
		if maxAbs == 0 {
			return 0
		}
		if pivot != k {
			a[k], a[pivot] = a[pivot], a[k]
			sign = -sign
		}
		for i := k + 1; i < 4; i++ {
			f := a[i][k] / a[k][k]
			for j := k + 1; j < 4; j++ {
				a[i][j] -= f * a[k][j]
			}
		}
	}
	det := sign
	for i := 0; i < 4; i++ {
		det *= a[i][i]
	}
	return det
}

// Invert returns the inverse of m or ErrSingular.
func (m Mat4) Invert() (Mat4, error) {
	// Augment [A | I] and Gauss-Jordan.
	var aug [4][8]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			aug[row][col] = m.At(row, col)
		}
		aug[row][4+row] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		maxAbs := math.Abs(aug[col][col])
		for r := col + 1; r < 4; r++ {
			if v := math.Abs(aug[r][col]); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs < singularEps {
			return Mat4{}, ErrSingular
		}
		if pivot != col {
			aug[col], aug[pivot] = aug[pivot], aug[col]
		}

		invP := 1 / aug[col][col]
		for j := range aug[col] {
			aug[col][j] *= invP
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := aug[r][col]
			if f == 0 {
				continue
			}
			for j := range aug[r] {
				aug[r][j] -= f * aug[col][j]
			}
		}
	}

	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[col*4+row] = aug[row][4+col]
		}
	}
	return out, nil
}

// Singular reports whether m has no usable inverse.
func (m Mat4) Singular() bool {
	d := m.Det()
	return math.IsNaN(d) || math.Abs(d) < singularEps
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
