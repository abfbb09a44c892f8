package xform

import (
	"fmt"
	"math"
	"strings"
)

// Axis names a coordinate axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// Transform pairs a matrix with a human-readable label.
// Values are never modified after construction.
type Transform struct {
	Label string
	M     Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Label: "Identity", M: Mat4Identity()}
}

// Scale returns a non-uniform scale. Zero or non-finite factors are
// rejected; negative factors are allowed.
func Scale(sx, sy, sz float64) (Transform, error) {
	if !finite(sx, sy, sz) || sx == 0 || sy == 0 || sz == 0 {
		return Transform{}, fmt.Errorf("xform: scale (%g, %g, %g): %w", sx, sy, sz, ErrDegenerate)
	}
	m := Mat4Identity()
	m[0] = sx
	m[5] = sy
	m[10] = sz
	return Transform{Label: "Scale", M: m}, nil
}

// RotateX returns a right-handed rotation about X by deg degrees.
func RotateX(deg float64) (Transform, error) {
	s, c, err := sinCos(deg)
	if err != nil {
		return Transform{}, err
	}
	return Transform{Label: "Rotation X", M: Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}}, nil
}

// RotateY returns a right-handed rotation about Y by deg degrees.
func RotateY(deg float64) (Transform, error) {
	s, c, err := sinCos(deg)
	if err != nil {
		return Transform{}, err
	}
	return Transform{Label: "Rotation Y", M: Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}}, nil
}

// RotateZ returns a right-handed rotation about Z by deg degrees.
func RotateZ(deg float64) (Transform, error) {
	s, c, err := sinCos(deg)
	if err != nil {
		return Transform{}, err
	}
	return Transform{Label: "Rotation Z", M: Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}, nil
}

func sinCos(deg float64) (s, c float64, err error) {
	if !finite(deg) {
		return 0, 0, fmt.Errorf("xform: rotation %g°: %w", deg, ErrDegenerate)
	}
	s, c = math.Sincos(deg * math.Pi / 180)
	return s, c, nil
}

// Reflect returns a mirror across the plane orthogonal to axis.
func Reflect(axis Axis) (Transform, error) {
	m := Mat4Identity()
	switch axis {
	case AxisX:
		m[0] = -1
	case AxisY:
		m[5] = -1
	case AxisZ:
		m[10] = -1
	default:
		return Transform{}, fmt.Errorf("xform: reflect %v: %w", axis, ErrAxis)
	}
	return Transform{Label: "Reflection " + axis.String(), M: m}, nil
}

// Translate returns a translation by (dx, dy, dz).
func Translate(dx, dy, dz float64) (Transform, error) {
	if !finite(dx, dy, dz) {
		return Transform{}, fmt.Errorf("xform: translate (%g, %g, %g): %w", dx, dy, dz, ErrDegenerate)
	}
	m := Mat4Identity()
	m[12] = dx
	m[13] = dy
	m[14] = dz
	return Transform{Label: "Translation", M: m}, nil
}

// Inverse returns the inverse transform, labeled "Inverse <label>".
func (t Transform) Inverse() (Transform, error) {
	inv, err := t.M.Invert()
	if err != nil {
		return Transform{}, fmt.Errorf("xform: invert %q: %w", t.Label, err)
	}
	return Transform{Label: "Inverse " + t.Label, M: inv}, nil
}

// Apply transforms a single point.
func (t Transform) Apply(v Vec3) Vec3 { return t.M.Apply(v) }

// Compose returns steps[0] · steps[1] · … · steps[n-1]. The first step is
// the outermost (applied last to a point); the last step is applied first.
// An empty list yields the identity.
func Compose(steps ...Transform) (Transform, error) {
	if len(steps) == 0 {
		return Identity(), nil
	}
	m := steps[0].M
	labels := make([]string, 0, len(steps))
	labels = append(labels, steps[0].Label)
	for _, s := range steps[1:] {
		m = m.Mul(s.M)
		labels = append(labels, s.Label)
	}
	if m.Singular() {
		return Transform{}, fmt.Errorf("xform: compose %s: %w", strings.Join(labels, " · "), ErrSingular)
	}
	return Transform{Label: strings.Join(labels, " · "), M: m}, nil
}

// Sequence is an ordered construction history, outermost step first.
type Sequence []Transform

// Compose reduces s into one cumulative transform.
func (s Sequence) Compose() (Transform, error) { return Compose(s...) }

// Display returns the steps innermost first, the order in which they act
// on a point.
func (s Sequence) Display() Sequence {
	out := make(Sequence, len(s))
	for i, t := range s {
		out[len(s)-1-i] = t
	}
	return out
}

// Clone returns a copy of s.
func (s Sequence) Clone() Sequence {
	return append(Sequence(nil), s...)
}
