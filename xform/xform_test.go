package xform

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const tol = 1e-6

var approx = cmpopts.EquateApprox(0, tol)

func must(tr Transform, err error) Transform {
	if err != nil {
		panic(err)
	}
	return tr
}

func corners() []Vec3 {
	return []Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
}

func TestIdentityLeavesPoints(t *testing.T) {
	m, err := Sequence{Identity()}.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, p := range append(corners(), V3(-3.25, 7, 0.125)) {
		if got := m.Apply(p); got != p {
			t.Fatalf("identity moved %v to %v", p, got)
		}
	}
}

func TestScalePoint(t *testing.T) {
	s := must(Scale(1.5, 0.5, 2))
	m, err := Compose(s)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := m.Apply(V3(1, 1, 1))
	if diff := cmp.Diff(V3(1.5, 0.5, 2), got, approx); diff != "" {
		t.Fatalf("scale (1,1,1) mismatch (-want +got):\n%s", diff)
	}
}

func TestLabels(t *testing.T) {
	rx := must(Reflect(AxisX))
	ry := must(Reflect(AxisY))
	rot := must(RotateY(10))
	tr := must(Translate(1, 2, 3))
	sc := must(Scale(1, 2, 3))
	for _, c := range []struct {
		tr   Transform
		want string
	}{
		{Identity(), "Identity"},
		{sc, "Scale"},
		{rot, "Rotation Y"},
		{rx, "Reflection X"},
		{ry, "Reflection Y"},
		{tr, "Translation"},
	} {
		if c.tr.Label != c.want {
			t.Fatalf("label: got %q, want %q", c.tr.Label, c.want)
		}
	}
}

func TestComposeInverseIsIdentity(t *testing.T) {
	steps := Sequence{
		must(Translate(-0.5, -0.5, -0.5)),
		must(Reflect(AxisX)),
		must(RotateY(10)),
		must(RotateX(-35)),
		must(RotateZ(120)),
		must(Scale(1.5, 0.5, 2)),
	}
	for _, s := range steps {
		inv, err := s.Inverse()
		if err != nil {
			t.Fatalf("%s: Inverse: %v", s.Label, err)
		}
		if diff := cmp.Diff(Mat4Identity(), s.M.Mul(inv.M), approx); diff != "" {
			t.Fatalf("%s: m·m⁻¹ (-want +got):\n%s", s.Label, diff)
		}
	}

	m, err := steps.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if diff := cmp.Diff(Mat4Identity(), m.M.Mul(inv.M), approx); diff != "" {
		t.Fatalf("m·m⁻¹ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Mat4Identity(), inv.M.Mul(m.M), approx); diff != "" {
		t.Fatalf("m⁻¹·m (-want +got):\n%s", diff)
	}
}

func TestComposeOrderMatters(t *testing.T) {
	rot := must(RotateY(10))
	sc := must(Scale(1.5, 0.5, 2))

	a, err := Compose(rot, sc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compose(sc, rot)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(a.M, b.M, approx) {
		t.Fatalf("[Rotation, Scale] and [Scale, Rotation] should differ\n%v", a.M)
	}

	rx := must(Reflect(AxisX))
	c, _ := Compose(rx, rot)
	d, _ := Compose(rot, rx)
	if cmp.Equal(c.M, d.M, approx) {
		t.Fatal("reflection and rotation should not commute")
	}
}

func TestComposeAssociative(t *testing.T) {
	a := must(Translate(1, -2, 0.5))
	b := must(RotateY(33))
	c := must(Scale(2, 3, -1))

	ab, _ := Compose(a, b)
	bc, _ := Compose(b, c)
	left, _ := Compose(ab, c)
	right, _ := Compose(a, bc)
	flat, _ := Compose(a, b, c)
	if diff := cmp.Diff(left.M, right.M, approx); diff != "" {
		t.Fatalf("(ab)c != a(bc):\n%s", diff)
	}
	if diff := cmp.Diff(flat.M, left.M, approx); diff != "" {
		t.Fatalf("abc != (ab)c:\n%s", diff)
	}
}

func TestComposeAppliesInnermostFirst(t *testing.T) {
	tr := must(Translate(1, 0, 0))
	sc := must(Scale(2, 2, 2))

	// Scale first, then translate.
	m, _ := Compose(tr, sc)
	if diff := cmp.Diff(V3(3, 2, 2), m.Apply(V3(1, 1, 1)), approx); diff != "" {
		t.Fatalf("T·S (-want +got):\n%s", diff)
	}
	// Translate first, then scale.
	m, _ = Compose(sc, tr)
	if diff := cmp.Diff(V3(4, 2, 2), m.Apply(V3(1, 1, 1)), approx); diff != "" {
		t.Fatalf("S·T (-want +got):\n%s", diff)
	}
}

func TestCanonicalScenario(t *testing.T) {
	steps := Sequence{
		must(Translate(-0.5, -0.5, -0.5)),
		must(Reflect(AxisX)),
		must(RotateY(10)),
		must(Scale(1.5, 0.5, 2)),
	}
	m, err := steps.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if m.Label != "Translation · Reflection X · Rotation Y · Scale" {
		t.Fatalf("label: got %q", m.Label)
	}

	pts := corners()
	m.M.ApplyAll(pts)
	want := []Vec3{
		{-0.5000000000, -0.5000000000, -0.5000000000},
		{-1.9772116295, -0.5000000000, -0.7604722665},
		{-1.9772116295, 0.0000000000, -0.7604722665},
		{-0.5000000000, 0.0000000000, -0.5000000000},
		{-0.8472963553, -0.5000000000, 1.4696155060},
		{-2.3245079849, -0.5000000000, 1.2091432395},
		{-2.3245079849, 0.0000000000, 1.2091432395},
		{-0.8472963553, 0.0000000000, 1.4696155060},
	}
	if diff := cmp.Diff(want, pts, approx); diff != "" {
		t.Fatalf("canonical corners (-want +got):\n%s", diff)
	}

	// Same inputs, same bits.
	again, _ := steps.Compose()
	if again.M != m.M {
		t.Fatal("composition is not deterministic")
	}
}

func TestComposeEmpty(t *testing.T) {
	m, err := Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if m.M != Mat4Identity() || m.Label != "Identity" {
		t.Fatalf("empty compose: got %+v", m)
	}
}

func TestDisplayReversesSteps(t *testing.T) {
	steps := Sequence{
		must(Translate(-0.5, -0.5, -0.5)),
		must(Reflect(AxisX)),
		must(RotateY(10)),
		must(Scale(1.5, 0.5, 2)),
	}
	d := steps.Display()
	if len(d) != 4 {
		t.Fatalf("len: got %d, want 4", len(d))
	}
	if d[0].Label != steps[3].Label || d[3].Label != steps[0].Label {
		t.Fatalf("display order: got %q .. %q", d[0].Label, d[3].Label)
	}
	if steps[0].Label != "Translation" {
		t.Fatal("Display modified its receiver")
	}

	text := steps.Format()
	if !strings.HasPrefix(text, "1. Scale\n") {
		t.Fatalf("step 1 should be the last input step:\n%s", text)
	}
	if !strings.Contains(text, "\n4. Translation\n") {
		t.Fatalf("step 4 should be the first input step:\n%s", text)
	}
}

func TestFormatMatrix(t *testing.T) {
	rot := must(RotateY(10))
	want := strings.Join([]string{
		"    0.98  0.00  0.17  0.00",
		"    0.00  1.00  0.00  0.00",
		"   -0.17  0.00  0.98  0.00",
		"    0.00  0.00  0.00  1.00",
	}, "\n")
	if got := FormatMatrix(rot.M); got != want {
		t.Fatalf("FormatMatrix:\ngot\n%s\nwant\n%s", got, want)
	}

	tr := must(Translate(-0.5, 0, 2))
	if got := FormatMatrix(tr.M); !strings.HasPrefix(got, "    1.00  0.00  0.00 -0.50\n") {
		t.Fatalf("translation column should print in the last column:\n%s", got)
	}
}

func TestFormatNegativeZero(t *testing.T) {
	m := Mat4Identity()
	m[4] = math.Copysign(0, -1)
	if got := FormatMatrix(m); strings.Contains(got, "-0.00") {
		t.Fatalf("negative zero printed:\n%s", got)
	}
}

func TestSequenceFormat(t *testing.T) {
	steps := Sequence{
		must(Reflect(AxisX)),
		must(Scale(1.5, 0.5, 2)),
	}
	want := strings.Join([]string{
		"1. Scale",
		"    1.50  0.00  0.00  0.00",
		"    0.00  0.50  0.00  0.00",
		"    0.00  0.00  2.00  0.00",
		"    0.00  0.00  0.00  1.00",
		"",
		"2. Reflection X",
		"   -1.00  0.00  0.00  0.00",
		"    0.00  1.00  0.00  0.00",
		"    0.00  0.00  1.00  0.00",
		"    0.00  0.00  0.00  1.00",
	}, "\n")
	if got := steps.Format(); got != want {
		t.Fatalf("Format:\ngot\n%s\nwant\n%s", got, want)
	}
}

func TestRejectDegenerate(t *testing.T) {
	if _, err := Scale(0, 1, 1); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("Scale(0,1,1): got %v, want ErrDegenerate", err)
	}
	if _, err := Scale(1, math.NaN(), 1); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("Scale(NaN): got %v, want ErrDegenerate", err)
	}
	if _, err := Scale(-1, 1, 1); err != nil {
		t.Fatalf("negative scale should be accepted: %v", err)
	}
	if _, err := RotateY(math.Inf(1)); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("RotateY(Inf): got %v, want ErrDegenerate", err)
	}
	if _, err := Translate(0, math.Inf(-1), 0); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("Translate(-Inf): got %v, want ErrDegenerate", err)
	}
	if _, err := Reflect(Axis(7)); !errors.Is(err, ErrAxis) {
		t.Fatalf("Reflect(7): got %v, want ErrAxis", err)
	}
}

func TestSingular(t *testing.T) {
	flat := Transform{Label: "Flatten", M: Mat4Identity()}
	flat.M[5] = 0
	if _, err := flat.M.Invert(); !errors.Is(err, ErrSingular) {
		t.Fatalf("Invert: got %v, want ErrSingular", err)
	}
	if _, err := Compose(Identity(), flat); !errors.Is(err, ErrSingular) {
		t.Fatalf("Compose: got %v, want ErrSingular", err)
	}
}

func TestDet(t *testing.T) {
	sc := must(Scale(1.5, 0.5, 2))
	if d := sc.M.Det(); math.Abs(d-1.5) > tol {
		t.Fatalf("det scale: got %v, want 1.5", d)
	}
	rx := must(Reflect(AxisZ))
	if d := rx.M.Det(); math.Abs(d+1) > tol {
		t.Fatalf("det reflection: got %v, want -1", d)
	}
	rot := must(RotateY(73))
	if d := rot.M.Det(); math.Abs(d-1) > tol {
		t.Fatalf("det rotation: got %v, want 1", d)
	}
	if m := rot.M.Mul(rot.M.Transpose()); !cmp.Equal(m, Mat4Identity(), approx) {
		t.Fatalf("rotation should be orthonormal: %v", m)
	}
}
