package quarkgl

import "github.com/chewxy/math32"

// maxPitch keeps the orbit away from the poles where the view basis flips.
const maxPitch = math32.Pi/2 - 0.01

// OrbitController provides orbit/zoom interactions for a camera.
//
// Rotate and Zoom only accumulate input. Update consumes a Damping fraction
// of the pending input per tick, so motion eases out over several ticks;
// with Damping 0 or 1 input is applied in full on the next Update.
// It does not depend on any input system.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	Damping Scalar

	dYaw    Scalar
	dPitch  Scalar
	dRadius Scalar

	home struct {
		target             Vec3
		yaw, pitch, radius Scalar
	}
}

// SaveHome records the current pose for Reset.
func (c *OrbitController) SaveHome() {
	c.home.target = c.Target
	c.home.yaw = c.Yaw
	c.home.pitch = c.Pitch
	c.home.radius = c.Radius
}

// Reset returns to the saved pose and drops pending input.
func (c *OrbitController) Reset() {
	c.Target = c.home.target
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
	c.Radius = c.home.radius
	c.dYaw, c.dPitch, c.dRadius = 0, 0, 0
}

// Rotate queues a yaw/pitch change in radians.
func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.dYaw += deltaYaw
	c.dPitch += deltaPitch
}

// Zoom queues a radius change.
func (c *OrbitController) Zoom(delta Scalar) {
	c.dRadius += delta
}

// Pending reports whether queued input remains.
func (c *OrbitController) Pending() bool {
	const eps = 1e-5
	return math32.Abs(c.dYaw) > eps || math32.Abs(c.dPitch) > eps || math32.Abs(c.dRadius) > eps
}

// Update applies one tick of queued input and reports whether the pose
// changed.
func (c *OrbitController) Update() bool {
	if !c.Pending() {
		c.dYaw, c.dPitch, c.dRadius = 0, 0, 0
		return false
	}
	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	yaw, pitch, radius := c.dYaw*f, c.dPitch*f, c.dRadius*f
	c.dYaw -= yaw
	c.dPitch -= pitch
	c.dRadius -= radius

	c.Yaw += yaw
	c.Pitch += pitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	c.Radius = c.clampRadius(c.Radius + radius)
	return true
}

func (c *OrbitController) clampRadius(r Scalar) Scalar {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}

// Apply positions cam on the orbit sphere looking at Target.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = Scalar(3)
	}
	r = c.clampRadius(r)

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(-c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}
