// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/driftline/veldt/pkg/math"
)

// pitchLimit keeps the pitch a hair under straight up/down so the view
// direction never becomes parallel to the up vector.
const pitchLimit = float32(gomath.Pi/2) - 0.0001

// FlyCamera is a free-flight camera driven by mouse look and WASD movement.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32 // radians, 0 looks along +X
	Pitch    float32 // radians, positive looks up

	MoveSpeed   float32 // world units per second
	Sensitivity float32 // radians per mouse pixel
}

// NewFlyCamera creates a fly camera at the given position looking along +X.
func NewFlyCamera(position math.Vec3) *FlyCamera {
	return &FlyCamera{
		Position:    position,
		MoveSpeed:   20,
		Sensitivity: 0.002,
	}
}

// LookDir returns the unit view direction from yaw and pitch.
func (c *FlyCamera) LookDir() math.Vec3 {
	cosPitch := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: cosPitch * float32(gomath.Cos(float64(c.Yaw))),
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: cosPitch * float32(gomath.Sin(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	target := c.Position.Add(c.LookDir())
	return math.LookAt(c.Position, target, math.Vec3{Y: 1})
}

// HandleMouse updates yaw and pitch from relative mouse motion in pixels.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity

	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// Move translates the camera. Forward and right move on the horizontal
// plane regardless of pitch; up moves along world Y.
func (c *FlyCamera) Move(forward, right, up, dt float32) {
	sinYaw := float32(gomath.Sin(float64(c.Yaw)))
	cosYaw := float32(gomath.Cos(float64(c.Yaw)))

	fwd := math.Vec3{X: cosYaw, Z: sinYaw}
	rgt := math.Vec3{X: -sinYaw, Z: cosYaw}

	step := c.MoveSpeed * dt
	c.Position = c.Position.
		Add(fwd.Scale(forward * step)).
		Add(rgt.Scale(right * step)).
		Add(math.Vec3{Y: up * step})
}

// LookAt points the camera at a world-space target.
func (c *FlyCamera) LookAt(target math.Vec3) {
	d := target.Sub(c.Position)
	horiz := float32(gomath.Sqrt(float64(d.X*d.X + d.Z*d.Z)))

	c.Yaw = float32(gomath.Atan2(float64(d.Z), float64(d.X)))
	c.Pitch = float32(gomath.Atan2(float64(d.Y), float64(horiz)))
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// OrbitCamera orbits around a center point. The workbench viewport uses it
// so the terrain stays framed while parameters change.
type OrbitCamera struct {
	Center math.Vec3

	Distance  float32 // distance from center
	RotationX float32 // pitch (vertical angle, radians)
	RotationY float32 // yaw (horizontal angle, radians)

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        400.0,
		RotationX:       0.6,
		RotationY:       0.0,
		MinDistance:     20.0,
		MaxDistance:     8000.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosPitch := float32(gomath.Cos(float64(c.RotationX)))
	offset := math.Vec3{
		X: c.Distance * cosPitch * float32(gomath.Sin(float64(c.RotationY))),
		Y: c.Distance * float32(gomath.Sin(float64(c.RotationX))),
		Z: c.Distance * cosPitch * float32(gomath.Cos(float64(c.RotationY))),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point on the camera's horizontal axes.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	// Pan speed scales with distance for a consistent feel.
	speed := c.Distance * 0.001

	sinYaw := float32(gomath.Sin(float64(c.RotationY)))
	cosYaw := float32(gomath.Cos(float64(c.RotationY)))

	right := math.Vec3{X: cosYaw, Z: -sinYaw}
	fwd := math.Vec3{X: -sinYaw, Z: -cosYaw}

	c.Center = c.Center.
		Add(right.Scale(-deltaX * speed)).
		Add(fwd.Scale(-deltaY * speed))
}

// FitToBounds frames the given bounding box.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min)
	maxSize := size.X
	if size.Z > maxSize {
		maxSize = size.Z
	}

	c.Distance = maxSize * 0.6
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}

	c.RotationX = 0.6 // look down at ~35 degrees
	c.RotationY = 0.0
}
