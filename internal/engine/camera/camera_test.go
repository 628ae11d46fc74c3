package camera

import (
	gomath "math"
	"testing"

	"github.com/driftline/veldt/pkg/math"
)

func TestFlyCameraPitchClamp(t *testing.T) {
	c := NewFlyCamera(math.Vec3{})

	// Drag the mouse far enough down to pin the pitch at the limit.
	c.HandleMouse(0, -100000)
	if c.Pitch > pitchLimit {
		t.Errorf("pitch %f exceeds limit %f", c.Pitch, pitchLimit)
	}
	if c.Pitch < pitchLimit-0.001 {
		t.Errorf("pitch %f should be pinned near limit %f", c.Pitch, pitchLimit)
	}

	c.HandleMouse(0, 200000)
	if c.Pitch < -pitchLimit {
		t.Errorf("pitch %f below -limit %f", c.Pitch, -pitchLimit)
	}
}

func TestFlyCameraLookDirUnit(t *testing.T) {
	c := NewFlyCamera(math.Vec3{})

	for _, pose := range [][2]float32{{0, 0}, {1.2, 0.5}, {-2.8, -1.0}, {3.1, 1.5}} {
		c.Yaw = pose[0]
		c.Pitch = pose[1]
		if got := c.LookDir().Length(); gomath.Abs(float64(got-1)) > 1e-5 {
			t.Errorf("yaw=%f pitch=%f: |look| = %f, want 1", pose[0], pose[1], got)
		}
	}
}

func TestFlyCameraMoveIgnoresPitch(t *testing.T) {
	c := NewFlyCamera(math.Vec3{})
	c.Pitch = 1.0
	c.MoveSpeed = 10

	c.Move(1, 0, 0, 1)

	// Forward movement stays on the horizontal plane.
	if c.Position.Y != 0 {
		t.Errorf("forward move changed Y: %f", c.Position.Y)
	}
	if got := c.Position.Length(); gomath.Abs(float64(got-10)) > 1e-4 {
		t.Errorf("moved %f units, want 10", got)
	}
}

func TestFlyCameraLookAt(t *testing.T) {
	c := NewFlyCamera(math.Vec3{})
	c.LookAt(math.Vec3{X: 10, Y: 10, Z: 0})

	if gomath.Abs(float64(c.Yaw)) > 1e-5 {
		t.Errorf("yaw = %f, want 0", c.Yaw)
	}
	wantPitch := float32(gomath.Pi / 4)
	if gomath.Abs(float64(c.Pitch-wantPitch)) > 1e-5 {
		t.Errorf("pitch = %f, want %f", c.Pitch, wantPitch)
	}
}

func TestFlyCameraViewMatrix(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 5})
	c.Yaw = 0 // looking along +X

	view := c.ViewMatrix()

	// A point ahead of the camera lands in front of it (negative view Z).
	ahead := view.TransformPoint(math.Vec3{X: 15})
	if ahead.Z >= 0 {
		t.Errorf("point ahead has view z %f, want negative", ahead.Z)
	}

	// The camera position maps to the view-space origin.
	origin := view.TransformPoint(math.Vec3{X: 5})
	if origin.Length() > 1e-4 {
		t.Errorf("camera position maps to %v, want origin", origin)
	}
}

func TestOrbitCameraZoomClamp(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleZoom(1000)
	if c.Distance < c.MinDistance {
		t.Errorf("distance %f below min %f", c.Distance, c.MinDistance)
	}

	c.HandleZoom(-1e9)
	if c.Distance > c.MaxDistance {
		t.Errorf("distance %f above max %f", c.Distance, c.MaxDistance)
	}
}

func TestOrbitCameraDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.RotationX > c.MaxPitch {
		t.Errorf("pitch %f above max %f", c.RotationX, c.MaxPitch)
	}

	c.HandleDrag(0, -1e6)
	if c.RotationX < c.MinPitch {
		t.Errorf("pitch %f below min %f", c.RotationX, c.MinPitch)
	}
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{}, math.Vec3{X: 100, Y: 50, Z: 200})

	want := math.Vec3{X: 50, Y: 25, Z: 100}
	if c.Center.Distance(want) > 1e-4 {
		t.Errorf("center = %v, want %v", c.Center, want)
	}
	if gomath.Abs(float64(c.Distance-120)) > 1e-4 {
		t.Errorf("distance = %f, want 120", c.Distance)
	}
}

func TestOrbitCameraPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 10, Y: 5, Z: -3}
	c.Distance = 250

	got := c.Position().Distance(c.Center)
	if gomath.Abs(float64(got-250)) > 1e-3 {
		t.Errorf("|position - center| = %f, want 250", got)
	}
}
