package picking

import (
	gomath "math"
	"testing"

	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/terrain"
)

func TestScreenToRayCenterLooksAlongView(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 100, Z: 0}
	target := math.Vec3{X: 100, Y: 0, Z: 100}

	view := math.LookAt(eye, target, math.Vec3{Y: 1})
	proj := math.Perspective(0.785398, 1280.0/720.0, 1.0, 10000.0)
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(640, 360, 1280, 720, inv)

	want := target.Sub(eye).Normalize()
	if dot := ray.Direction.Dot(want); dot < 0.999 {
		t.Errorf("center ray direction = %+v, want along %+v (dot %v)", ray.Direction, want, dot)
	}
	if d := ray.Origin.Distance(eye); d > 2 {
		t.Errorf("ray origin %+v too far from eye %+v: %v", ray.Origin, eye, d)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	down := Ray{Origin: math.Vec3{X: 5, Y: 10, Z: -3}, Direction: math.Vec3{Y: -1}}
	x, z, ok := down.IntersectPlaneY(2)
	if !ok {
		t.Fatal("downward ray should hit the plane")
	}
	if x != 5 || z != -3 {
		t.Errorf("hit = (%v, %v), want (5, -3)", x, z)
	}

	parallel := Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{X: 1}}
	if _, _, ok := parallel.IntersectPlaneY(2); ok {
		t.Error("parallel ray should miss")
	}

	away := Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{Y: 1}}
	if _, _, ok := away.IntersectPlaneY(2); ok {
		t.Error("ray pointing away should miss")
	}
}

func TestIntersectBounds(t *testing.T) {
	box := terrain.Bounds{
		Min: math.Vec3{X: 0, Y: 0, Z: 0},
		Max: math.Vec3{X: 10, Y: 10, Z: 10},
	}

	through := Ray{Origin: math.Vec3{X: -5, Y: 5, Z: 5}, Direction: math.Vec3{X: 1}}
	tNear, tFar, ok := through.IntersectBounds(box)
	if !ok {
		t.Fatal("ray through the box should hit")
	}
	if tNear != 5 || tFar != 15 {
		t.Errorf("interval = [%v, %v], want [5, 15]", tNear, tFar)
	}

	inside := Ray{Origin: math.Vec3{X: 5, Y: 5, Z: 5}, Direction: math.Vec3{X: 1}}
	tNear, tFar, ok = inside.IntersectBounds(box)
	if !ok {
		t.Fatal("ray starting inside should hit")
	}
	if tNear != 0 || tFar != 5 {
		t.Errorf("interval = [%v, %v], want [0, 5]", tNear, tFar)
	}

	above := Ray{Origin: math.Vec3{X: -5, Y: 20, Z: 5}, Direction: math.Vec3{X: 1}}
	if _, _, ok := above.IntersectBounds(box); ok {
		t.Error("ray sliding past the box should miss")
	}

	away := Ray{Origin: math.Vec3{X: -5, Y: 5, Z: 5}, Direction: math.Vec3{X: -1}}
	if _, _, ok := away.IntersectBounds(box); ok {
		t.Error("ray pointing away should miss")
	}
}

func worldBounds(maxHeight float32) terrain.Bounds {
	return terrain.Bounds{
		Min: math.Vec3{X: 0, Y: -1, Z: 0},
		Max: math.Vec3{X: 4080, Y: maxHeight + 1, Z: 4080},
	}
}

func TestHeightFieldHitStraightDown(t *testing.T) {
	g := terrain.NewGenerator(terrain.DefaultParams())
	bounds := worldBounds(50)

	ray := Ray{Origin: math.Vec3{X: 100, Y: 200, Z: 100}, Direction: math.Vec3{Y: -1}}
	hit, ok := HeightFieldHit(g, ray, bounds)
	if !ok {
		t.Fatal("straight-down ray should hit the terrain")
	}
	if hit.X != 100 || hit.Z != 100 {
		t.Errorf("hit at (%v, %v), want (100, 100)", hit.X, hit.Z)
	}
	if want := g.HeightAt(100, 100); hit.Y != want {
		t.Errorf("hit height = %v, want %v", hit.Y, want)
	}
}

func TestHeightFieldHitAboveSurfaceMisses(t *testing.T) {
	g := terrain.NewGenerator(terrain.DefaultParams())
	bounds := worldBounds(50)

	up := Ray{Origin: math.Vec3{X: 100, Y: 200, Z: 100}, Direction: math.Vec3{Y: 1}}
	if _, ok := HeightFieldHit(g, up, bounds); ok {
		t.Error("upward ray should miss")
	}

	// Crosses the bounds but stays above every possible height.
	grazing := Ray{Origin: math.Vec3{X: -10, Y: 50.5, Z: 2000}, Direction: math.Vec3{X: 1}}
	if hit, ok := HeightFieldHit(g, grazing, bounds); ok {
		t.Errorf("ray above the height range should miss, hit %+v", hit)
	}
}

func TestHeightFieldHitAngledRayLandsOnSurface(t *testing.T) {
	g := terrain.NewGenerator(terrain.DefaultParams())
	bounds := worldBounds(50)

	dir := math.Vec3{X: 1, Y: -1, Z: 0}.Normalize()
	ray := Ray{Origin: math.Vec3{X: 100, Y: 120, Z: 100}, Direction: dir}

	hit, ok := HeightFieldHit(g, ray, bounds)
	if !ok {
		t.Fatal("angled ray should hit the terrain")
	}
	if want := g.HeightAt(hit.X, hit.Z); hit.Y != want {
		t.Errorf("hit height = %v, want %v", hit.Y, want)
	}

	// Along this ray y = 120 - (x - 100); the snapped point must stay on it.
	rayY := 120 - (hit.X - 100)
	if diff := gomath.Abs(float64(hit.Y - rayY)); diff > 0.01 {
		t.Errorf("hit drifted %v off the ray", diff)
	}
}
