// Package picking converts screen positions into world-space rays and
// intersects them with the terrain height field.
package picking

import (
	gomath "math"

	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/terrain"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coordinates, Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1.0})
	far := invViewProj.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1.0})

	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalize(),
	}
}

// IntersectPlaneY intersects the ray with a horizontal plane at the given Y
// level. Returns the intersection point (X, Z) and whether it is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // behind the origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectBounds clips the ray against an axis-aligned box with the slab
// method. On a hit it returns the entry and exit parameters; a ray starting
// inside the box gets tNear = 0.
func (r Ray) IntersectBounds(b terrain.Bounds) (tNear, tFar float32, hit bool) {
	tMin := float32(-gomath.MaxFloat32)
	tMax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	bmax := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			t1 := (bmin[axis] - origin[axis]) / dir[axis]
			t2 := (bmax[axis] - origin[axis]) / dir[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tMin {
				tMin = t1
			}
			if t2 < tMax {
				tMax = t2
			}
		} else if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
			return 0, 0, false
		}
	}

	if tMax < tMin || tMax < 0 {
		return 0, 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	return tMin, tMax, true
}

// marchStep is the coarse step of the height-field march in world units,
// well under the shortest surface wavelength the generator produces.
const marchStep = 1.0

// bisectIterations refines the hit to sub-millimeter parameter precision.
const bisectIterations = 24

// HeightFieldHit marches the ray against the generator's height field
// inside the given world bounds and returns the surface point it first
// passes below. The returned point sits exactly on the height field.
func HeightFieldHit(g *terrain.Generator, r Ray, bounds terrain.Bounds) (math.Vec3, bool) {
	tNear, tFar, ok := r.IntersectBounds(bounds)
	if !ok {
		return math.Vec3{}, false
	}

	below := func(t float32) bool {
		p := r.At(t)
		return p.Y <= g.HeightAt(p.X, p.Z)
	}

	if below(tNear) {
		return surfacePoint(g, r, tNear), true
	}

	prev := tNear
	for t := tNear + marchStep; t <= tFar; t += marchStep {
		if below(t) {
			return surfacePoint(g, r, bisect(below, prev, t)), true
		}
		prev = t
	}
	if prev < tFar && below(tFar) {
		return surfacePoint(g, r, bisect(below, prev, tFar)), true
	}

	return math.Vec3{}, false
}

// bisect narrows [lo, hi] down to the crossing, where below(lo) is false and
// below(hi) is true.
func bisect(below func(float32) bool, lo, hi float32) float32 {
	for i := 0; i < bisectIterations; i++ {
		mid := (lo + hi) / 2
		if below(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

func surfacePoint(g *terrain.Generator, r Ray, t float32) math.Vec3 {
	p := r.At(t)
	p.Y = g.HeightAt(p.X, p.Z)
	return p
}
