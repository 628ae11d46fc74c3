package shading

import (
	gomath "math"

	"github.com/driftline/veldt/pkg/math"
)

// DebugView selects what the debug render mode visualizes.
type DebugView int

const (
	// DebugOff renders the textured, lit surface.
	DebugOff DebugView = iota
	// DebugNormals colors the surface by its world-space normal.
	DebugNormals
	// DebugTiles colors each tile with a hashed solid color.
	DebugTiles
)

// String returns the view name shown in the workbench.
func (v DebugView) String() string {
	switch v {
	case DebugOff:
		return "off"
	case DebugNormals:
		return "normals"
	case DebugTiles:
		return "tiles"
	}
	return "unknown"
}

// NormalColor maps a unit normal into RGB for the debug view.
func NormalColor(n math.Vec3) math.Vec3 {
	return n.Scale(0.5).Add(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
}

// HashColor returns a pseudo-random saturated color for an integer pair,
// used to tell tiles apart in the debug view. The sin-based hash is fine
// here: the color only has to look distinct, not reproduce across
// platforms.
func HashColor(x, z int) math.Vec3 {
	h := gomath.Sin(float64(x)*12.9898+float64(z)*78.233) * 43758.5453
	h -= gomath.Floor(h)
	return hslToRGB(float32(h), 0.7, 0.5)
}

// hslToRGB converts hue/saturation/lightness (each in [0, 1]) to RGB.
func hslToRGB(h, s, l float32) math.Vec3 {
	if s == 0 {
		return math.Vec3{X: l, Y: l, Z: l}
	}

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return math.Vec3{
		X: hueChannel(p, q, h+1.0/3.0),
		Y: hueChannel(p, q, h),
		Z: hueChannel(p, q, h-1.0/3.0),
	}
}

func hueChannel(p, q, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
