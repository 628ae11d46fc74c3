// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	gomath "math"

	"github.com/driftline/veldt/pkg/math"
)

// Sun is a directional light described by its sky position.
type Sun struct {
	Longitude float32 // rotation around Y axis, degrees
	Latitude  float32 // elevation from the horizon, degrees
	Ambient   float32
}

// NewSun creates a sun at the given sky angles.
func NewSun(longitude, latitude, ambient float32) *Sun {
	return &Sun{
		Longitude: longitude,
		Latitude:  latitude,
		Ambient:   ambient,
	}
}

// Direction returns the unit vector pointing towards the sun.
func (s *Sun) Direction() math.Vec3 {
	return SunDirection(s.Longitude, s.Latitude)
}

// SunDirection converts longitude/latitude sky angles to a light direction.
// Longitude is rotation around the Y axis (0-360), latitude is elevation
// from the horizon (0-90). Returns the normalized direction towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}
