// Package shading implements the CPU reference of the terrain surface
// shader: sRGB conversion, triplanar texture projection, slope-based layer
// selection, normal mapping and a single directional light. The GLSL
// fragment shader mirrors this package constant for constant, so baked
// images and the live viewport agree.
package shading

import gomath "math"

// SRGBToLinear converts one sRGB-encoded channel in [0, 1] to linear light.
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(gomath.Pow((float64(c)+0.055)/1.055, 2.4))
}

// LinearToSRGB converts one linear channel in [0, 1] to sRGB encoding.
func LinearToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return float32(1.055*gomath.Pow(float64(c), 1.0/2.4) - 0.055)
}
