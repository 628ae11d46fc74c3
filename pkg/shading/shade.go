package shading

import (
	"github.com/driftline/veldt/pkg/math"
)

// Params control the triplanar shading path.
type Params struct {
	// UVScale maps world units to texture coordinates in each projection.
	UVScale float32
	// SlopeThreshold is the minimum up-component of the normal for a
	// surface to count as flat ground rather than cliff.
	SlopeThreshold float32
	// NormalMapping enables tangent-space normal perturbation from the
	// paired normal-map layers.
	NormalMapping bool
}

// DefaultParams returns the shading parameters the viewer ships with.
func DefaultParams() Params {
	return Params{
		UVScale:        0.1,
		SlopeThreshold: 0.8,
		NormalMapping:  true,
	}
}

// Lighting is one directional light plus a constant ambient term.
type Lighting struct {
	// Direction points from the surface toward the light.
	Direction math.Vec3
	Ambient   float32
}

// SelectLayer picks the albedo layer for a surface orientation: flat ground
// where the normal points up beyond the threshold, cliff everywhere else.
func SelectLayer(normal math.Vec3, threshold float32) int {
	if normal.Y > threshold {
		return LayerFlat
	}
	return LayerCliff
}

// TriplanarWeights returns the blend factors of the three planar
// projections: the absolute normal, normalized to sum to 1. The normal must
// be non-zero.
func TriplanarWeights(normal math.Vec3) math.Vec3 {
	a := normal.Abs()
	sum := a.X + a.Y + a.Z
	return math.Vec3{X: a.X / sum, Y: a.Y / sum, Z: a.Z / sum}
}

// Shade computes the lit surface color at a world-space point and returns
// it in linear light. The position and unit normal come straight from the
// height field; callers writing image files convert with LinearToSRGB.
func Shade(tex TextureArray, p Params, light Lighting, pos, normal math.Vec3) math.Vec3 {
	layer := SelectLayer(normal, p.SlopeThreshold)
	w := TriplanarWeights(normal)

	albedo := triplanarAlbedo(tex, p.UVScale, pos, w, layer)

	n := normal
	if p.NormalMapping {
		n = PerturbNormal(tex, p.UVScale, pos, normal, layer+1)
	}

	diffuse := n.Dot(light.Direction.Normalize())
	if diffuse < 0 {
		diffuse = 0
	}
	return albedo.Scale(light.Ambient + diffuse)
}

// triplanarAlbedo blends the three planar projections of an sRGB albedo
// layer, converting each sample to linear light before mixing.
func triplanarAlbedo(tex TextureArray, scale float32, pos, w math.Vec3, layer int) math.Vec3 {
	sx := linearSample(tex, pos.Z*scale, pos.Y*scale, layer)
	sy := linearSample(tex, pos.X*scale, pos.Z*scale, layer)
	sz := linearSample(tex, pos.X*scale, pos.Y*scale, layer)
	return sx.Scale(w.X).Add(sy.Scale(w.Y)).Add(sz.Scale(w.Z))
}

// PerturbNormal reorients tangent-space normal-map samples from the three
// planar projections into world space and blends them by the triplanar
// weights. Each projection swizzles the tangent sample onto its axis and
// flips it to the hemisphere of the geometric normal, so a flat normal map
// reproduces the geometric normal exactly.
func PerturbNormal(tex TextureArray, scale float32, pos, normal math.Vec3, layer int) math.Vec3 {
	w := TriplanarWeights(normal)

	tx := tangentSample(tex, pos.Z*scale, pos.Y*scale, layer)
	ty := tangentSample(tex, pos.X*scale, pos.Z*scale, layer)
	tz := tangentSample(tex, pos.X*scale, pos.Y*scale, layer)

	nx := math.Vec3{X: tx.Z * sign(normal.X), Y: tx.Y, Z: tx.X}
	ny := math.Vec3{X: ty.X, Y: ty.Z * sign(normal.Y), Z: ty.Y}
	nz := math.Vec3{X: tz.X, Y: tz.Y, Z: tz.Z * sign(normal.Z)}

	return nx.Scale(w.X).Add(ny.Scale(w.Y)).Add(nz.Scale(w.Z)).Normalize()
}

func linearSample(tex TextureArray, u, v float32, layer int) math.Vec3 {
	s := tex.Sample(u, v, layer)
	return math.Vec3{X: SRGBToLinear(s[0]), Y: SRGBToLinear(s[1]), Z: SRGBToLinear(s[2])}
}

// tangentSample decodes a normal-map texel from [0, 1] into [-1, 1].
func tangentSample(tex TextureArray, u, v float32, layer int) math.Vec3 {
	s := tex.Sample(u, v, layer)
	return math.Vec3{X: s[0]*2 - 1, Y: s[1]*2 - 1, Z: s[2]*2 - 1}
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
