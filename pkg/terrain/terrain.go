// Package terrain synthesizes procedural height fields and bakes them into
// tile meshes. A Generator evaluates height, surface normal and biome blend
// weights at any world-space point; every evaluation is a pure function of
// the parameters, so tiles can be baked in parallel and rebaked bit for bit.
package terrain

import (
	gomath "math"

	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/noise"
)

// Profile selects the biome layout of a terrain.
type Profile int

const (
	// ProfileMountains covers the whole plane with fractal mountains.
	ProfileMountains Profile = iota
	// ProfileDuneBasin carves a smooth-cellular dune basin around the biome
	// center and blends it into the surrounding mountains.
	ProfileDuneBasin
)

// String returns the profile name used in config files and CLI flags.
func (p Profile) String() string {
	switch p {
	case ProfileMountains:
		return "mountains"
	case ProfileDuneBasin:
		return "dune-basin"
	}
	return "unknown"
}

// ParseProfile converts a profile name to its Profile value.
func ParseProfile(s string) (Profile, bool) {
	switch s {
	case "mountains":
		return ProfileMountains, true
	case "dune-basin":
		return ProfileDuneBasin, true
	}
	return ProfileMountains, false
}

// Params describe a terrain. All tunables that shape the field live here so
// viewers and bakers can rebuild identical terrain from a config file alone.
type Params struct {
	Seed    uint32
	Profile Profile

	// TileSize is the vertex count per tile edge. Neighboring tiles share
	// their edge vertices, so a tile covers TileSize-1 world units.
	TileSize int

	Octaves     int
	Frequency   float32
	Lacunarity  float32
	Persistence float32

	MountainHeight float32
	DuneHeight     float32

	// BiomeCenter and BiomeRadius place the dune basin; the blend falls off
	// over the BiomeFalloff band just inside the radius.
	BiomeCenter  math.Vec2
	BiomeRadius  float32
	BiomeFalloff float32

	DuneFrequency float32
	DuneSharpness float32
	WarpFrequency float32
	WarpStrength  float32

	// Finite-difference steps for normal estimation, one per biome scale.
	MountainEps float32
	DuneEps     float32
}

// DefaultParams returns the parameter set the viewer ships with: a 16x16
// tile world of 50-unit mountains with a dune basin at the world center.
func DefaultParams() Params {
	return Params{
		Seed:           0,
		Profile:        ProfileMountains,
		TileSize:       256,
		Octaves:        4,
		Frequency:      0.005,
		Lacunarity:     2.0,
		Persistence:    0.5,
		MountainHeight: 50,
		DuneHeight:     15,
		BiomeCenter:    math.Vec2{X: 2040, Y: 2040},
		BiomeRadius:    900,
		BiomeFalloff:   400,
		DuneFrequency:  0.05,
		DuneSharpness:  8,
		WarpFrequency:  0.01,
		WarpStrength:   12,
		MountainEps:    1.0,
		DuneEps:        0.25,
	}
}

// BiomeWeights hold the blend factors of the two biomes at a point.
// They sum to 1 and each lies in [0, 1].
type BiomeWeights struct {
	Mountain float32
	Dune     float32
}

// warpOctaves is the octave count of the low-frequency field that warps the
// dune cell lookup.
const warpOctaves = 2

// Offsets into the warp field for the second warp channel, so the X and Z
// displacements decorrelate without a second seed.
const (
	warpChannelX = 5.2
	warpChannelY = 1.3
)

// Generator evaluates the height field described by a Params value.
// It is immutable after construction and safe for concurrent use.
type Generator struct {
	params    Params
	mountains noise.Fractal
	warp      noise.Fractal
	dunes     noise.Noise
}

// NewGenerator returns a generator for the given parameters.
func NewGenerator(p Params) *Generator {
	mountains := noise.NewFractal(p.Seed, p.Octaves, float64(p.Frequency))
	mountains.Lacunarity = float64(p.Lacunarity)
	mountains.Persistence = float64(p.Persistence)

	return &Generator{
		params:    p,
		mountains: mountains,
		warp:      noise.NewFractal(p.Seed+1, warpOctaves, float64(p.WarpFrequency)),
		dunes:     noise.New(p.Seed + 2),
	}
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params {
	return g.params
}

// MaxHeight returns the largest height the generator can produce. Baked
// heightmaps normalize against it.
func (g *Generator) MaxHeight() float32 {
	if g.params.Profile == ProfileDuneBasin && g.params.DuneHeight > g.params.MountainHeight {
		return g.params.DuneHeight
	}
	return g.params.MountainHeight
}

// HeightAt returns the terrain height at world-space (x, z).
func (g *Generator) HeightAt(x, z float32) float32 {
	h := g.mountainHeight(float64(x), float64(z))
	if g.params.Profile == ProfileDuneBasin {
		w := g.BiomeWeightsAt(x, z)
		if w.Dune > 0 {
			h = h*float64(w.Mountain) + g.duneHeight(float64(x), float64(z))*float64(w.Dune)
		}
	}
	return float32(h)
}

// PointAt returns the surface point above world-space (x, z).
func (g *Generator) PointAt(x, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: g.HeightAt(x, z), Z: z}
}

// NormalAt estimates the unit surface normal at world-space (x, z) by
// symmetric finite differences: the forward and backward tangent pairs give
// two cross-product estimates, which are normalized, averaged and
// re-normalized. The step blends between the per-biome epsilons so the
// estimate stays continuous across biome boundaries.
func (g *Generator) NormalAt(x, z float32) math.Vec3 {
	w := g.BiomeWeightsAt(x, z)
	eps := w.Mountain*g.params.MountainEps + w.Dune*g.params.DuneEps

	p0 := g.PointAt(x, z)
	pr := g.PointAt(x+eps, z)
	pl := g.PointAt(x-eps, z)
	pu := g.PointAt(x, z+eps)
	pd := g.PointAt(x, z-eps)

	forward := pu.Sub(p0).Cross(pr.Sub(p0)).Normalize()
	backward := p0.Sub(pd).Cross(p0.Sub(pl)).Normalize()

	return forward.Add(backward).Normalize()
}

// VertexAt returns the displaced mesh vertex at world-space (x, z).
func (g *Generator) VertexAt(x, z float32) Vertex {
	return Vertex{
		Position: g.PointAt(x, z),
		Normal:   g.NormalAt(x, z),
	}
}

// BiomeWeightsAt returns the biome blend at world-space (x, z). Inside the
// basin the dune weight is 1; it falls off to 0 over the falloff band with a
// cosine ramp, so both the weights and their derivatives are continuous.
func (g *Generator) BiomeWeightsAt(x, z float32) BiomeWeights {
	if g.params.Profile != ProfileDuneBasin {
		return BiomeWeights{Mountain: 1}
	}

	d := (math.Vec2{X: x, Y: z}).Distance(g.params.BiomeCenter)
	inner := g.params.BiomeRadius - g.params.BiomeFalloff
	switch {
	case d >= g.params.BiomeRadius:
		return BiomeWeights{Mountain: 1}
	case d <= inner:
		return BiomeWeights{Dune: 1}
	}

	t := float64(d-inner) / float64(g.params.BiomeFalloff)
	dune := float32(0.5 * (1 + gomath.Cos(gomath.Pi*t)))
	return BiomeWeights{Mountain: 1 - dune, Dune: dune}
}

// mountainHeight maps fractal noise from [-1, 1] into [0, MountainHeight].
func (g *Generator) mountainHeight(x, z float64) float64 {
	return (g.mountains.Eval2(x, z)*0.5 + 0.5) * float64(g.params.MountainHeight)
}

// duneHeight evaluates the smooth-cellular dune field at a warped lookup
// point. The warp displaces the cell lattice with low-frequency fractal
// noise so the dune walls meander instead of following straight cell edges.
func (g *Generator) duneHeight(x, z float64) float64 {
	strength := float64(g.params.WarpStrength)
	wx := x + g.warp.Eval2(x, z)*strength
	wz := z + g.warp.Eval2(x+warpChannelX, z+warpChannelY)*strength

	f := float64(g.params.DuneFrequency)
	c := g.dunes.Cellular2(wx*f, wz*f, float64(g.params.DuneSharpness))
	return c * float64(g.params.DuneHeight)
}
