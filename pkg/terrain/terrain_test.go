package terrain

import (
	gomath "math"
	"testing"

	"github.com/driftline/veldt/pkg/math"
)

func testParams() Params {
	p := DefaultParams()
	p.Seed = 1337
	return p
}

func TestHeightGolden(t *testing.T) {
	// The fractal origin is a fixed point of every octave, so the height at
	// the footprint origin depends only on the height parameter.
	p := DefaultParams()
	p.Profile = ProfileMountains
	p.MountainHeight = 10
	p.Octaves = 4

	g := NewGenerator(p)
	got := g.HeightAt(0, 0)
	if got != 5.0 {
		t.Errorf("HeightAt(0, 0) = %v, want exactly 5.0", got)
	}
}

func TestHeightRangeSingleBiome(t *testing.T) {
	p := testParams()
	p.Profile = ProfileMountains
	g := NewGenerator(p)

	lo := float32(-0.1) * p.MountainHeight
	hi := float32(1.1) * p.MountainHeight
	for z := 0; z < 64; z++ {
		for x := 0; x < 64; x++ {
			h := g.HeightAt(float32(x)*37.3, float32(z)*41.7)
			if h < lo || h > hi {
				t.Fatalf("HeightAt(%d, %d) = %v, want within [0, %v] (10%% margin)", x, z, h, p.MountainHeight)
			}
		}
	}
}

func TestDuneHeightRange(t *testing.T) {
	p := testParams()
	p.Profile = ProfileDuneBasin
	g := NewGenerator(p)

	// Deep inside the basin only the dune field contributes.
	c := p.BiomeCenter
	hi := float32(1.1) * p.DuneHeight
	for i := 0; i < 200; i++ {
		x := c.X + float32(i%20)*3 - 30
		z := c.Y + float32(i/20)*3 - 15
		h := g.HeightAt(x, z)
		if h < 0 || h > hi {
			t.Fatalf("dune HeightAt(%v, %v) = %v, want within [0, %v]", x, z, h, p.DuneHeight)
		}
	}
}

func TestMaxHeight(t *testing.T) {
	p := testParams()
	p.MountainHeight = 50
	p.DuneHeight = 80

	p.Profile = ProfileMountains
	if got := NewGenerator(p).MaxHeight(); got != 50 {
		t.Errorf("mountains MaxHeight() = %v, want 50", got)
	}

	p.Profile = ProfileDuneBasin
	if got := NewGenerator(p).MaxHeight(); got != 80 {
		t.Errorf("dune-basin MaxHeight() = %v, want 80", got)
	}

	p.DuneHeight = 15
	if got := NewGenerator(p).MaxHeight(); got != 50 {
		t.Errorf("dune-basin MaxHeight() = %v, want 50 when dunes sit lower", got)
	}
}

func TestNormalUnitLength(t *testing.T) {
	for _, profile := range []Profile{ProfileMountains, ProfileDuneBasin} {
		p := testParams()
		p.Profile = profile
		g := NewGenerator(p)

		for i := 0; i < 400; i++ {
			x := float32(i%20) * 211.7
			z := float32(i/20) * 197.3
			n := g.NormalAt(x, z)
			if d := gomath.Abs(float64(n.Length()) - 1); d > 1e-4 {
				t.Fatalf("profile %v: |NormalAt(%v, %v)| deviates from 1 by %v", profile, x, z, d)
			}
		}
	}
}

func TestNormalFlatTerrain(t *testing.T) {
	p := testParams()
	p.MountainHeight = 0
	g := NewGenerator(p)

	n := g.NormalAt(123, 456)
	if n != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("flat terrain normal = %v, want (0, 1, 0)", n)
	}
}

func TestBiomeWeights(t *testing.T) {
	p := testParams()
	p.Profile = ProfileDuneBasin
	g := NewGenerator(p)

	c := p.BiomeCenter
	if w := g.BiomeWeightsAt(c.X, c.Y); w.Dune != 1 || w.Mountain != 0 {
		t.Errorf("weights at basin center = %+v, want dune 1", w)
	}
	far := c.X + p.BiomeRadius*3
	if w := g.BiomeWeightsAt(far, c.Y); w.Mountain != 1 || w.Dune != 0 {
		t.Errorf("weights far outside = %+v, want mountain 1", w)
	}

	// Across the falloff band: both in [0, 1], summing to 1.
	for i := 0; i <= 100; i++ {
		d := p.BiomeRadius - p.BiomeFalloff*float32(i)/100
		w := g.BiomeWeightsAt(c.X+d, c.Y)
		if w.Mountain < 0 || w.Mountain > 1 || w.Dune < 0 || w.Dune > 1 {
			t.Fatalf("weights at distance %v out of range: %+v", d, w)
		}
		if s := float64(w.Mountain + w.Dune); gomath.Abs(s-1) > 1e-6 {
			t.Fatalf("weights at distance %v sum to %v, want 1", d, s)
		}
	}
}

func TestHeightContinuityAcrossBiomes(t *testing.T) {
	// Walk a line from inside the basin out into the mountains. No step may
	// jump by more than a small multiple of the average step delta, which
	// would indicate a seam at the biome boundary.
	p := testParams()
	p.Profile = ProfileDuneBasin
	g := NewGenerator(p)

	c := p.BiomeCenter
	start := p.BiomeRadius - p.BiomeFalloff - 100
	end := p.BiomeRadius + 100
	const step = 0.5

	var deltas []float64
	prev := g.HeightAt(c.X+start, c.Y)
	for d := start + step; d <= end; d += step {
		h := g.HeightAt(c.X+d, c.Y)
		deltas = append(deltas, gomath.Abs(float64(h-prev)))
		prev = h
	}

	var sum float64
	for _, d := range deltas {
		sum += d
	}
	avg := sum / float64(len(deltas))
	limit := 30*avg + 0.01
	for i, d := range deltas {
		if d > limit {
			t.Fatalf("height jump %v at scan step %d exceeds limit %v (avg %v)", d, i, limit, avg)
		}
	}
}

func TestNormalContinuityAcrossBiomes(t *testing.T) {
	p := testParams()
	p.Profile = ProfileDuneBasin
	g := NewGenerator(p)

	c := p.BiomeCenter
	start := p.BiomeRadius - p.BiomeFalloff - 20
	end := p.BiomeRadius + 20
	const step = 0.25

	prev := g.NormalAt(c.X+start, c.Y)
	for d := start + step; d <= end; d += step {
		n := g.NormalAt(c.X+d, c.Y)
		// A seam or flipped estimate jumps by ~1 or more; smooth rotation
		// across a quarter unit stays well under this.
		if jump := n.Sub(prev).Length(); jump > 0.75 {
			t.Fatalf("normal jump %v at distance %v", jump, d)
		}
		prev = n
	}
}

func TestHeightIdempotent(t *testing.T) {
	p := testParams()
	p.Profile = ProfileDuneBasin
	a := NewGenerator(p)
	b := NewGenerator(p)

	for i := 0; i < 200; i++ {
		x := float32(i) * 19.31
		z := float32(i) * 7.77
		h1 := a.HeightAt(x, z)
		h2 := a.HeightAt(x, z)
		h3 := b.HeightAt(x, z)
		if gomath.Float32bits(h1) != gomath.Float32bits(h2) {
			t.Fatalf("HeightAt(%v, %v) not idempotent: %v vs %v", x, z, h1, h2)
		}
		if gomath.Float32bits(h1) != gomath.Float32bits(h3) {
			t.Fatalf("HeightAt(%v, %v) differs across generators: %v vs %v", x, z, h1, h3)
		}
		n1 := a.NormalAt(x, z)
		n2 := b.NormalAt(x, z)
		if n1 != n2 {
			t.Fatalf("NormalAt(%v, %v) differs across generators: %v vs %v", x, z, n1, n2)
		}
	}
}

func TestMountainsUnaffectedByBasinProfile(t *testing.T) {
	// Outside the basin the dune branch must not disturb the mountain
	// field: both profiles produce bit-identical heights there.
	single := testParams()
	single.Profile = ProfileMountains
	dual := testParams()
	dual.Profile = ProfileDuneBasin

	a := NewGenerator(single)
	b := NewGenerator(dual)

	x := dual.BiomeCenter.X + dual.BiomeRadius*2
	for i := 0; i < 100; i++ {
		z := float32(i) * 13.7
		ha := a.HeightAt(x, z)
		hb := b.HeightAt(x, z)
		if gomath.Float32bits(ha) != gomath.Float32bits(hb) {
			t.Fatalf("heights diverge outside the basin at z=%v: %v vs %v", z, ha, hb)
		}
	}
}

func TestProfileRoundTrip(t *testing.T) {
	for _, p := range []Profile{ProfileMountains, ProfileDuneBasin} {
		got, ok := ParseProfile(p.String())
		if !ok || got != p {
			t.Errorf("ParseProfile(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParseProfile("swamp"); ok {
		t.Error("ParseProfile should reject unknown profiles")
	}
}
