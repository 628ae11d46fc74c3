package shading

import (
	gomath "math"
	"testing"
)

func TestImageArraySetLayer(t *testing.T) {
	a := NewImageArray(2, 2, 1)
	if err := a.SetLayer(0, make([]uint8, 16)); err != nil {
		t.Errorf("SetLayer with correct size: %v", err)
	}
	if err := a.SetLayer(0, make([]uint8, 4)); err == nil {
		t.Error("SetLayer should reject short pixel data")
	}
	if err := a.SetLayer(2, make([]uint8, 16)); err == nil {
		t.Error("SetLayer should reject an out-of-range layer")
	}
}

func TestImageArraySampleSolid(t *testing.T) {
	a := NewImageArray(1, 1, 1)
	a.SetLayer(0, []uint8{255, 128, 0, 255})

	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.5}, {12.3, -7.9}} {
		s := a.Sample(uv[0], uv[1], 0)
		if s[0] != 1 || gomath.Abs(float64(s[1]-128.0/255)) > 1e-6 || s[2] != 0 || s[3] != 1 {
			t.Errorf("Sample(%v, %v) = %v on a solid 1x1 layer", uv[0], uv[1], s)
		}
	}
}

func TestImageArraySampleBilinear(t *testing.T) {
	// Left column black, right column white: sampling exactly between the
	// texel centers blends to the midpoint.
	a := NewImageArray(2, 1, 1)
	a.SetLayer(0, []uint8{
		0, 0, 0, 255,
		255, 255, 255, 255,
	})

	s := a.Sample(0.5, 0.5, 0)
	if gomath.Abs(float64(s[0]-0.5)) > 1e-6 {
		t.Errorf("midpoint sample = %v, want 0.5", s[0])
	}

	// At a texel center the filter returns the texel itself.
	s = a.Sample(0.25, 0.5, 0)
	if s[0] != 0 {
		t.Errorf("texel-center sample = %v, want 0", s[0])
	}
}

func TestImageArraySampleWraps(t *testing.T) {
	a := NewImageArray(2, 2, 1)
	px := make([]uint8, 16)
	for i := range px {
		px[i] = uint8(i * 13)
	}
	a.SetLayer(0, px)

	// Quarter coordinates stay exact under integer offsets in float32.
	base := a.Sample(0.25, 0.75, 0)
	for _, off := range [][2]float32{{1, 0}, {0, 1}, {-2, 3}} {
		s := a.Sample(0.25+off[0], 0.75+off[1], 0)
		if s != base {
			t.Errorf("Sample should repeat: offset %v gave %v, want %v", off, s, base)
		}
	}
}

func TestDefaultTerrainArray(t *testing.T) {
	a := DefaultTerrainArray()
	if a.Layers() != TerrainLayers {
		t.Fatalf("layer count = %d, want %d", a.Layers(), TerrainLayers)
	}
	if w, h := a.Size(); w != 1 || h != 1 {
		t.Fatalf("size = %dx%d, want 1x1", w, h)
	}

	grass := a.Sample(0, 0, LayerFlat)
	if grass[0] != float32(0x28)/255 || grass[1] != float32(0xaa)/255 || grass[2] != 0 {
		t.Errorf("grass layer = %v", grass)
	}
	dirt := a.Sample(0, 0, LayerCliff)
	if dirt[0] != float32(0x62)/255 || dirt[1] != float32(0x3b)/255 || dirt[2] != float32(0x0f)/255 {
		t.Errorf("dirt layer = %v", dirt)
	}
	for _, layer := range []int{LayerFlatNormal, LayerCliffNormal} {
		n := a.Sample(0, 0, layer)
		if n[2] != 1 {
			t.Errorf("normal layer %d not flat: %v", layer, n)
		}
	}
}
