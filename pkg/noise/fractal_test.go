package noise

import (
	"math"
	"testing"
)

func TestFractalRange(t *testing.T) {
	f := NewFractal(42, 5, 0.13)
	const limit = 1.02
	for y := -40; y <= 40; y++ {
		for x := -40; x <= 40; x++ {
			v := f.Eval2(float64(x)*1.7, float64(y)*2.3)
			if v < -limit || v > limit {
				t.Fatalf("Eval2(%d, %d) = %v, want within [-1, 1]", x, y, v)
			}
		}
	}
}

func TestFractalOriginFixedPoint(t *testing.T) {
	for _, seed := range []uint32{0, 1, 7, 1234567} {
		f := NewFractal(seed, 4, 0.01)
		if v := f.Eval2(0, 0); v != 0 {
			t.Errorf("Eval2(0, 0) with seed %d = %v, want 0", seed, v)
		}
	}
}

func TestFractalSingleOctave(t *testing.T) {
	// One octave at amplitude 1 normalizes to the raw gradient field.
	f := NewFractal(17, 1, 1.0)
	n := New(17)
	for i := 1; i < 30; i++ {
		x := float64(i) * 0.37
		y := float64(i) * -0.59
		got := f.Eval2(x, y)
		want := n.Eval2(x, y)
		if math.Float64bits(got) != math.Float64bits(want) {
			t.Fatalf("single-octave fractal at (%v, %v) = %v, want %v", x, y, got, want)
		}
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	f := Fractal{Noise: New(1), Octaves: 0, Frequency: 1, Lacunarity: 2, Persistence: 0.5}
	if v := f.Eval2(3, 4); v != 0 {
		t.Errorf("zero-octave fractal = %v, want 0", v)
	}
}

func TestFractalDeterministic(t *testing.T) {
	f := NewFractal(9001, 4, 0.02)
	for i := 0; i < 100; i++ {
		x := float64(i) * 12.3
		y := float64(i) * 4.56
		a := f.Eval2(x, y)
		b := f.Eval2(x, y)
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Fatalf("Eval2(%v, %v) not reproducible: %v vs %v", x, y, a, b)
		}
	}
}

func TestFractalOctavesAddDetail(t *testing.T) {
	one := NewFractal(3, 1, 0.05)
	four := NewFractal(3, 4, 0.05)
	differs := false
	for i := 1; i < 50; i++ {
		x := float64(i) * 3.1
		if one.Eval2(x, x) != four.Eval2(x, x) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("adding octaves did not change the field")
	}
}
