package shading

import (
	gomath "math"
	"testing"
)

func TestSRGBToLinearKnownValues(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.21404114},
		{0.04045, 0.04045 / 12.92},
	}
	for _, c := range cases {
		got := SRGBToLinear(c.in)
		if gomath.Abs(float64(got-c.want)) > 1e-6 {
			t.Errorf("SRGBToLinear(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLinearToSRGBKnownValues(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{0.21404114, 0.5},
		{0.0031308, 0.0031308 * 12.92},
	}
	for _, c := range cases {
		got := LinearToSRGB(c.in)
		if gomath.Abs(float64(got-c.want)) > 1e-6 {
			t.Errorf("LinearToSRGB(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSRGBBranchContinuity(t *testing.T) {
	// The linear segment and the power segment must meet at the cutoff.
	lo := SRGBToLinear(0.040449)
	hi := SRGBToLinear(0.040451)
	if gomath.Abs(float64(hi-lo)) > 1e-5 {
		t.Errorf("SRGBToLinear discontinuous at cutoff: %v vs %v", lo, hi)
	}

	lo = LinearToSRGB(0.0031307)
	hi = LinearToSRGB(0.0031309)
	if gomath.Abs(float64(hi-lo)) > 1e-5 {
		t.Errorf("LinearToSRGB discontinuous at cutoff: %v vs %v", lo, hi)
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		c := float32(i) / 100
		back := LinearToSRGB(SRGBToLinear(c))
		if gomath.Abs(float64(back-c)) > 1e-5 {
			t.Errorf("round trip of %v = %v", c, back)
		}
	}
}
