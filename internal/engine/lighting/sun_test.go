package lighting

import (
	gomath "math"
	"testing"
)

func TestSunDirectionUnit(t *testing.T) {
	for _, angles := range [][2]float32{{0, 0}, {45, 50}, {300, 10}, {180, 90}} {
		dir := SunDirection(angles[0], angles[1])
		if got := dir.Length(); gomath.Abs(float64(got-1)) > 1e-5 {
			t.Errorf("lon=%f lat=%f: |dir| = %f, want 1", angles[0], angles[1], got)
		}
	}
}

func TestSunDirectionZenith(t *testing.T) {
	dir := SunDirection(0, 90)
	if gomath.Abs(float64(dir.Y-1)) > 1e-5 {
		t.Errorf("latitude 90 should point straight up, got %v", dir)
	}
}

func TestSunDirectionHorizon(t *testing.T) {
	dir := SunDirection(0, 0)
	if dir.Y != 0 {
		t.Errorf("latitude 0 should have no elevation, got y=%f", dir.Y)
	}
	if gomath.Abs(float64(dir.Z-1)) > 1e-5 {
		t.Errorf("longitude 0 at the horizon should point along +Z, got %v", dir)
	}
}

func TestSunElevationRaisesY(t *testing.T) {
	low := SunDirection(45, 10)
	high := SunDirection(45, 70)
	if high.Y <= low.Y {
		t.Errorf("higher latitude should raise the sun: y %f vs %f", high.Y, low.Y)
	}
}
