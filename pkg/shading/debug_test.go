package shading

import (
	"testing"

	"github.com/driftline/veldt/pkg/math"
)

func TestNormalColor(t *testing.T) {
	up := NormalColor(math.Vec3{X: 0, Y: 1, Z: 0})
	if up != (math.Vec3{X: 0.5, Y: 1, Z: 0.5}) {
		t.Errorf("NormalColor(+Y) = %v, want (0.5, 1, 0.5)", up)
	}
	down := NormalColor(math.Vec3{X: 0, Y: -1, Z: 0})
	if down != (math.Vec3{X: 0.5, Y: 0, Z: 0.5}) {
		t.Errorf("NormalColor(-Y) = %v, want (0.5, 0, 0.5)", down)
	}
}

func TestHashColorRange(t *testing.T) {
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			c := HashColor(x, z)
			if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
				t.Fatalf("HashColor(%d, %d) = %v out of range", x, z, c)
			}
		}
	}
}

func TestHashColorDistinct(t *testing.T) {
	a := HashColor(0, 0)
	b := HashColor(1, 0)
	c := HashColor(0, 1)
	if a == b || a == c || b == c {
		t.Errorf("adjacent tile colors collide: %v, %v, %v", a, b, c)
	}
	if a != HashColor(0, 0) {
		t.Error("HashColor should be deterministic")
	}
}

func TestDebugViewString(t *testing.T) {
	views := map[DebugView]string{
		DebugOff:     "off",
		DebugNormals: "normals",
		DebugTiles:   "tiles",
	}
	for v, want := range views {
		if got := v.String(); got != want {
			t.Errorf("DebugView(%d).String() = %q, want %q", v, got, want)
		}
	}
}
