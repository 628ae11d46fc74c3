// Package noise implements seeded, deterministic noise primitives for
// terrain synthesis: simplex-lattice gradient noise, fractal summation and
// smooth cellular noise. All evaluators are pure functions of the seed and
// the sample point, so results are reproducible bit for bit.
package noise

// Noise evaluates seeded gradient noise over the plane.
type Noise struct {
	seed uint32
}

// New returns a noise source for the given seed.
func New(seed uint32) Noise {
	return Noise{seed: seed}
}

/*
Skewing factors for the 2D simplex grid:

	F2 = 0.5*(sqrt(3.0)-1.0)
	G2 = (3.0-sqrt(3.0))/6.0
*/
const f2 = 0.366025403
const g2 = 0.211324865

// The eight corner gradients. Mixing axis and diagonal directions keeps the
// field visually isotropic without normalizing per corner.
var grad2lut = [8][2]float64{
	{-1.0, -1.0}, {1.0, 0.0}, {-1.0, 0.0}, {1.0, 1.0},
	{-1.0, 1.0}, {0.0, -1.0}, {0.0, 1.0}, {1.0, -1.0},
}

// Eval2 returns gradient noise at (x, y), scaled to the interval [-1, 1].
// The field is C1-continuous: each lattice corner contributes
// (0.5-d²)⁴ · (g·d), a kernel whose value and derivative both vanish at the
// radius where the corner stops influencing the sample.
func (n Noise) Eval2(x, y float64) float64 {
	// Skew the input space to determine which simplex cell we're in.
	s := (x + y) * f2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	// Unskew the cell origin back to (x,y) space.
	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// For the 2D case, the simplex shape is an equilateral triangle.
	// x0 > y0 selects the lower triangle, XY order (0,0)->(1,0)->(1,1);
	// otherwise the upper triangle, YX order (0,0)->(0,1)->(1,1).
	var i1, j1 int32
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	// Offsets for the middle and last corners in unskewed coords.
	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	sum := n.corner(i, j, x0, y0) +
		n.corner(i+i1, j+j1, x1, y1) +
		n.corner(i+1, j+1, x2, y2)

	// Scale the summed contributions to fill [-1, 1].
	return 40.0 * sum
}

// corner returns the contribution of one simplex corner at lattice point
// (i, j) for a sample displaced by (dx, dy) from it.
func (n Noise) corner(i, j int32, dx, dy float64) float64 {
	t := 0.5 - dx*dx - dy*dy
	if t < 0 {
		return 0
	}
	g := grad2lut[hash2(n.seed, i, j)&7]
	t2 := t * t
	return t2 * t2 * (g[0]*dx + g[1]*dy)
}

func fastFloor(x float64) int32 {
	i := int32(x)
	if x < float64(i) {
		return i - 1
	}
	return i
}
