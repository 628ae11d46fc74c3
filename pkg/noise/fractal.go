package noise

import "math"

// octaveAngle is the rotation applied to the sample domain between octaves
// (the golden angle, in radians). Rotating instead of shifting decorrelates
// the lattice alignment of successive octaves while keeping the origin a
// fixed point of every octave, so Eval2(0, 0) == 0 for any seed.
const octaveAngle = 2.39996322972865332

// Fractal sums octaves of gradient noise, doubling detail and halving
// influence per octave at the default lacunarity and persistence.
type Fractal struct {
	Noise       Noise
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
}

// NewFractal returns a fractal with the conventional lacunarity 2 and
// persistence 0.5.
func NewFractal(seed uint32, octaves int, frequency float64) Fractal {
	return Fractal{
		Noise:       New(seed),
		Octaves:     octaves,
		Frequency:   frequency,
		Lacunarity:  2.0,
		Persistence: 0.5,
	}
}

// Eval2 returns fractal noise at (x, y) in [-1, 1]. The octave sum is
// normalized by the total amplitude so the range does not depend on the
// octave count.
func (f Fractal) Eval2(x, y float64) float64 {
	sin, cos := math.Sincos(octaveAngle)

	var (
		sum       float64
		norm      float64
		amplitude = 1.0
		frequency = f.Frequency
	)
	for o := 0; o < f.Octaves; o++ {
		sum += f.Noise.Eval2(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= f.Persistence
		frequency *= f.Lacunarity
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
