package noise

// hash32 mixes a 32-bit input into a well-distributed 32-bit output using
// murmur-style finalizer avalanching. Pure integer arithmetic keeps the
// result identical on every platform, which float hashes (sin-based tricks)
// cannot guarantee.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 returns a stable hash for 2D lattice coordinates plus seed.
// Large odd constants decorrelate the axes before the final mix.
func hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return hash32(h)
}
