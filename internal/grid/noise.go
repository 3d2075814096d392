package grid

import "math"

// valueNoise returns smooth lattice value noise in [0,1]. Deterministic for a
// given (x, z, seed); sampling never walks an RNG, so grids are reproducible
// regardless of generation order.
func valueNoise(x, z float64, seed int64) float64 {
	xi := int(math.Floor(x))
	zi := int(math.Floor(z))
	xf := x - float64(xi)
	zf := z - float64(zi)

	// Hermite smoothstep.
	u := xf * xf * (3 - 2*xf)
	v := zf * zf * (3 - 2*zf)

	n00 := latticeValue(xi, zi, seed)
	n10 := latticeValue(xi+1, zi, seed)
	n01 := latticeValue(xi, zi+1, seed)
	n11 := latticeValue(xi+1, zi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

// fractalNoise sums octaves of value noise, each octave halving amplitude and
// doubling frequency. The result is normalized back into [0,1].
func fractalNoise(x, z float64, seed int64, octaves int) float64 {
	sum := 0.0
	amplitude := 1.0
	frequency := 1.0
	total := 0.0
	for i := 0; i < octaves; i++ {
		sum += valueNoise(x*frequency, z*frequency, seed+int64(i)) * amplitude
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// latticeValue hashes integer lattice coordinates and a seed into [0,1].
func latticeValue(x, z int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(z) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
