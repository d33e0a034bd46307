package prng

import "math"

// UniformUint64 returns a uniform value in [0, bound) via rejection
// sampling.
func (s *Source) UniformUint64(bound uint64) uint64 {
	if bound == 0 {
		return 0
	}
	max := (^uint64(0) / bound) * bound
	for {
		v := s.Uint64()
		if v < max {
			return v % bound
		}
	}
}

// TernaryFixedWeight draws n coefficients uniformly from the set of
// ternary vectors with exactly h nonzero entries, encoded as {q-1, 0, 1}
// modulo q: h positions are picked by rejection-sampled index removal, each
// assigned a random sign, and the remaining positions are zeroed.
func (s *Source) TernaryFixedWeight(n, h int, q uint64) []uint64 {
	if h > n {
		h = n
	}
	out := make([]uint64, n)
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	for i := 0; i < h; i++ {
		j := int(s.UniformUint64(uint64(len(index))))
		if s.UniformUint64(2) == 0 {
			out[index[j]] = 1
		} else {
			out[index[j]] = q - 1
		}
		// remove position j (order not preserved)
		index[j] = index[len(index)-1]
		index = index[:len(index)-1]
	}
	return out
}

// DiscreteGaussian draws n coefficients from a discrete Gaussian of
// standard deviation sigma, centered at zero and truncated at 6 sigma,
// encoded modulo q. sigma = 0 yields exact zeros.
func (s *Source) DiscreteGaussian(n int, sigma float64, q uint64) []uint64 {
	out := make([]uint64, n)
	if sigma == 0 {
		return out
	}
	bound := int64(math.Ceil(6 * sigma))
	for i := 0; i < n; i++ {
		out[i] = encodeSigned(s.sampleGaussianInt(sigma, bound), q)
	}
	return out
}

// sampleGaussianInt draws one sample via rejection sampling against the
// continuous Gaussian density, truncated to [-bound, bound].
func (s *Source) sampleGaussianInt(sigma float64, bound int64) int64 {
	width := uint64(2*bound + 1)
	for {
		x := int64(s.UniformUint64(width)) - bound
		// Accept with probability exp(-x^2/2sigma^2); compare against a
		// uniform [0,1) draw built from 32 random bits.
		p := math.Exp(-float64(x*x) / (2 * sigma * sigma))
		u := float64(s.UniformUint64(1<<32)) / float64(uint64(1)<<32)
		if u < p {
			return x
		}
	}
}

func encodeSigned(x int64, q uint64) uint64 {
	if x < 0 {
		return q - uint64(-x)
	}
	return uint64(x)
}

// Uniform draws n coefficients uniform modulo q.
func (s *Source) Uniform(n int, q uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.UniformUint64(q)
	}
	return out
}
