package ring

import "github.com/latticefhe/mpctfhe/internal/prng"

// Sampler draws random polynomials into this ring from a keyed
// prng.Source.
type Sampler struct {
	r *Ring
}

// NewSampler returns a Sampler bound to r.
func (r *Ring) NewSampler() Sampler {
	return Sampler{r: r}
}

// Ternary draws a ternary polynomial of exactly the given Hamming weight:
// hammingWeight coefficients uniform in {-1,1}, the rest zero.
func (s Sampler) Ternary(src *prng.Source, hammingWeight int) Poly {
	return Poly{Coeffs: src.TernaryFixedWeight(s.r.N, hammingWeight, s.r.Q)}
}

// Gaussian draws a polynomial with coefficients from a discrete Gaussian of
// the given standard deviation.
func (s Sampler) Gaussian(src *prng.Source, sigma float64) Poly {
	return Poly{Coeffs: src.DiscreteGaussian(s.r.N, sigma, s.r.Q)}
}

// Uniform draws a polynomial with coefficients uniform modulo Q.
func (s Sampler) Uniform(src *prng.Source) Poly {
	return Poly{Coeffs: src.Uniform(s.r.N, s.r.Q)}
}
