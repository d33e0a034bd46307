package ring_test

import (
	"testing"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/stretchr/testify/require"
)

// testRing returns a small NTT-friendly ring usable in fast unit tests:
// N=16, Q a 14-bit prime with Q ≡ 1 (mod 32).
func testRing(t *testing.T) *ring.Ring {
	t.Helper()
	const n = 16
	const q = 12289 // standard small NTT-friendly prime, Q-1 = 2^12 * 3
	r, err := ring.NewRing(n, q)
	require.NoError(t, err)
	return r
}

func TestNTTRoundTrip(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	p := r.NewSampler().Uniform(src)
	original := p.CopyNew()

	r.NTT(p)
	r.INTT(p)

	require.True(t, p.Equal(original))
}

func TestMulCoeffsMontgomeryMatchesSchoolbook(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	a := r.NewSampler().Uniform(src)
	b := r.NewSampler().Uniform(src)

	expected := schoolbookNegacyclicMul(r, a, b)

	aNTT, bNTT := a.CopyNew(), b.CopyNew()
	r.MFormPoly(aNTT)
	r.MFormPoly(bNTT)
	r.NTT(aNTT)
	r.NTT(bNTT)

	cNTT := r.NewPoly()
	r.MulCoeffsMontgomery(aNTT, bNTT, cNTT)
	r.INTT(cNTT)
	r.IMFormPoly(cNTT)

	require.True(t, cNTT.Equal(expected), "NTT multiplication must match schoolbook negacyclic convolution")
}

// schoolbookNegacyclicMul computes a*b mod (X^N+1, Q) by direct convolution.
func schoolbookNegacyclicMul(r *ring.Ring, a, b ring.Poly) ring.Poly {
	n := r.N
	q := r.Q
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			prod := ring.BRed(a.Coeffs[i], b.Coeffs[j], q, r.BRedConstant)
			k := i + j
			if k < n {
				out[k] = ring.CRed(out[k]+prod, q)
			} else {
				out[k-n] = ring.CRed(out[k-n]+q-prod, q)
			}
		}
	}
	return ring.Poly{Coeffs: out}
}

func TestDecomposeRecompose(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	p := r.NewSampler().Uniform(src)

	const base = 1 << 4
	const count = 4 // 4*log2(base)=16 bits > log2(Q)=14 bits, enough to cover Q exactly
	dec := ring.NewDecomposer(base, count, r.Q)

	digits := make([]ring.Poly, count)
	for i := range digits {
		digits[i] = r.NewPoly()
	}
	dec.Decompose(r, p, digits)

	recomposed := r.NewPoly()
	scale := uint64(1)
	for level := 0; level < count; level++ {
		scaled := r.NewPoly()
		r.MulScalar(digits[level], scale, scaled)
		r.Add(recomposed, scaled, recomposed)
		scale = ring.BRed(scale, base, r.Q, r.BRedConstant)
	}

	require.True(t, recomposed.Equal(p))
}

func TestAutomorphismInvolution(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	p := r.NewSampler().Uniform(src)

	// X -> X^3 then X -> X^(3^{-1} mod 2N) must be the identity.
	const k = 3
	twoN := uint64(2 * r.N)
	kInv := ring.ModExp(k, eulerPhi(twoN)-1, twoN)

	rotated := r.NewPoly()
	r.Automorphism(p, k, rotated)
	back := r.NewPoly()
	r.Automorphism(rotated, int(kInv), back)

	require.True(t, back.Equal(p))
}

// eulerPhi computes Euler's totient of a power of two.
func eulerPhi(n uint64) uint64 {
	return n / 2
}
