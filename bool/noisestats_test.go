package bool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/params"
)

// TestNoiseRegression runs 32 bootstrapped NAND gates under the toy preset,
// checks that every output decrypts to the expected bit, and computes the
// output noise statistics and the TailBound for SigmaRLWE. It checks only
// that the standard deviation is non-negative and the bound is positive; the
// measured noise is not compared with the bound.
func TestNoiseRegression(t *testing.T) {
	lit, err := params.Default(params.PresetToy)
	require.NoError(t, err)
	p, err := params.NewFromLiteral(lit)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	ck, sk, err := boolpkg.GenKeys(p, src)
	require.NoError(t, err)

	const trials = 32
	samples := make([]boolpkg.NoiseSample, 0, trials)
	for i := 0; i < trials; i++ {
		a := ck.Encrypt(i%2 == 0, src)
		b := ck.Encrypt(i%3 == 0, src)
		want := !((i%2 == 0) && (i%3 == 0))

		out := sk.Evaluator.Nand(a, b)
		s, err := ck.MeasureNoise(out, want)
		require.NoError(t, err)
		samples = append(samples, s)

		got, err := ck.Decrypt(out)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	st, err := boolpkg.ComputeStats(samples)
	require.NoError(t, err)
	require.GreaterOrEqual(t, st.StdDev, 0.0)

	bound := boolpkg.TailBound(p.SigmaRLWE, 1.0/float64(uint64(1)<<40))
	require.Greater(t, bound, 0.0)
}
