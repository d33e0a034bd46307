package pbs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticefhe/mpctfhe/pbs"
	"github.com/latticefhe/mpctfhe/ring"
)

func TestEncodeMonomialSigns(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)

	// X^3
	m := pbs.EncodeMonomial(r, 3, 1)
	require.Equal(t, uint64(1), m.Coeffs[3])

	// X^{-1} = -X^{N-1} in the negacyclic ring
	m = pbs.EncodeMonomial(r, -1, 1)
	require.Equal(t, r.Q-1, m.Coeffs[r.N-1])

	// X^0
	m = pbs.EncodeMonomial(r, 0, 1)
	require.Equal(t, uint64(1), m.Coeffs[0])

	// embedding factor stretches the exponent
	m = pbs.EncodeMonomial(r, 3, 2)
	require.Equal(t, uint64(1), m.Coeffs[6])

	// X^N = -1
	m = pbs.EncodeMonomial(r, r.N, 1)
	require.Equal(t, r.Q-1, m.Coeffs[0])
}

func TestModSwitchRounds(t *testing.T) {
	// exact midpoints round up, everything else to nearest
	require.Equal(t, uint64(0), pbs.ModSwitch(0, 12289, 769))
	require.Equal(t, uint64(769%769), pbs.ModSwitch(12288, 12289, 769))
	v := pbs.ModSwitch(6144, 12289, 769)
	require.InDelta(t, 384, float64(v), 1)
}
