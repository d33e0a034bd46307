package bool_test

import (
	"testing"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/stretchr/testify/require"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)
	src := prng.NewSource(prng.NewSeed())
	sk := lwe.GenSecretKey(r.N, r.N/2, r.Q, src)
	ck := &boolpkg.ClientKey{Secret: sk, R: r, Sigma: 0}

	for _, b := range []bool{true, false} {
		ct := ck.Encrypt(b, src)
		got, err := ck.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, b, got)
	}
}

func TestNotIsLinear(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)
	src := prng.NewSource(prng.NewSeed())
	sk := lwe.GenSecretKey(r.N, r.N/2, r.Q, src)
	ck := &boolpkg.ClientKey{Secret: sk, R: r, Sigma: 0}

	ev := &boolpkg.Evaluator{R: r}
	for _, b := range []bool{true, false} {
		ct := ck.Encrypt(b, src)
		notCt := ev.Not(ct)
		got, err := ck.Decrypt(notCt)
		require.NoError(t, err)
		require.Equal(t, !b, got)
	}
}

func TestGateTruthTables(t *testing.T) {
	lit, err := params.Default(params.PresetToy)
	require.NoError(t, err)
	p, err := params.NewFromLiteral(lit)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	ck, sk, err := boolpkg.GenKeys(p, src)
	require.NoError(t, err)
	ev := sk.Evaluator

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			ctA := ck.Encrypt(a, src)
			ctB := ck.Encrypt(b, src)

			got, err := ck.Decrypt(ev.Nand(ctA, ctB))
			require.NoError(t, err)
			require.Equal(t, !(a && b), got, "NAND(%v,%v)", a, b)

			got, err = ck.Decrypt(ev.And(ctA, ctB))
			require.NoError(t, err)
			require.Equal(t, a && b, got, "AND(%v,%v)", a, b)

			got, err = ck.Decrypt(ev.Or(ctA, ctB))
			require.NoError(t, err)
			require.Equal(t, a || b, got, "OR(%v,%v)", a, b)

			got, err = ck.Decrypt(ev.Xor(ctA, ctB))
			require.NoError(t, err)
			require.Equal(t, a != b, got, "XOR(%v,%v)", a, b)

			got, err = ck.Decrypt(ev.Xnor(ctA, ctB))
			require.NoError(t, err)
			require.Equal(t, a == b, got, "XNOR(%v,%v)", a, b)
		}
	}
}
