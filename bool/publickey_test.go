package bool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

func TestEncryptPKRoundTrip(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)
	src := prng.NewSource(prng.NewSeed())

	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()
	pk := kg.GenPublicKey(sk)

	ck := &boolpkg.ClientKey{Secret: lwe.SecretKeyFromCoeffs(sk.Value.Coeffs), R: r, Sigma: 0}

	for _, b := range []bool{true, false} {
		ct := boolpkg.EncryptPK(r, pk, 0, b, src)
		got, err := ck.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, b, got)
	}
}
