package lwe_test

import (
	"testing"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	const q = 769
	const dimension = 8
	const sigma = 0.0 // noise-free for an exact round trip assertion

	src := prng.NewSource(prng.NewSeed())
	sk := lwe.GenSecretKey(dimension, dimension/2, q, src)

	for _, m := range []uint64{0, 1, 100, 384} {
		ct := lwe.Encrypt(sk, m, q, sigma, src)
		got, err := lwe.Decrypt(sk, ct)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestKeySwitchPreservesPlaintext(t *testing.T) {
	const q = 769
	const nIn, nOut = 8, 6
	const sigma = 0.0

	src := prng.NewSource(prng.NewSeed())
	sIn := lwe.GenSecretKey(nIn, nIn/2, q, src)
	sOut := lwe.GenSecretKey(nOut, nOut/2, q, src)

	ksk := lwe.GenKeySwitchKey(sIn, sOut, q, 4, 5, sigma, src)

	const m = uint64(200)
	ct := lwe.Encrypt(sIn, m, q, sigma, src)
	switched := ksk.KeySwitch(ct)

	got, err := lwe.Decrypt(sOut, switched)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestGenSecretKeyExactHammingWeight(t *testing.T) {
	const q = 769
	const dimension = 16
	const weight = 8

	src := prng.NewSource(prng.NewSeed())
	sk := lwe.GenSecretKey(dimension, weight, q, src)

	nonzero := 0
	for _, c := range sk.Coeffs {
		switch c {
		case 0:
		case 1, q - 1:
			nonzero++
		default:
			t.Fatalf("coefficient %d is not a trit", c)
		}
	}
	require.Equal(t, weight, nonzero)
}
