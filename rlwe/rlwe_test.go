package rlwe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

func testRing(t *testing.T) *ring.Ring {
	t.Helper()
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)
	return r
}

func TestSecretKeyEncryptDecrypt(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()

	m := r.NewSampler().Uniform(src)
	ct := rlwe.NewEncryptor(r, 0, src).EncryptSK(sk, m)
	got := rlwe.NewDecryptor(r).Decrypt(sk, ct)
	require.True(t, got.Equal(m))
}

func TestPublicKeyEncryptDecrypt(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()
	pk := kg.GenPublicKey(sk)

	m := r.NewPoly()
	m.Coeffs[0] = 1536
	m.Coeffs[7] = r.Q - 9

	ct := rlwe.NewEncryptor(r, 0, src).EncryptPK(pk, m)
	got := rlwe.NewDecryptor(r).Decrypt(sk, ct)
	require.True(t, got.Equal(m))
}

// TestAutomorphismMapsPlaintext checks decrypt(auto_k(ct)) == m(X^k) for
// the odd exponents the blind-rotation schedule uses.
func TestAutomorphismMapsPlaintext(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()
	dec := ring.NewDecomposer(8, 5, r.Q)

	m := r.NewSampler().Uniform(src)
	for _, k := range []uint64{3, 5, 27, 31} {
		gk := kg.GenGaloisKey(sk, k, dec)
		ct := rlwe.NewEncryptor(r, 0, src).EncryptSK(sk, m)

		rotated := rlwe.NewEvaluator(r, dec).Automorphism(ct, gk)
		got := rlwe.NewDecryptor(r).Decrypt(sk, rotated)

		want := r.NewPoly()
		r.Automorphism(m, int(k), want)
		require.True(t, got.Equal(want), "automorphism X -> X^%d", k)
	}
}

// TestSampleExtractMatchesCoefficient checks that the extracted LWE
// ciphertext decrypts to the chosen coefficient of the RLWE plaintext under
// the coefficient view of the RLWE secret.
func TestSampleExtractMatchesCoefficient(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()

	m := r.NewSampler().Uniform(src)
	ct := rlwe.NewEncryptor(r, 0, src).EncryptSK(sk, m)

	skLWE := lwe.SecretKeyFromCoeffs(sk.Value.Coeffs)
	for _, idx := range []int{0, 1, r.N - 1} {
		out := rlwe.SampleExtract(r, ct, idx)
		got, err := lwe.Decrypt(skLWE, out)
		require.NoError(t, err)
		require.Equal(t, m.Coeffs[idx], got)
	}
}
