package rgsw_test

import (
	"testing"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rgsw"
	"github.com/latticefhe/mpctfhe/rlwe"
	"github.com/stretchr/testify/require"
)

func TestExternalProductMultipliesPlaintexts(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	const sigma = 0.0
	kg := rlwe.NewKeyGenerator(r, sigma, src)
	sk := kg.GenSecretKey()

	dec := ring.NewDecomposer(8, 5, r.Q)
	rgswEnc := rgsw.NewEncryptor(r, dec, sigma, src)
	rlweEnc := rlwe.NewEncryptor(r, sigma, src)
	dcr := rlwe.NewDecryptor(r)
	ev := rgsw.NewEvaluator(r, dec)

	// m1 = X^0 (the constant 1 polynomial): a noise-free RGSW encryption of
	// the multiplicative identity must leave ct unchanged.
	one := r.NewPoly()
	one.Coeffs[0] = 1
	ctRGSW := rgswEnc.Encrypt(sk, one)

	m0 := r.NewPoly()
	m0.Coeffs[0] = 7
	m0.Coeffs[1] = 3
	ct := rlweEnc.EncryptSK(sk, m0)

	out := ev.ExternalProduct(ct, ctRGSW)
	got := dcr.Decrypt(sk, out)

	require.True(t, got.Equal(m0))
}

func TestExternalProductByMonomialRotates(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()

	dec := ring.NewDecomposer(8, 5, r.Q)
	rgswEnc := rgsw.NewEncryptor(r, dec, 0, src)
	rlweEnc := rlwe.NewEncryptor(r, 0, src)
	dcr := rlwe.NewDecryptor(r)
	ev := rgsw.NewEvaluator(r, dec)

	x := r.NewPoly()
	x.Coeffs[1] = 1 // X
	ctRGSW := rgswEnc.Encrypt(sk, x)

	m0 := r.NewPoly()
	m0.Coeffs[0] = 5
	m0.Coeffs[r.N-1] = 9
	ct := rlweEnc.EncryptSK(sk, m0)

	got := dcr.Decrypt(sk, ev.ExternalProduct(ct, ctRGSW))

	want := r.NewPoly()
	r.MulByXPow(m0, 1, want)
	require.True(t, got.Equal(want))
}

func TestEncryptPKExternalProduct(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()
	pk := kg.GenPublicKey(sk)

	dec := ring.NewDecomposer(8, 5, r.Q)
	rgswEnc := rgsw.NewEncryptor(r, dec, 0, src)
	rlweEnc := rlwe.NewEncryptor(r, 0, src)
	dcr := rlwe.NewDecryptor(r)
	ev := rgsw.NewEvaluator(r, dec)

	x := r.NewPoly()
	x.Coeffs[1] = 1
	ctRGSW := rgswEnc.EncryptPK(pk, x)

	m0 := r.NewPoly()
	m0.Coeffs[0] = 7
	ct := rlweEnc.EncryptSK(sk, m0)

	got := dcr.Decrypt(sk, ev.ExternalProduct(ct, ctRGSW))

	want := r.NewPoly()
	r.MulByXPow(m0, 1, want)
	require.True(t, got.Equal(want))
}

// TestMulRGSWFoldsMonomials multiplies RGSW(X) by RGSW(X^2) and checks the
// product behaves as RGSW(X^3) under an external product, the property the
// multi-party aggregation relies on when folding bootstrap-key shares.
func TestMulRGSWFoldsMonomials(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()
	pk := kg.GenPublicKey(sk)

	dec := ring.NewDecomposer(8, 5, r.Q)
	rgswEnc := rgsw.NewEncryptor(r, dec, 0, src)
	rlweEnc := rlwe.NewEncryptor(r, 0, src)
	dcr := rlwe.NewDecryptor(r)
	ev := rgsw.NewEvaluator(r, dec)

	x1 := r.NewPoly()
	x1.Coeffs[1] = 1
	x2 := r.NewPoly()
	x2.Coeffs[2] = 1

	g1 := rgswEnc.EncryptPK(pk, x1)
	g2 := rgswEnc.EncryptPK(pk, x2)
	folded := ev.MulRGSW(g1, g2)

	m0 := r.NewPoly()
	m0.Coeffs[0] = 11
	ct := rlweEnc.EncryptSK(sk, m0)

	got := dcr.Decrypt(sk, ev.ExternalProduct(ct, folded))

	want := r.NewPoly()
	r.MulByXPow(m0, 3, want)
	require.True(t, got.Equal(want))
}

// TestExternalProductTrivialInput checks the trivial fallback: a plain
// encoding with a zero mask takes the B-rows-only gadget product and comes
// back as an ordinary (non-trivial) encryption of m0*m1.
func TestExternalProductTrivialInput(t *testing.T) {
	r, err := ring.NewRing(16, 12289)
	require.NoError(t, err)

	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 0, src)
	sk := kg.GenSecretKey()

	dec := ring.NewDecomposer(8, 5, r.Q)
	rgswEnc := rgsw.NewEncryptor(r, dec, 0, src)
	ev := rgsw.NewEvaluator(r, dec)
	dcr := rlwe.NewDecryptor(r)

	x := r.NewPoly()
	x.Coeffs[1] = 1
	ctRGSW := rgswEnc.Encrypt(sk, x)

	m0 := r.NewPoly()
	m0.Coeffs[0] = 13
	trivial := &rlwe.Ciphertext{A: r.NewPoly(), B: m0.CopyNew(), IsTrivial: true}

	out := ev.ExternalProduct(trivial, ctRGSW)
	require.False(t, out.IsTrivial)

	got := dcr.Decrypt(sk, out)
	want := r.NewPoly()
	r.MulByXPow(m0, 1, want)
	require.True(t, got.Equal(want))
}
