package rlwe_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/internal/wire"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

func TestCiphertextSerializationRoundTrip(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 3.2, src)
	sk := kg.GenSecretKey()

	m := r.NewSampler().Uniform(src)
	ct := rlwe.NewEncryptor(r, 3.2, src).EncryptSK(sk, m)

	buf := wire.NewBufferSize(16 * r.N)
	_, err := ct.WriteTo(buf)
	require.NoError(t, err)

	decoded := rlwe.NewCiphertext(r)
	_, err = decoded.ReadFrom(wire.NewBuffer(buf.Bytes))
	require.NoError(t, err)

	if diff := cmp.Diff(ct, decoded); diff != "" {
		t.Fatalf("ciphertext round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGadgetCiphertextSerializationRoundTrip(t *testing.T) {
	r := testRing(t)
	src := prng.NewSource(prng.NewSeed())
	kg := rlwe.NewKeyGenerator(r, 3.2, src)
	sk := kg.GenSecretKey()
	dec := ring.NewDecomposer(8, 5, r.Q)

	m := r.NewSampler().Uniform(src)
	gc := kg.GenGadgetCiphertext(sk, m, dec)

	buf := wire.NewBufferSize(16 * r.N * dec.Count)
	_, err := gc.WriteTo(buf)
	require.NoError(t, err)

	decoded := rlwe.NewGadgetCiphertext(r, dec.Count)
	_, err = decoded.ReadFrom(wire.NewBuffer(buf.Bytes))
	require.NoError(t, err)

	if diff := cmp.Diff(gc, decoded); diff != "" {
		t.Fatalf("gadget ciphertext round trip mismatch (-want +got):\n%s", diff)
	}
}
