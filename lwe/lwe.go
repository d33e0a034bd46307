// Package lwe implements plain (non-ring) LWE ciphertexts: the bootstrap
// input/output type and the key switch that moves a ciphertext from the
// RLWE secret's dimension down to the small LWE dimension n.
package lwe

import (
	"fmt"
	"math/bits"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/internal/wire"
)

// Ciphertext is an LWE encryption b - <a,s> = m + e mod Q, carried as the
// mask vector A (length equal to the secret dimension) and the body B.
type Ciphertext struct {
	Q uint64
	A []uint64
	B uint64
}

// NewCiphertext allocates a zero ciphertext for a secret of the given dimension.
func NewCiphertext(dimension int, q uint64) *Ciphertext {
	return &Ciphertext{Q: q, A: make([]uint64, dimension)}
}

// SecretKey is a plain LWE secret, one coefficient per dimension, drawn
// from {q-1,0,1} (a ternary secret encoded modulo q).
type SecretKey struct {
	Coeffs []uint64
}

// GenSecretKey draws a ternary secret of the given dimension and exact
// Hamming weight under modulus q.
func GenSecretKey(dimension, hammingWeight int, q uint64, src *prng.Source) *SecretKey {
	return &SecretKey{Coeffs: src.TernaryFixedWeight(dimension, hammingWeight, q)}
}

// SecretKeyFromCoeffs wraps an existing coefficient vector (e.g. an RLWE
// secret's polynomial coefficients, viewed as the "extracted" LWE secret at
// the ring dimension) as a SecretKey, copying it so the two do not alias.
func SecretKeyFromCoeffs(coeffs []uint64) *SecretKey {
	cp := make([]uint64, len(coeffs))
	copy(cp, coeffs)
	return &SecretKey{Coeffs: cp}
}

// Encrypt encrypts m (already scaled into the plaintext slot of modulus Q) under sk.
func Encrypt(sk *SecretKey, m uint64, q uint64, sigma float64, src *prng.Source) *Ciphertext {
	n := len(sk.Coeffs)
	ct := NewCiphertext(n, q)
	a := src.Uniform(n, q)
	copy(ct.A, a)
	e := src.DiscreteGaussian(1, sigma, q)[0]
	acc := m + e
	for i, ai := range a {
		acc = addMod(acc, mulMod(ai, sk.Coeffs[i], q), q)
	}
	ct.B = acc
	return ct
}

// Decrypt recovers the noisy plaintext slot m+e from ct under sk.
func Decrypt(sk *SecretKey, ct *Ciphertext) (uint64, error) {
	if len(sk.Coeffs) != len(ct.A) {
		return 0, fmt.Errorf("lwe: secret dimension %d does not match ciphertext dimension %d", len(sk.Coeffs), len(ct.A))
	}
	q := ct.Q
	acc := ct.B
	for i, ai := range ct.A {
		acc = subMod(acc, mulMod(ai, sk.Coeffs[i], q), q)
	}
	return acc, nil
}

func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q {
		s -= q
	}
	return s
}

func subMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + q - b
}

func mulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// WriteTo serializes ct's mask and body, the wire format shared with the
// protocol shares of package mhe.
func (ct *Ciphertext) WriteTo(w wire.Writer) (int64, error) {
	var total int64
	n, err := w.WriteUint64(ct.Q)
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.WriteUint64Slice(ct.A)
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.WriteUint64(ct.B)
	total += n
	return total, err
}

// ReadFrom reconstructs ct from a stream written by WriteTo.
func (ct *Ciphertext) ReadFrom(r wire.Reader) (int64, error) {
	var total int64
	n, err := r.ReadUint64(&ct.Q)
	total += n
	if err != nil {
		return total, err
	}
	var length uint64
	// peek the slice length the way ReadUint64Slice expects: since ct.A's
	// length is fixed by the caller via NewCiphertext, read it directly if
	// already sized, otherwise discover it first.
	if len(ct.A) == 0 {
		if n, err = r.ReadUint64(&length); err != nil {
			total += n
			return total, err
		}
		total += n
		ct.A = make([]uint64, length)
		for i := range ct.A {
			if n, err = r.ReadUint64(&ct.A[i]); err != nil {
				total += n
				return total, err
			}
			total += n
		}
	} else {
		if n, err = r.ReadUint64Slice(ct.A); err != nil {
			total += n
			return total, err
		}
		total += n
	}
	n, err = r.ReadUint64(&ct.B)
	total += n
	return total, err
}
