// Package rlwe implements single-modulus RLWE ciphertexts, plaintexts,
// keys, and the encryption/evaluation operations (gadget product,
// automorphism, key switch) that the rgsw and pbs packages build on.
package rlwe

import (
	"fmt"

	"github.com/latticefhe/mpctfhe/internal/wire"
	"github.com/latticefhe/mpctfhe/ring"
)

// SecretKey is an RLWE secret polynomial with ternary coefficients.
type SecretKey struct {
	Value ring.Poly
}

// PublicKey is an RLWE public key (p0, p1) = (a*s+e, a): a zero-encryption
// under this module's b = a*s + e + m convention (a collective key when s is
// the sum of party shares, see package mhe).
type PublicKey struct {
	P0, P1 ring.Poly
}

// Ciphertext is an RLWE encryption (A, B) with B = A*s + e + m. IsTrivial
// marks a ciphertext whose mask A is identically zero (a plain encoding,
// e.g. the blind-rotation accumulator before its first external product);
// gadget-product consumers skip the mask half while it is set. The flag is
// runtime-only and does not travel on the wire: deserialized ciphertexts
// are treated as non-trivial.
type Ciphertext struct {
	A, B      ring.Poly
	IsTrivial bool
}

// NewCiphertext allocates a zero ciphertext sized for r.
func NewCiphertext(r *ring.Ring) *Ciphertext {
	return &Ciphertext{A: r.NewPoly(), B: r.NewPoly()}
}

// WriteTo serializes ct's two polynomials.
func (ct *Ciphertext) WriteTo(w wire.Writer) (int64, error) {
	n1, err := ct.A.WriteTo(w)
	if err != nil {
		return n1, err
	}
	n2, err := ct.B.WriteTo(w)
	return n1 + n2, err
}

// ReadFrom reconstructs ct's polynomials from a stream written by WriteTo.
// ct.A and ct.B must already be sized (e.g. via NewCiphertext).
func (ct *Ciphertext) ReadFrom(r wire.Reader) (int64, error) {
	n1, err := ct.A.ReadFrom(r)
	if err != nil {
		return n1, err
	}
	n2, err := ct.B.ReadFrom(r)
	return n1 + n2, err
}

// Plaintext wraps a single polynomial carrying an encoded message.
type Plaintext struct {
	Value ring.Poly
}

// NewPlaintext allocates a zero plaintext sized for r.
func NewPlaintext(r *ring.Ring) *Plaintext {
	return &Plaintext{Value: r.NewPoly()}
}

// GadgetCiphertext is a row of gadget-lifted RLWE ciphertexts, one per
// decomposition digit, used both as a key-switch key component and as one
// half of an RGSW ciphertext (rgsw.Ciphertext embeds two of these).
type GadgetCiphertext struct {
	Rows []*Ciphertext
}

// NewGadgetCiphertext allocates count rows sized for r.
func NewGadgetCiphertext(r *ring.Ring, count int) *GadgetCiphertext {
	rows := make([]*Ciphertext, count)
	for i := range rows {
		rows[i] = NewCiphertext(r)
	}
	return &GadgetCiphertext{Rows: rows}
}

// WriteTo serializes the gadget rows in digit order.
func (gc *GadgetCiphertext) WriteTo(w wire.Writer) (int64, error) {
	var total int64
	n, err := w.WriteUint64(uint64(len(gc.Rows)))
	total += n
	if err != nil {
		return total, err
	}
	for _, row := range gc.Rows {
		n, err = row.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom reconstructs the gadget rows from a stream written by WriteTo.
// The rows must already be allocated (e.g. via NewGadgetCiphertext).
func (gc *GadgetCiphertext) ReadFrom(r wire.Reader) (int64, error) {
	var total int64
	var count uint64
	n, err := r.ReadUint64(&count)
	total += n
	if err != nil {
		return total, err
	}
	if int(count) != len(gc.Rows) {
		return total, fmt.Errorf("rlwe: gadget ciphertext has %d rows, stream carries %d", len(gc.Rows), count)
	}
	for _, row := range gc.Rows {
		n, err = row.ReadFrom(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// GaloisKey is the automorphism key switch for X -> X^GaloisElement.
type GaloisKey struct {
	GaloisElement uint64
	Key           *GadgetCiphertext
}
