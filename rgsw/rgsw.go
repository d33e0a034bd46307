// Package rgsw implements RGSW ciphertexts and the external product that is
// the core primitive of programmable bootstrapping. An RGSW ciphertext is
// the two-matrix gadget layout RGSW(m) = [RLWE'(-s*m) || RLWE'(m)].
package rgsw

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/internal/wire"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// Ciphertext is an RGSW encryption of a plaintext polynomial m: two gadget
// ciphertexts, RowsA encrypting -s*m and RowsB encrypting m.
type Ciphertext struct {
	RowsA *rlwe.GadgetCiphertext // encrypts -s*m
	RowsB *rlwe.GadgetCiphertext // encrypts m
}

// Encryptor produces RGSW encryptions under a secret key.
type Encryptor struct {
	R   *ring.Ring
	Dec *ring.Decomposer
	KG  *rlwe.KeyGenerator
}

// NewEncryptor returns an Encryptor bound to ring r with gadget decomposer dec.
func NewEncryptor(r *ring.Ring, dec *ring.Decomposer, sigma float64, src *prng.Source) *Encryptor {
	return &Encryptor{R: r, Dec: dec, KG: rlwe.NewKeyGenerator(r, sigma, src)}
}

// Encrypt builds an RGSW encryption of m under sk in the
// [RLWE'(-s*m), RLWE'(m)] layout.
func (e *Encryptor) Encrypt(sk *rlwe.SecretKey, m ring.Poly) *Ciphertext {
	r := e.R
	negSM := negTimesPoly(r, sk.Value, m)
	return &Ciphertext{
		RowsA: e.KG.GenGadgetCiphertext(sk, negSM, e.Dec),
		RowsB: e.KG.GenGadgetCiphertext(sk, m, e.Dec),
	}
}

// EncryptPK builds an RGSW encryption of m under the public key pk: every
// row is a fresh public-key encryption of zero, with β_i*m folded into the
// A component for the RLWE'(-s*m) half and into the B component for the
// RLWE'(m) half. Public-key rows cannot be seeded, so both halves are
// stored in full.
func (e *Encryptor) EncryptPK(pk *rlwe.PublicKey, m ring.Poly) *Ciphertext {
	r := e.R
	enc := rlwe.NewEncryptor(r, e.KG.Sigma, e.KG.Src)
	zero := r.NewPoly()

	scales := make([]uint64, e.Dec.Count)
	acc := uint64(1)
	for l := range scales {
		scales[l] = acc
		acc = ring.BRed(acc, e.Dec.Base, r.Q, r.BRedConstant)
	}

	rowsA := &rlwe.GadgetCiphertext{Rows: make([]*rlwe.Ciphertext, e.Dec.Count)}
	rowsB := &rlwe.GadgetCiphertext{Rows: make([]*rlwe.Ciphertext, e.Dec.Count)}
	for l := 0; l < e.Dec.Count; l++ {
		scaled := r.NewPoly()
		r.MulScalar(m, scales[l], scaled)

		ct := enc.EncryptPK(pk, zero)
		r.Add(ct.A, scaled, ct.A)
		rowsA.Rows[l] = ct

		ct = enc.EncryptPK(pk, zero)
		r.Add(ct.B, scaled, ct.B)
		rowsB.Rows[l] = ct
	}
	return &Ciphertext{RowsA: rowsA, RowsB: rowsB}
}

// WriteTo serializes both gadget halves, RowsA first.
func (ct *Ciphertext) WriteTo(w wire.Writer) (int64, error) {
	n1, err := ct.RowsA.WriteTo(w)
	if err != nil {
		return n1, err
	}
	n2, err := ct.RowsB.WriteTo(w)
	return n1 + n2, err
}

// ReadFrom reconstructs both gadget halves from a stream written by
// WriteTo; the halves must already be allocated.
func (ct *Ciphertext) ReadFrom(r wire.Reader) (int64, error) {
	n1, err := ct.RowsA.ReadFrom(r)
	if err != nil {
		return n1, err
	}
	n2, err := ct.RowsB.ReadFrom(r)
	return n1 + n2, err
}

// negTimesPoly returns -(s*m) mod (X^N+1, Q).
func negTimesPoly(r *ring.Ring, s, m ring.Poly) ring.Poly {
	sNTT, mNTT := s.CopyNew(), m.CopyNew()
	r.MFormPoly(sNTT)
	r.NTT(sNTT)
	r.NTT(mNTT)
	prod := r.NewPoly()
	r.MulCoeffsMontgomery(sNTT, mNTT, prod)
	r.INTT(prod)
	out := r.NewPoly()
	r.Neg(prod, out)
	return out
}
