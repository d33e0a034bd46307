package rlwe

import "github.com/latticefhe/mpctfhe/ring"

// Evaluator applies automorphism key switches to RLWE ciphertexts, the
// operation the blind-rotation loop in package pbs alternates with RGSW
// external products.
type Evaluator struct {
	R   *ring.Ring
	Dec *ring.Decomposer
}

// NewEvaluator returns an Evaluator bound to ring r using decomposer dec for
// the Galois key's gadget rows.
func NewEvaluator(r *ring.Ring, dec *ring.Decomposer) *Evaluator {
	return &Evaluator{R: r, Dec: dec}
}

// Automorphism applies X -> X^{gk.GaloisElement} to ct and key-switches the
// result back to the secret key that generated gk, so the output is again
// decryptable under the original secret. A trivial ciphertext has no mask
// to key-switch, so only B is permuted and the output stays trivial.
func (e *Evaluator) Automorphism(ct *Ciphertext, gk *GaloisKey) *Ciphertext {
	r := e.R
	rotA := r.NewPoly()
	rotB := r.NewPoly()
	r.Automorphism(ct.B, int(gk.GaloisElement), rotB)
	if ct.IsTrivial {
		return &Ciphertext{A: rotA, B: rotB, IsTrivial: true}
	}
	r.Automorphism(ct.A, int(gk.GaloisElement), rotA)

	accA := r.NewPoly()
	accB := rotB // the rotated B term carries over unchanged; only A is re-linearized

	digits := make([]ring.Poly, e.Dec.Count)
	for i := range digits {
		digits[i] = r.NewPoly()
	}
	e.Dec.Decompose(r, rotA, digits)

	for level, digit := range digits {
		row := gk.Key.Rows[level]

		digitNTT := digit.CopyNew()
		r.MFormPoly(digitNTT)
		r.NTT(digitNTT)

		rowANTT, rowBNTT := row.A.CopyNew(), row.B.CopyNew()
		r.NTT(rowANTT)
		r.NTT(rowBNTT)

		prodA := r.NewPoly()
		r.MulCoeffsMontgomery(digitNTT, rowANTT, prodA)
		r.INTT(prodA)

		prodB := r.NewPoly()
		r.MulCoeffsMontgomery(digitNTT, rowBNTT, prodB)
		r.INTT(prodB)

		r.Add(accA, prodA, accA)
		r.Add(accB, prodB, accB)
	}

	return &Ciphertext{A: accA, B: accB}
}
