package rgsw

import (
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// Evaluator computes RLWE x RGSW external products, the primitive the
// blind-rotation loop in package pbs iterates.
type Evaluator struct {
	R   *ring.Ring
	Dec *ring.Decomposer
}

// NewEvaluator returns an Evaluator bound to ring r using decomposer dec
// for both operand digits (one decomposer is shared by the A and B rows).
func NewEvaluator(r *ring.Ring, dec *ring.Decomposer) *Evaluator {
	return &Evaluator{R: r, Dec: dec}
}

// ExternalProduct computes ctOut = ct ⊠ ctRGSW, i.e. an RLWE encryption of
// m0*m1 where ct encrypts m0 and ctRGSW encrypts m1, via
//
//	Σ decompose(ct.A)[i] * RGSW.RowsA[i]  +  Σ decompose(ct.B)[i] * RGSW.RowsB[i]
//
// A trivial input (mask identically zero) falls back to the ordinary
// gadget product over the B rows alone, and the result carries a nonzero
// mask, so its non-trivial flag is set.
func (ev *Evaluator) ExternalProduct(ct *rlwe.Ciphertext, ctRGSW *Ciphertext) *rlwe.Ciphertext {
	r := ev.R
	accA := r.NewPoly()
	accB := r.NewPoly()

	if !ct.IsTrivial {
		ev.accumulate(ct.A, ctRGSW.RowsA, accA, accB)
	}
	ev.accumulate(ct.B, ctRGSW.RowsB, accA, accB)

	return &rlwe.Ciphertext{A: accA, B: accB, IsTrivial: false}
}

// MulRGSW computes RGSW(m1*m2) from RGSW(m1) and RGSW(m2) under the same
// secret by pushing every RLWE row of ct1 through an external product with
// ct2. Multi-party aggregation folds bootstrap-key shares with it. Noise
// grows with each fold, so callers chain it once per party, not per gate.
func (ev *Evaluator) MulRGSW(ct1, ct2 *Ciphertext) *Ciphertext {
	mulRows := func(gc *rlwe.GadgetCiphertext) *rlwe.GadgetCiphertext {
		out := &rlwe.GadgetCiphertext{Rows: make([]*rlwe.Ciphertext, len(gc.Rows))}
		for l, row := range gc.Rows {
			out.Rows[l] = ev.ExternalProduct(row, ct2)
		}
		return out
	}
	return &Ciphertext{RowsA: mulRows(ct1.RowsA), RowsB: mulRows(ct1.RowsB)}
}

// accumulate decomposes op into ev.Dec's digits and adds, for each digit
// level, digit * rows[level] (an RLWE ciphertext) into (accA, accB).
func (ev *Evaluator) accumulate(op ring.Poly, gc *rlwe.GadgetCiphertext, accA, accB ring.Poly) {
	r := ev.R
	digits := make([]ring.Poly, ev.Dec.Count)
	for i := range digits {
		digits[i] = r.NewPoly()
	}
	ev.Dec.Decompose(r, op, digits)

	for level, digit := range digits {
		row := gc.Rows[level]

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
}
