// Package bool implements the Boolean gate layer over the LWE ciphertexts
// produced by package pbs: NAND (and the And/Or/Xor/Xnor/Not gates derived
// from it) built as a linear combination of LWE ciphertexts followed by a
// programmable bootstrap.
package bool

import (
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/pbs"
	"github.com/latticefhe/mpctfhe/ring"
)

// FheBool is an encrypted bit: an LWE ciphertext whose plaintext slot is
// scaled to ±Q/8 (true: +Q/8, false: -Q/8, i.e. 7Q/8), the standard CGGI
// gate-bootstrapping encoding.
type FheBool struct {
	CT *lwe.Ciphertext
}

// Evaluator computes Boolean gates over a pbs.Evaluator.
type Evaluator struct {
	PBS      *pbs.Evaluator
	R        *ring.Ring
	TestPoly ring.Poly // encodes the sign test: +Q/8 on one half-arc, -Q/8 on the other
}

// NewEvaluator builds an Evaluator around a bootstrapping evaluator. The
// test polynomial is built once and reused by every gate.
func NewEvaluator(ev *pbs.Evaluator) *Evaluator {
	return &Evaluator{PBS: ev, R: ev.R, TestPoly: signTestPoly(ev.R, int(ev.BQ), ev.EF)}
}

// signTestPoly builds the test vector that makes PBS evaluate the sign
// function f(phi) = +Q/8 for phi in (0, q/2), -Q/8 otherwise: every one of
// the q/2 slots holds +Q/8, and the negacyclic wraparound of the monomial
// rotation supplies the sign flip on the other half-arc. The generator
// factors of the windowed schedule cancel over a full pass (g has order
// q/4 and the -g step contributes the remaining sign), so no slot
// permutation is needed. Slots embed into the degree-N ring at stride 2N/q.
func signTestPoly(r *ring.Ring, q, embed int) ring.Poly {
	p := r.NewPoly()
	delta := r.Q / 8
	for j := 0; j < q/2; j++ {
		p.Coeffs[j*embed] = delta
	}
	return p
}

// ShallowCopy returns a handle suitable for a different goroutine: the
// server-key material stays shared read-only, the per-call scratch is
// allocated independently by each gate evaluation.
func (e *Evaluator) ShallowCopy() *Evaluator {
	cp := *e
	return &cp
}

// encodeConst returns a trivial ("zero-noise, zero-mask") LWE ciphertext
// encoding the constant plaintext slot value c, used as the additive offset
// every gate mixes in before bootstrapping.
func encodeConst(r *ring.Ring, c uint64) *lwe.Ciphertext {
	ct := lwe.NewCiphertext(r.N, r.Q)
	ct.B = c
	return ct
}

func addCT(r *ring.Ring, a, b *lwe.Ciphertext) *lwe.Ciphertext {
	out := lwe.NewCiphertext(len(a.A), r.Q)
	q := r.Q
	for i := range out.A {
		out.A[i] = addMod(a.A[i], b.A[i], q)
	}
	out.B = addMod(a.B, b.B, q)
	return out
}

func negCT(r *ring.Ring, a *lwe.Ciphertext) *lwe.Ciphertext {
	out := lwe.NewCiphertext(len(a.A), r.Q)
	q := r.Q
	for i, v := range a.A {
		out.A[i] = negMod(v, q)
	}
	out.B = negMod(a.B, q)
	return out
}

func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q {
		s -= q
	}
	return s
}

func negMod(a, q uint64) uint64 {
	if a == 0 {
		return 0
	}
	return q - a
}

// Nand homomorphically evaluates NOT(a AND b): combine the two ciphertexts
// linearly (CGGI's -ctA - ctB + Q/8 offset) and programmable-bootstrap with
// the sign test polynomial, producing a fresh, noise-reset FheBool.
func (e *Evaluator) Nand(a, b FheBool) FheBool {
	r := e.R
	sum := addCT(r, negCT(r, a.CT), negCT(r, b.CT))
	sum = addCT(r, sum, encodeConst(r, r.Q/8))
	return FheBool{CT: e.PBS.Bootstrap(sum, e.TestPoly)}
}

// Not negates a ciphertext without bootstrapping (a linear operation: flip
// the sign of every coefficient).
func (e *Evaluator) Not(a FheBool) FheBool {
	return FheBool{CT: negCT(e.R, a.CT)}
}

// And evaluates a AND b as NOT(NAND(a,b)).
func (e *Evaluator) And(a, b FheBool) FheBool {
	return e.Not(e.Nand(a, b))
}

// Or evaluates a OR b = NAND(NOT a, NOT b).
func (e *Evaluator) Or(a, b FheBool) FheBool {
	return e.Nand(e.Not(a), e.Not(b))
}

// Xor evaluates a XOR b via the standard 4-NAND circuit: XOR(a,b) =
// NAND(NAND(a,NAND(a,b)), NAND(b,NAND(a,b))).
func (e *Evaluator) Xor(a, b FheBool) FheBool {
	n := e.Nand(a, b)
	return e.Nand(e.Nand(a, n), e.Nand(b, n))
}

// Xnor evaluates a XNOR b = NOT(a XOR b).
func (e *Evaluator) Xnor(a, b FheBool) FheBool {
	return e.Not(e.Xor(a, b))
}
