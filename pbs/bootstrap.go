package pbs

import (
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rgsw"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// Evaluator runs the programmable bootstrap over ring R using evaluation
// key evk, the single entry point the bool package's NAND gate drives.
type Evaluator struct {
	R    *ring.Ring
	Qks  uint64
	BQ   uint64
	EF   int // embedding factor 2N/q
	RGSW *rgsw.Evaluator
	Auto *rlwe.Evaluator
	EVK  *EvaluationKeySet
}

// NewEvaluator binds an Evaluator to ring r and evaluation key evk.
func NewEvaluator(r *ring.Ring, qks, bq uint64, rgswDec, autoDec *ring.Decomposer, evk *EvaluationKeySet) *Evaluator {
	return &Evaluator{
		R:    r,
		Qks:  qks,
		BQ:   bq,
		EF:   (2 * r.N) / int(bq),
		RGSW: rgsw.NewEvaluator(r, rgswDec),
		Auto: rlwe.NewEvaluator(r, autoDec),
		EVK:  evk,
	}
}

// Bootstrap evaluates the programmable bootstrap on ctIn (an LWE ciphertext
// of dimension N under the RLWE-extracted secret) against testPoly (a
// lookup table encoded as a polynomial over the ring), returning a fresh
// LWE ciphertext of the same dimension and modulus with noise reset to the
// key-generation floor: mod down, LWE key switch, odd mod down, blind
// rotation, sample extract.
func (ev *Evaluator) Bootstrap(ctIn *lwe.Ciphertext, testPoly ring.Poly) *lwe.Ciphertext {
	r := ev.R
	q := ctIn.Q // == r.Q, the RLWE/output modulus

	// mod down Q -> Qks
	ksIn := lwe.NewCiphertext(len(ctIn.A), ev.Qks)
	for i, a := range ctIn.A {
		ksIn.A[i] = ModSwitch(a, q, ev.Qks)
	}
	ksIn.B = ModSwitch(ctIn.B, q, ev.Qks)

	// key switch RLWE-extracted dimension -> LWE dimension n
	small := ev.EVK.KSK.KeySwitch(ksIn)

	// odd mod down Qks -> q, and discrete-log bucketing
	qBy2 := int(ev.BQ) / 2
	buckets := make([][]int, qBy2)
	for i, a := range small.A {
		odd := ModSwitchOdd(a, ev.Qks, ev.BQ)
		k := ev.EVK.Dlog.Lookup(odd)
		buckets[k] = append(buckets[k], i)
	}
	oddB := ModSwitchOdd(small.B, ev.Qks, ev.BQ)

	// trivial RLWE encoding of the test polynomial rotated by X^{g*b}. The
	// test polynomial lives in the q/2-degree subring embedded at stride EF,
	// so the rotation exponent scales by EF too; EF*q = 2N, which lets
	// MulByXPow's negacyclic wraparound absorb the X^{q/2} = -1 sign flip.
	g := ev.EVK.G
	gTimesB := (g * oddB) % ev.BQ

	shifted := r.NewPoly()
	r.MulByXPow(testPoly, ev.EF*int(gTimesB), shifted)

	acc := &rlwe.Ciphertext{A: r.NewPoly(), B: shifted, IsTrivial: true}

	ev.blindRotate(acc, buckets)

	return rlwe.SampleExtract(r, acc, 0)
}

// blindRotate runs the three-phase LMKC+ window schedule over acc:
// negative half (k = q/4..q/2), the k=0 bucket, then the positive half
// (k = 0..q/4), each followed by a windowed automorphism once enough
// consecutive steps have accumulated.
func (ev *Evaluator) blindRotate(acc *rlwe.Ciphertext, buckets [][]int) {
	qBy4 := int(ev.BQ) / 4
	w := ev.EVK.W

	v := 0
	for i := qBy4 - 1; i >= 1; i-- {
		ev.applyBucket(acc, buckets[qBy4+i])
		v++
		if len(buckets[qBy4+i-1]) != 0 || v == w || i == 1 {
			ev.applyAuto(acc, v)
			v = 0
		}
	}

	ev.applyBucket(acc, buckets[qBy4])
	ev.applyAuto(acc, 0)

	v = 0
	for i := qBy4 - 1; i >= 1; i-- {
		ev.applyBucket(acc, buckets[i])
		v++
		if len(buckets[i-1]) != 0 || v == w || i == 1 {
			ev.applyAuto(acc, v)
			v = 0
		}
	}
	ev.applyBucket(acc, buckets[0])
}

func (ev *Evaluator) applyBucket(acc *rlwe.Ciphertext, indices []int) {
	for _, idx := range indices {
		brk := ev.EVK.BootstrapKeys[idx]
		*acc = *ev.RGSW.ExternalProduct(acc, brk)
	}
}

func (ev *Evaluator) applyAuto(acc *rlwe.Ciphertext, v int) {
	gk := ev.EVK.AutoKeys[v]
	*acc = *ev.Auto.Automorphism(acc, gk)
}
