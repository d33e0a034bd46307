// Package fheuint8 implements 8-bit unsigned-integer arithmetic on top of
// the bool package's exported gate primitives. Nothing in this package
// reaches into pbs/rgsw/rlwe/ring internals; every operation is an
// ordinary ripple-carry/shift-add circuit expressed through
// bool.Evaluator's gate API.
package fheuint8

import (
	"github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/internal/prng"
)

// FheUint8 is an encrypted byte: 8 FheBool ciphertexts, least-significant
// bit first.
type FheUint8 struct {
	Bits [8]bool.FheBool
}

// ClientKey wraps a bool.ClientKey with byte-wide encrypt/decrypt helpers.
type ClientKey struct {
	*bool.ClientKey
}

// Encrypt encrypts the 8 bits of v LSB-first.
func (ck *ClientKey) Encrypt(v uint8, src *prng.Source) FheUint8 {
	var out FheUint8
	for i := 0; i < 8; i++ {
		bit := (v>>uint(i))&1 == 1
		out.Bits[i] = ck.ClientKey.Encrypt(bit, src)
	}
	return out
}

// Decrypt reconstructs the clear byte from ct, LSB-first.
func (ck *ClientKey) Decrypt(ct FheUint8) (uint8, error) {
	var v uint8
	for i := 0; i < 8; i++ {
		bit, err := ck.ClientKey.Decrypt(ct.Bits[i])
		if err != nil {
			return 0, err
		}
		if bit {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// Evaluator computes 8-bit arithmetic, wrapping a bool.Evaluator the same
// way bool.Evaluator wraps a pbs.Evaluator: every operation bottoms out in
// a handful of Nand-derived gate calls.
type Evaluator struct {
	Bool *bool.Evaluator
}

// NewEvaluator builds an Evaluator around an installed boolean gate evaluator.
func NewEvaluator(ev *bool.Evaluator) *Evaluator {
	return &Evaluator{Bool: ev}
}

// fullAdder returns (sum, carryOut) for a+b+carryIn, the textbook one-bit
// full adder built from the exported gate primitives.
func (e *Evaluator) fullAdder(a, b, carryIn bool.FheBool) (sum, carryOut bool.FheBool) {
	axb := e.Bool.Xor(a, b)
	sum = e.Bool.Xor(axb, carryIn)
	carryOut = e.Bool.Or(e.Bool.And(a, b), e.Bool.And(axb, carryIn))
	return sum, carryOut
}

// AddWithCarry computes a+b+carryIn mod 256 and the final carry-out,
// rippling through 8 full adders LSB-first.
func (e *Evaluator) AddWithCarry(a, b FheUint8, carryIn bool.FheBool) (FheUint8, bool.FheBool) {
	var out FheUint8
	carry := carryIn
	for i := 0; i < 8; i++ {
		out.Bits[i], carry = e.fullAdder(a.Bits[i], b.Bits[i], carry)
	}
	return out, carry
}

// falseLike returns an encryption of false computed from x as x AND NOT x
// (one bootstrapped gate), so the circuits below obtain their constant
// bits, such as the carry-in of Add, from an operand's own ciphertext
// instead of materializing a constant ciphertext.
func (e *Evaluator) falseLike(x bool.FheBool) bool.FheBool {
	return e.Bool.And(x, e.Bool.Not(x))
}

// Add computes a+b mod 256, discarding the carry-out (wrapping
// semantics).
func (e *Evaluator) Add(a, b FheUint8) FheUint8 {
	sum, _ := e.AddWithCarry(a, b, e.falseLike(a.Bits[0]))
	return sum
}

// invert flips every bit of a, the one's-complement half of two's-complement
// negation.
func (e *Evaluator) invert(a FheUint8) FheUint8 {
	var out FheUint8
	for i := range a.Bits {
		out.Bits[i] = e.Bool.Not(a.Bits[i])
	}
	return out
}

// trueLike returns an encrypted true built from x with no plaintext
// constant, mirroring falseLike.
func (e *Evaluator) trueLike(x bool.FheBool) bool.FheBool {
	return e.Bool.Or(x, e.Bool.Not(x))
}

// Sub computes a-b mod 256 (wrapping_sub) via two's complement: a + ^b + 1.
func (e *Evaluator) Sub(a, b FheUint8) FheUint8 {
	nb := e.invert(b)
	sum, _ := e.AddWithCarry(a, nb, e.trueLike(a.Bits[0]))
	return sum
}

// Mul computes a*b mod 256 (wrapping) via the textbook shift-add
// schoolbook multiplier: for each bit i of b, conditionally add (a << i)
// into the accumulator.
func (e *Evaluator) Mul(a, b FheUint8) FheUint8 {
	var acc FheUint8
	for i := range acc.Bits {
		acc.Bits[i] = e.falseLike(a.Bits[0])
	}
	for shift := 0; shift < 8; shift++ {
		var term FheUint8
		for i := 0; i < 8; i++ {
			srcIdx := i - shift
			if srcIdx < 0 {
				term.Bits[i] = e.falseLike(a.Bits[0])
				continue
			}
			term.Bits[i] = e.Bool.And(a.Bits[srcIdx], b.Bits[shift])
		}
		acc = e.Add(acc, term)
	}
	return acc
}

// Eq returns whether a == b (bitwise XNOR reduced by AND).
func (e *Evaluator) Eq(a, b FheUint8) bool.FheBool {
	res := e.Bool.Xnor(a.Bits[0], b.Bits[0])
	for i := 1; i < 8; i++ {
		res = e.Bool.And(res, e.Bool.Xnor(a.Bits[i], b.Bits[i]))
	}
	return res
}

// cmpBits folds the standard MSB-first compare-with-carry chain: at each
// bit position, lt/gt decisions made at a more significant bit dominate the
// result of less significant bits. Returns (lt, gt) of a vs b.
func (e *Evaluator) cmpBits(a, b FheUint8) (lt, gt bool.FheBool) {
	lt = e.falseLike(a.Bits[0])
	gt = e.falseLike(a.Bits[0])
	for i := 7; i >= 0; i-- {
		bitLt := e.Bool.And(e.Bool.Not(a.Bits[i]), b.Bits[i])
		bitGt := e.Bool.And(a.Bits[i], e.Bool.Not(b.Bits[i]))
		eqSoFar := e.Bool.Not(e.Bool.Or(lt, gt))
		lt = e.Bool.Or(lt, e.Bool.And(eqSoFar, bitLt))
		gt = e.Bool.Or(gt, e.Bool.And(eqSoFar, bitGt))
	}
	return lt, gt
}

// Lt returns a < b.
func (e *Evaluator) Lt(a, b FheUint8) bool.FheBool {
	lt, _ := e.cmpBits(a, b)
	return lt
}

// Gt returns a > b.
func (e *Evaluator) Gt(a, b FheUint8) bool.FheBool {
	_, gt := e.cmpBits(a, b)
	return gt
}

// Le returns a <= b = NOT(a > b).
func (e *Evaluator) Le(a, b FheUint8) bool.FheBool {
	return e.Bool.Not(e.Gt(a, b))
}

// Ge returns a >= b = NOT(a < b).
func (e *Evaluator) Ge(a, b FheUint8) bool.FheBool {
	return e.Bool.Not(e.Lt(a, b))
}

// mux selects t when sel is true, f otherwise: sel ? t : f, built from
// gates as (sel AND t) OR (NOT sel AND f).
func (e *Evaluator) mux(sel, t, f bool.FheBool) bool.FheBool {
	return e.Bool.Or(e.Bool.And(sel, t), e.Bool.And(e.Bool.Not(sel), f))
}

func (e *Evaluator) muxByte(sel bool.FheBool, t, f FheUint8) FheUint8 {
	var out FheUint8
	for i := range out.Bits {
		out.Bits[i] = e.mux(sel, t.Bits[i], f.Bits[i])
	}
	return out
}

// DivRem computes the quotient and remainder of a/b by restoring
// division. Division by zero yields quotient 255 and remainder equal to
// the dividend, evaluated obliviously (both branches computed, selected by
// an encrypted mux on "b==0") since the divisor's zero-ness is not known
// in the clear.
func (e *Evaluator) DivRem(a, b FheUint8) (quotient, remainder FheUint8) {
	zero := e.emptyByte(a)
	var rem FheUint8 = zero
	var quo FheUint8 = zero

	for i := 7; i >= 0; i-- {
		rem = e.shiftLeft1In(rem, a.Bits[i])
		ge := e.Ge(rem, b)
		restored := e.Sub(rem, b)
		rem = e.muxByte(ge, restored, rem)
		quo.Bits[i] = ge
	}

	bIsZero := e.isZero(b)
	allOnes := e.allOnesByte(a)
	quotient = e.muxByte(bIsZero, allOnes, quo)
	remainder = e.muxByte(bIsZero, a, rem)
	return quotient, remainder
}

func (e *Evaluator) emptyByte(like FheUint8) FheUint8 {
	var out FheUint8
	for i := range out.Bits {
		out.Bits[i] = e.falseLike(like.Bits[0])
	}
	return out
}

func (e *Evaluator) allOnesByte(like FheUint8) FheUint8 {
	var out FheUint8
	for i := range out.Bits {
		out.Bits[i] = e.trueLike(like.Bits[0])
	}
	return out
}

// shiftLeft1In shifts rem left by one bit (dropping bit 7) and shifts inBit
// into bit 0, the per-step update of the restoring divider's remainder
// register.
func (e *Evaluator) shiftLeft1In(rem FheUint8, inBit bool.FheBool) FheUint8 {
	var out FheUint8
	out.Bits[0] = inBit
	for i := 1; i < 8; i++ {
		out.Bits[i] = rem.Bits[i-1]
	}
	return out
}

// isZero returns whether every bit of v is false.
func (e *Evaluator) isZero(v FheUint8) bool.FheBool {
	res := e.Bool.Not(v.Bits[0])
	for i := 1; i < 8; i++ {
		res = e.Bool.And(res, e.Bool.Not(v.Bits[i]))
	}
	return res
}
