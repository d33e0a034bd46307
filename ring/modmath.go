// Package ring implements single-modulus polynomial ring arithmetic over
// Z_Q[X]/(X^N+1): negacyclic NTT, Barrett/Montgomery reduction, Shoup-form
// fused multiply-add, and signed balanced gadget decomposition.
package ring

import (
	"math/big"
	"math/bits"
)

// BRedConstant holds the precomputed Barrett reduction constant for a modulus Q.
// It is the pair of 64-bit words of floor(2^128 / Q).
type BRedConstant [2]uint64

// GetBRedConstant returns the Barrett reduction constant for q.
func GetBRedConstant(q uint64) BRedConstant {
	u := new(big.Int).Lsh(big.NewInt(1), 128)
	u.Quo(u, new(big.Int).SetUint64(q))
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(u, mask).Uint64()
	hi := new(big.Int).Rsh(u, 64).Uint64()
	return BRedConstant{lo, hi}
}

// BRed returns x*y mod q using a full 128-bit division. The Barrett
// constant is accepted but not used (nor by [MForm]); the multiply goes
// through [math/bits.Div64], which is exact given that both operands are
// already reduced mod q.
func BRed(x, y, q uint64, _ BRedConstant) uint64 {
	hi, lo := bits.Mul64(x, y)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// BRedAdd reduces x, assumed to be in [0, 2q), into [0, q).
func BRedAdd(x, q uint64, _ BRedConstant) uint64 {
	if x >= q {
		return x - q
	}
	return x
}

// CRed conditionally subtracts q from x if x >= q.
func CRed(x, q uint64) uint64 {
	if x >= q {
		return x - q
	}
	return x
}

// GetMRedConstant returns the Montgomery reduction constant -q^{-1} mod 2^64 for odd q.
func GetMRedConstant(q uint64) uint64 {
	r := new(big.Int).Lsh(big.NewInt(1), 64)
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(q), r)
	if inv == nil {
		panic("ring: modulus must be odd to compute a Montgomery constant")
	}
	neg := new(big.Int).Sub(r, inv)
	return neg.Uint64()
}

// MRed computes x*y*2^{-64} mod q (Montgomery multiplication), where q is odd
// and mredConstant = GetMRedConstant(q).
func MRed(x, y, q, mredConstant uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	m := lo * mredConstant
	hi2, lo2 := bits.Mul64(m, q)
	_, carry := bits.Add64(lo, lo2, 0)
	t := hi + hi2 + carry
	if t >= q {
		t -= q
	}
	return t
}

// MForm maps x into the Montgomery domain: x*2^64 mod q.
func MForm(x, q uint64, brc BRedConstant) uint64 {
	hi, lo := bits.Mul64(x, 1<<63)
	hi, lo = shl1(hi, lo)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

// shl1 shifts the 128-bit value (hi,lo) left by one bit.
func shl1(hi, lo uint64) (uint64, uint64) {
	newHi := (hi << 1) | (lo >> 63)
	newLo := lo << 1
	return newHi, newLo
}

// IMForm maps x out of the Montgomery domain: x*2^{-64} mod q.
func IMForm(x, q, mredConstant uint64) uint64 {
	return MRed(x, 1, q, mredConstant)
}

// ShoupConstant is the precomputed hi-word multiplier enabling a fused
// multiply-add with a single 128-bit intermediate (spec 4.1).
type ShoupConstant uint64

// GetShoupConstant returns floor(y * 2^64 / q), the Shoup-form precomputation for y.
func GetShoupConstant(y, q uint64) ShoupConstant {
	num := new(big.Int).Lsh(new(big.Int).SetUint64(y), 64)
	num.Quo(num, new(big.Int).SetUint64(q))
	return ShoupConstant(num.Uint64())
}

// MulShoup returns x*y mod q given the Shoup-form precomputation of y.
func MulShoup(x, y uint64, yShoup ShoupConstant, q uint64) uint64 {
	hi, _ := bits.Mul64(x, uint64(yShoup))
	r := x*y - hi*q
	if r >= q {
		r -= q
	}
	return r
}

// MulAddShoup computes acc += x*y mod q given the Shoup-form precomputation of y.
func MulAddShoup(x, y uint64, yShoup ShoupConstant, q uint64, acc uint64) uint64 {
	return CRed(acc+MulShoup(x, y, yShoup, q), q)
}

// ModExp returns x^e mod q.
func ModExp(x, e, q uint64) uint64 {
	brc := GetBRedConstant(q)
	y := uint64(1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			y = BRed(y, x, q, brc)
		}
		x = BRed(x, x, q, brc)
	}
	return y
}

// IsPrime reports whether q is prime, using big.Int's probabilistic test.
func IsPrime(q uint64) bool {
	return new(big.Int).SetUint64(q).ProbablyPrime(40)
}
