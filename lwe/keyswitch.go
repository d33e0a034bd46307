package lwe

import (
	"github.com/latticefhe/mpctfhe/ring"
)

// KeySwitchKey holds, for every input-dimension coefficient i and every
// gadget digit level, an encryption of -β_level*s_in[i] under the output
// secret, enabling KeySwitch to move a ciphertext from the input secret's
// dimension to the output secret's dimension one coefficient at a time.
type KeySwitchKey struct {
	Decomposer *ring.Decomposer
	// Rows[i][level] is an encryption of (-base^level * s_in[i]) under s_out,
	// of the same shape as a Ciphertext over the output dimension.
	Rows [][]*Ciphertext
}

// GenKeySwitchKey builds a key-switch key from sIn (dimension nIn) to sOut
// (dimension nOut, modulus q), using base/count gadget digits.
func GenKeySwitchKey(sIn *SecretKey, sOut *SecretKey, q uint64, base uint64, count int, sigma float64, src interface {
	Uniform(int, uint64) []uint64
	DiscreteGaussian(int, float64, uint64) []uint64
}) *KeySwitchKey {
	dec := ring.NewDecomposer(base, count, q)
	rows := make([][]*Ciphertext, len(sIn.Coeffs))
	scale := uint64(1)
	scales := make([]uint64, count)
	for l := 0; l < count; l++ {
		scales[l] = scale
		scale = mulMod(scale, base, q)
	}
	for i, si := range sIn.Coeffs {
		row := make([]*Ciphertext, count)
		for l := 0; l < count; l++ {
			m := mulMod(subMod(0, si, q), scales[l], q)
			ct := NewCiphertext(len(sOut.Coeffs), q)
			a := src.Uniform(len(sOut.Coeffs), q)
			copy(ct.A, a)
			e := src.DiscreteGaussian(1, sigma, q)[0]
			acc := addMod(m, e, q)
			for j, aj := range a {
				acc = addMod(acc, mulMod(aj, sOut.Coeffs[j], q), q)
			}
			ct.B = acc
			row[l] = ct
		}
		rows[i] = row
	}
	return &KeySwitchKey{Decomposer: dec, Rows: rows}
}

// KeySwitch moves ct (under the key-switch key's input secret) to an
// equivalent ciphertext under the output secret, by gadget-decomposing
// each input mask coefficient and accumulating the corresponding
// key-switch rows.
func (k *KeySwitchKey) KeySwitch(ct *Ciphertext) *Ciphertext {
	q := ct.Q
	out := NewCiphertext(len(k.Rows[0][0].A), q)
	out.B = ct.B
	base := int64(k.Decomposer.Base)
	count := k.Decomposer.Count
	half := base / 2
	for i, ai := range ct.A {
		carry := int64(ai)
		if ai > q>>1 {
			carry = int64(ai) - int64(q)
		}
		for l := 0; l < count; l++ {
			d := carry % base
			if d < 0 {
				d += base
			}
			if d > half || (d == half && carry < 0) {
				d -= base
			}
			carry = (carry - d) / base
			if d == 0 {
				continue
			}
			var digit uint64
			if d < 0 {
				digit = q - uint64(-d)
			} else {
				digit = uint64(d)
			}
			row := k.Rows[i][l]
			dShoup := ring.GetShoupConstant(digit, q)
			for j := range out.A {
				out.A[j] = ring.MulAddShoup(row.A[j], digit, dShoup, q, out.A[j])
			}
			out.B = ring.MulAddShoup(row.B, digit, dShoup, q, out.B)
		}
	}
	return out
}
