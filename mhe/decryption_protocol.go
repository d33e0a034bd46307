package mhe

import (
	"fmt"
	"math/bits"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/rlwe"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
)

// DecryptionShare is one party's additive contribution toward decrypting
// a jointly-encrypted FheBool.
type DecryptionShare struct {
	Value uint64
}

// DecryptionProtocol runs the collective decryption protocol (every party
// must contribute).
type DecryptionProtocol struct {
	Q     uint64
	Sigma float64
}

// NewDecryptionProtocol binds a DecryptionProtocol to modulus q.
func NewDecryptionProtocol(q uint64, sigma float64) *DecryptionProtocol {
	return &DecryptionProtocol{Q: q, Sigma: sigma}
}

// GenShare computes party i's decryption share d_i = -<ct.A, s_i> + e_i,
// with e_i a fresh flooding term hiding the secret residues.
func (d *DecryptionProtocol) GenShare(sk *rlwe.SecretKey, ct *boolpkg.FheBool, src *prng.Source) (*DecryptionShare, error) {
	if len(sk.Value.Coeffs) != len(ct.CT.A) {
		return nil, fmt.Errorf("mhe: decryption share: %w", ErrShapeMismatch)
	}
	q := d.Q
	acc := uint64(0)
	for i, ai := range ct.CT.A {
		acc = addMod(acc, mulMod(ai, sk.Value.Coeffs[i], q), q)
	}
	acc = subMod(0, acc, q)
	e := uint64(0)
	if d.Sigma > 0 {
		e = (src.DiscreteGaussian(1, d.Sigma, q))[0]
	}
	acc = addMod(acc, e, q)
	return &DecryptionShare{Value: acc}, nil
}

// Aggregate sums decryption shares, adds the ciphertext's body, and
// sign-tests the ±Q/8-encoded result the way bool.ClientKey.Decrypt does
// for the single-party case.
func (d *DecryptionProtocol) Aggregate(ct *boolpkg.FheBool, shares []*DecryptionShare) (bool, error) {
	if len(shares) == 0 {
		return false, fmt.Errorf("mhe: aggregate decryption shares: %w", ErrShareCount)
	}
	q := d.Q
	sum := ct.CT.B
	for _, s := range shares {
		sum = addMod(sum, s.Value, q)
	}
	var centered int64
	if sum > q/2 {
		centered = int64(sum) - int64(q)
	} else {
		centered = int64(sum)
	}
	return centered > 0, nil
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
