package bool

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/ring"
)

// ClientKey holds the LWE-extracted secret used to encrypt and decrypt
// FheBools.
type ClientKey struct {
	Secret *lwe.SecretKey
	R      *ring.Ring
	Sigma  float64
}

// Encrypt encrypts plaintext bit b under ck, using the ±Q/8 gate-bootstrap
// encoding (true -> +Q/8, false -> -Q/8).
func (ck *ClientKey) Encrypt(b bool, src *prng.Source) FheBool {
	q := ck.R.Q
	delta := q / 8
	m := delta
	if !b {
		m = q - delta
	}
	return FheBool{CT: lwe.Encrypt(ck.Secret, m, q, ck.Sigma, src)}
}

// Decrypt recovers the plaintext bit from fb, rounding the noisy ±Q/8
// encoding to the nearest truth value.
func (ck *ClientKey) Decrypt(fb FheBool) (bool, error) {
	m, err := lwe.Decrypt(ck.Secret, fb.CT)
	if err != nil {
		return false, err
	}
	centered := ck.R.CenterModU64(m)
	return centered > 0, nil
}
