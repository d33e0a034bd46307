package bool

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// EncryptPK encrypts a plaintext bit under the collective RLWE public key
// pk, for parties that hold the joint public key but not the joint secret.
// It builds a trivial RLWE plaintext with the ±Q/8 gate encoding at
// coefficient 0, encrypts it under pk, and sample-extracts coefficient 0
// into a gate-ready FheBool, so client-submitted ciphertexts need no
// bootstrap to become valid gate inputs.
func EncryptPK(r *ring.Ring, pk *rlwe.PublicKey, sigma float64, bit bool, src *prng.Source) FheBool {
	q := r.Q
	delta := q / 8
	m := delta
	if !bit {
		m = q - delta
	}
	plaintext := r.NewPoly()
	plaintext.Coeffs[0] = m

	enc := rlwe.NewEncryptor(r, sigma, src)
	ct := enc.EncryptPK(pk, plaintext)
	return FheBool{CT: rlwe.SampleExtract(r, ct, 0)}
}
