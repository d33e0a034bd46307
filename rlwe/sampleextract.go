package rlwe

import (
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/ring"
)

// SampleExtract extracts the LWE ciphertext encrypting coefficient `index`
// of ct's plaintext slot under the RLWE secret viewed as an LWE secret of
// dimension N, negating and reversing the remaining coefficients of A as
// negacyclic extraction requires. This is the same operation PBS performs
// on its accumulator, exported here so that public-key RLWE encryptions can
// be turned into gate-ready LWE ciphertexts without going through a
// bootstrap.
func SampleExtract(r *ring.Ring, ct *Ciphertext, index int) *lwe.Ciphertext {
	n := r.N
	q := r.Q
	out := lwe.NewCiphertext(n, q)
	a := ct.A.Coeffs
	for i := 0; i <= index; i++ {
		out.A[i] = a[index-i]
	}
	for i := index + 1; i < n; i++ {
		v := a[n+index-i]
		if v == 0 {
			out.A[i] = 0
		} else {
			out.A[i] = q - v
		}
	}
	out.B = ct.B.Coeffs[index]
	return out
}
