package rlwe

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
)

// KeyGenerator produces RLWE secret keys, public keys, gadget ciphertexts,
// and Galois (automorphism) keys.
type KeyGenerator struct {
	R     *ring.Ring
	Sigma float64
	Src   *prng.Source
}

// NewKeyGenerator returns a KeyGenerator bound to ring r with noise
// parameter sigma, drawing randomness from src.
func NewKeyGenerator(r *ring.Ring, sigma float64, src *prng.Source) *KeyGenerator {
	return &KeyGenerator{R: r, Sigma: sigma, Src: src}
}

// GenSecretKey draws a fresh ternary secret key of Hamming weight N/2.
func (g *KeyGenerator) GenSecretKey() *SecretKey {
	return &SecretKey{Value: g.R.NewSampler().Ternary(g.Src, g.R.N/2)}
}

// GenPublicKey derives the public key (p0,p1) = (a*s+e, a) for sk: a fresh
// zero-encryption under the module's b = a*s + e + m convention.
func (g *KeyGenerator) GenPublicKey(sk *SecretKey) *PublicKey {
	r := g.R
	a := r.NewSampler().Uniform(g.Src)
	e := r.NewSampler().Gaussian(g.Src, g.Sigma)

	aNTT, sNTT := a.CopyNew(), sk.Value.CopyNew()
	r.MFormPoly(aNTT)
	r.NTT(aNTT)
	r.NTT(sNTT)
	prodNTT := r.NewPoly()
	r.MulCoeffsMontgomery(aNTT, sNTT, prodNTT)
	r.INTT(prodNTT)

	p0 := r.NewPoly()
	r.Add(prodNTT, e, p0)
	return &PublicKey{P0: p0, P1: a}
}

// encryptUnderSecret encrypts plaintext m under sk, writing a fresh ciphertext.
func (g *KeyGenerator) encryptUnderSecret(sk *SecretKey, m ring.Poly) *Ciphertext {
	r := g.R
	a := r.NewSampler().Uniform(g.Src)
	e := r.NewSampler().Gaussian(g.Src, g.Sigma)

	aNTT, sNTT := a.CopyNew(), sk.Value.CopyNew()
	r.MFormPoly(aNTT)
	r.NTT(aNTT)
	r.NTT(sNTT)
	prodNTT := r.NewPoly()
	r.MulCoeffsMontgomery(aNTT, sNTT, prodNTT)
	r.INTT(prodNTT)

	b := r.NewPoly()
	r.Add(prodNTT, e, b)
	r.Add(b, m, b)
	return &Ciphertext{A: a, B: b}
}

// GenGadgetCiphertext encrypts, under sk, the Count rows β_i * m for the
// gadget vector of dec, used both for relinearization-style keys and as one
// half of an RGSW ciphertext.
func (g *KeyGenerator) GenGadgetCiphertext(sk *SecretKey, m ring.Poly, dec *ring.Decomposer) *GadgetCiphertext {
	r := g.R
	gadget := dec.GadgetVector(r)
	gc := NewGadgetCiphertext(r, dec.Count)

	mNTT := m.CopyNew()
	r.MFormPoly(mNTT)
	r.NTT(mNTT)

	for l := 0; l < dec.Count; l++ {
		scaled := r.NewPoly()
		for i := range scaled.Coeffs {
			scaled.Coeffs[i] = ring.MRed(mNTT.Coeffs[i], gadget[l], r.Q, r.MRedConstant)
		}
		r.INTT(scaled)
		r.IMFormPoly(scaled)
		gc.Rows[l] = g.encryptUnderSecret(sk, scaled)
	}
	return gc
}

// GenGaloisKey builds the automorphism key switch X -> X^galEl: a gadget
// ciphertext encrypting, per digit, -s(X^galEl), the key that key-switches
// RLWE_{s(X^k)}(m(X^k)) back to RLWE_{s(X)}(m(X^k)).
func (g *KeyGenerator) GenGaloisKey(sk *SecretKey, galEl uint64, dec *ring.Decomposer) *GaloisKey {
	r := g.R
	rotatedSk := r.NewPoly()
	r.Automorphism(sk.Value, int(galEl), rotatedSk)
	negRotatedSk := r.NewPoly()
	r.Neg(rotatedSk, negRotatedSk)
	return &GaloisKey{
		GaloisElement: galEl,
		Key:           g.GenGadgetCiphertext(sk, negRotatedSk, dec),
	}
}
