package rlwe

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
)

// Encryptor encrypts plaintexts under either a secret key or a public key.
type Encryptor struct {
	R   *ring.Ring
	Sig float64
	Src *prng.Source
}

// NewEncryptor returns an Encryptor bound to ring r.
func NewEncryptor(r *ring.Ring, sigma float64, src *prng.Source) *Encryptor {
	return &Encryptor{R: r, Sig: sigma, Src: src}
}

// EncryptSK encrypts m under sk: (a, a*s+e+m).
func (enc *Encryptor) EncryptSK(sk *SecretKey, m ring.Poly) *Ciphertext {
	kg := &KeyGenerator{R: enc.R, Sigma: enc.Sig, Src: enc.Src}
	return kg.encryptUnderSecret(sk, m)
}

// EncryptPK encrypts m under public key pk using an ephemeral ternary u of
// Hamming weight N/2: (p1*u+e1, p0*u+e0+m).
func (enc *Encryptor) EncryptPK(pk *PublicKey, m ring.Poly) *Ciphertext {
	r := enc.R
	u := r.NewSampler().Ternary(enc.Src, r.N/2)
	e0 := r.NewSampler().Gaussian(enc.Src, enc.Sig)
	e1 := r.NewSampler().Gaussian(enc.Src, enc.Sig)

	uNTT := u.CopyNew()
	r.MFormPoly(uNTT)
	r.NTT(uNTT)

	p0NTT, p1NTT := pk.P0.CopyNew(), pk.P1.CopyNew()
	r.NTT(p0NTT)
	r.NTT(p1NTT)

	a := mulNTTToCoeffs(r, p1NTT, uNTT)
	r.Add(a, e1, a)

	b := mulNTTToCoeffs(r, p0NTT, uNTT)
	r.Add(b, e0, b)
	r.Add(b, m, b)

	return &Ciphertext{A: a, B: b}
}

// mulNTTToCoeffs multiplies two polynomials already in the NTT domain
// (xNTT in plain NTT-domain form, yMontNTT already in Montgomery form) and
// returns the product in the coefficient domain.
func mulNTTToCoeffs(r *ring.Ring, xNTT, yMontNTT ring.Poly) ring.Poly {
	out := r.NewPoly()
	r.MulCoeffsMontgomery(xNTT, yMontNTT, out)
	r.INTT(out)
	return out
}

// Decryptor recovers the noisy message b - a*s from a ciphertext.
type Decryptor struct {
	R *ring.Ring
}

// NewDecryptor returns a Decryptor bound to r.
func NewDecryptor(r *ring.Ring) *Decryptor {
	return &Decryptor{R: r}
}

// Decrypt returns the plaintext polynomial m+e = B - A*s.
func (d *Decryptor) Decrypt(sk *SecretKey, ct *Ciphertext) ring.Poly {
	r := d.R
	aNTT, sNTT := ct.A.CopyNew(), sk.Value.CopyNew()
	r.MFormPoly(aNTT)
	r.NTT(aNTT)
	r.NTT(sNTT)
	prodNTT := r.NewPoly()
	r.MulCoeffsMontgomery(aNTT, sNTT, prodNTT)
	r.INTT(prodNTT)

	out := r.NewPoly()
	r.Sub(ct.B, prodNTT, out)
	return out
}
