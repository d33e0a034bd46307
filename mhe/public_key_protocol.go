package mhe

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// PublicKeyShare is one party's contribution to the collective public
// key: b_i = a*s_i + e_i for the CRS-derived a.
type PublicKeyShare struct {
	Value ring.Poly
}

// PublicKeyProtocol runs the collective public-key generation protocol
// (round 1).
type PublicKeyProtocol struct {
	R     *ring.Ring
	Sigma float64
	CRS   CRS
}

// NewPublicKeyProtocol binds a PublicKeyProtocol to ring r and a shared CRS.
func NewPublicKeyProtocol(r *ring.Ring, sigma float64, crs CRS) *PublicKeyProtocol {
	return &PublicKeyProtocol{R: r, Sigma: sigma, CRS: crs}
}

// Allocate allocates a zero share.
func (p *PublicKeyProtocol) Allocate() *PublicKeyShare {
	return &PublicKeyShare{Value: p.R.NewPoly()}
}

// Gen produces the party's public-key share b_i = a*s_i + e_i under the
// CRS-derived a.
func (p *PublicKeyProtocol) Gen(sk *rlwe.SecretKey, src *prng.Source) *PublicKeyShare {
	r := p.R
	a := p.CRS.Uniform(r, PurposePublicKeyA, 0)
	e := r.NewSampler().Gaussian(src, p.Sigma)

	aNTT, sNTT := a.CopyNew(), sk.Value.CopyNew()
	r.MFormPoly(aNTT)
	r.NTT(aNTT)
	r.NTT(sNTT)
	prod := r.NewPoly()
	r.MulCoeffsMontgomery(aNTT, sNTT, prod)
	r.INTT(prod)

	val := r.NewPoly()
	r.Add(prod, e, val)
	return &PublicKeyShare{Value: val}
}

// Aggregate evaluates share3 = share1 + share2.
func (p *PublicKeyProtocol) Aggregate(share1, share2 *PublicKeyShare) *PublicKeyShare {
	out := p.Allocate()
	p.R.Add(share1.Value, share2.Value, out.Value)
	return out
}

// Finalize assembles the collective public key (a, Σ(a*s_i+e_i)) from the
// fully-aggregated share: a fresh zero-encryption under the implicit joint
// secret s = Σ s_i.
func (p *PublicKeyProtocol) Finalize(agg *PublicKeyShare) *rlwe.PublicKey {
	a := p.CRS.Uniform(p.R, PurposePublicKeyA, 0)
	return &rlwe.PublicKey{P0: agg.Value, P1: a}
}
