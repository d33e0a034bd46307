package mhe

import (
	"fmt"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/pbs"
	"github.com/latticefhe/mpctfhe/rgsw"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
)

// GadgetShare carries the seeded half of one automorphism-key share: the
// B polynomial of every gadget row, the A polynomials being CRS-derived
// and regenerated by the aggregator at Finalize.
type GadgetShare struct {
	GaloisElement uint64
	B             []ring.Poly
}

// LWEKskShare carries the seeded half of the LWE key-switch-key share:
// the body scalar of every (source index, digit) row, the mask vectors
// being CRS-derived.
type LWEKskShare struct {
	B [][]uint64
}

// ServerKeyShare is one party's round-2 contribution to the joint server
// key: public-key RGSW encryptions of the party's LWE secret monomials,
// plus additive seeded shares of every automorphism key and of the LWE
// key-switch key. The RGSW part is encrypted under the collective public
// key from round 1, so every party's share decrypts under the same joint
// secret and shares combine by the RGSW product rather than by exposing
// any secret material.
type ServerKeyShare struct {
	UserIDs []int
	Seed    prng.Seed
	Q       uint64

	Brk  []*rgsw.Ciphertext
	Auto map[int]*GadgetShare
	Ksk  *LWEKskShare
}

// ServerKeyProtocol runs the collective bootstrap-key generation protocol
// (interactive round 2).
type ServerKeyProtocol struct {
	Params params.Parameters
	Ctx    *params.Context
	CRS    CRS

	rgswEval *rgsw.Evaluator
}

// NewServerKeyProtocol binds a ServerKeyProtocol to a parameter context and
// a session CRS.
func NewServerKeyProtocol(ctx *params.Context, crs CRS) *ServerKeyProtocol {
	return &ServerKeyProtocol{
		Params:   ctx.Params,
		Ctx:      ctx,
		CRS:      crs,
		rgswEval: rgsw.NewEvaluator(ctx.R, ctx.RGSWDec),
	}
}

// autoSchedule returns the automorphism elements of the window schedule,
// keyed the way the blind rotation looks them up: step v in [1, w] maps to
// g^v mod 2N, and v = 0 maps to -g mod 2N (the sign-flip step between the
// negative and positive halves).
func (p *ServerKeyProtocol) autoSchedule() map[int]uint64 {
	twoN := uint64(2 * p.Ctx.R.N)
	g := uint64(p.Params.G)
	sched := make(map[int]uint64, p.Params.WindowSgn+1)
	for v := 1; v <= p.Params.WindowSgn; v++ {
		sched[v] = ring.ModExp(g, uint64(v), twoN)
	}
	sched[0] = (twoN - g) % twoN
	return sched
}

// Gen produces party userID's full round-2 share against the collective
// public key pk.
func (p *ServerKeyProtocol) Gen(ck *ClientKey, userID int, pk *rlwe.PublicKey, src *prng.Source) *ServerKeyShare {
	return &ServerKeyShare{
		UserIDs: []int{userID},
		Seed:    p.CRS.Seed,
		Q:       p.Ctx.R.Q,
		Brk:     p.GenBootstrapShare(ck, pk, src),
		Auto:    p.GenAutoShares(ck, src),
		Ksk:     p.GenKskShare(ck, src),
	}
}

// GenBootstrapShare encrypts RGSW(X^{e_f * z_i[j]}) under pk for every
// coefficient j of the party's LWE secret share: the multiplicative
// factors the aggregator folds into RGSW(X^{z[j]}) for the joint
// z = Σ z_i.
func (p *ServerKeyProtocol) GenBootstrapShare(ck *ClientKey, pk *rlwe.PublicKey, src *prng.Source) []*rgsw.Ciphertext {
	r := p.Ctx.R
	embed := (2 * r.N) / int(p.Params.BootstrapModulus())
	enc := rgsw.NewEncryptor(r, p.Ctx.RGSWDec, p.Params.SigmaRLWE, src)
	qks := p.Params.QKS

	out := make([]*rgsw.Ciphertext, len(ck.SkLWE.Coeffs))
	for j, zj := range ck.SkLWE.Coeffs {
		m := pbs.EncodeMonomial(r, int(centerMod(zj, qks)), embed)
		out[j] = enc.EncryptPK(pk, m)
	}
	return out
}

// GenAutoShares produces the additive seeded share of every automorphism
// key in the window schedule: for step v and digit l, the body
// a_{v,l}*s_i + e + β_l*(-s_i(X^{k_v})) under the CRS-derived a_{v,l}.
// Automorphism keys are linear in the secret, so the parties' bodies sum
// to a valid key under s = Σ s_i.
func (p *ServerKeyProtocol) GenAutoShares(ck *ClientKey, src *prng.Source) map[int]*GadgetShare {
	r := p.Ctx.R
	dec := p.Ctx.AutoDec
	sched := p.autoSchedule()

	out := make(map[int]*GadgetShare, len(sched))
	for v, galEl := range sched {
		rot := r.NewPoly()
		r.Automorphism(ck.SkRLWE.Value, int(galEl), rot)
		negRot := r.NewPoly()
		r.Neg(rot, negRot)

		rows := make([]ring.Poly, dec.Count)
		scale := uint64(1)
		for l := 0; l < dec.Count; l++ {
			a := p.CRS.Uniform(r, PurposeAutoKeyA, v*dec.Count+l)
			b := mulPolyCoeffs(r, a, ck.SkRLWE.Value)
			e := r.NewSampler().Gaussian(src, p.Params.SigmaRLWE)
			r.Add(b, e, b)
			msg := r.NewPoly()
			r.MulScalar(negRot, scale, msg)
			r.Add(b, msg, b)
			rows[l] = b
			scale = ring.BRed(scale, dec.Base, r.Q, r.BRedConstant)
		}
		out[v] = &GadgetShare{GaloisElement: galEl, B: rows}
	}
	return out
}

// GenKskShare produces the additive seeded share of the LWE key-switch
// key from the RLWE-extracted secret down to the joint LWE secret: for
// source index j and digit l, the body <a_{j,l}, z_i> + e + β_l*(-s_i[j])
// over Z_{Qks} under the CRS-derived mask a_{j,l}. Like the automorphism
// keys, the key-switch key is linear in both secrets, so bodies sum
// across parties.
func (p *ServerKeyProtocol) GenKskShare(ck *ClientKey, src *prng.Source) *LWEKskShare {
	r := p.Ctx.R
	qks := p.Params.QKS
	base := p.Params.BaseKS
	count := p.Params.DigitKS
	n := p.Params.LWEDimension

	scales := make([]uint64, count)
	acc := uint64(1)
	for l := range scales {
		scales[l] = acc
		acc = mulMod(acc, base, qks)
	}

	rows := make([][]uint64, r.N)
	for j := 0; j < r.N; j++ {
		rows[j] = make([]uint64, count)
		sj := centerMod(ck.SkRLWE.Value.Coeffs[j], r.Q)
		var negSj uint64
		if sj > 0 {
			negSj = qks - uint64(sj)
		} else {
			negSj = uint64(-sj)
		}
		for l := 0; l < count; l++ {
			a := p.CRS.UniformScalars(n, qks, PurposeKeySwitchKeyA, j*count+l)
			b := uint64(0)
			for k, ak := range a {
				b = addMod(b, mulMod(ak, ck.SkLWE.Coeffs[k], qks), qks)
			}
			if p.Params.SigmaLWE > 0 {
				b = addMod(b, src.DiscreteGaussian(1, p.Params.SigmaLWE, qks)[0], qks)
			}
			b = addMod(b, mulMod(negSj, scales[l], qks), qks)
			rows[j][l] = b
		}
	}
	return &LWEKskShare{B: rows}
}

// Aggregate combines two shares: the linear components (automorphism keys,
// key-switch key) sum body-wise, and the bootstrap-key components combine
// by the RGSW product, so the result encrypts the monomial of the summed
// LWE secrets without either party's secret appearing in the clear.
func (p *ServerKeyProtocol) Aggregate(s1, s2 *ServerKeyShare) (*ServerKeyShare, error) {
	if s1.Seed != s2.Seed || s1.Seed != p.CRS.Seed {
		return nil, fmt.Errorf("mhe: aggregate server key shares: %w", ErrCRSMismatch)
	}
	if s1.Q != s2.Q {
		return nil, fmt.Errorf("mhe: aggregate server key shares: %w", ErrParameterMismatch)
	}
	if len(s1.Brk) != len(s2.Brk) || len(s1.Auto) != len(s2.Auto) ||
		len(s1.Ksk.B) != len(s2.Ksk.B) {
		return nil, fmt.Errorf("mhe: aggregate server key shares: %w", ErrShapeMismatch)
	}
	r := p.Ctx.R

	out := &ServerKeyShare{
		UserIDs: append(append([]int{}, s1.UserIDs...), s2.UserIDs...),
		Seed:    s1.Seed,
		Q:       s1.Q,
		Brk:     make([]*rgsw.Ciphertext, len(s1.Brk)),
		Auto:    make(map[int]*GadgetShare, len(s1.Auto)),
		Ksk:     &LWEKskShare{B: make([][]uint64, len(s1.Ksk.B))},
	}

	for j := range s1.Brk {
		out.Brk[j] = p.rgswEval.MulRGSW(s1.Brk[j], s2.Brk[j])
	}

	for v, g1 := range s1.Auto {
		g2, ok := s2.Auto[v]
		if !ok || g1.GaloisElement != g2.GaloisElement || len(g1.B) != len(g2.B) {
			return nil, fmt.Errorf("mhe: aggregate server key shares: automorphism step %d: %w", v, ErrShapeMismatch)
		}
		rows := make([]ring.Poly, len(g1.B))
		for l := range rows {
			rows[l] = r.NewPoly()
			r.Add(g1.B[l], g2.B[l], rows[l])
		}
		out.Auto[v] = &GadgetShare{GaloisElement: g1.GaloisElement, B: rows}
	}

	qks := p.Params.QKS
	for j := range s1.Ksk.B {
		if len(s1.Ksk.B[j]) != len(s2.Ksk.B[j]) {
			return nil, fmt.Errorf("mhe: aggregate server key shares: %w", ErrShapeMismatch)
		}
		row := make([]uint64, len(s1.Ksk.B[j]))
		for l := range row {
			row[l] = addMod(s1.Ksk.B[j][l], s2.Ksk.B[j][l], qks)
		}
		out.Ksk.B[j] = row
	}
	return out, nil
}

// Finalize regenerates the CRS-derived mask halves, assembles the
// EvaluationKeySet, and wraps it as an installable server key.
func (p *ServerKeyProtocol) Finalize(agg *ServerKeyShare) *boolpkg.ServerKey {
	ctx := p.Ctx
	r := ctx.R
	qks := p.Params.QKS

	autoKeys := make(map[int]*rlwe.GaloisKey, len(agg.Auto))
	for v, share := range agg.Auto {
		rows := make([]*rlwe.Ciphertext, len(share.B))
		for l := range rows {
			rows[l] = &rlwe.Ciphertext{
				A: p.CRS.Uniform(r, PurposeAutoKeyA, v*ctx.AutoDec.Count+l),
				B: share.B[l],
			}
		}
		autoKeys[v] = &rlwe.GaloisKey{
			GaloisElement: share.GaloisElement,
			Key:           &rlwe.GadgetCiphertext{Rows: rows},
		}
	}

	kskRows := make([][]*lwe.Ciphertext, len(agg.Ksk.B))
	for j := range kskRows {
		count := len(agg.Ksk.B[j])
		kskRows[j] = make([]*lwe.Ciphertext, count)
		for l := 0; l < count; l++ {
			ct := lwe.NewCiphertext(p.Params.LWEDimension, qks)
			copy(ct.A, p.CRS.UniformScalars(p.Params.LWEDimension, qks, PurposeKeySwitchKeyA, j*count+l))
			ct.B = agg.Ksk.B[j][l]
			kskRows[j][l] = ct
		}
	}
	ksk := &lwe.KeySwitchKey{
		Decomposer: ring.NewDecomposer(p.Params.BaseKS, p.Params.DigitKS, qks),
		Rows:       kskRows,
	}

	evk := &pbs.EvaluationKeySet{
		BootstrapKeys: agg.Brk,
		AutoKeys:      autoKeys,
		KSK:           ksk,
		Dlog:          pbs.NewDiscreteLogTable(p.Params.BootstrapModulus(), uint64(p.Params.G)),
		G:             uint64(p.Params.G),
		W:             p.Params.WindowSgn,
	}
	pbsEv := pbs.NewEvaluator(r, qks, p.Params.BootstrapModulus(), ctx.RGSWDec, ctx.AutoDec, evk)
	return boolpkg.NewServerKey(pbsEv)
}

// centerMod maps v in [0,q) onto its signed representative in (-q/2, q/2].
func centerMod(v, q uint64) int64 {
	if v > q>>1 {
		return int64(v) - int64(q)
	}
	return int64(v)
}

// mulPolyCoeffs returns a*s over the ring, both inputs in the coefficient
// domain.
func mulPolyCoeffs(r *ring.Ring, a, s ring.Poly) ring.Poly {
	aNTT, sNTT := a.CopyNew(), s.CopyNew()
	r.MFormPoly(aNTT)
	r.NTT(aNTT)
	r.NTT(sNTT)
	prod := r.NewPoly()
	r.MulCoeffsMontgomery(aNTT, sNTT, prod)
	r.INTT(prod)
	return prod
}
