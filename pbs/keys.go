package pbs

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rgsw"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// EvaluationKeySet bundles everything blind rotation consumes: the
// bootstrapping key (one RGSW encryption of X^{s_i} per LWE secret
// coefficient), the automorphism keys for the windowed schedule, and the
// LWE key-switch key.
type EvaluationKeySet struct {
	BootstrapKeys []*rgsw.Ciphertext      // indexed by LWE secret coefficient i
	AutoKeys      map[int]*rlwe.GaloisKey // indexed by window step v, plus v=0 for -g
	KSK           *lwe.KeySwitchKey       // RLWE-extracted dimension -> LWE dimension n
	Dlog          *DiscreteLogTable
	G             uint64
	W             int
}

// EncodeMonomial returns X^{embed*exp} as a ring element, with the
// negacyclic sign flip for negative or wrapped exponents.
func EncodeMonomial(r *ring.Ring, exp int, embed int) ring.Poly {
	unit := r.NewPoly()
	unit.Coeffs[0] = 1
	m := r.NewPoly()
	r.MulByXPow(unit, exp*embed, m)
	return m
}

// centerMod maps v in [0,q) onto its signed representative in (-q/2, q/2].
func centerMod(v, q uint64) int64 {
	if v > q>>1 {
		return int64(v) - int64(q)
	}
	return int64(v)
}

// reencodeSecret re-encodes a ternary secret from modulus fromQ to modulus
// toQ (the trits are integers; only their modular embedding changes).
func reencodeSecret(sk *lwe.SecretKey, fromQ, toQ uint64) *lwe.SecretKey {
	out := make([]uint64, len(sk.Coeffs))
	for i, c := range sk.Coeffs {
		v := centerMod(c, fromQ)
		if v < 0 {
			out[i] = toQ - uint64(-v)
		} else {
			out[i] = uint64(v)
		}
	}
	return &lwe.SecretKey{Coeffs: out}
}

// GenEvaluationKey builds the full single-party bootstrapping key set:
// one RGSW(X^{embed*s_i}) per LWE coefficient, automorphism keys for the
// window schedule, and the key switch from the RLWE-extracted secret down
// to skLWE. skLWEExtracted must carry the RLWE secret's coefficients
// encoded modulo r.Q.
func GenEvaluationKey(
	r *ring.Ring,
	skRLWE *rlwe.SecretKey,
	skLWE *lwe.SecretKey,
	skLWEExtracted *lwe.SecretKey,
	qks uint64,
	bq uint64,
	g uint64,
	w int,
	rgswDec, autoDec *ring.Decomposer,
	ksBase uint64, ksCount int,
	sigma float64,
	src *prng.Source,
) *EvaluationKeySet {
	embed := (2 * r.N) / int(bq)

	rgswEnc := rgsw.NewEncryptor(r, rgswDec, sigma, src)
	brk := make([]*rgsw.Ciphertext, len(skLWE.Coeffs))
	for i, si := range skLWE.Coeffs {
		m := EncodeMonomial(r, int(centerMod(si, qks)), embed)
		brk[i] = rgswEnc.Encrypt(skRLWE, m)
	}

	autoKeys := make(map[int]*rlwe.GaloisKey, w+1)
	kg := rlwe.NewKeyGenerator(r, sigma, src)
	twoN := uint64(2 * r.N)
	for v := 1; v <= w; v++ {
		galEl := ring.ModExp(g, uint64(v), twoN)
		autoKeys[v] = kg.GenGaloisKey(skRLWE, galEl, autoDec)
	}
	autoKeys[0] = kg.GenGaloisKey(skRLWE, (twoN-g)%twoN, autoDec)

	// the mod-switched PBS input lives modulo Qks, so the extracted secret's
	// trits must be re-embedded there before generating the key switch
	extractedKS := reencodeSecret(skLWEExtracted, r.Q, qks)
	ksk := lwe.GenKeySwitchKey(extractedKS, skLWE, qks, ksBase, ksCount, sigma, src)

	return &EvaluationKeySet{
		BootstrapKeys: brk,
		AutoKeys:      autoKeys,
		KSK:           ksk,
		Dlog:          NewDiscreteLogTable(bq, g),
		G:             g,
		W:             w,
	}
}
