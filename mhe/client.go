package mhe

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/rlwe"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
)

// ClientKey is one party's secret material in a multi-party session: an
// RLWE secret share (for the collective public key and bootstrap key) and
// a small-dimension LWE secret share (for the bootstrap key's key-switch
// step).
type ClientKey struct {
	Ctx    *params.Context
	SkRLWE *rlwe.SecretKey
	SkLWE  *lwe.SecretKey
}

// GenClientKey draws a fresh secret-key share for one party.
func GenClientKey(ctx *params.Context, src *prng.Source) *ClientKey {
	kg := rlwe.NewKeyGenerator(ctx.R, ctx.Params.SigmaRLWE, src)
	return &ClientKey{
		Ctx:    ctx,
		SkRLWE: kg.GenSecretKey(),
		SkLWE:  lwe.GenSecretKey(ctx.Params.LWEDimension, ctx.Params.LWEWeight, ctx.Params.QKS, src),
	}
}

// Round1Share produces this party's public-key share for the given CRS
// (interactive round 1).
func (ck *ClientKey) Round1Share(crs CRS, src *prng.Source) *PublicKeyShare {
	p := NewPublicKeyProtocol(ck.Ctx.R, ck.Ctx.Params.SigmaRLWE, crs)
	return p.Gen(ck.SkRLWE, src)
}

// Round2Share produces this party's server-key share against the collective
// public key from round 1 (interactive round 2).
func (ck *ClientKey) Round2Share(crs CRS, userID int, pk *rlwe.PublicKey, src *prng.Source) *ServerKeyShare {
	p := NewServerKeyProtocol(ck.Ctx, crs)
	return p.Gen(ck, userID, pk, src)
}

// NonInteractiveShare produces this party's one-shot upload for the
// non-interactive flavor.
func (ck *ClientKey) NonInteractiveShare(crs CRS, userID int, src *prng.Source) *NonInteractiveShare {
	p := NewNonInteractiveProtocol(ck.Ctx, crs)
	return p.Gen(ck, userID, src)
}

// GenDecryptionShare produces this party's decryption share for ct.
func (ck *ClientKey) GenDecryptionShare(ct *boolpkg.FheBool, src *prng.Source) (*DecryptionShare, error) {
	p := NewDecryptionProtocol(ck.Ctx.R.Q, ck.Ctx.Params.SigmaLWE)
	return p.GenShare(ck.SkRLWE, ct, src)
}
