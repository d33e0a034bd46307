package mhe

import (
	"fmt"

	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/rgsw"
	"github.com/latticefhe/mpctfhe/rlwe"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
)

// NonInteractiveShare is the CRS-only upload of the non-interactive flavor:
// everything in the server key that is linear in the party's secrets — the
// public-key share, the automorphism-key shares, and the LWE key-switch-key
// shares — generated in one shot from the CRS and the party's own secrets,
// with no knowledge of any other party.
//
// The RGSW bootstrap keys are the one component that is not linear in the
// joint secret: their RLWE'(-s*m) half carries the product of the joint
// secret with the party's monomial, which no sum of single-party
// contributions can produce (the missing cross terms s_k*m_i are bilinear
// in two different parties' secrets). The bootstrap share is therefore
// encrypted against the collective public key, which the aggregator
// derives from the same uploads: parties still never communicate with
// each other and hold nothing but the CRS and their own secrets, at the
// cost of one extra client-to-server message (CompleteShare) after the
// aggregator publishes the collective key. See DESIGN.md for the full
// decision record.
type NonInteractiveShare struct {
	UserID int
	Seed   prng.Seed

	Pk   *PublicKeyShare
	Auto map[int]*GadgetShare
	Ksk  *LWEKskShare
}

// NonInteractiveProtocol runs the non-interactive key-agreement flavor.
type NonInteractiveProtocol struct {
	skp *ServerKeyProtocol
	pkp *PublicKeyProtocol
}

// NewNonInteractiveProtocol binds the protocol to a parameter context and a
// session CRS.
func NewNonInteractiveProtocol(ctx *params.Context, crs CRS) *NonInteractiveProtocol {
	return &NonInteractiveProtocol{
		skp: NewServerKeyProtocol(ctx, crs),
		pkp: NewPublicKeyProtocol(ctx.R, ctx.Params.SigmaRLWE, crs),
	}
}

// Gen produces party userID's one-shot upload from the CRS and its own
// secrets only.
func (p *NonInteractiveProtocol) Gen(ck *ClientKey, userID int, src *prng.Source) *NonInteractiveShare {
	return &NonInteractiveShare{
		UserID: userID,
		Seed:   p.skp.CRS.Seed,
		Pk:     p.pkp.Gen(ck.SkRLWE, src),
		Auto:   p.skp.GenAutoShares(ck, src),
		Ksk:    p.skp.GenKskShare(ck, src),
	}
}

// AggregatePublic validates the uploads and derives the collective public
// key the bootstrap completions are encrypted against.
func (p *NonInteractiveProtocol) AggregatePublic(shares []*NonInteractiveShare) (*rlwe.PublicKey, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("mhe: non-interactive aggregate: %w", ErrShareCount)
	}
	seen := make(map[int]bool, len(shares))
	for _, s := range shares {
		if s.Seed != p.skp.CRS.Seed {
			return nil, fmt.Errorf("mhe: non-interactive aggregate: %w", ErrCRSMismatch)
		}
		if s.UserID < 0 || s.UserID >= len(shares) || seen[s.UserID] {
			return nil, fmt.Errorf("mhe: non-interactive aggregate: user %d: %w", s.UserID, ErrDuplicateParty)
		}
		seen[s.UserID] = true
	}
	agg := shares[0].Pk
	for _, s := range shares[1:] {
		agg = p.pkp.Aggregate(agg, s.Pk)
	}
	return p.pkp.Finalize(agg), nil
}

// CompleteShare produces the party's bootstrap-key completion against the
// collective public key pk published by the aggregator.
func (p *NonInteractiveProtocol) CompleteShare(ck *ClientKey, pk *rlwe.PublicKey, src *prng.Source) []*rgsw.Ciphertext {
	return p.skp.GenBootstrapShare(ck, pk, src)
}

// Finalize combines the uploads and completions into the installable server
// key: the linear components sum, the bootstrap completions fold by the
// RGSW product, exactly as the interactive protocol's Aggregate does.
func (p *NonInteractiveProtocol) Finalize(shares []*NonInteractiveShare, completions [][]*rgsw.Ciphertext) (*boolpkg.ServerKey, error) {
	if len(shares) == 0 || len(completions) != len(shares) {
		return nil, fmt.Errorf("mhe: non-interactive finalize: %w", ErrShareCount)
	}
	full := make([]*ServerKeyShare, len(shares))
	for i, s := range shares {
		full[i] = &ServerKeyShare{
			UserIDs: []int{s.UserID},
			Seed:    s.Seed,
			Q:       p.skp.Ctx.R.Q,
			Brk:     completions[i],
			Auto:    s.Auto,
			Ksk:     s.Ksk,
		}
	}
	agg := full[0]
	var err error
	for _, s := range full[1:] {
		if agg, err = p.skp.Aggregate(agg, s); err != nil {
			return nil, fmt.Errorf("mhe: non-interactive finalize: %w", err)
		}
	}
	return p.skp.Finalize(agg), nil
}
