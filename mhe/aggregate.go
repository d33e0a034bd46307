package mhe

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/ring"
	"github.com/latticefhe/mpctfhe/rlwe"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
)

// AggregatePublicKeyShares folds every party's PublicKeyShare into the
// collective public key.
func AggregatePublicKeyShares(r *ring.Ring, sigma float64, crs CRS, shares []*PublicKeyShare) (*rlwe.PublicKey, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("mhe: aggregate public key shares: %w", ErrShareCount)
	}
	p := NewPublicKeyProtocol(r, sigma, crs)
	agg := shares[0]
	for _, s := range shares[1:] {
		agg = p.Aggregate(agg, s)
	}
	return p.Finalize(agg), nil
}

// AggregateServerKeyShares validates party IDs, folds every party's
// ServerKeyShare, and finalizes the installable server key. IDs must be a
// permutation of 0..N-1; the fold itself is order-independent because the
// linear parts sum and the RGSW parts multiply commuting monomials.
func AggregateServerKeyShares(ctx *params.Context, crs CRS, shares []*ServerKeyShare) (*boolpkg.ServerKey, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("mhe: aggregate server key shares: %w", ErrShareCount)
	}
	seen := make(map[int]bool, len(shares))
	for _, s := range shares {
		for _, id := range s.UserIDs {
			if id < 0 || id >= len(shares) || seen[id] {
				return nil, fmt.Errorf("mhe: aggregate server key shares: user %d: %w", id, ErrDuplicateParty)
			}
			seen[id] = true
		}
	}
	p := NewServerKeyProtocol(ctx, crs)
	agg := shares[0]
	var err error
	for _, s := range shares[1:] {
		agg, err = p.Aggregate(agg, s)
		if err != nil {
			return nil, fmt.Errorf("mhe: aggregate server key shares: %w", err)
		}
	}
	return p.Finalize(agg), nil
}

// AggregateDecryptionShares folds every party's decryption share and
// returns the plaintext bit, iterating in sorted party-ID order so the sum
// is reproducible regardless of network arrival order.
func AggregateDecryptionShares(q uint64, sigma float64, ct *boolpkg.FheBool, partyShares map[int]*DecryptionShare) (bool, error) {
	ids := make([]int, 0, len(partyShares))
	for id := range partyShares {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	shares := make([]*DecryptionShare, len(ids))
	for i, id := range ids {
		shares[i] = partyShares[id]
	}
	p := NewDecryptionProtocol(q, sigma)
	return p.Aggregate(ct, shares)
}
