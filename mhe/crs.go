// Package mhe implements the multi-party (N-of-N) key agreement protocols:
// collective public-key generation, collective bootstrap-key generation,
// and collective decryption, each as a Protocol value with Gen, Aggregate
// and Finalize steps. Scope is N-of-N only; there is no threshold (t-of-N)
// support.
package mhe

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/ring"
)

// Purpose domain-separates the public randomness a CRS is fanned out
// into, one label per protocol component.
type Purpose string

const (
	PurposePublicKeyA    Purpose = "pkA"
	PurposeBootstrapKeyA Purpose = "bkA"
	PurposeAutoKeyA      Purpose = "akA"
	PurposeKeySwitchKeyA Purpose = "kskA"
)

// CRS is the common reference string every party derives public
// randomness from: a 32-byte seed wrapped with the domain-separation
// logic.
type CRS struct {
	Seed prng.Seed
}

// NewCRS draws a fresh CRS from the OS CSPRNG, to be published to every
// party before round 1.
func NewCRS() CRS {
	return CRS{Seed: prng.NewSeed()}
}

// Uniform deterministically samples the public polynomial for (purpose,
// index): every party calling this with the same CRS, purpose and index
// obtains the identical polynomial without further communication.
func (c CRS) Uniform(r *ring.Ring, purpose Purpose, index int) ring.Poly {
	seed := prng.DeriveSeed(c.Seed, string(purpose), index)
	src := prng.NewSource(seed)
	return r.NewSampler().Uniform(src)
}

// UniformScalars deterministically samples an n-vector modulo q for
// (purpose, index), the LWE-side analogue of Uniform used for the seeded
// mask vectors of the key-switch-key shares.
func (c CRS) UniformScalars(n int, q uint64, purpose Purpose, index int) []uint64 {
	seed := prng.DeriveSeed(c.Seed, string(purpose), index)
	src := prng.NewSource(seed)
	return src.Uniform(n, q)
}
