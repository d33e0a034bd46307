// Package prng implements the seeded pseudorandom byte streams this
// module draws on for key generation, encryption noise, and CRS-derived
// public randomness, backed by golang.org/x/crypto/chacha20 so a seed
// reproduces the same stream on every party.
package prng

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Seed is a 32-byte seed, e.g. a CRS or a per-party secret seed.
type Seed [32]byte

// NewSeed draws a fresh random seed from the operating system's CSPRNG.
func NewSeed() Seed {
	var s Seed
	if _, err := io.ReadFull(rand.Reader, s[:]); err != nil {
		panic(err)
	}
	return s
}

// Source is a deterministic byte stream keyed by a 32-byte seed,
// implemented as a ChaCha20 keystream with a zero nonce. Distinct
// sub-streams are derived by branching: NewSeed mixes a domain-separation
// counter into the parent seed to produce an independent child seed.
type Source struct {
	seed    Seed
	cipher  *chacha20.Cipher
	counter uint64
}

// NewSource creates a Source keyed by seed.
func NewSource(seed Seed) *Source {
	s := &Source{seed: seed}
	s.reset()
	return s
}

func (s *Source) reset() {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(s.seed[:], nonce[:])
	if err != nil {
		panic(err)
	}
	s.cipher = c
}

// Read fills p with pseudorandom bytes from the stream.
func (s *Source) Read(p []byte) (int, error) {
	zeros := make([]byte, len(p))
	s.cipher.XORKeyStream(p, zeros)
	return len(p), nil
}

// NewSeed derives a child seed by hashing the source's seed together with
// a counter that each call advances, so successive calls return distinct
// seeds; the result does not depend on how many bytes Read has produced.
func (s *Source) NewSeed() Seed {
	var buf [40]byte
	copy(buf[:32], s.seed[:])
	binary.LittleEndian.PutUint64(buf[32:], s.counter)
	s.counter++
	return blake3Sum32(buf[:])
}

// Uint64 returns a uniformly random uint64.
func (s *Source) Uint64() uint64 {
	var b [8]byte
	s.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// DeriveSeed deterministically derives a child seed from parent, a string
// label, and an integer index, independent of any Source's call counter.
// Every party evaluates this function locally and reaches the same seed:
// it is how package mhe fans a single shared CRS out into per-purpose,
// per-index public randomness (the "a" polynomials every party must agree
// on without communicating).
func DeriveSeed(parent Seed, label string, index int) Seed {
	buf := make([]byte, 0, 32+len(label)+1+8)
	buf = append(buf, parent[:]...)
	buf = append(buf, label...)
	buf = append(buf, 0)
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], uint64(index))
	buf = append(buf, idx[:]...)
	return blake3Sum32(buf)
}
