package prng

import "github.com/zeebo/blake3"

// blake3Sum32 hashes data with BLAKE3 and returns the first 32 bytes of
// output as a seed, used to derive domain-separated child seeds from a
// parent CRS.
func blake3Sum32(data []byte) Seed {
	h := blake3.Sum256(data)
	return Seed(h)
}
