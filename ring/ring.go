package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Ring holds the precomputed constants for arithmetic over Z_Q[X]/(X^N+1):
// Barrett/Montgomery reduction constants and bit-reversed NTT root tables
// for a single modulus (no CRT basis).
type Ring struct {
	N int
	Q uint64

	BRedConstant BRedConstant
	MRedConstant uint64

	RootsForward  []uint64
	RootsBackward []uint64
	NInv          uint64

	PrimitiveRoot uint64
	Factors       []uint64
}

// NewRing constructs the ring Z_q[X]/(X^N+1). N must be a power of two and q
// must be prime with q ≡ 1 (mod 2N) so that a primitive 2N-th root of unity
// exists.
func NewRing(n int, q uint64) (*Ring, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("ring: N=%d is not a power of two", n)
	}
	if bits.Len64(q) > 62 {
		return nil, fmt.Errorf("ring: Q=%d exceeds 62 bits", q)
	}
	if !IsPrime(q) {
		return nil, fmt.Errorf("ring: Q=%d is not prime", q)
	}
	if (q-1)%uint64(2*n) != 0 {
		return nil, fmt.Errorf("ring: Q=%d is not congruent to 1 mod 2N=%d", q, 2*n)
	}

	r := &Ring{
		N:            n,
		Q:            q,
		BRedConstant: GetBRedConstant(q),
		MRedConstant: GetMRedConstant(q),
	}
	if err := r.GenNTTTable(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Ring) LogN() int {
	return bits.Len64(uint64(r.N) - 1)
}

// NewPoly allocates a zero polynomial sized for this ring.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.N)
}

// GenNTTTable finds a primitive 2N-th root of unity and builds the
// bit-reversed forward/inverse root tables in Montgomery form.
func (r *Ring) GenNTTTable() error {
	n, q := r.N, r.Q

	if r.PrimitiveRoot == 0 || r.Factors == nil {
		g, factors, err := PrimitiveRoot(q-1, nil)
		if err != nil {
			return err
		}
		r.PrimitiveRoot, r.Factors = g, factors
	}

	exp := (q - 1) / uint64(2*n)
	psi := ModExp(r.PrimitiveRoot, exp, q)
	psiInv := ModExp(psi, q-2, q)

	logN := bits.Len64(uint64(n)) - 1
	fwd := make([]uint64, n)
	bck := make([]uint64, n)
	cur := uint64(1)
	curInv := uint64(1)
	for i := 0; i < n; i++ {
		j := bitReverse(i, logN)
		fwd[j] = MForm(cur, q, r.BRedConstant)
		bck[j] = MForm(curInv, q, r.BRedConstant)
		cur = BRed(cur, psi, q, r.BRedConstant)
		curInv = BRed(curInv, psiInv, q, r.BRedConstant)
	}
	r.RootsForward = fwd
	r.RootsBackward = bck
	r.NInv = MForm(ModExp(uint64(n), q-2, q), q, r.BRedConstant)
	return nil
}

func bitReverse(x, bitLen int) int {
	r := 0
	for i := 0; i < bitLen; i++ {
		r |= ((x >> i) & 1) << (bitLen - 1 - i)
	}
	return r
}

// PrimitiveRoot computes the smallest primitive root modulo the prime m+1
// by factoring m and rejecting candidates that are m/p-th roots of unity
// for some prime factor p.
func PrimitiveRoot(m uint64, factors []uint64) (uint64, []uint64, error) {
	q := m + 1
	if factors == nil {
		factors = factorize(m)
	} else if err := CheckFactors(m, factors); err != nil {
		return 0, nil, err
	}
	for g := uint64(2); g < q; g++ {
		if isPrimitiveRoot(g, q, factors) {
			return g, factors, nil
		}
	}
	return 0, nil, fmt.Errorf("ring: no primitive root found mod %d", q)
}

func isPrimitiveRoot(g, q uint64, factors []uint64) bool {
	for _, f := range factors {
		if ModExp(g, (q-1)/f, q) == 1 {
			return false
		}
	}
	return true
}

// CheckFactors checks that factors lists exactly the unique prime factors of m.
func CheckFactors(m uint64, factors []uint64) error {
	for _, f := range factors {
		if !IsPrime(f) {
			return fmt.Errorf("ring: composite factor %d", f)
		}
		for m%f == 0 {
			m /= f
		}
	}
	if m != 1 {
		return fmt.Errorf("ring: incomplete factor list")
	}
	return nil
}

// factorize returns the distinct prime factors of x.
func factorize(x uint64) []uint64 {
	var factors []uint64
	n := new(big.Int).SetUint64(x)
	for _, p := range smallPrimes(1 << 20) {
		bp := big.NewInt(int64(p))
		if n.Cmp(bp) < 0 {
			break
		}
		mod := new(big.Int)
		_, mod = new(big.Int).DivMod(n, bp, mod)
		if mod.Sign() == 0 {
			factors = append(factors, p)
			for mod.Sign() == 0 {
				n.Div(n, bp)
				_, mod = new(big.Int).DivMod(n, bp, new(big.Int))
			}
		}
	}
	if n.Cmp(big.NewInt(1)) > 0 {
		factors = append(factors, n.Uint64())
	}
	return factors
}

// smallPrimes returns all primes below bound via a sieve of Eratosthenes.
func smallPrimes(bound int) []uint64 {
	sieve := make([]bool, bound)
	var primes []uint64
	for i := 2; i < bound; i++ {
		if sieve[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * 2; j < bound; j += i {
			sieve[j] = true
		}
	}
	return primes
}
