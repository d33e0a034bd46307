package ring

// Decomposer implements signed balanced gadget decomposition base B with d
// digits. Each digit lies in [-B/2, B/2]; a digit of magnitude B/2 takes the
// sign of the value still left to decompose, so the decomposition is exact
// whenever B^d covers the modulus (checked at parameter load).
type Decomposer struct {
	Base  uint64
	Count int
	Q     uint64

	logBase int
	half    uint64
}

// NewDecomposer builds a decomposer for base (a power of two) with digit
// count count over modulus q.
func NewDecomposer(base uint64, count int, q uint64) *Decomposer {
	logBase := 0
	for b := base; b > 1; b >>= 1 {
		logBase++
	}
	return &Decomposer{Base: base, Count: count, Q: q, logBase: logBase, half: base / 2}
}

// Decompose writes the Count signed-balanced-base-Base digits of every
// coefficient of p into digits[0..Count), each itself a Poly of degree N.
func (d *Decomposer) Decompose(r *Ring, p Poly, digits []Poly) {
	n := r.N
	q := d.Q
	carries := make([]int64, n)
	for i := 0; i < n; i++ {
		v := p.Coeffs[i]
		if v > q>>1 {
			carries[i] = int64(v) - int64(q)
		} else {
			carries[i] = int64(v)
		}
	}
	base := int64(d.Base)
	half := int64(d.half)
	for level := 0; level < d.Count; level++ {
		out := digits[level]
		for i := 0; i < n; i++ {
			rem := carries[i] % base
			if rem < 0 {
				rem += base
			}
			if rem > half || (rem == half && carries[i] < 0) {
				rem -= base
			}
			carries[i] = (carries[i] - rem) / base
			if rem < 0 {
				out.Coeffs[i] = q + uint64(rem)
			} else {
				out.Coeffs[i] = uint64(rem)
			}
		}
	}
}

// GadgetVector returns the Count powers of Base, in Montgomery form modulo
// Q, used as the gadget vector β_i when lifting a plaintext into an RGSW
// row.
func (d *Decomposer) GadgetVector(r *Ring) []uint64 {
	g := make([]uint64, d.Count)
	acc := uint64(1)
	for i := 0; i < d.Count; i++ {
		g[i] = MForm(acc, r.Q, r.BRedConstant)
		acc = BRed(acc, d.Base, r.Q, r.BRedConstant)
	}
	return g
}
