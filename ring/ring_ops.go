package ring

// Add computes p3 = p1 + p2 mod Q, coefficient-wise.
func (r *Ring) Add(p1, p2, p3 Poly) {
	q := r.Q
	for i := range p3.Coeffs {
		p3.Coeffs[i] = CRed(p1.Coeffs[i]+p2.Coeffs[i], q)
	}
}

// Sub computes p3 = p1 - p2 mod Q, coefficient-wise.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	q := r.Q
	for i := range p3.Coeffs {
		p3.Coeffs[i] = CRed(p1.Coeffs[i]+q-p2.Coeffs[i], q)
	}
}

// Neg computes p2 = -p1 mod Q, coefficient-wise.
func (r *Ring) Neg(p1, p2 Poly) {
	q := r.Q
	for i := range p2.Coeffs {
		if p1.Coeffs[i] == 0 {
			p2.Coeffs[i] = 0
		} else {
			p2.Coeffs[i] = q - p1.Coeffs[i]
		}
	}
}

// MulCoeffsMontgomery computes p3 = p1*p2 mod Q, coefficient-wise, assuming
// p1 and p2 are already in Montgomery form (pointwise product in the NTT
// domain); p3 is left in Montgomery form.
func (r *Ring) MulCoeffsMontgomery(p1, p2, p3 Poly) {
	q, mred := r.Q, r.MRedConstant
	for i := range p3.Coeffs {
		p3.Coeffs[i] = MRed(p1.Coeffs[i], p2.Coeffs[i], q, mred)
	}
}

// MulCoeffsMontgomeryThenAdd computes p3 += p1*p2 mod Q (Montgomery domain).
func (r *Ring) MulCoeffsMontgomeryThenAdd(p1, p2, p3 Poly) {
	q, mred := r.Q, r.MRedConstant
	for i := range p3.Coeffs {
		p3.Coeffs[i] = CRed(p3.Coeffs[i]+MRed(p1.Coeffs[i], p2.Coeffs[i], q, mred), q)
	}
}

// AddScalar adds a plain scalar c to every coefficient of p1 and writes to p2.
func (r *Ring) AddScalar(p1 Poly, c uint64, p2 Poly) {
	q := r.Q
	for i := range p2.Coeffs {
		p2.Coeffs[i] = CRed(p1.Coeffs[i]+c, q)
	}
}

// MulScalar multiplies every coefficient of p1 by the plain scalar c and
// writes to p2, amortizing a single Shoup precomputation of c over the
// whole polynomial.
func (r *Ring) MulScalar(p1 Poly, c uint64, p2 Poly) {
	cShoup := GetShoupConstant(c, r.Q)
	for i := range p2.Coeffs {
		p2.Coeffs[i] = MulShoup(p1.Coeffs[i], c, cShoup, r.Q)
	}
}

// CenterModU64 maps x in [0,Q) onto the signed balanced representative in
// (-Q/2, Q/2], returned as int64.
func (r *Ring) CenterModU64(x uint64) int64 {
	if x > r.Q>>1 {
		return int64(x) - int64(r.Q)
	}
	return int64(x)
}

// MulByXPow rotates p1 by X^k (k may be negative) modulo X^N+1, writing the
// result to p2, with the sign flip on wraparound that defines negacyclic
// rotation. The bootstrap's initial test-vector rotation and the monomial
// encoding of the blind-rotation keys are built on it.
func (r *Ring) MulByXPow(p1 Poly, k int, p2 Poly) {
	n := r.N
	q := r.Q
	k = ((k % (2 * n)) + 2*n) % (2 * n)
	for i, c := range p1.Coeffs {
		j := i + k
		sign := j/n
		j %= n
		if sign%2 == 0 {
			p2.Coeffs[j] = c
		} else if c == 0 {
			p2.Coeffs[j] = 0
		} else {
			p2.Coeffs[j] = q - c
		}
	}
}

// Automorphism applies the ring automorphism X -> X^k to p1 in the
// coefficient domain, writing into p2 (k may be any integer, reduced mod 2N
// with sign handled as in MulByXPow).
func (r *Ring) Automorphism(p1 Poly, k int, p2 Poly) {
	n := r.N
	q := r.Q
	tmp := make([]uint64, n)
	twoN := 2 * n
	kk := ((k % twoN) + twoN) % twoN
	for i, c := range p1.Coeffs {
		j := (i * kk) % twoN
		sign := j / n
		j %= n
		if sign%2 == 0 {
			tmp[j] = c
		} else if c == 0 {
			tmp[j] = 0
		} else {
			tmp[j] = q - c
		}
	}
	copy(p2.Coeffs, tmp)
}
