package ring

// NTT transforms p from the coefficient domain into the evaluation domain
// in place, using the iterative Cooley-Tukey negacyclic NTT with Montgomery
// multiplication.
func (r *Ring) NTT(p Poly) {
	NTTCore(p.Coeffs, r.N, r.Q, r.MRedConstant, r.RootsForward)
}

// INTT transforms p from the evaluation domain back into the coefficient
// domain in place, using the iterative Gentleman-Sande negacyclic inverse
// NTT followed by a scaling by N^{-1}.
func (r *Ring) INTT(p Poly) {
	INTTCore(p.Coeffs, r.N, r.Q, r.MRedConstant, r.RootsBackward, r.NInv)
}

// NTTCore runs the in-place forward NTT butterfly network over coeffs.
func NTTCore(coeffs []uint64, n int, q, mredConstant uint64, roots []uint64) {
	t := n
	for m := 1; m < n; m <<= 1 {
		t >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			j2 := j1 + t - 1
			root := roots[m+i]
			for j := j1; j <= j2; j++ {
				u := coeffs[j]
				v := MRed(coeffs[j+t], root, q, mredConstant)
				coeffs[j] = CRed(u+v, q)
				coeffs[j+t] = CRed(u+q-v, q)
			}
		}
	}
}

// INTTCore runs the in-place inverse NTT butterfly network over coeffs, then
// scales every coefficient by nInv (in Montgomery form).
func INTTCore(coeffs []uint64, n int, q, mredConstant uint64, rootsInv []uint64, nInv uint64) {
	t := 1
	for m := n; m > 1; m >>= 1 {
		j1 := 0
		h := m >> 1
		for i := 0; i < h; i++ {
			j2 := j1 + t - 1
			root := rootsInv[h+i]
			for j := j1; j <= j2; j++ {
				u := coeffs[j]
				v := coeffs[j+t]
				coeffs[j] = CRed(u+v, q)
				coeffs[j+t] = MRed(CRed(u+q-v, q), root, q, mredConstant)
			}
			j1 += 2 * t
		}
		t <<= 1
	}
	for i := range coeffs {
		coeffs[i] = MRed(coeffs[i], nInv, q, mredConstant)
	}
}

// MFormPoly maps every coefficient of p into the Montgomery domain in place.
func (r *Ring) MFormPoly(p Poly) {
	for i, c := range p.Coeffs {
		p.Coeffs[i] = MForm(c, r.Q, r.BRedConstant)
	}
}

// IMFormPoly maps every coefficient of p out of the Montgomery domain in place.
func (r *Ring) IMFormPoly(p Poly) {
	for i, c := range p.Coeffs {
		p.Coeffs[i] = IMForm(c, r.Q, r.MRedConstant)
	}
}
