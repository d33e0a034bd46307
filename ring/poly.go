package ring

import "github.com/latticefhe/mpctfhe/internal/wire"

// Poly is a polynomial in Z_Q[X]/(X^N+1) represented by its N coefficients,
// each reduced into [0, Q). A Poly may be held in either the coefficient
// domain or the NTT (evaluation) domain; callers track which via the
// surrounding ciphertext/plaintext type.
type Poly struct {
	Coeffs []uint64
}

// NewPoly allocates a zero polynomial of degree N.
func NewPoly(n int) Poly {
	return Poly{Coeffs: make([]uint64, n)}
}

// CopyNew returns an independent copy of p.
func (p Poly) CopyNew() Poly {
	q := NewPoly(len(p.Coeffs))
	copy(q.Coeffs, p.Coeffs)
	return q
}

// Copy copies src's coefficients into p. Both must have equal degree.
func (p Poly) Copy(src Poly) {
	copy(p.Coeffs, src.Coeffs)
}

// Zero clears all coefficients.
func (p Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// N returns the ring degree of p.
func (p Poly) N() int {
	return len(p.Coeffs)
}

// Equal reports whether p and other hold identical coefficients.
func (p Poly) Equal(other Poly) bool {
	if len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i, c := range p.Coeffs {
		if other.Coeffs[i] != c {
			return false
		}
	}
	return true
}

// WriteTo writes p's coefficients to w (pass a *wire.Buffer directly to
// avoid the io.Writer adapter overhead).
func (p Poly) WriteTo(w wire.Writer) (int64, error) {
	return w.WriteUint64Slice(p.Coeffs)
}

// ReadFrom reads N coefficients from r into p, where N is len(p.Coeffs).
func (p Poly) ReadFrom(r wire.Reader) (int64, error) {
	return r.ReadUint64Slice(p.Coeffs)
}
