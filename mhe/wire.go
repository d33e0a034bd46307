package mhe

import (
	"fmt"

	"github.com/latticefhe/mpctfhe/internal/wire"
)

// WriteTo serializes the share's body polynomial (the mask half is
// CRS-derived and never travels).
func (s *PublicKeyShare) WriteTo(w wire.Writer) (int64, error) {
	return s.Value.WriteTo(w)
}

// ReadFrom reconstructs the share from a stream written by WriteTo; the
// polynomial must already be sized.
func (s *PublicKeyShare) ReadFrom(r wire.Reader) (int64, error) {
	return s.Value.ReadFrom(r)
}

// WriteTo serializes the automorphism-key share: Galois element followed by
// the seeded body rows.
func (s *GadgetShare) WriteTo(w wire.Writer) (int64, error) {
	var total int64
	n, err := w.WriteUint64(s.GaloisElement)
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.WriteUint64(uint64(len(s.B)))
	total += n
	if err != nil {
		return total, err
	}
	for _, row := range s.B {
		n, err = row.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom reconstructs the automorphism-key share from a stream written
// by WriteTo; the body rows must already be sized.
func (s *GadgetShare) ReadFrom(r wire.Reader) (int64, error) {
	var total int64
	n, err := r.ReadUint64(&s.GaloisElement)
	total += n
	if err != nil {
		return total, err
	}
	var count uint64
	n, err = r.ReadUint64(&count)
	total += n
	if err != nil {
		return total, err
	}
	if int(count) != len(s.B) {
		return total, fmt.Errorf("mhe: automorphism share has %d rows, stream carries %d: %w", len(s.B), count, ErrShapeMismatch)
	}
	for _, row := range s.B {
		n, err = row.ReadFrom(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteTo serializes the key-switch-key share's seeded bodies row-major.
func (s *LWEKskShare) WriteTo(w wire.Writer) (int64, error) {
	var total int64
	n, err := w.WriteUint64(uint64(len(s.B)))
	total += n
	if err != nil {
		return total, err
	}
	for _, row := range s.B {
		n, err = w.WriteUint64Slice(row)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom reconstructs the key-switch-key share from a stream written by
// WriteTo; the rows must already be sized.
func (s *LWEKskShare) ReadFrom(r wire.Reader) (int64, error) {
	var total int64
	var count uint64
	n, err := r.ReadUint64(&count)
	total += n
	if err != nil {
		return total, err
	}
	if int(count) != len(s.B) {
		return total, fmt.Errorf("mhe: key-switch share has %d rows, stream carries %d: %w", len(s.B), count, ErrShapeMismatch)
	}
	for _, row := range s.B {
		n, err = r.ReadUint64Slice(row)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteTo serializes a decryption share (a single scalar).
func (s *DecryptionShare) WriteTo(w wire.Writer) (int64, error) {
	return w.WriteUint64(s.Value)
}

// ReadFrom reconstructs a decryption share.
func (s *DecryptionShare) ReadFrom(r wire.Reader) (int64, error) {
	return r.ReadUint64(&s.Value)
}
