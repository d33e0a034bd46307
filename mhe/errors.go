package mhe

import "errors"

// Sentinel error values, wrapped with call-specific context at each
// return site.
var (
	ErrParameterMismatch = errors.New("mpctfhe: parameter set mismatch")
	ErrCRSMismatch       = errors.New("mpctfhe: CRS seed mismatch")
	ErrShareCount        = errors.New("mpctfhe: wrong number of shares")
	ErrDuplicateParty    = errors.New("mpctfhe: duplicate or out-of-range party id")
	ErrShapeMismatch     = errors.New("mpctfhe: ciphertext shape mismatch")
)
