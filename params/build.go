package params

import (
	"github.com/latticefhe/mpctfhe/ring"
)

// Context bundles the ring and gadget decomposers every component derives
// from a Parameters value, built once and threaded everywhere rather than
// re-deriving NTT tables and decomposers per call site. The LWE key-switch
// decomposer is not included here: lwe.GenKeySwitchKey builds its own from
// BaseKS/DigitKS/QKS directly, since the LWE key switch never touches the
// ring's NTT machinery.
type Context struct {
	Params  Parameters
	R       *ring.Ring
	RGSWDec *ring.Decomposer
	AutoDec *ring.Decomposer
}

// NewContext builds the ring and decomposers for p.
func NewContext(p Parameters) (*Context, error) {
	r, err := ring.NewRing(p.N, p.Q)
	if err != nil {
		return nil, err
	}
	return &Context{
		Params:  p,
		R:       r,
		RGSWDec: ring.NewDecomposer(p.BaseRGSW, p.DigitRGSW, p.Q),
		AutoDec: ring.NewDecomposer(p.BaseAuto, p.DigitAuto, p.Q),
	}, nil
}
