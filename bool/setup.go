package bool

import (
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/params"
	"github.com/latticefhe/mpctfhe/pbs"
	"github.com/latticefhe/mpctfhe/rlwe"
)

// GenKeys builds a single-party client key and the matching server key.
func GenKeys(p params.Parameters, src *prng.Source) (*ClientKey, *ServerKey, error) {
	ctx, err := params.NewContext(p)
	if err != nil {
		return nil, nil, err
	}
	r := ctx.R

	kg := rlwe.NewKeyGenerator(r, p.SigmaRLWE, src)
	skRLWE := kg.GenSecretKey()
	skLWE := lwe.GenSecretKey(p.LWEDimension, p.LWEWeight, p.QKS, src)
	skExtracted := lwe.SecretKeyFromCoeffs(skRLWE.Value.Coeffs)

	evk := pbs.GenEvaluationKey(r, skRLWE, skLWE, skExtracted, p.QKS, p.BootstrapModulus(), uint64(p.G), p.WindowSgn,
		ctx.RGSWDec, ctx.AutoDec, p.BaseKS, p.DigitKS, p.SigmaRLWE, src)
	pbsEv := pbs.NewEvaluator(r, p.QKS, p.BootstrapModulus(), ctx.RGSWDec, ctx.AutoDec, evk)

	ck := &ClientKey{Secret: skExtracted, R: r, Sigma: p.SigmaLWE}
	sk := NewServerKey(pbsEv)
	return ck, sk, nil
}
