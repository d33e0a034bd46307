// Command interactive-fheuint8 runs the two-round interactive multi-party
// protocol end to end for four parties: each party draws a
// client-key share, round 1 produces the collective public key, round 2
// produces the collective server key, parties encrypt private uint8 inputs
// under the collective public key, the server evaluates two small circuits
// over the extracted ciphertexts, and parties jointly decrypt the results.
package main

import (
	"fmt"
	"os"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/fheuint8"
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/mhe"
	"github.com/latticefhe/mpctfhe/params"
)

const numParties = 4

// function1 computes ((a+b)*c)*d.
func function1(ev *fheuint8.Evaluator, a, b, c, d fheuint8.FheUint8) fheuint8.FheUint8 {
	return ev.Mul(ev.Mul(ev.Add(a, b), c), d)
}

// function2 computes (a*b)+(c*d).
func function2(ev *fheuint8.Evaluator, a, b, c, d fheuint8.FheUint8) fheuint8.FheUint8 {
	return ev.Add(ev.Mul(a, b), ev.Mul(c, d))
}

func run() error {
	lit, err := params.Default(params.PresetToy)
	if err != nil {
		return err
	}
	p, err := params.NewFromLiteral(lit)
	if err != nil {
		return err
	}
	ctx, err := params.NewContext(p)
	if err != nil {
		return err
	}
	src := prng.NewSource(prng.NewSeed())
	crs := mhe.NewCRS()

	// Client side: every party draws its secret-key share.
	cks := make([]*mhe.ClientKey, numParties)
	for i := range cks {
		cks[i] = mhe.GenClientKey(ctx, src)
	}

	// Round 1: every party publishes its public-key share; all parties
	// aggregate independently and agree on the same collective key.
	pkShares := make([]*mhe.PublicKeyShare, numParties)
	for i, ck := range cks {
		pkShares[i] = ck.Round1Share(crs, src)
	}
	pk, err := mhe.AggregatePublicKeyShares(ctx.R, p.SigmaRLWE, crs, pkShares)
	if err != nil {
		return err
	}

	// Round 2: every party publishes its server-key share against the
	// collective key; the server folds them into the bootstrap key.
	skShares := make([]*mhe.ServerKeyShare, numParties)
	for i, ck := range cks {
		skShares[i] = ck.Round2Share(crs, i, pk, src)
	}
	serverKey, err := mhe.AggregateServerKeyShares(ctx, crs, skShares)
	if err != nil {
		return err
	}
	boolpkg.InstallServerKey(serverKey)

	ev := fheuint8.NewEvaluator(serverKey.Evaluator)

	// Each party encrypts a private byte under the collective public key.
	clearInputs := make([]uint8, numParties)
	ciphertexts := make([]fheuint8.FheUint8, numParties)
	for i := range clearInputs {
		clearInputs[i] = uint8(7 + i*11)
		var ct fheuint8.FheUint8
		for bit := 0; bit < 8; bit++ {
			b := (clearInputs[i]>>uint(bit))&1 == 1
			ct.Bits[bit] = boolpkg.EncryptPK(ctx.R, pk, p.SigmaRLWE, b, src)
		}
		ciphertexts[i] = ct
	}
	fmt.Printf("inputs: %v\n", clearInputs)

	decrypt := func(ct fheuint8.FheUint8) (uint8, error) {
		decProto := mhe.NewDecryptionProtocol(ctx.R.Q, p.SigmaLWE)
		var v uint8
		for bit := 0; bit < 8; bit++ {
			shares := make([]*mhe.DecryptionShare, numParties)
			for i, ck := range cks {
				s, err := ck.GenDecryptionShare(&ct.Bits[bit], src)
				if err != nil {
					return 0, err
				}
				shares[i] = s
			}
			got, err := decProto.Aggregate(&ct.Bits[bit], shares)
			if err != nil {
				return 0, err
			}
			if got {
				v |= 1 << uint(bit)
			}
		}
		return v, nil
	}

	out1 := function1(ev, ciphertexts[0], ciphertexts[1], ciphertexts[2], ciphertexts[3])
	got1, err := decrypt(out1)
	if err != nil {
		return err
	}
	want1 := uint8((clearInputs[0] + clearInputs[1]) * clearInputs[2] * clearInputs[3])
	fmt.Printf("function1((a+b)*c)*d = %d (clear: %d)\n", got1, want1)

	out2 := function2(ev, ciphertexts[0], ciphertexts[1], ciphertexts[2], ciphertexts[3])
	got2, err := decrypt(out2)
	if err != nil {
		return err
	}
	want2 := uint8(clearInputs[0]*clearInputs[1] + clearInputs[2]*clearInputs[3])
	fmt.Printf("function2(a*b)+(c*d) = %d (clear: %d)\n", got2, want2)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "interactive-fheuint8:", err)
		os.Exit(1)
	}
}
