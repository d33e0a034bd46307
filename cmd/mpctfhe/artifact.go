package main

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/lwe"
	"github.com/latticefhe/mpctfhe/params"
)

// ciphertextArtifact is the on-disk session artifact for a single FheBool
// plus the secret needed to decrypt it. The hand-rolled binary layout is
// reserved for in-protocol wire objects; artifacts a user saves between
// CLI invocations use CBOR so other tools can inspect them without
// linking this module.
type ciphertextArtifact struct {
	Preset       string
	SecretCoeffs []uint64
	Sigma        float64
	Q            uint64
	A            []uint64
	B            uint64
}

func saveCmd() *cobra.Command {
	var preset, out string
	var bit bool
	cmd := &cobra.Command{
		Use:   "encrypt-to-file",
		Short: "Encrypt a bit under a fresh single-party key and save it as a CBOR artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			ck, _, src, err := setupParty(preset)
			if err != nil {
				return err
			}
			ct := ck.Encrypt(bit, src)

			art := ciphertextArtifact{
				Preset:       preset,
				SecretCoeffs: ck.Secret.Coeffs,
				Sigma:        ck.Sigma,
				Q:            ct.CT.Q,
				A:            ct.CT.A,
				B:            ct.CT.B,
			}
			data, err := cbor.Marshal(art)
			if err != nil {
				return fmt.Errorf("encrypt-to-file: marshal artifact: %w", err)
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("encrypt-to-file: write %s: %w", out, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", string(params.PresetToy), "parameter preset")
	cmd.Flags().BoolVar(&bit, "bit", true, "plaintext bit to encrypt")
	cmd.Flags().StringVar(&out, "out", "ciphertext.cbor", "output artifact path")
	return cmd
}

func loadCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "decrypt-from-file",
		Short: "Load a CBOR ciphertext artifact and decrypt it",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("decrypt-from-file: read %s: %w", in, err)
			}
			var art ciphertextArtifact
			if err := cbor.Unmarshal(data, &art); err != nil {
				return fmt.Errorf("decrypt-from-file: unmarshal artifact: %w", err)
			}

			lit, err := params.Default(params.Preset(art.Preset))
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

			ck := &boolpkg.ClientKey{
				Secret: &lwe.SecretKey{Coeffs: art.SecretCoeffs},
				R:      ctx.R,
				Sigma:  art.Sigma,
			}
			ct := boolpkg.FheBool{CT: &lwe.Ciphertext{Q: art.Q, A: art.A, B: art.B}}

			got, err := ck.Decrypt(ct)
			if err != nil {
				return err
			}
			fmt.Printf("decrypted %s: %v\n", in, got)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "ciphertext.cbor", "input artifact path")
	return cmd
}
