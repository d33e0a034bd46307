// Command mpctfhe is a CLI front-end over the library: key generation,
// ciphertext encryption/decryption, and gate evaluation, wrapped with
// github.com/spf13/cobra. It is a consumer of the public API only, never
// reaching into ring/rlwe/rgsw/pbs internals directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	boolpkg "github.com/latticefhe/mpctfhe/bool"
	"github.com/latticefhe/mpctfhe/fheuint8"
	"github.com/latticefhe/mpctfhe/internal/prng"
	"github.com/latticefhe/mpctfhe/params"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mpctfhe:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mpctfhe",
		Short: "Homomorphic NAND-evaluator demo CLI",
	}
	root.AddCommand(demoBoolCmd(), demoUint8Cmd(), demoNoiseCmd(), saveCmd(), loadCmd())
	return root
}

func setupParty(preset string) (*boolpkg.ClientKey, *boolpkg.ServerKey, *prng.Source, error) {
	lit, err := params.Default(params.Preset(preset))
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := params.NewFromLiteral(lit)
	if err != nil {
		return nil, nil, nil, err
	}
	src := prng.NewSource(prng.NewSeed())
	ck, sk, err := boolpkg.GenKeys(p, src)
	if err != nil {
		return nil, nil, nil, err
	}
	return ck, sk, src, nil
}

func demoBoolCmd() *cobra.Command {
	var preset string
	var a, b bool
	cmd := &cobra.Command{
		Use:   "nand",
		Short: "Generate a single-party key pair and evaluate NAND(a,b)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ck, sk, src, err := setupParty(preset)
			if err != nil {
				return err
			}
			boolpkg.InstallServerKey(sk)

			ctA := ck.Encrypt(a, src)
			ctB := ck.Encrypt(b, src)

			fmt.Printf("evaluating NAND(%v, %v) under preset %q\n", a, b, preset)
			out := sk.Evaluator.Nand(ctA, ctB)
			got, err := ck.Decrypt(out)
			if err != nil {
				return err
			}
			fmt.Printf("NAND(%v, %v) = %v\n", a, b, got)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", string(params.PresetToy), "parameter preset")
	cmd.Flags().BoolVar(&a, "a", true, "first operand")
	cmd.Flags().BoolVar(&b, "b", true, "second operand")
	return cmd
}

func demoUint8Cmd() *cobra.Command {
	var preset string
	var aInt, bInt int
	var op string
	cmd := &cobra.Command{
		Use:   "uint8",
		Short: "Generate a single-party key pair and evaluate an 8-bit arithmetic op",
		RunE: func(cmd *cobra.Command, args []string) error {
			ck, sk, src, err := setupParty(preset)
			if err != nil {
				return err
			}
			boolpkg.InstallServerKey(sk)

			a, b := uint8(aInt), uint8(bInt)
			ck8 := &fheuint8.ClientKey{ClientKey: ck}
			ev := fheuint8.NewEvaluator(sk.Evaluator)

			ctA := ck8.Encrypt(a, src)
			ctB := ck8.Encrypt(b, src)

			fmt.Printf("evaluating %d %s %d under preset %q\n", a, op, b, preset)
			switch op {
			case "add":
				got, err := ck8.Decrypt(ev.Add(ctA, ctB))
				if err != nil {
					return err
				}
				fmt.Printf("%d + %d = %d (clear: %d)\n", a, b, got, a+b)
			case "sub":
				got, err := ck8.Decrypt(ev.Sub(ctA, ctB))
				if err != nil {
					return err
				}
				fmt.Printf("%d - %d = %d (clear: %d)\n", a, b, got, a-b)
			case "mul":
				got, err := ck8.Decrypt(ev.Mul(ctA, ctB))
				if err != nil {
					return err
				}
				fmt.Printf("%d * %d = %d (clear: %d)\n", a, b, got, a*b)
			case "div":
				q, r := ev.DivRem(ctA, ctB)
				gotQ, err := ck8.Decrypt(q)
				if err != nil {
					return err
				}
				gotR, err := ck8.Decrypt(r)
				if err != nil {
					return err
				}
				fmt.Printf("%d / %d = %d remainder %d\n", a, b, gotQ, gotR)
			default:
				return fmt.Errorf("unknown op %q (want add/sub/mul/div)", op)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", string(params.PresetToy), "parameter preset")
	cmd.Flags().IntVar(&aInt, "a", 3, "first operand (0-255)")
	cmd.Flags().IntVar(&bInt, "b", 5, "second operand (0-255)")
	cmd.Flags().StringVar(&op, "op", "add", "operation: add, sub, mul, div")
	return cmd
}

func demoNoiseCmd() *cobra.Command {
	var preset string
	var trials int
	cmd := &cobra.Command{
		Use:   "noise",
		Short: "Measure the post-bootstrap noise distribution of the NAND gate",
		RunE: func(cmd *cobra.Command, args []string) error {
			ck, sk, src, err := setupParty(preset)
			if err != nil {
				return err
			}
			boolpkg.InstallServerKey(sk)

			samples := make([]boolpkg.NoiseSample, 0, trials)
			for i := 0; i < trials; i++ {
				a := ck.Encrypt(i%2 == 0, src)
				b := ck.Encrypt(i%3 == 0, src)
				want := !((i%2 == 0) && (i%3 == 0))
				out := sk.Evaluator.Nand(a, b)
				s, err := ck.MeasureNoise(out, want)
				if err != nil {
					return err
				}
				samples = append(samples, s)
			}
			st, err := boolpkg.ComputeStats(samples)
			if err != nil {
				return err
			}
			fmt.Printf("noise over %d NAND trials: mean=%.2f stddev=%.2f max=%.2f (log2 bits)\n",
				trials, st.Mean, st.StdDev, st.Max)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", string(params.PresetToy), "parameter preset")
	cmd.Flags().IntVar(&trials, "trials", 32, "number of NAND evaluations to sample")
	return cmd
}
