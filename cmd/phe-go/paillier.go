package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/phe-go/pkg/phe/paillier"
)

func newPaillierCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paillier [a] [b]",
		Short: "Generate a Paillier key and evaluate a+b, a+const and a*const under encryption",
		Long: `Encrypts a and b, then decrypts the homomorphic sum of the two ciphertexts,
the ciphertext of a plus the public constant b, and the ciphertext of a times
the public constant b. Both operands default to 1235 and 5321.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := big.NewInt(1235), big.NewInt(5321)
			for i, dst := range []*big.Int{a, b} {
				if i >= len(args) {
					break
				}
				if _, ok := dst.SetString(args[i], 10); !ok {
					return fmt.Errorf("operand %q is not a decimal integer", args[i])
				}
			}

			cfg, err := root.config(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			var inst *paillier.Paillier
			if seed := root.seedBytes(); seed != nil {
				inst, err = paillier.NewWithSeed(ctx, cfg, seed)
			} else {
				inst, err = paillier.New(ctx, cfg)
			}
			if err != nil {
				return err
			}
			defer inst.Close()

			pk, err := inst.PublicKey()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "modulus: %d bits\n", pk.N().BitLen())

			results, err := paillierDemo(inst, a, b)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "decrypt(encrypt(a)) = %s\n", results.plain)
			fmt.Fprintf(out, "a + b               = %s\n", results.sum)
			fmt.Fprintf(out, "a + const b         = %s\n", results.sumConst)
			fmt.Fprintf(out, "a * const b         = %s\n", results.product)
			return nil
		},
	}
}

type demoResults struct {
	plain, sum, sumConst, product *big.Int
}

func paillierDemo(inst *paillier.Paillier, a, b *big.Int) (*demoResults, error) {
	ca, err := inst.Encrypt(a)
	if err != nil {
		return nil, fmt.Errorf("encrypt a: %w", err)
	}
	cb, err := inst.Encrypt(b)
	if err != nil {
		return nil, fmt.Errorf("encrypt b: %w", err)
	}

	sum, err := inst.AddCiphers(ca, cb)
	if err != nil {
		return nil, err
	}
	sumConst, err := inst.AddConst(ca, b)
	if err != nil {
		return nil, err
	}
	product, err := inst.MulConst(ca, b)
	if err != nil {
		return nil, err
	}

	res := &demoResults{}
	for _, step := range []struct {
		c   *big.Int
		dst **big.Int
	}{
		{ca, &res.plain},
		{sum, &res.sum},
		{sumConst, &res.sumConst},
		{product, &res.product},
	} {
		m, err := inst.Decrypt(step.c)
		if err != nil {
			return nil, err
		}
		*step.dst = m
	}
	return res, nil
}
