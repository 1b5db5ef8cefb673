package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/gm"
)

func newGMCmd(root *rootOptions) *cobra.Command {
	var trials int

	cmd := &cobra.Command{
		Use:   "gm",
		Short: "Generate a Goldwasser-Micali key and self-check encrypt, decrypt and xor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), root.timeout)
			defer cancel()

			var inst *gm.GM
			if seed := root.seedBytes(); seed != nil {
				inst, err = gm.NewWithSeed(ctx, cfg, seed)
			} else {
				inst, err = gm.New(ctx, cfg)
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

			if err := gmSelfCheck(inst, trials); err != nil {
				return err
			}
			fmt.Fprintf(out, "round trip: %d trials ok\n", trials)
			fmt.Fprintln(out, "xor: truth table ok")
			return nil
		},
	}
	cmd.Flags().IntVarP(&trials, "trials", "n", 100, "encrypt/decrypt trials")
	return cmd
}

func gmSelfCheck(inst *gm.GM, trials int) error {
	for i := 0; i < trials; i++ {
		bit := i%2 == 1
		c, err := inst.Encrypt(bit)
		if err != nil {
			return fmt.Errorf("trial %d: encrypt: %w", i, err)
		}
		got, err := inst.Decrypt(c)
		if err != nil {
			return fmt.Errorf("trial %d: decrypt: %w", i, err)
		}
		if got != bit {
			return fmt.Errorf("trial %d: decrypted %t, want %t: %w", i, got, bit, phe.ErrInvariantViolation)
		}
	}

	for _, pair := range [][2]bool{{false, false}, {false, true}, {true, false}, {true, true}} {
		c1, err := inst.Encrypt(pair[0])
		if err != nil {
			return err
		}
		c2, err := inst.Encrypt(pair[1])
		if err != nil {
			return err
		}
		x, err := inst.Xor(c1, c2)
		if err != nil {
			return err
		}
		got, err := inst.Decrypt(x)
		if err != nil {
			return err
		}
		if want := pair[0] != pair[1]; got != want {
			return fmt.Errorf("xor(%t, %t) decrypted to %t: %w", pair[0], pair[1], got, phe.ErrInvariantViolation)
		}
	}
	return nil
}
