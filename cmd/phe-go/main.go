// Command phe-go generates Goldwasser-Micali and Paillier keys and runs
// homomorphic self-checks against them.
//
// Configuration comes from PHE_* environment variables; flags override them.
//
//	phe-go version
//	phe-go gm --trials 100
//	phe-go paillier --key-size 1024 1235 5321
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
