package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
	"github.com/hsiuhsiu/phe-go/pkg/phe/logging"
)

type rootOptions struct {
	verbose     bool
	logFormat   string
	keySize     int
	rounds      int
	maxAttempts int
	seed        string
	timeout     time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "phe-go",
		Short:         "Partially homomorphic encryption demos (Goldwasser-Micali, Paillier)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "log at debug level")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log output format: text, json or logrus")
	flags.IntVar(&opts.keySize, "key-size", phe.DefaultKeySize, "modulus size in bits (env PHE_KEY_SIZE)")
	flags.IntVar(&opts.rounds, "rounds", phe.DefaultPrimalityRounds, "Miller-Rabin rounds (env PHE_PRIMALITY_ROUNDS)")
	flags.IntVar(&opts.maxAttempts, "max-attempts", phe.DefaultMaxAttempts, "rejection sampling bound (env PHE_MAX_ATTEMPTS)")
	flags.StringVar(&opts.seed, "seed", "", "deterministic seed; empty uses crypto/rand")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "key generation deadline")

	cmd.AddCommand(
		newVersionCmd(),
		newGMCmd(opts),
		newPaillierCmd(opts),
	)
	return cmd
}

// config loads the environment and applies every flag the user set
// explicitly on top of it.
func (o *rootOptions) config(cmd *cobra.Command) (phe.Config, error) {
	cfg, err := phe.LoadConfig()
	if err != nil {
		return phe.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("key-size") {
		cfg.KeySize = o.keySize
	}
	if flags.Changed("rounds") {
		cfg.PrimalityRounds = o.rounds
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = o.maxAttempts
	}

	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return phe.Config{}, err
	}
	cfg.Logger = logger
	return cfg, cfg.Validate()
}

func (o *rootOptions) logger(w io.Writer) (logging.Logger, error) {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch o.logFormat {
	case "text":
		return logging.New(slog.New(slog.NewTextHandler(w, handlerOpts))), nil
	case "json":
		return logging.New(slog.New(slog.NewJSONHandler(w, handlerOpts))), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logrus.InfoLevel)
		if o.verbose {
			l.SetLevel(logrus.DebugLevel)
		}
		return logging.NewLogrus(logrus.NewEntry(l)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", o.logFormat)
	}
}

func (o *rootOptions) seedBytes() []byte {
	if o.seed == "" {
		return nil
	}
	return []byte(o.seed)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "phe-go version: %s\n", phe.LibraryVersion())
		},
	}
}
