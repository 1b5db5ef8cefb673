package phe

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/hsiuhsiu/phe-go/pkg/phe/logging"
)

const (
	// MinKeySize is the smallest modulus size accepted by Config.Validate.
	// Anything this small is only useful for tests.
	MinKeySize = 16

	DefaultKeySize         = 2048
	DefaultPrimalityRounds = 40
	DefaultMaxAttempts     = 1000
)

// Config carries the knobs shared by both cryptosystems. The zero value is not
// valid; start from DefaultConfig or LoadConfig.
type Config struct {
	// KeySize is the requested modulus size in bits. It must be even.
	KeySize int `env:"PHE_KEY_SIZE" envDefault:"2048"`

	// PrimalityRounds is the number of Miller-Rabin rounds used when accepting
	// strong primes. 40 rounds bound the false-positive rate by 4^-40.
	PrimalityRounds int `env:"PHE_PRIMALITY_ROUNDS" envDefault:"40"`

	// MaxAttempts caps every resampling loop during key generation.
	MaxAttempts int `env:"PHE_MAX_ATTEMPTS" envDefault:"1000"`

	// Logger receives key generation events. Nil means slog.Default().
	Logger logging.Logger
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		KeySize:         DefaultKeySize,
		PrimalityRounds: DefaultPrimalityRounds,
		MaxAttempts:     DefaultMaxAttempts,
	}
}

// LoadConfig reads PHE_* environment variables on top of the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports whether the configuration can be used for key generation.
func (c Config) Validate() error {
	if err := ValidateKeySize(c.KeySize); err != nil {
		return err
	}
	if c.PrimalityRounds < 1 {
		return fmt.Errorf("%w: primality rounds must be positive, got %d", ErrInvalidConfig, c.PrimalityRounds)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

// ValidateKeySize checks that bits is even and at least MinKeySize.
func ValidateKeySize(bits int) error {
	if bits < MinKeySize {
		return fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidKeySize, bits, MinKeySize)
	}
	if bits%2 != 0 {
		return fmt.Errorf("%w: %d is odd", ErrInvalidKeySize, bits)
	}
	return nil
}
