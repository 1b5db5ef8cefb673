package phe_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/phe-go/pkg/phe"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := phe.LoadConfig()
	require.NoError(t, err)

	def := phe.DefaultConfig()
	assert.Equal(t, def.KeySize, cfg.KeySize)
	assert.Equal(t, def.PrimalityRounds, cfg.PrimalityRounds)
	assert.Equal(t, def.MaxAttempts, cfg.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PHE_KEY_SIZE", "1024")
	t.Setenv("PHE_PRIMALITY_ROUNDS", "20")
	t.Setenv("PHE_MAX_ATTEMPTS", "50")

	cfg, err := phe.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.KeySize)
	assert.Equal(t, 20, cfg.PrimalityRounds)
	assert.Equal(t, 50, cfg.MaxAttempts)
}

func TestLoadConfigError(t *testing.T) {
	t.Setenv("PHE_KEY_SIZE", "not-an-int")

	_, err := phe.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*phe.Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*phe.Config) {}},
		{name: "odd key size", mutate: func(c *phe.Config) { c.KeySize = 1025 }, wantErr: phe.ErrInvalidKeySize},
		{name: "tiny key size", mutate: func(c *phe.Config) { c.KeySize = 8 }, wantErr: phe.ErrInvalidKeySize},
		{name: "zero rounds", mutate: func(c *phe.Config) { c.PrimalityRounds = 0 }, wantErr: phe.ErrInvalidConfig},
		{name: "zero attempts", mutate: func(c *phe.Config) { c.MaxAttempts = 0 }, wantErr: phe.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := phe.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
