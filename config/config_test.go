package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Load()
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "blog-service", cfg.Service.Name)
	require.Equal(t, "8080", cfg.Service.Port)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, 5, cfg.Auth.MinPasswordLength)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("MIN_PASSWORD_LENGTH", "10")

	cfg := Load()
	require.Equal(t, "9999", cfg.Service.Port)
	require.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 10, cfg.Auth.MinPasswordLength)
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""
	require.Error(t, cfg.Validate())
}

func TestValidateTokenTTLBoundedBySession(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	// A token outliving its session would defeat revocation.
	cfg.Auth.TokenTTL = cfg.Auth.SessionTTL + time.Hour
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsWeakHashCost(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.BcryptCost = 4
	require.Error(t, cfg.Validate())
}
