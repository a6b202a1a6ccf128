package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupwallet/internal/voting"
	"github.com/mmynk/groupwallet/pkg/logging"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "./data/wallet.db", cfg.DBPath)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, voting.PolicyQuorum, cfg.VotingPolicy)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, logging.FormatText, cfg.LogFormat)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.AuthDisabled)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":          "9090",
		"DB_PATH":       "/tmp/w.db",
		"STORAGE":       "MEMORY",
		"AUTH_DISABLED": "true",
		"TOKEN_TTL":     "1h",
		"OTP_TTL":       "30s",
		"VOTING_POLICY": "single-rejection",
		"REDIS_URL":     "redis://localhost:6379/0",
		"LOCK_TTL":      "2s",
		"LOG_LEVEL":     "debug",
		"LOG_FORMAT":    "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/w.db", cfg.DBPath)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.AuthDisabled)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.OTPTTL)
	assert.Equal(t, voting.PolicySingleRejection, cfg.VotingPolicy)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 2*time.Second, cfg.LockTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, logging.FormatJSON, cfg.LogFormat)
}

func TestJWTSecretRequired(t *testing.T) {
	_, err := FromLookup(lookupFrom(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestInvalidValuesAreAllReported(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"JWT_SECRET":    "x",
		"PORT":          "eighty",
		"STORAGE":       "postgres",
		"TOKEN_TTL":     "forever",
		"VOTING_POLICY": "majority",
		"LOG_FORMAT":    "xml",
	}))
	require.Error(t, err)
	for _, key := range []string{"PORT", "STORAGE", "TOKEN_TTL", "VOTING_POLICY", "LOG_FORMAT"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 7070, cfg.Port)
}
