// Package config loads server configuration from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/groupwallet/internal/voting"
	"github.com/mmynk/groupwallet/pkg/logging"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Port         int
	DBPath       string
	Storage      string
	JWTSecret    string
	AuthDisabled bool
	TokenTTL     time.Duration
	OTPTTL       time.Duration
	VotingPolicy string
	RedisURL     string
	// LockTTL is the Redis lease length. Held leases are renewed every
	// LockTTL/3, so it only bounds how long a crashed replica blocks a group.
	LockTTL   time.Duration
	LogLevel  slog.Level
	LogFormat logging.Format
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (if present) and then the process environment. Variables
// already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults and validation.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var errs []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(get(key, def))
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, get(key, def)))
			return 0
		}
		return d
	}
	boolean := func(key string) bool {
		raw := get(key, "false")
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		}
		return b
	}

	cfg := Config{
		DBPath:       get("DB_PATH", "./data/wallet.db"),
		Storage:      strings.ToLower(get("STORAGE", StorageSQLite)),
		JWTSecret:    get("JWT_SECRET", ""),
		AuthDisabled: boolean("AUTH_DISABLED"),
		TokenTTL:     duration("TOKEN_TTL", "168h"),
		OTPTTL:       duration("OTP_TTL", "5m"),
		VotingPolicy: strings.ToLower(get("VOTING_POLICY", voting.PolicyQuorum)),
		RedisURL:     get("REDIS_URL", ""),
		LockTTL:      duration("LOCK_TTL", "10s"),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: invalid port %q", get("PORT", "8080")))
	}
	cfg.Port = port

	switch cfg.Storage {
	case StorageSQLite, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE: must be %q or %q, got %q", StorageSQLite, StorageMemory, cfg.Storage))
	}

	if _, err := voting.PolicyByName(cfg.VotingPolicy); err != nil {
		errs = append(errs, fmt.Errorf("VOTING_POLICY: %w", err))
	}

	if cfg.JWTSecret == "" && !cfg.AuthDisabled {
		errs = append(errs, errors.New("JWT_SECRET: required unless AUTH_DISABLED=true"))
	}

	if cfg.LogLevel, err = logging.ParseLevel(get("LOG_LEVEL", "")); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.LogFormat, err = logging.ParseFormat(get("LOG_FORMAT", "")); err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
