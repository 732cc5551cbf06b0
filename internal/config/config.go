package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/qudata/gatekeeper/internal/paths"
)

// Build-time variables injected via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Fingerprint serialization schemes.
const (
	SchemeV2     = "v2"
	SchemeLegacy = "legacy"
)

const defaultAllowListURL = "https://raw.githubusercontent.com/a49872040-byte/approved/refs/heads/main/approved.txt"

// Config holds all gatekeeper configuration loaded from environment variables.
type Config struct {
	// AllowListURL is fetched with a plain GET; one token per line.
	AllowListURL string

	// Timeout bounds a single fetch attempt.
	Timeout time.Duration

	// MaxRetries is the total number of fetch attempts, not the number of retries after the first.
	MaxRetries int

	// RetryDelay is the fixed pause between attempts.
	RetryDelay time.Duration

	// StrictTokens discards allow-list lines that are not 64 lowercase hex characters.
	StrictTokens bool

	// Scheme selects the fingerprint serialization: "v2" or "legacy".
	Scheme string

	// LogDir is the directory for log files.
	LogDir string

	// Debug enables verbose logging.
	Debug bool

	// NoColor disables ANSI colors in terminal output.
	NoColor bool
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		AllowListURL: defaultAllowListURL,
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryDelay:   2 * time.Second,
		StrictTokens: true,
		Scheme:       SchemeV2,
		LogDir:       "/var/log/gatekeeper",
	}
}

// Load reads configuration from environment variables, applying defaults
// for anything not explicitly set. A .env file in the working directory is
// loaded first when present; variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("GATEKEEPER_ALLOWLIST_URL")); v != "" {
		cfg.AllowListURL = v
	}

	var err error
	if cfg.Timeout, err = durationEnv("GATEKEEPER_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = durationEnv("GATEKEEPER_RETRY_DELAY", cfg.RetryDelay); err != nil {
		return nil, err
	}

	if v := os.Getenv("GATEKEEPER_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("GATEKEEPER_MAX_RETRIES: %w", err)
		}
		cfg.MaxRetries = n
	}

	if cfg.StrictTokens, err = boolEnv("GATEKEEPER_STRICT_TOKENS", cfg.StrictTokens); err != nil {
		return nil, err
	}
	if cfg.Debug, err = boolEnv("GATEKEEPER_DEBUG", cfg.Debug); err != nil {
		return nil, err
	}
	if cfg.NoColor, err = boolEnv("GATEKEEPER_NO_COLOR", cfg.NoColor); err != nil {
		return nil, err
	}

	if v := os.Getenv("GATEKEEPER_SCHEME"); v != "" {
		cfg.Scheme = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv("GATEKEEPER_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the authenticator cannot run with.
func (c *Config) Validate() error {
	if c.AllowListURL == "" {
		return fmt.Errorf("allow-list URL is required")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", c.RetryDelay)
	}
	switch c.Scheme {
	case SchemeV2, SchemeLegacy:
	default:
		return fmt.Errorf("unknown fingerprint scheme %q (expected %q or %q)", c.Scheme, SchemeV2, SchemeLegacy)
	}
	return nil
}

// NewLogger creates a structured logger that writes JSON to <LogDir>/<name>.log.
// Terminal output belongs to the interactive UI, so when no log file can be
// opened the logger discards records instead of falling back to stderr.
func NewLogger(cfg *Config, name string) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	dir, err := paths.Resolve(cfg.LogDir, "logs")
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}

	logPath := filepath.Join(dir, name+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(slog.NewJSONHandler(file, opts))
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Bare numbers are seconds.
		secs, convErr := strconv.ParseFloat(v, 64)
		if convErr != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
