// Package config loads and validates application configuration from
// environment variables and the optional matching config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/campmatch/internal/matching"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string

	// SessionDBPath is the bbolt file holding in-progress quiz sessions.
	SessionDBPath string

	// SessionTTL is how long an untouched quiz session is kept.
	SessionTTL time.Duration

	// MatchingConfigPath optionally points at a YAML file overriding the
	// default scoring weights, thresholds and market markers.
	MatchingConfigPath string

	// RateLimitPerMinute caps quiz requests per client IP. Zero disables it.
	RateLimitPerMinute int

	// MaxBodyBytes caps request body sizes.
	MaxBodyBytes int64
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config.LoadDotEnv: %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set or any
// values that do not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SessionDBPath:      getEnv("SESSION_DB_PATH", "sessions.db"),
		MatchingConfigPath: os.Getenv("MATCHING_CONFIG"),
	}

	var problems []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "72h"))
	if err != nil || ttl <= 0 {
		problems = append(problems, "SESSION_TTL must be a positive duration")
	}
	cfg.SessionTTL = ttl

	rate, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "60"))
	if err != nil || rate < 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must be a non-negative integer")
	}
	cfg.RateLimitPerMinute = rate

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "65536"), 10, 64)
	if err != nil || maxBody <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}

	return cfg, nil
}

// LoadMatching returns the default matching config overlaid with the YAML
// file at path. Keys absent from the file keep their defaults; list values
// such as local_markers replace the default list. An empty path returns the
// defaults unchanged.
func LoadMatching(path string) (matching.Config, error) {
	cfg := matching.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return matching.Config{}, fmt.Errorf("config.LoadMatching: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return matching.Config{}, fmt.Errorf("config.LoadMatching: parse %s: %w", path, err)
	}
	if cfg.TopN < 1 {
		return matching.Config{}, fmt.Errorf("config.LoadMatching: top_n must be at least 1")
	}
	if cfg.Labels.Great > cfg.Labels.Perfect {
		return matching.Config{}, fmt.Errorf("config.LoadMatching: labels.great must not exceed labels.perfect")
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
