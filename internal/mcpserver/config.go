package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds the MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize   int64
	MaxFetchSize    int64
	AllowPrivateIPs bool

	// ProfilePath is the extraction profile file; empty searches the
	// default locations.
	ProfilePath string

	// VerifyStructural enables kin-openapi validation in the verify tool
	// when the caller does not say.
	VerifyStructural bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASEXTRACT_MCP_* environment variables.
// Invalid values log a warning and fall back to the default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASEXTRACT_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASEXTRACT_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASEXTRACT_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OASEXTRACT_MCP_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASEXTRACT_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASEXTRACT_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      envInt64("OASEXTRACT_MCP_MAX_INLINE_SIZE", 10*1024*1024),
		MaxFetchSize:       envInt64("OASEXTRACT_MCP_MAX_FETCH_SIZE", 50*1024*1024),
		AllowPrivateIPs:    envBool("OASEXTRACT_MCP_ALLOW_PRIVATE_IPS", false),
		ProfilePath:        os.Getenv("OASEXTRACT_MCP_PROFILE"),
		VerifyStructural:   envBool("OASEXTRACT_MCP_VERIFY_STRUCTURAL", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
