package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearServerEnv isolates tests from OASEXTRACT_MCP_* variables in the
// ambient environment.
func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASEXTRACT_MCP_CACHE_ENABLED", "OASEXTRACT_MCP_CACHE_MAX_SIZE",
		"OASEXTRACT_MCP_CACHE_FILE_TTL", "OASEXTRACT_MCP_CACHE_URL_TTL",
		"OASEXTRACT_MCP_CACHE_CONTENT_TTL", "OASEXTRACT_MCP_CACHE_SWEEP_INTERVAL",
		"OASEXTRACT_MCP_MAX_INLINE_SIZE", "OASEXTRACT_MCP_MAX_FETCH_SIZE",
		"OASEXTRACT_MCP_ALLOW_PRIVATE_IPS", "OASEXTRACT_MCP_PROFILE",
		"OASEXTRACT_MCP_VERIFY_STRUCTURAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, int64(50*1024*1024), c.MaxFetchSize)
	assert.False(t, c.AllowPrivateIPs)
	assert.Empty(t, c.ProfilePath)
	assert.False(t, c.VerifyStructural)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("OASEXTRACT_MCP_CACHE_ENABLED", "false")
	t.Setenv("OASEXTRACT_MCP_CACHE_MAX_SIZE", "50")
	t.Setenv("OASEXTRACT_MCP_CACHE_FILE_TTL", "30m")
	t.Setenv("OASEXTRACT_MCP_CACHE_URL_TTL", "2m")
	t.Setenv("OASEXTRACT_MCP_CACHE_CONTENT_TTL", "10m")
	t.Setenv("OASEXTRACT_MCP_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OASEXTRACT_MCP_MAX_INLINE_SIZE", "5242880")
	t.Setenv("OASEXTRACT_MCP_MAX_FETCH_SIZE", "1024")
	t.Setenv("OASEXTRACT_MCP_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("OASEXTRACT_MCP_PROFILE", "/etc/oasextract.yaml")
	t.Setenv("OASEXTRACT_MCP_VERIFY_STRUCTURAL", "1")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.Equal(t, int64(1024), c.MaxFetchSize)
	assert.True(t, c.AllowPrivateIPs)
	assert.Equal(t, "/etc/oasextract.yaml", c.ProfilePath)
	assert.True(t, c.VerifyStructural)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("OASEXTRACT_MCP_CACHE_MAX_SIZE", "banana")
	t.Setenv("OASEXTRACT_MCP_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("OASEXTRACT_MCP_CACHE_URL_TTL", "-1m")
	t.Setenv("OASEXTRACT_MCP_CACHE_ENABLED", "maybe")
	t.Setenv("OASEXTRACT_MCP_MAX_INLINE_SIZE", "abc")
	t.Setenv("OASEXTRACT_MCP_MAX_FETCH_SIZE", "0")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, int64(50*1024*1024), c.MaxFetchSize)
}
