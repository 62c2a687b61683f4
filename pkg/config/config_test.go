package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o600))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VIDZEL_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, cfg.TokenTTL())
	assert.Equal(t, "badger", cfg.BlobBackend)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "default", cfg.Source("token_ttl"))
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := writeConfigFile(t, `
token_ttl: 600
blob_backend: s3
s3_bucket: vidzel-uploads
cors_allowed_origins:
  - https://app.vidzel.org
log_level: debug
`)
	t.Setenv("VIDZEL_CONFIG_PATH", dir)
	t.Setenv("VIDZEL_TOKEN_TTL", "120")
	t.Setenv("VIDZEL_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.TokenTTLSeconds)
	assert.Equal(t, "environment", cfg.Source("token_ttl"))
	assert.Equal(t, "s3", cfg.BlobBackend)
	assert.Equal(t, "file", cfg.Source("blob_backend"))
	assert.Equal(t, []string{"https://app.vidzel.org"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
	assert.NoError(t, cfg.Validate())
}

func TestLoadInvalidFile(t *testing.T) {
	dir := writeConfigFile(t, "token_ttl: [not a number")
	t.Setenv("VIDZEL_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *VidzelConfig)
		errMsg string
	}{
		{"bad proxy", func(c *VidzelConfig) { c.TrustedProxies = []string{"nope"} }, "invalid trusted_proxies"},
		{"bad backend", func(c *VidzelConfig) { c.BlobBackend = "ftp" }, "invalid blob_backend"},
		{"s3 without bucket", func(c *VidzelConfig) { c.BlobBackend = "s3" }, "s3_bucket is required"},
		{"bad log level", func(c *VidzelConfig) { c.LogLevel = "loud" }, "invalid log_level"},
		{"zero ttl", func(c *VidzelConfig) { c.TokenTTLSeconds = 0 }, "token_ttl"},
		{"zero upload", func(c *VidzelConfig) { c.UploadMaxBytes = 0 }, "upload_max_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestIsTrustedProxy(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.IsTrustedProxy("10.1.2.3"))

	cfg.TrustedProxies = []string{"10.0.0.0/8", "172.16.0.5"}
	assert.True(t, cfg.IsTrustedProxy("10.1.2.3"))
	assert.True(t, cfg.IsTrustedProxy("172.16.0.5"))
	assert.False(t, cfg.IsTrustedProxy("172.16.0.6"))
	assert.False(t, cfg.IsTrustedProxy("garbage"))
}

func TestFormatting(t *testing.T) {
	cfg := Default()

	text := cfg.FormatText()
	assert.Contains(t, text, "blob_backend")
	assert.Contains(t, text, "(not set)")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)

	var decoded struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Attributes, len(attributeNames()))
}
