package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 100*1024, cfg.Server.JSONBodyLimit)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 0, cfg.RateLimit.AuthLimit)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoadFrom_Valid(t *testing.T) {
	p := writeConfig(t, `server:
  host: "127.0.0.1"
  port: 8080
  json_body_limit: 2048
cors:
  allow_origins: ["http://localhost:5173"]
rate_limit:
  auth_limit: 20
  interval: 1m
redis:
  addr: "localhost:6379"
  db: 2
logger:
  level: debug
`)
	cfg := LoadFrom(p)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 2048, cfg.Server.JSONBodyLimit)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 20, cfg.RateLimit.AuthLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Interval)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("PORT", "4000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg := LoadFrom(p)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestLoadFrom_PanicsOnInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "port out of range", yml: "server:\n  port: 70000\n"},
		{name: "zero body limit", yml: "server:\n  json_body_limit: 0\n"},
		{name: "negative auth limit", yml: "rate_limit:\n  auth_limit: -1\n"},
		{name: "limit without interval", yml: "rate_limit:\n  auth_limit: 5\n  interval: 0s\n"},
		{name: "bad cookie secret", yml: "cookies:\n  secret: 'not base64!'\n"},
		{name: "short cookie secret", yml: "cookies:\n  secret: 'c2hvcnQ='\n"},
		{name: "malformed yaml", yml: "server: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := writeConfig(t, tc.yml)
			assert.Panics(t, func() { _ = LoadFrom(p) })
		})
	}
}

func TestValidate_AcceptsAESKeySizes(t *testing.T) {
	cfg := Default()
	cfg.Cookies.Secret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=" // 32 bytes
	assert.NoError(t, cfg.Validate())
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	p := writeConfig(t, "server:\n  port: 9100\n")
	t.Setenv("CONFIG_PATH", p)

	cfg := Load()

	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")), "missing file is not an error")

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("LEETLAB_DOTENV_PROBE=from-file\n"), 0o644))
	t.Setenv("LEETLAB_DOTENV_PROBE", "")
	os.Unsetenv("LEETLAB_DOTENV_PROBE")

	require.NoError(t, loadDotEnv(p))
	assert.Equal(t, "from-file", os.Getenv("LEETLAB_DOTENV_PROBE"))
}
