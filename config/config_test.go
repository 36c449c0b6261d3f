package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// isolate runs the test from an empty directory so no stray .env or config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 24*time.Hour, cfg.JWT.RegisterExpiration)
	assert.Equal(t, 10, cfg.Security.LoginRateLimit)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Security.BcryptCost)
	assert.False(t, cfg.Admin.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "changeme")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
	assert.Equal(t, 4, cfg.Security.BcryptCost)
	assert.True(t, cfg.Admin.Enabled())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
jwt:
  secret: from-yaml-0123456789
  issuer: yaml-issuer
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("JWT_ISSUER", "env-issuer")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "from-yaml-0123456789", cfg.JWT.Secret)
	assert.Equal(t, "env-issuer", cfg.JWT.Issuer)
}

func TestLoad_MissingSecret(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.JWT.Secret = "short"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"short secret in release": func(c *Config) { c.Server.GinMode = "release" },
		"zero expiration":         func(c *Config) { c.JWT.Expiration = 0 },
		"missing db name":         func(c *Config) { c.Database.Name = "" },
		"zero rate limit":         func(c *Config) { c.Security.LoginRateLimit = 0 },
		"bcrypt too low":          func(c *Config) { c.Security.BcryptCost = 1 },
		"bcrypt too high":         func(c *Config) { c.Security.BcryptCost = 40 },
		"unknown gin mode":        func(c *Config) { c.Server.GinMode = "verbose" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := defaultConfig().Database
	cfg.Password = "pw"
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=musicweb")
	assert.Contains(t, dsn, "password=pw")
	assert.Contains(t, dsn, "sslmode=disable")
}
