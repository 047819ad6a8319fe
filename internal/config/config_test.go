package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg, err := LoadWithDefaults()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)

	t.Setenv("JWT_TTL", "bogus")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_TTL")
}

func TestLoad_YAMLFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := strings.Join([]string{
		"http:",
		"  address: \":7070\"",
		"database:",
		"  path: /tmp/file.db",
		"auth:",
		"  jwt_secret: file-secret",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("CONFIG_FILE", path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Address)
	assert.Equal(t, "/tmp/file.db", cfg.Database.Path)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)

	// Environment variables win over the file.
	t.Setenv("HTTP_ADDRESS", ":6060")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.HTTP.Address)
}

func TestConfigString_MasksSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Auth.JWTSecret = "super-secret"
	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.Contains(t, s, ":8080")
}
