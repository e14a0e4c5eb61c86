package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost:5432/northwind")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/northwind", cfg.Database.DSN)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)

	// defaults
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.QueryTimeout)
	assert.Equal(t, 300, cfg.Redis.CacheExpiration)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost:5432/northwind")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DATABASE_QUERY_TIMEOUT", "3")
	t.Setenv("ADMIN_USERNAME", "hr")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Database.QueryTimeout)
	assert.Equal(t, "hr", cfg.Admin.Username)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore, Unsetenv makes the variable truly absent
	for _, key := range []string{"DATABASE_DSN", "ADMIN_PASSWORD_HASH", "JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	_, err := LoadConfig()
	assert.Error(t, err)
}
