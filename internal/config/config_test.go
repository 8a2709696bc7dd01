package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "UPLOADS_DIR", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"EMAIL_HOST", "EMAIL_PORT", "EMAIL_USER", "EMAIL_PASS",
	"JWT_SECRET", "LOG_LEVEL",
}

// clearEnv unsets every key Load reads; t.Setenv restores the originals.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 31000, cfg.Server.Port)
	assert.Equal(t, "./uploads", cfg.Server.UploadsDir)
	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.MongoURI)
	assert.Equal(t, "account", cfg.Store.MongoDatabase)
	assert.Equal(t, 3306, cfg.Store.MySQL.Port)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Mail.Enabled())
	assert.Equal(t, "my_secret_key", cfg.JWTSecret)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("EMAIL_USER", "noreply@example.com")
	t.Setenv("EMAIL_PASS", "app-password")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Store.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, "app-password", cfg.Mail.Password)
}

func TestLoadFile_ReadsDotEnv(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nPORT=9000\nEMAIL_USER=mailer@example.com\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadFile(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "mailer@example.com", cfg.Mail.User)
}

func TestLoadFile_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
