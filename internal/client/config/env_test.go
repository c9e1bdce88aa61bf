package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the rest of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func Test_parseEnv(t *testing.T) {
	t.Run("variables override", func(t *testing.T) {
		t.Setenv("GK_SERVER_URL", "https://env.example")
		t.Setenv("GK_REQUEST_TIMEOUT", "3s")
		t.Setenv("GK_SESSION_MAX_AGE", "1h30m")

		cfg := defaults()
		parseEnv(cfg, filepath.Join(t.TempDir(), "missing.env"))

		assert.Equal(t, "https://env.example", cfg.ServerURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 90*time.Minute, cfg.SessionMaxAge)
		assert.Equal(t, "session.db", cfg.DBPath)
	})

	t.Run("dotenv file fills unset variables only", func(t *testing.T) {
		unsetEnv(t, "GK_DB_PATH")
		t.Setenv("GK_LOG_LEVEL", "warn")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GK_DB_PATH=/tmp/dotenv.db\nGK_LOG_LEVEL=debug\n"), 0o600))

		cfg := defaults()
		parseEnv(cfg, path)

		assert.Equal(t, "/tmp/dotenv.db", cfg.DBPath)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("bad duration panics", func(t *testing.T) {
		t.Setenv("GK_REQUEST_TIMEOUT", "soon")

		require.Panics(t, func() { parseEnv(defaults(), filepath.Join(t.TempDir(), "missing.env")) })
	})
}
