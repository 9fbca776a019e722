package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the file", func(t *testing.T) {
		// Given: a config file selecting the sqlite storage
		path := writeConfig(t, `
log-level: debug
http-port: "8081"
storage: sqlite
game-ttl: 2h
redis:
  host: cache
  port: "6380"
sqlite-storage-path: /tmp/games.db
`)

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: every value is taken from the file
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, StorageSQLite, conf.Storage)
		assert.Equal(t, 2*time.Hour, conf.GameTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "/tmp/games.db", conf.SQLiteStoragePath)
	})

	t.Run("Fills defaults and environment overrides", func(t *testing.T) {
		// Given: an almost empty file and a port in the environment
		path := writeConfig(t, "log-level: info\n")
		t.Setenv("HTTP_PORT", "7070")

		// When: loading it
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the defaults apply and the environment wins
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.GameTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Fails on a missing file", func(t *testing.T) {
		// When: loading a file that does not exist
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: an error is returned
		require.Error(t, err)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
