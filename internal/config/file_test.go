package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json", func(t *testing.T) {
		path := writeTemp(t, "vault.json", `{
			"database_path": "other.db",
			"settings_backend": "redis",
			"redis_addr": "redis://cache:6379/1",
			"upload_delay": "500ms",
			"s3_url_expiry": 3600000000000,
			"filter_cache_size": 16,
			"seed_demo": false
		}`)
		os.Args = []string{"vault", "-config", path}

		var cfg Config
		cfg.LoadDefaults()
		parseFile(&cfg)

		assert.Equal(t, "other.db", cfg.DatabasePath)
		assert.Equal(t, SettingsRedis, cfg.SettingsBackend)
		assert.Equal(t, "redis://cache:6379/1", cfg.RedisAddr)
		assert.Equal(t, 500*time.Millisecond, cfg.UploadDelay)
		assert.Equal(t, time.Hour, cfg.S3URLExpiry)
		assert.Equal(t, 16, cfg.FilterCacheSize)
		assert.False(t, cfg.SeedDemo)
		// untouched keys keep defaults
		assert.Equal(t, "media", cfg.BlobDir)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTemp(t, "vault.yml", `
blob_backend: s3
s3_bucket: vault-media
s3_base_endpoint: http://127.0.0.1:9000
s3_access_key: minioadmin
s3_secret_key: minioadmin
upload_delay: 1s
`)
		os.Args = []string{"vault", "-c", path}

		var cfg Config
		cfg.LoadDefaults()
		parseFile(&cfg)

		assert.Equal(t, BlobsS3, cfg.BlobBackend)
		assert.Equal(t, "vault-media", cfg.S3Bucket)
		assert.Equal(t, "http://127.0.0.1:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, "minioadmin", cfg.S3AccessKey)
		assert.Equal(t, time.Second, cfg.UploadDelay)
		assert.Equal(t, "vault.db", cfg.DatabasePath)
	})

	t.Run("no file flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"vault"}
		cfg := Config{DatabasePath: "keep.db"}
		parseFile(&cfg)
		assert.Equal(t, "keep.db", cfg.DatabasePath)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		path := writeTemp(t, "bad.json", `{ not json`)
		os.Args = []string{"vault", "-config", path}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("invalid yaml panics", func(t *testing.T) {
		path := writeTemp(t, "bad.yaml", "upload_delay: [1, 2\n")
		os.Args = []string{"vault", "-c", path}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"vault", "-c", filepath.Join(t.TempDir(), "absent.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
