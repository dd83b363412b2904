package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		expected    func() *Config
	}{
		{
			name: "all flags",
			args: []string{"vault", "-db", "x.db", "-settings", "memory", "-blobs", "s3", "-s3-bucket", "b",
				"-s3-endpoint", "http://minio:9000", "-upload-delay", "250ms", "-cache-size", "4", "-seed=false", "-log-level", "debug"},
			expected: func() *Config {
				c := defaults()
				c.DatabasePath = "x.db"
				c.SettingsBackend = SettingsMemory
				c.BlobBackend = BlobsS3
				c.S3Bucket = "b"
				c.S3BaseEndpoint = "http://minio:9000"
				c.UploadDelay = 250 * time.Millisecond
				c.FilterCacheSize = 4
				c.SeedDemo = false
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"vault", "-c", "vault.json", "-verbose", "-db", "y.db"},
			expected: func() *Config { c := defaults(); c.DatabasePath = "y.db"; return c },
		},
		{name: "bad duration", args: []string{"vault", "-upload-delay", "soon"}, expectPanic: true},
		{name: "bad int", args: []string{"vault", "-cache-size", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}
