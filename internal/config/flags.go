package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mediavault/internal/flagx"
)

var knownFlags = []string{
	"-db", "-settings", "-redis", "-blobs", "-blob-dir",
	"-s3-bucket", "-s3-region", "-s3-endpoint", "-s3-access-key", "-s3-secret-key", "-s3-url-expiry",
	"-upload-delay", "-cache-size", "-seed", "-log-level",
}

// parseFlags overlays cfg with command-line flags. Boolean flags take the
// -seed=false form. It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("vault", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path to the SQLite database")
	fs.StringVar(&cfg.SettingsBackend, "settings", cfg.SettingsBackend, "settings backend: sqlite, redis or memory")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis host:port or redis:// URL")
	fs.StringVar(&cfg.BlobBackend, "blobs", cfg.BlobBackend, "blob backend: local or s3")
	fs.StringVar(&cfg.BlobDir, "blob-dir", cfg.BlobDir, "directory for the local blob backend")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "bucket for the s3 blob backend")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "s3 endpoint for S3-compatible stores")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "s3 access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "s3 secret key")
	fs.DurationVar(&cfg.S3URLExpiry, "s3-url-expiry", cfg.S3URLExpiry, "lifetime of presigned media URLs")
	fs.DurationVar(&cfg.UploadDelay, "upload-delay", cfg.UploadDelay, "minimum time an upload batch takes")
	fs.IntVar(&cfg.FilterCacheSize, "cache-size", cfg.FilterCacheSize, "number of cached filtered views")
	fs.BoolVar(&cfg.SeedDemo, "seed", cfg.SeedDemo, "seed an empty library with demo items")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
