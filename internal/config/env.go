package config

import (
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable the vault reads.
const EnvPrefix = "MEDIAVAULT_"

// parseEnv overlays cfg with MEDIAVAULT_* variables. Unparsable values are
// ignored and the previous value is kept.
func parseEnv(cfg *Config) {
	cfg.DatabasePath = getEnv("DB", cfg.DatabasePath)
	cfg.SettingsBackend = getEnv("SETTINGS", cfg.SettingsBackend)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.BlobBackend = getEnv("BLOBS", cfg.BlobBackend)
	cfg.BlobDir = getEnv("BLOB_DIR", cfg.BlobDir)
	cfg.S3Bucket = getEnv("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3BaseEndpoint = getEnv("S3_ENDPOINT", cfg.S3BaseEndpoint)
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.S3URLExpiry = getDurationEnv("S3_URL_EXPIRY", cfg.S3URLExpiry)
	cfg.UploadDelay = getDurationEnv("UPLOAD_DELAY", cfg.UploadDelay)
	cfg.SeedDemo = getBoolEnv("SEED", cfg.SeedDemo)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
