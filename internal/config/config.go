package config

import (
	"fmt"
	"time"
)

const (
	SettingsSQLite = "sqlite"
	SettingsRedis  = "redis"
	SettingsMemory = "memory"

	BlobsLocal = "local"
	BlobsS3    = "s3"
)

type Config struct {
	DatabasePath string

	SettingsBackend string
	RedisAddr       string

	BlobBackend    string
	BlobDir        string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3URLExpiry    time.Duration

	UploadDelay     time.Duration
	FilterCacheSize int
	SeedDemo        bool
	LogLevel        string
}

func (c *Config) LoadDefaults() {
	c.DatabasePath = "vault.db"
	c.SettingsBackend = SettingsSQLite
	c.RedisAddr = "localhost:6379"
	c.BlobBackend = BlobsLocal
	c.BlobDir = "media"
	c.S3Region = "us-east-1"
	c.S3URLExpiry = 7 * 24 * time.Hour
	c.UploadDelay = 2 * time.Second
	c.FilterCacheSize = 128
	c.SeedDemo = true
	c.LogLevel = "info"
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.SettingsBackend {
	case SettingsSQLite, SettingsRedis, SettingsMemory:
	default:
		return fmt.Errorf("unknown settings backend %q", c.SettingsBackend)
	}
	switch c.BlobBackend {
	case BlobsLocal:
		if c.BlobDir == "" {
			return fmt.Errorf("blob directory is required for the local backend")
		}
	case BlobsS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown blob backend %q", c.BlobBackend)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.UploadDelay < 0 {
		return fmt.Errorf("upload delay must not be negative")
	}
	if c.FilterCacheSize <= 0 {
		return fmt.Errorf("filter cache size must be positive")
	}
	return nil
}

// LoadConfig applies defaults, the config file, MEDIAVAULT_* environment
// variables and flags, in that order, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
