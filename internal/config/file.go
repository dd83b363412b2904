package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/mediavault/internal/flagx"
	"github.com/dmitrijs2005/mediavault/internal/timex"
)

// FileConfig is the on-disk layout for both JSON and YAML. Pointers tell
// absent keys from zero values.
type FileConfig struct {
	DatabasePath    *string         `json:"database_path" yaml:"database_path"`
	SettingsBackend *string         `json:"settings_backend" yaml:"settings_backend"`
	RedisAddr       *string         `json:"redis_addr" yaml:"redis_addr"`
	BlobBackend     *string         `json:"blob_backend" yaml:"blob_backend"`
	BlobDir         *string         `json:"blob_dir" yaml:"blob_dir"`
	S3Bucket        *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region        *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey     *string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3URLExpiry     *timex.Duration `json:"s3_url_expiry" yaml:"s3_url_expiry"`
	UploadDelay     *timex.Duration `json:"upload_delay" yaml:"upload_delay"`
	FilterCacheSize *int            `json:"filter_cache_size" yaml:"filter_cache_size"`
	SeedDemo        *bool           `json:"seed_demo" yaml:"seed_demo"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// It panics when the file cannot be read or decoded.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.SettingsBackend, fc.SettingsBackend)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.BlobBackend, fc.BlobBackend)
	setString(&cfg.BlobDir, fc.BlobDir)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	setString(&cfg.LogLevel, fc.LogLevel)

	if fc.S3URLExpiry != nil {
		cfg.S3URLExpiry = fc.S3URLExpiry.Duration
	}
	if fc.UploadDelay != nil {
		cfg.UploadDelay = fc.UploadDelay.Duration
	}
	if fc.FilterCacheSize != nil {
		cfg.FilterCacheSize = *fc.FilterCacheSize
	}
	if fc.SeedDemo != nil {
		cfg.SeedDemo = *fc.SeedDemo
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
