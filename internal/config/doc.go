// Package config loads runtime configuration for the vault CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional config file given with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. MEDIAVAULT_* environment variables, e.g. MEDIAVAULT_S3_SECRET_KEY
//     (see parseEnv). cmd/vault loads a .env file into the environment
//     first when one exists.
//  4. Command-line flags (see parseFlags).
//
// Durations in the file may be strings such as "2s" or integer nanoseconds:
//
//	{
//	  "database_path": "vault.db",
//	  "settings_backend": "redis",
//	  "redis_addr": "redis://localhost:6379/0",
//	  "upload_delay": "500ms"
//	}
//
// Keys missing from the file keep their current value. Malformed files and
// flags panic, as they are only read once at startup.
package config
