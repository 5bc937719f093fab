// Package config loads runtime configuration for the giftkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c / -config, or the
//     GIFTKEEPER_CONFIG environment variable. ".yaml"/".yml" files are read
//     as YAML, everything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// The merged result is checked by (*Config).Validate.
//
// Supported flags
//
//	-s string   storage driver: sqlite, postgres, redis, memory
//	-d string   storage DSN (file path or URL)
//	-i int      expiration check interval (seconds)
//	-l string   log level
//	-f string   log file
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "1m"
// or integer nanoseconds:
//
//	storage_driver: redis
//	storage_dsn: redis://localhost:6379/0
//	expiration_check_interval: 30s
//	log_level: info
//	log_file: giftkeeper.log
package config
