package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the giftkeeper CLI.
//
// Fields:
//   - StorageDriver: key-value backend, one of sqlite, postgres, redis, memory.
//   - StorageDSN: backend location (SQLite file, postgres:// or redis:// URL).
//   - ExpirationCheckInterval: how often cached cards are re-checked for expiry.
//   - LogLevel: debug, info, warn or error.
//   - LogFile: rotated log file; empty means stderr.
type Config struct {
	StorageDriver           string        `validate:"required,oneof=sqlite postgres redis memory"`
	StorageDSN              string        `validate:"required_unless=StorageDriver memory"`
	ExpirationCheckInterval time.Duration `validate:"gt=0"`
	LogLevel                string        `validate:"oneof=debug info warn error"`
	LogFile                 string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.StorageDSN = "giftkeeper.db"
	c.ExpirationCheckInterval = time.Minute
	c.LogLevel = "warn"
	c.LogFile = ""
}

// Validate reports the first invalid field, wrapped in common.ErrorValidation.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: config field %s failed %q check (value %v)",
				common.ErrorValidation, fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones. The result is validated.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
