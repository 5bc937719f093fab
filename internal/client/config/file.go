package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/giftkeeper/internal/flagx"
	"github.com/dmitrijs2005/giftkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file decoding.
// It relies on timex.Duration so intervals can be written either as strings
// like "1m" or as integer nanoseconds. Only fields present in the file
// override the runtime Config.
type FileConfig struct {
	StorageDriver           string          `json:"storage_driver" yaml:"storage_driver"`
	StorageDSN              string          `json:"storage_dsn" yaml:"storage_dsn"`
	ExpirationCheckInterval *timex.Duration `json:"expiration_check_interval" yaml:"expiration_check_interval"`
	LogLevel                string          `json:"log_level" yaml:"log_level"`
	LogFile                 string          `json:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with values from the file named by -c/-config or
// GIFTKEEPER_CONFIG. Files ending in .yaml or .yml are read as YAML, anything
// else as JSON. No file means no changes.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.StorageDriver != "" {
		cfg.StorageDriver = fc.StorageDriver
	}
	if fc.StorageDSN != "" {
		cfg.StorageDSN = fc.StorageDSN
	}
	if fc.ExpirationCheckInterval != nil {
		cfg.ExpirationCheckInterval = fc.ExpirationCheckInterval.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
}
