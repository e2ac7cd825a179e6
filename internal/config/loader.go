package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".stegoscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file schema. Every field is optional;
// absent fields keep their built-in defaults.
type File struct {
	// Thresholds overrides the detection thresholds.
	Thresholds *Thresholds `yaml:"thresholds,omitempty"`

	// EntropyBlockSize overrides the entropy profile block size.
	EntropyBlockSize int `yaml:"entropy_block_size,omitempty"`

	// MaxScanSize overrides the per-target read limit in bytes.
	MaxScanSize int64 `yaml:"max_scan_size,omitempty"`

	// BatchSize overrides the concurrent-scan count.
	BatchSize int `yaml:"batch_size,omitempty"`
}

// ApplyTo copies the file's overrides onto cfg, leaving unset fields alone.
func (f *File) ApplyTo(cfg *Config) {
	if f == nil {
		return
	}
	if f.Thresholds != nil {
		cfg.Thresholds = *f.Thresholds
	}
	if f.EntropyBlockSize > 0 {
		cfg.EntropyBlockSize = f.EntropyBlockSize
	}
	if f.MaxScanSize > 0 {
		cfg.MaxScanSize = f.MaxScanSize
	}
	if f.BatchSize > 0 {
		cfg.BatchSize = f.BatchSize
	}
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// how hard that is depending on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .stegoscan in the current directory
// 3. Look for .stegoscan in the user's home directory
//
// Returns the path to the configuration file if found, or "" if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
