// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by [Load].
const (
	EnvConfigFile  = "EXPBUF_CONFIG_FILE"
	EnvMaxRetained = "EXPBUF_MAX_RETAINED"
	EnvMemoryLimit = "EXPBUF_MEMORY_LIMIT"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Defaults.
const (
	DefaultMaxRetainedCapacity = 4096
	DefaultIterations          = 1000
	DefaultWorkers             = 1
	DefaultLogMaxSizeMB        = 10
)

// ErrInvalidLogFormat is returned when the log format is neither text nor json.
var ErrInvalidLogFormat = errors.New("config: invalid log format")

// DefaultSizes returns the size hints the stats workload cycles through.
func DefaultSizes() []int { return []int{0, 64, 256, 1024, 4096} }

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config is the resolved tool configuration.
type Config struct {
	// Pool: buffer pool settings
	Pool struct {
		// MaxRetainedCapacity: released buffers above this size are shrunk to it; 0 disables the cap
		MaxRetainedCapacity int `json:"maxRetainedCapacity" yaml:"maxRetainedCapacity"`
		// MemoryLimit: total bytes all pooled buffers may hold; 0 means unlimited
		MemoryLimit int `json:"memoryLimit" yaml:"memoryLimit"`
	} `json:"pool" yaml:"pool"`

	// Log: diagnostic output settings
	Log struct {
		// Format: "text" or "json"
		Format string `json:"format" yaml:"format"`
		// Quiet: suppress diagnostic output on the console
		Quiet bool `json:"quiet" yaml:"quiet"`
		// File: also write diagnostics to this file, rotated by size (optional)
		File string `json:"file,omitempty" yaml:"file,omitempty"`
		// MaxSizeMB: size in megabytes at which the log file is rotated
		MaxSizeMB int `json:"maxSizeMB,omitempty" yaml:"maxSizeMB,omitempty"`
		// MaxBackups: rotated files to keep; 0 keeps all
		MaxBackups int `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty"`
		// MaxAgeDays: days to keep rotated files; 0 keeps them regardless of age
		MaxAgeDays int `json:"maxAgeDays,omitempty" yaml:"maxAgeDays,omitempty"`
		// Compress: gzip rotated files
		Compress bool `json:"compress,omitempty" yaml:"compress,omitempty"`
	} `json:"log" yaml:"log"`

	// Stats: synthetic workload settings for the stats command
	Stats struct {
		// Iterations: number of acquire/write/release cycles
		Iterations int `json:"iterations" yaml:"iterations"`
		// Sizes: size hints cycled through by the workload
		Sizes []int `json:"sizes" yaml:"sizes"`
		// Workers: goroutines running the workload, each with its own pool
		Workers int `json:"workers" yaml:"workers"`
	} `json:"stats" yaml:"stats"`
}

// Default returns a Config holding the hardcoded defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Pool.MaxRetainedCapacity = DefaultMaxRetainedCapacity
	cfg.Log.Format = FormatText
	cfg.Log.MaxSizeMB = DefaultLogMaxSizeMB
	cfg.Stats.Iterations = DefaultIterations
	cfg.Stats.Sizes = DefaultSizes()
	cfg.Stats.Workers = DefaultWorkers
	return cfg
}

// detectConfigFormat determines the configuration file format based on file
// extension, matched case-insensitively. Anything other than .yaml or .yml is
// read as JSON.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

func unmarshalConfig(data []byte, cfg *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load resolves the configuration.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - A pointer to the loaded Config with defaults applied
//   - An error if the file cannot be read or parsed, an environment override
//     is not an integer, or the log format is unknown
//
// Configuration Priority:
//  1. Default values are set
//  2. EXPBUF_CONFIG_FILE is checked if configPath is empty
//  3. Config file values override defaults
//  4. EXPBUF_MAX_RETAINED and EXPBUF_MEMORY_LIMIT override file values
func Load(configPath string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), configPath)
}

// LoadFs is like [Load] but reads the configuration file from fsys.
func LoadFs(fsys afero.Fs, configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := afero.ReadFile(fsys, configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, cfg, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	for _, ov := range []struct {
		name string
		dst  *int
	}{
		{EnvMaxRetained, &cfg.Pool.MaxRetainedCapacity},
		{EnvMemoryLimit, &cfg.Pool.MemoryLimit},
	} {
		raw, ok := os.LookupEnv(ov.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", ov.name, raw, err)
		}
		*ov.dst = n
	}
	return nil
}

// Validate restores defaults for out-of-range values and rejects an unknown
// log format. An empty format becomes text.
func (c *Config) Validate() error {
	if c.Pool.MaxRetainedCapacity < 0 {
		c.Pool.MaxRetainedCapacity = DefaultMaxRetainedCapacity
	}
	if c.Pool.MemoryLimit < 0 {
		c.Pool.MemoryLimit = 0
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = 0
	}
	if c.Log.MaxAgeDays < 0 {
		c.Log.MaxAgeDays = 0
	}
	if c.Stats.Workers <= 0 {
		c.Stats.Workers = DefaultWorkers
	}
	if c.Stats.Iterations <= 0 {
		c.Stats.Iterations = DefaultIterations
	}
	if len(c.Stats.Sizes) == 0 {
		c.Stats.Sizes = DefaultSizes()
	}
	for i, s := range c.Stats.Sizes {
		if s < 0 {
			c.Stats.Sizes[i] = 0
		}
	}

	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch c.Log.Format {
	case "":
		c.Log.Format = FormatText
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	return nil
}
