// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv isolates a test from variables set in the caller's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvConfigFile, EnvMaxRetained, EnvMemoryLimit} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxRetainedCapacity, cfg.Pool.MaxRetainedCapacity)
	assert.Zero(t, cfg.Pool.MemoryLimit)
	assert.Equal(t, FormatText, cfg.Log.Format)
	assert.False(t, cfg.Log.Quiet)
	assert.Equal(t, DefaultIterations, cfg.Stats.Iterations)
	assert.Equal(t, []int{0, 64, 256, 1024, 4096}, cfg.Stats.Sizes)
	assert.Equal(t, DefaultWorkers, cfg.Stats.Workers)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, DefaultLogMaxSizeMB, cfg.Log.MaxSizeMB)
}

func TestLoadFsMemory(t *testing.T) {
	clearEnv(t)

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/expbuf.yml", []byte(`log:
  file: /var/log/expbuf.log
  maxSizeMB: 1
  maxBackups: 2
  maxAgeDays: 7
  compress: true
stats:
  workers: 3
`), 0o644))

	cfg, err := LoadFs(fsys, "/etc/expbuf.yml")
	require.NoError(t, err)

	assert.Equal(t, "/var/log/expbuf.log", cfg.Log.File)
	assert.Equal(t, 1, cfg.Log.MaxSizeMB)
	assert.Equal(t, 2, cfg.Log.MaxBackups)
	assert.Equal(t, 7, cfg.Log.MaxAgeDays)
	assert.True(t, cfg.Log.Compress)
	assert.Equal(t, 3, cfg.Stats.Workers)

	_, err = LoadFs(fsys, "/etc/missing.yml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "YAML",
			file: "expbuf.yaml",
			content: `pool:
  maxRetainedCapacity: 512
  memoryLimit: 65536
log:
  format: json
  quiet: true
stats:
  iterations: 10
  sizes: [8, 16]
`,
		},
		{
			name: "YMLUpperCase",
			file: "EXPBUF.YML",
			content: `pool: {maxRetainedCapacity: 512, memoryLimit: 65536}
log: {format: JSON, quiet: true}
stats: {iterations: 10, sizes: [8, 16]}
`,
		},
		{
			name: "JSON",
			file: "expbuf.json",
			content: `{
  "pool": {"maxRetainedCapacity": 512, "memoryLimit": 65536},
  "log": {"format": "json", "quiet": true},
  "stats": {"iterations": 10, "sizes": [8, 16]}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 512, cfg.Pool.MaxRetainedCapacity)
			assert.Equal(t, 65536, cfg.Pool.MemoryLimit)
			assert.Equal(t, FormatJSON, cfg.Log.Format)
			assert.True(t, cfg.Log.Quiet)
			assert.Equal(t, 10, cfg.Stats.Iterations)
			assert.Equal(t, []int{8, 16}, cfg.Stats.Sizes)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeFile(t, "partial.yaml", "log:\n  quiet: true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Log.Quiet)
	assert.Equal(t, DefaultMaxRetainedCapacity, cfg.Pool.MaxRetainedCapacity)
	assert.Equal(t, FormatText, cfg.Log.Format)
	assert.Equal(t, DefaultSizes(), cfg.Stats.Sizes)
}

func TestLoadFromEnvironmentPath(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, writeFile(t, "env.json", `{"pool": {"maxRetainedCapacity": 128}}`))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Pool.MaxRetainedCapacity)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "expbuf.yaml", "pool:\n  maxRetainedCapacity: 512\n  memoryLimit: 1024\n")
	t.Setenv(EnvMaxRetained, "64")
	t.Setenv(EnvMemoryLimit, " 2048 ")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Pool.MaxRetainedCapacity, "environment overrides file")
	assert.Equal(t, 2048, cfg.Pool.MemoryLimit)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		contains string
		target   error
	}{
		{
			name:     "MissingFile",
			setup:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
			contains: "failed to read config file",
			target:   os.ErrNotExist,
		},
		{
			name:     "BadJSON",
			setup:    func(t *testing.T) string { return writeFile(t, "bad.json", "{") },
			contains: "failed to parse JSON config file",
		},
		{
			name:     "BadYAML",
			setup:    func(t *testing.T) string { return writeFile(t, "bad.yaml", "pool: [unclosed") },
			contains: "failed to parse YAML config file",
		},
		{
			name: "BadEnvironmentOverride",
			setup: func(t *testing.T) string {
				t.Setenv(EnvMaxRetained, "lots")
				return ""
			},
			contains: EnvMaxRetained,
		},
		{
			name:     "UnknownLogFormat",
			setup:    func(t *testing.T) string { return writeFile(t, "fmt.yaml", "log:\n  format: xml\n") },
			contains: `"xml"`,
			target:   ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			cfg, err := Load(tt.setup(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestValidateRestoresDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Pool.MaxRetainedCapacity = -1
	cfg.Pool.MemoryLimit = -5
	cfg.Stats.Iterations = 0
	cfg.Stats.Sizes = nil
	cfg.Stats.Workers = -2
	cfg.Log.MaxSizeMB = 0
	cfg.Log.MaxBackups = -1
	cfg.Log.MaxAgeDays = -1

	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultWorkers, cfg.Stats.Workers)
	assert.Equal(t, DefaultLogMaxSizeMB, cfg.Log.MaxSizeMB)
	assert.Zero(t, cfg.Log.MaxBackups)
	assert.Zero(t, cfg.Log.MaxAgeDays)

	assert.Equal(t, DefaultMaxRetainedCapacity, cfg.Pool.MaxRetainedCapacity)
	assert.Zero(t, cfg.Pool.MemoryLimit)
	assert.Equal(t, DefaultIterations, cfg.Stats.Iterations)
	assert.Equal(t, DefaultSizes(), cfg.Stats.Sizes)
	assert.Equal(t, FormatText, cfg.Log.Format)

	cfg.Stats.Sizes = []int{-3, 7}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{0, 7}, cfg.Stats.Sizes)
}

func TestDetectConfigFormat(t *testing.T) {
	assert.Equal(t, configFormatYAML, detectConfigFormat("a.yaml"))
	assert.Equal(t, configFormatYAML, detectConfigFormat("a.YML"))
	assert.Equal(t, configFormatJSON, detectConfigFormat("a.json"))
	assert.Equal(t, configFormatJSON, detectConfigFormat("noext"))
}
