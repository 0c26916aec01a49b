// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads settings for the expbuf command line tool.
//
// Settings are resolved in three layers. Hardcoded defaults come first,
// then an optional JSON or YAML file (chosen by extension), then environment
// overrides. The file path is taken from the caller or, when empty, from the
// EXPBUF_CONFIG_FILE environment variable. [LoadFs] reads the file through
// an [afero.Fs], which lets callers substitute an in-memory filesystem.
//
// Example configuration (YAML):
//
//	pool:
//	  maxRetainedCapacity: 4096
//	  memoryLimit: 1048576
//	log:
//	  format: json
//	  quiet: false
//	  file: /var/log/expbuf.log
//	  maxSizeMB: 10
//	  maxBackups: 3
//	stats:
//	  iterations: 1000
//	  sizes: [0, 64, 256, 1024, 4096]
//	  workers: 4
package config
