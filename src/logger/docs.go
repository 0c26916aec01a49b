// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line output and JSONLogger for one JSON object per line,
// suited to log collectors. JSONLogger encodes each line into a reused
// expanding buffer, so steady-state logging does not allocate a line buffer.
package logger
