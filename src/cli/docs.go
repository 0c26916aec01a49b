// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the Cobra-based command-line interface for expbuf.
//
// Every subcommand works on one [expbufpool.Pool] built from the resolved
// configuration, optionally bounded by a memory limit, and tears the pool
// down when it finishes. Commands:
//
//   - selftest: acquire, fill, release and reacquire buffers, checking each step
//   - lines: number the lines of a file or stdin
//   - stats: run a synthetic workload and report pool statistics
//
// Diagnostics go through the logger package, as text or JSON lines.
package cli
