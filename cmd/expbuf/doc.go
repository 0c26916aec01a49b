// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// expbuf is a command-line tool for exercising exact-fit expanding buffers
// and the buffer pool that recycles them.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/expbuf/cmd/expbuf@latest
//
// # Usage
//
//	expbuf COMMAND [FLAGS]
//
// # Commands
//
//	selftest        Acquire, fill, release, reacquire and tear down pooled buffers
//	lines [FILE]    Number the lines of FILE (or stdin)
//	stats           Run a synthetic workload and report pool statistics
//
// # Flags
//
//	-c, --config        Configuration file (.json, .yaml, .yml)
//	    --max-retained  Largest capacity a released buffer keeps (0 = unrestricted)
//	    --memory-limit  Bytes all pooled buffers may hold (0 = unlimited)
//	    --log-format    Diagnostic log format: text or json
//	-q, --quiet         Suppress diagnostic output
//
// The stats command also accepts --iterations, --sizes and --json.
//
// # Examples
//
// Number the lines of a file:
//
//	expbuf lines main.go
//
// Report pool behavior under a memory limit as JSON:
//
//	expbuf stats --memory-limit 65536 --sizes 0,512,8192 --json
package main
