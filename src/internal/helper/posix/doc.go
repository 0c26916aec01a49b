// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides helpers for presenting process details the same way
// on [POSIX] systems and Windows.
//
// The CLI uses [CommandName] so that usage strings show the name the binary
// was invoked as:
//
//	root := &cobra.Command{
//	    Use: posix.CommandName(os.Args, "expbuf"),
//	}
//
// Behavior does not depend on the host OS:
//
//   - "/usr/bin/expbuf" → "expbuf"
//   - "C:\bin\expbuf.exe" → "expbuf"
//   - no arguments → the fallback
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
