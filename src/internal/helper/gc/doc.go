// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides pooled scratch buffers for short-lived rendering work.
//
// It wraps the [bytebufferpool] library, whose pools calibrate the default
// size of new buffers from observed usage. The bounded formatter in expbuf
// renders into a scratch buffer first and copies only the prefix that fits
// into the destination, so a scratch buffer never outlives a single call.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
