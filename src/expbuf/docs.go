// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package expbuf provides an expanding byte buffer with an explicit logical
// length and an exactly sized capacity.
//
// Growth is exact-fit: appending n bytes to a full buffer grows the backing
// region to precisely length+n bytes, never more. Shrink resizes the region
// to length plus a caller chosen amount of padding, and releases it entirely
// when both are zero. Purge removes consumed bytes from the front, which makes
// a [Buffer] suitable as a reassembly buffer for stream parsers.
//
// Storage comes from an [Allocator]. The default [HeapAllocator] is backed by
// the Go heap; [LimitedAllocator] enforces a byte budget and reports
// [ErrOutOfMemory] when it is exceeded, so every growth path returns an error
// instead of aborting.
//
// A Buffer is not safe for concurrent use. Callers that share one must
// serialize access themselves.
//
// Buffers can be created two ways:
//
//	// Owned handle, released with Destroy.
//	b := expbuf.New(0)
//	defer b.Destroy()
//
//	// In-place value, for example a struct field, released with Free.
//	var line expbuf.Buffer
//	line.Init(128)
//	line.Clear()
//	defer line.Free()
//
// Any slice obtained from Bytes, Spare or CString is invalidated by the next
// call that may resize the buffer.
package expbuf
