// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbufpool

import (
	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/H0llyW00dzZ/expbuf/src/logger"
)

// Option configures a [Pool].
type Option func(*Pool)

// WithAllocator makes the pool create its buffers on alloc instead of the heap.
func WithAllocator(alloc expbuf.Allocator) Option {
	return func(p *Pool) { p.alloc = alloc }
}

// WithLogger makes the pool report buffer creation, shrinking and teardown to log.
func WithLogger(log logger.Logger) Option {
	return func(p *Pool) { p.log = log }
}
