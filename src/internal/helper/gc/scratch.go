// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"io"

	"github.com/valyala/bytebufferpool"
)

// Buffer is a pooled scratch buffer.
// It abstracts [bytebufferpool.ByteBuffer] so callers do not import it directly.
type Buffer interface {
	io.Writer
	io.StringWriter
	WriteByte(c byte) error
	Bytes() []byte
	Len() int
	Reset()
}

// Pool hands out scratch buffers.
//
// Pool implementations must be safe for concurrent use by multiple goroutines.
type Pool interface {
	Get() Buffer
	Put(b Buffer)
}

// pool wraps [bytebufferpool.Pool] to implement Pool.
type pool struct{ p *bytebufferpool.Pool }

// Get returns an empty buffer from the pool.
func (p *pool) Get() Buffer { return p.p.Get() }

// Put resets b and returns it to the pool. Buffers that did not come from a
// bytebufferpool are dropped.
func (p *pool) Put(b Buffer) {
	if buf, ok := b.(*bytebufferpool.ByteBuffer); ok {
		buf.Reset()
		p.p.Put(buf)
	}
}

// Default is the scratch pool shared by the module.
var Default Pool = &pool{p: &bytebufferpool.Pool{}}

// With runs fn with a scratch buffer from Default and returns the buffer to
// the pool afterwards, even if fn panics. The buffer must not be retained
// once fn returns.
func With(fn func(buf Buffer) error) error {
	buf := Default.Get()
	defer Default.Put(buf)
	return fn(buf)
}
