// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbuf

import "fmt"

// Buffer is an expanding byte buffer.
//
// The backing region is always exactly Cap bytes long and the first Len bytes
// of it hold data. An empty buffer with no capacity holds no region at all.
// The zero value is an empty buffer that allocates from the heap.
type Buffer struct {
	data   []byte
	length int
	alloc  Allocator
}

// New returns a buffer pre-sized to hint bytes, allocated from the heap.
// See [Buffer.InitWithAllocator] for the meaning of hint.
func New(hint int) *Buffer {
	return NewWithAllocator(hint, nil)
}

// NewWithAllocator returns a buffer pre-sized to hint bytes, allocated from
// alloc. The returned handle is released with [Buffer.Destroy].
func NewWithAllocator(hint int, alloc Allocator) *Buffer {
	b := &Buffer{}
	b.InitWithAllocator(hint, alloc)
	return b
}

// Init initializes b in place with a heap allocated region of hint bytes.
func (b *Buffer) Init(hint int) {
	b.InitWithAllocator(hint, nil)
}

// InitWithAllocator initializes b in place, discarding whatever it held.
//
// With a positive hint the buffer gets a region of exactly hint bytes and
// both Len and Cap equal hint, so the bytes can be filled directly and then
// trimmed with Clear or Purge. If the allocation fails the buffer is left
// empty with Cap zero; callers that need the capacity must check Cap.
func (b *Buffer) InitWithAllocator(hint int, alloc Allocator) {
	b.data, b.length, b.alloc = nil, 0, alloc
	if hint <= 0 {
		return
	}

	data, err := b.allocator().Alloc(hint)
	if err != nil || len(data) != hint {
		return
	}
	b.data = data
	b.length = hint
}

// Clear drops all data. The region is kept for reuse.
func (b *Buffer) Clear() { b.length = 0 }

// Free releases the region and returns the now empty buffer, which may be
// reused or discarded by the caller. It is the counterpart of [Buffer.Init].
func (b *Buffer) Free() *Buffer {
	if b.data != nil {
		b.allocator().Free(b.data)
	}
	b.data, b.length = nil, 0
	return b
}

// Destroy releases the region of a buffer obtained from [New] or
// [NewWithAllocator]. The handle must not be used afterwards.
func (b *Buffer) Destroy() {
	b.Free()
	b.alloc = nil
}

// Len returns the number of bytes of data held.
func (b *Buffer) Len() int { return b.length }

// Cap returns the size of the backing region.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the data held. The slice is capped at Len, so appending to it
// never writes into the spare capacity.
func (b *Buffer) Bytes() []byte { return b.data[:b.length:b.length] }

// Spare returns the unused tail of the region. Bytes written into it become
// part of the data once committed with [Buffer.BumpLength].
func (b *Buffer) Spare() []byte { return b.data[b.length:] }

// String returns a copy of the data as a string.
func (b *Buffer) String() string { return string(b.data[:b.length]) }

// Append adds p to the end of the data, growing the region to exactly the
// size needed when the spare capacity is too small. Appending nothing is a
// no-op.
func (b *Buffer) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := b.reserve(len(p)); err != nil {
		return err
	}
	b.length += copy(b.data[b.length:], p)
	return nil
}

// AppendBuffer appends the data held by src.
func (b *Buffer) AppendBuffer(src *Buffer) error {
	return b.Append(src.Bytes())
}

// Overwrite replaces the data with p, growing the region to exactly len(p)
// when it is too small. p must not be empty.
func (b *Buffer) Overwrite(p []byte) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: overwrite with no data", ErrContractViolation)
	}
	if len(b.data) < len(p) {
		if err := b.resize(len(p)); err != nil {
			return err
		}
	}
	b.length = copy(b.data, p)
	return nil
}

// OverwriteBuffer replaces the data with the data held by src.
func (b *Buffer) OverwriteBuffer(src *Buffer) error {
	return b.Overwrite(src.Bytes())
}

// Purge removes n bytes from the front of the data and moves the remainder
// to the start of the region. The cost is proportional to the bytes kept.
func (b *Buffer) Purge(n int) error {
	if n <= 0 || n > b.length {
		return fmt.Errorf("%w: purge of %d bytes from a buffer holding %d", ErrContractViolation, n, b.length)
	}
	if n < b.length {
		copy(b.data, b.data[n:b.length])
	}
	b.length -= n
	return nil
}

// Shrink resizes the region to exactly Len+extra bytes, which grows it when
// the current spare capacity is smaller than extra.
//
// Shrink(0) on a buffer without data releases the region entirely.
func (b *Buffer) Shrink(extra int) error {
	if extra < 0 {
		return fmt.Errorf("%w: negative padding %d", ErrContractViolation, extra)
	}
	if extra == 0 && b.length == 0 {
		if b.data != nil {
			b.allocator().Free(b.data)
			b.data = nil
		}
		return nil
	}
	size := b.length + extra
	if size < b.length {
		return fmt.Errorf("%w: %d bytes of padding overflows", ErrOutOfMemory, extra)
	}
	return b.resize(size)
}

// BumpLength commits n bytes that the caller wrote into [Buffer.Spare] and
// returns the new length. n must be positive and fit in the spare capacity.
func (b *Buffer) BumpLength(n int) (int, error) {
	if n <= 0 || n > len(b.data)-b.length {
		return b.length, fmt.Errorf("%w: bump of %d bytes with %d spare",
			ErrContractViolation, n, len(b.data)-b.length)
	}
	b.length += n
	return b.length, nil
}

// CString writes a NUL byte right after the data and returns the data
// including that terminator. The region grows by exactly one byte when it
// has no spare capacity. Len is not changed.
func (b *Buffer) CString() ([]byte, error) {
	if len(b.data) == b.length {
		if err := b.resize(b.length + 1); err != nil {
			return nil, err
		}
	}
	b.data[b.length] = 0
	return b.data[: b.length+1 : b.length+1], nil
}

// reserve makes sure at least n bytes of spare capacity exist, growing the
// region to exactly Len+n when they do not.
func (b *Buffer) reserve(n int) error {
	if len(b.data)-b.length >= n {
		return nil
	}
	size := b.length + n
	if size < b.length {
		return fmt.Errorf("%w: %d additional bytes overflows", ErrOutOfMemory, n)
	}
	return b.resize(size)
}

func (b *Buffer) resize(size int) error {
	if size == len(b.data) {
		return nil
	}
	data, err := b.allocator().Realloc(b.data, size)
	if err != nil {
		return fmt.Errorf("expbuf: resize from %d to %d bytes: %w", len(b.data), size, err)
	}
	b.data = data
	return nil
}

func (b *Buffer) allocator() Allocator {
	if b.alloc == nil {
		return HeapAllocator{}
	}
	return b.alloc
}
