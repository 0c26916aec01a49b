// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbuf

import (
	"fmt"
	"math"
	"sync/atomic"
)

// MaxAlloc is the largest region, in bytes, that [HeapAllocator] hands out.
const MaxAlloc = math.MaxInt32

// Allocator provides the storage behind a [Buffer].
//
// Every region returned by Alloc or Realloc must have a length of exactly the
// requested size. Realloc may move the region; the first min(len(b), n) bytes
// are preserved and b must not be used afterwards. Realloc(nil, n) behaves
// like Alloc(n), and a size of zero releases the region and returns nil.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Realloc(b []byte, n int) ([]byte, error)
	Free(b []byte)
}

// HeapAllocator allocates regions from the Go heap.
// The zero value is ready to use.
type HeapAllocator struct{}

// Alloc returns a zeroed region of exactly n bytes.
func (HeapAllocator) Alloc(n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: negative allocation of %d bytes", ErrContractViolation, n)
	case n == 0:
		return nil, nil
	case n > MaxAlloc:
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrOutOfMemory, n, MaxAlloc)
	}
	return make([]byte, n), nil
}

// Realloc moves b into a new region of exactly n bytes.
//
// Shrinking also moves, so that the bytes beyond n are returned to the
// garbage collector instead of staying reachable through the slice.
func (h HeapAllocator) Realloc(b []byte, n int) ([]byte, error) {
	if n == 0 {
		h.Free(b)
		return nil, nil
	}
	nb, err := h.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	return nb, nil
}

// Free is a no-op; the garbage collector reclaims the region once the
// caller drops it.
func (HeapAllocator) Free([]byte) {}

// LimitedAllocator enforces a budget on the total number of bytes held by
// all regions it has handed out and not yet freed.
//
// It is safe to share one LimitedAllocator between buffers and pools owned
// by different goroutines.
type LimitedAllocator struct {
	parent Allocator
	limit  int64
	inUse  atomic.Int64
}

// NewLimitedAllocator returns an allocator that draws from parent until limit
// bytes are in use. A nil parent selects [HeapAllocator]. A limit of zero or
// less disables the budget and only tracks usage.
func NewLimitedAllocator(limit int, parent Allocator) *LimitedAllocator {
	if parent == nil {
		parent = HeapAllocator{}
	}
	return &LimitedAllocator{parent: parent, limit: int64(limit)}
}

// Alloc reserves n bytes from the budget and allocates them from the parent.
func (a *LimitedAllocator) Alloc(n int) ([]byte, error) {
	if err := a.reserve(int64(n)); err != nil {
		return nil, err
	}
	b, err := a.parent.Alloc(n)
	if err != nil {
		a.inUse.Add(-int64(n))
		return nil, err
	}
	return b, nil
}

// Realloc charges or refunds the size difference and resizes through the parent.
func (a *LimitedAllocator) Realloc(b []byte, n int) ([]byte, error) {
	delta := int64(n) - int64(len(b))
	if err := a.reserve(delta); err != nil {
		return nil, err
	}
	nb, err := a.parent.Realloc(b, n)
	if err != nil {
		a.inUse.Add(-delta)
		return nil, err
	}
	return nb, nil
}

// Free returns b to the parent and refunds its size.
func (a *LimitedAllocator) Free(b []byte) {
	a.parent.Free(b)
	a.inUse.Add(-int64(len(b)))
}

// InUse reports the number of bytes currently charged to the budget.
func (a *LimitedAllocator) InUse() int64 { return a.inUse.Load() }

// Limit reports the configured budget. Zero means unlimited.
func (a *LimitedAllocator) Limit() int64 {
	if a.limit < 0 {
		return 0
	}
	return a.limit
}

func (a *LimitedAllocator) reserve(delta int64) error {
	for {
		cur := a.inUse.Load()
		next := cur + delta
		if delta > 0 && a.limit > 0 && next > a.limit {
			return fmt.Errorf("%w: %d more bytes would exceed the %d byte budget (%d in use)",
				ErrOutOfMemory, delta, a.limit, cur)
		}
		if a.inUse.CompareAndSwap(cur, next) {
			return nil
		}
	}
}
