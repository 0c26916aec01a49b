// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbufpool

import (
	"fmt"

	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/H0llyW00dzZ/expbuf/src/logger"
)

// Pool recycles expanding buffers.
//
// Every buffer created by a pool is either in its ready table or in its used
// table until Teardown destroys it. The zero value is an empty pool with no
// retention cap that allocates from the heap.
type Pool struct {
	ready slotTable
	used  slotTable

	maxRetained int
	alloc       expbuf.Allocator
	log         logger.Logger
	counters    counters
}

// New returns an empty pool. Buffers released with a capacity above
// maxRetained are shrunk to exactly maxRetained; zero disables the cap.
func New(maxRetained int, opts ...Option) *Pool {
	p := &Pool{}
	p.Init(maxRetained, opts...)
	return p
}

// Init initializes p in place as an empty pool, forgetting anything it
// tracked before. A negative maxRetained is treated as zero.
func (p *Pool) Init(maxRetained int, opts ...Option) {
	*p = Pool{maxRetained: max(maxRetained, 0)}
	for _, opt := range opts {
		opt(p)
	}
}

// MaxRetainedCapacity returns the retention cap. Zero means unrestricted.
func (p *Pool) MaxRetainedCapacity() int { return p.maxRetained }

// Acquire checks out an empty buffer, preferring a ready buffer whose
// capacity best fits sizeHint.
//
// With a sizeHint of zero or less the first ready buffer is taken. Otherwise
// an exact capacity match is taken at once; failing that, the smallest buffer
// larger than sizeHint wins, and if there is none the largest smaller one.
// Ties go to the buffer found first.
//
// When the ready table is empty a new buffer with sizeHint bytes of capacity
// is created. The returned error wraps [expbuf.ErrOutOfMemory] if that
// allocation fails.
func (p *Pool) Acquire(sizeHint int) (*expbuf.Buffer, error) {
	buf, err := p.pickReady(sizeHint)
	if err != nil {
		return nil, err
	}

	if buf != nil {
		p.counters.reused++
	} else {
		buf = expbuf.NewWithAllocator(sizeHint, p.alloc)
		if sizeHint > 0 && buf.Cap() == 0 {
			return nil, fmt.Errorf("expbufpool: acquire buffer of %d bytes: %w", sizeHint, expbuf.ErrOutOfMemory)
		}
		buf.Clear()
		p.counters.created++
		p.logf("expbufpool: created buffer #%d with capacity %d", p.counters.created, buf.Cap())
	}

	p.used.insert(buf)
	return buf, nil
}

// pickReady removes and returns the best ready buffer for sizeHint, or nil
// when the ready table holds none.
func (p *Pool) pickReady(sizeHint int) (*expbuf.Buffer, error) {
	best := -1
	for i, cand := range p.ready.entries {
		if cand == nil {
			continue
		}
		if cand.Len() != 0 {
			return nil, fmt.Errorf("%w: ready slot %d holds %d bytes", ErrNotEmpty, i, cand.Len())
		}

		if sizeHint <= 0 || cand.Cap() == sizeHint {
			return p.ready.take(i), nil
		}
		if best < 0 {
			best = i
			continue
		}

		have := p.ready.entries[best].Cap()
		switch {
		case have < sizeHint && cand.Cap() > have:
			// grow an undersized match
			best = i
		case have > sizeHint && cand.Cap() < have && cand.Cap() > sizeHint:
			// tighten an oversized match without going under the hint
			best = i
		}
	}

	if best < 0 {
		return nil, nil
	}
	return p.ready.take(best), nil
}

// Release returns a checked-out buffer to the pool. The caller must have
// cleared it, and must not use it after Release returns nil.
//
// A buffer whose capacity exceeds the retention cap is shrunk to exactly
// the cap before it becomes ready again.
func (p *Pool) Release(buf *expbuf.Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrNotCheckedOut)
	}
	slot, ok := p.used.lookup(buf)
	if !ok {
		return ErrNotCheckedOut
	}
	if buf.Len() != 0 {
		return fmt.Errorf("%w: released with %d bytes", ErrNotEmpty, buf.Len())
	}

	if p.maxRetained > 0 && buf.Cap() > p.maxRetained {
		from := buf.Cap()
		if err := buf.Shrink(p.maxRetained); err != nil {
			return fmt.Errorf("expbufpool: shrink released buffer from %d to %d bytes: %w", from, p.maxRetained, err)
		}
		p.counters.shrunk++
		p.logf("expbufpool: shrunk released buffer from %d to %d bytes", from, p.maxRetained)
	}

	p.used.take(slot)
	p.ready.insert(buf)
	p.counters.released++
	return nil
}

// Teardown destroys every ready buffer and empties both tables, leaving the
// pool as if it had just been initialized.
//
// It fails with [ErrOutstandingBuffers], changing nothing, while any buffer
// is still checked out.
func (p *Pool) Teardown() error {
	if n := p.used.live(); n > 0 {
		return fmt.Errorf("%w: %d outstanding", ErrOutstandingBuffers, n)
	}

	var destroyed, freed int
	for _, buf := range p.ready.entries {
		if buf == nil {
			continue
		}
		freed += buf.Cap()
		buf.Destroy()
		destroyed++
	}
	p.ready.reset()
	p.used.reset()
	p.counters.destroyed += uint64(destroyed)

	p.logf("expbufpool: teardown destroyed %d buffers holding %d bytes", destroyed, freed)
	return nil
}

func (p *Pool) logf(format string, v ...any) {
	if p.log != nil {
		p.log.Printf(format, v...)
	}
}
