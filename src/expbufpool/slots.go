// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbufpool

import (
	"github.com/H0llyW00dzZ/expbuf/src/expbuf"
	"github.com/eapache/queue"
)

// slotTable is a list of buffer slots in which removals leave holes.
//
// Hole indices wait in a FIFO and are filled before the list grows, so the
// table only grows when every slot is occupied. The index map locates a
// buffer's slot without scanning.
type slotTable struct {
	entries []*expbuf.Buffer
	holes   *queue.Queue
	index   map[*expbuf.Buffer]int
}

// live returns the number of occupied slots.
func (t *slotTable) live() int { return len(t.index) }

// size returns the number of slots, occupied or not.
func (t *slotTable) size() int { return len(t.entries) }

func (t *slotTable) lookup(b *expbuf.Buffer) (int, bool) {
	i, ok := t.index[b]
	return i, ok
}

// insert places b in the oldest hole, or in a new slot when there is none.
func (t *slotTable) insert(b *expbuf.Buffer) int {
	if t.index == nil {
		t.index = make(map[*expbuf.Buffer]int)
		t.holes = queue.New()
	}

	var i int
	if t.holes.Length() > 0 {
		i = t.holes.Remove().(int)
		t.entries[i] = b
	} else {
		i = len(t.entries)
		t.entries = append(t.entries, b)
	}
	t.index[b] = i
	return i
}

// take empties slot i and returns its buffer.
func (t *slotTable) take(i int) *expbuf.Buffer {
	b := t.entries[i]
	t.entries[i] = nil
	delete(t.index, b)
	t.holes.Add(i)
	return b
}

// reset drops every slot and the hole list.
func (t *slotTable) reset() {
	t.entries = nil
	t.holes = nil
	t.index = nil
}
