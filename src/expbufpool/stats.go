// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expbufpool

// Stats is a snapshot of a pool's tables and lifetime counters.
type Stats struct {
	Ready         int `json:"ready"`         // buffers waiting in the ready table
	Used          int `json:"used"`          // buffers checked out
	ReadySlots    int `json:"readySlots"`    // ready table size, holes included
	UsedSlots     int `json:"usedSlots"`     // used table size, holes included
	RetainedBytes int `json:"retainedBytes"` // capacity held by ready buffers

	Created   uint64 `json:"created"`   // buffers allocated by Acquire
	Reused    uint64 `json:"reused"`    // Acquire calls served from the ready table
	Released  uint64 `json:"released"`  // successful Release calls
	Shrunk    uint64 `json:"shrunk"`    // releases that trimmed a buffer to the cap
	Destroyed uint64 `json:"destroyed"` // buffers destroyed by Teardown
}

// counters holds the lifetime part of [Stats].
type counters struct {
	created, reused, released, shrunk, destroyed uint64
}

// Stats returns a snapshot of the pool.
func (p *Pool) Stats() Stats {
	s := Stats{
		Ready:      p.ready.live(),
		Used:       p.used.live(),
		ReadySlots: p.ready.size(),
		UsedSlots:  p.used.size(),
		Created:    p.counters.created,
		Reused:     p.counters.reused,
		Released:   p.counters.released,
		Shrunk:     p.counters.shrunk,
		Destroyed:  p.counters.destroyed,
	}
	for _, b := range p.ready.entries {
		if b != nil {
			s.RetainedBytes += b.Cap()
		}
	}
	return s
}
