// Package ident hands out identities for identity-bearing IR nodes.
//
// Every allocator draws from one process-wide counter, so IDs are unique
// across allocators and strictly increasing in issue order. Consumers
// compare IDs to tell which node was declared first and to keep output
// deterministic.
package ident

import (
	"strconv"
	"sync/atomic"
)

// ID identifies a node for its whole lifetime.
type ID uint64

// NoID marks the absence of an identity; allocators never return it.
const NoID ID = 0

func (id ID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

var issued atomic.Uint64

// Allocator is the handle a design uses to issue IDs. It is safe for
// concurrent use.
type Allocator struct {
	last atomic.Uint64
}

// New returns an allocator that has issued nothing yet.
func New() *Allocator {
	return &Allocator{}
}

// Next returns a fresh ID, distinct from every ID issued by any allocator.
func (a *Allocator) Next() ID {
	id := issued.Add(1)
	for {
		prev := a.last.Load()
		if prev >= id || a.last.CompareAndSwap(prev, id) {
			return ID(id)
		}
	}
}

// Last reports the highest ID this allocator has issued, or NoID.
func (a *Allocator) Last() ID {
	return ID(a.last.Load())
}
