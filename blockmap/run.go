// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "container/list"

// runDescriptor is the atom of the allocator: a maximal contiguous range
// [low, high] of free block numbers. It is owned by the Free-Run Index
// (elem); the Size-Class Index only holds a non-owning reference to it
// (classElem), bounded by the descriptor's own lifetime.
type runDescriptor struct {
	low, high uint64

	elem  *list.Element // this descriptor's node in Allocator.freeRuns
	class SizeClass

	classElem *list.Element // this descriptor's node in Allocator.classes[class]
}

// length returns the number of blocks the descriptor covers.
func (d *runDescriptor) length() uint64 { return d.high - d.low + 1 }

// reset clears a descriptor so it carries no stale state when recycled by
// the pool.
func (d *runDescriptor) reset() {
	d.low, d.high = 0, 0
	d.elem, d.classElem = nil, nil
	d.class = SizeClass4K
}
