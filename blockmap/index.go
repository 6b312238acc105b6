// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "container/list"

// linkClass classifies d by its current length and inserts it at the back
// of the matching size-class bucket. Callers must not already hold a
// classElem for d.
func (a *Allocator) linkClass(d *runDescriptor) {
	d.class = classOf(d.length())
	d.classElem = a.classes[d.class].PushBack(d)
}

// unlinkClass removes d from its size-class bucket without touching the
// Free-Run Index.
func (a *Allocator) unlinkClass(d *runDescriptor) {
	a.classes[d.class].Remove(d.classElem)
	d.classElem = nil
}

// reclassify moves d to the bucket matching its current length, if that
// bucket has changed. This is the O(1) move the design calls for: it never
// walks a bucket, it only detaches and reattaches one list.Element.
func (a *Allocator) reclassify(d *runDescriptor) {
	if got := classOf(d.length()); got != d.class {
		a.unlinkClass(d)
		a.linkClass(d)
	}
}

// popClass removes and returns an arbitrary descriptor from size class c, or
// nil if the bucket is empty. Order within a bucket carries no meaning, so
// the front element is as good as any.
func (a *Allocator) popClass(c SizeClass) *runDescriptor {
	e := a.classes[c].Front()
	if e == nil {
		return nil
	}
	d := e.Value.(*runDescriptor)
	a.classes[c].Remove(e)
	d.classElem = nil
	return d
}

// removeRun detaches d from both indices. It does not return d to the
// descriptor pool; callers that are done with d must do that themselves,
// after releasing the Allocator's lock.
func (a *Allocator) removeRun(d *runDescriptor) {
	a.unlinkClass(d)
	a.freeRuns.Remove(d.elem)
	d.elem = nil
}

// insertRunAfter creates a new run descriptor for [low, high], inserts it
// into the Free-Run Index immediately after mark (nil means the front of
// the list), classifies it, and returns it.
func (a *Allocator) insertRunAfter(mark *list.Element, low, high uint64) *runDescriptor {
	d := a.descriptors.get()
	d.low, d.high = low, high
	if mark == nil {
		d.elem = a.freeRuns.PushFront(d)
	} else {
		d.elem = a.freeRuns.InsertAfter(d, mark)
	}
	a.linkClass(d)
	return d
}
