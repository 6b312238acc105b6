// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "testing"

func TestDescriptorPoolRecyclesClean(t *testing.T) {
	p := newDescriptorPool(0)
	d := p.get()
	d.low, d.high = 7, 9
	d.class = SizeClass2M
	p.put(d)

	d2 := p.get()
	if d2.low != 0 || d2.high != 0 || d2.class != SizeClass4K {
		t.Fatalf("got dirty descriptor from pool: %+v", d2)
	}
}

func TestDescriptorPoolBoundedExhaustionPanics(t *testing.T) {
	p := newDescriptorPool(1)
	_ = p.get()

	defer func() {
		if recover() == nil {
			t.Fatal("get did not panic when the pool's capacity was exhausted")
		}
	}()
	p.get()
}

func TestDescriptorPoolBoundedReleasesOnPut(t *testing.T) {
	p := newDescriptorPool(1)
	d := p.get()
	p.put(d)

	// capacity was returned, so a second get must not panic.
	_ = p.get()
}
