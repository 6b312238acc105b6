// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "testing"

func TestNumBlocks(t *testing.T) {
	cases := []struct {
		class SizeClass
		want  uint64
	}{
		{SizeClass4K, 1},
		{SizeClass2M, 512},
		{SizeClass1G, 262144},
	}
	for _, c := range cases {
		if got := NumBlocks(c.class); got != c.want {
			t.Errorf("NumBlocks(%s) = %d, want %d", c.class, got, c.want)
		}
	}
}

func TestClassOfBoundaries(t *testing.T) {
	cases := []struct {
		length uint64
		want   SizeClass
	}{
		{1, SizeClass4K},
		{511, SizeClass4K},
		{512, SizeClass2M},
		{262143, SizeClass2M},
		{262144, SizeClass1G},
		{1 << 20, SizeClass1G},
	}
	for _, c := range cases {
		if got := classOf(c.length); got != c.want {
			t.Errorf("classOf(%d) = %s, want %s", c.length, got, c.want)
		}
	}
}

func TestNumBlocksInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NumBlocks did not panic on an invalid size class")
		}
	}()
	NumBlocks(SizeClass(99))
}
