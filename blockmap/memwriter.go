// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "sync"

// MemoryWriter is a PMWriter backed by a plain byte slice sized for the
// whole device up front. It exists to exercise Allocate's zero-fill path in
// tests and in the cmd/blockmapctl diagnostic tool; a real mount supplies
// its own PMWriter wired to the actual persistent-memory mapping, which
// this package never touches directly (see the package doc).
//
// Unlike lldb's MemFiler, which this type's shape is modelled on,
// MemoryWriter never grows: the device size is fixed at construction, so
// there is no paging scheme to speak of.
type MemoryWriter struct {
	mu        sync.Mutex
	blockSize uint64
	mem       []byte
	zeroed    uint64 // number of ZeroBlocks calls observed, for tests
}

// NewMemoryWriter returns a MemoryWriter able to address totalBlocks blocks
// of blockSize bytes each.
func NewMemoryWriter(blockSize, totalBlocks uint64) *MemoryWriter {
	return &MemoryWriter{
		blockSize: blockSize,
		mem:       make([]byte, blockSize*totalBlocks),
	}
}

// ZeroBlocks implements PMWriter.
func (w *MemoryWriter) ZeroBlocks(firstBlock, numBlocks uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	off := firstBlock * w.blockSize
	n := numBlocks * w.blockSize
	clear(w.mem[off : off+n])
	w.zeroed++
}

// Touch marks the given blocks as non-zero, for tests that want to assert
// ZeroBlocks actually ran.
func (w *MemoryWriter) Touch(firstBlock, numBlocks uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	off := firstBlock * w.blockSize
	n := numBlocks * w.blockSize
	for i := off; i < off+n; i++ {
		w.mem[i] = 0xff
	}
}

// IsZero reports whether every byte of the given block range is zero.
func (w *MemoryWriter) IsZero(firstBlock, numBlocks uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	off := firstBlock * w.blockSize
	n := numBlocks * w.blockSize
	for _, b := range w.mem[off : off+n] {
		if b != 0 {
			return false
		}
	}
	return true
}

// ZeroCalls returns the number of ZeroBlocks invocations observed so far.
func (w *MemoryWriter) ZeroCalls() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.zeroed
}
