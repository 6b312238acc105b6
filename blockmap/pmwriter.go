// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

// PMWriter is the external persistent-memory write path Allocate delegates
// to when the caller requests zero-fill. A real mount wires this to
// block_address()/memunlock()/a non-temporal memset/memlock(); the exact
// write-protection toggling and page-zeroing mechanics are an external
// collaborator of this package, not something it implements.
//
// ZeroBlocks is called while the Allocator's own lock is still held, after
// all index mutations for the call have been committed, per the
// concurrency model: no other goroutine can observe a half-mutated index,
// and this is the only suspension point inside a locked section.
type PMWriter interface {
	ZeroBlocks(firstBlock, numBlocks uint64)
}
