// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pmfs glues blockmap.Allocator to a mount: it translates the
// reserved-prefix size a superblock reports in bytes into the block counts
// blockmap works in, and is the boundary a real mount's superblock,
// journal, and page-zeroing code would sit behind.
package pmfs

import (
	"github.com/pkg/errors"

	"github.com/hustpzx/mypmfs/blockmap"
)

// BlockSize is the fixed block size blockmap indexes in. PMFS addresses
// everything in 4 KiB units; there is no per-mount override.
const BlockSize = 4096

// InitBlockmap builds the free-space allocator for one mounted superblock.
// blockStart and blockEnd are inclusive block numbers spanning the whole
// device; reservedPrefixBytes is rounded up to a whole number of blocks and
// carved out of the front of that range for the superblock, inode tables,
// and journal the rest of the filesystem owns.
func InitBlockmap(blockStart, blockEnd, reservedPrefixBytes uint64, opts ...blockmap.Option) (*blockmap.Allocator, error) {
	reservedPrefixBlocks := (reservedPrefixBytes + BlockSize - 1) / BlockSize
	a, err := blockmap.NewAllocator(blockStart, blockEnd, reservedPrefixBlocks, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "pmfs: init blockmap")
	}
	return a, nil
}
