// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package blockmap implements the free-space block allocator of a
persistent-memory file system: the in-memory bookkeeping that maps logical
block numbers to allocation state and services two operations, reserving a
contiguous run of blocks of a fixed size class and returning a previously
reserved run to the free pool.

Free-Run Index and Size-Class Index

An Allocator keeps every free range of the device in two coherent views of
the same set of run descriptors.

The Free-Run Index is a sequence of descriptors strictly ordered by their
low block number, with no two neighbours adjacent — any adjacency is always
merged immediately by Free. It supports locating, for a candidate range, the
descriptor immediately before and the one immediately after.

The Size-Class Index groups the very same descriptors into three unordered
buckets by length — 4K (< 512 blocks), 2M (512 to 262143 blocks) and 1G
(262144 blocks and up) — so that Allocate can pop a suitably sized run
without ever scanning the Free-Run Index.

A descriptor belongs to exactly one Size-Class bucket at a time; whenever an
operation changes its length, it is reclassified: delisted from its old
bucket and appended to the new one, in constant time, via the intrusive
list.Element pointers it carries for both indices.

Concurrency

Allocator is safe for concurrent use by multiple goroutines:
Allocate, Free and FreeBlockCount each acquire the Allocator's own lock (the
"Big Kernel Lock", mirroring one mutex per mounted superblock) on entry and
release it on every exit path, including error paths. There is no
suspension point inside a locked section other than the PMWriter call that
zero-fills a freshly allocated run, which always runs before the lock is
released.

Descriptors freed by a merge are never handed back to the pool while the
lock is held; they are collected into a local variable and released after
the lock has been dropped.

*/
package blockmap
