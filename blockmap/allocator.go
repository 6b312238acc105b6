// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import (
	"container/list"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Allocator is the free-space block allocator for a single superblock: the
// Free-Run Index, the Size-Class Index, and the lock serializing access to
// both. It owns no persistent state of its own — at mount, NewAllocator
// builds it afresh as a single free run covering everything after the
// reserved prefix, and at unmount it is simply dropped.
type Allocator struct {
	mu sync.Mutex // bkl: held for the duration of every public method

	blockStart, blockEnd uint64
	firstFreeBlock       uint64 // blockStart + reservedPrefixBlocks

	freeRuns *list.List             // ordered ascending by low, no gaps coalesced away
	classes  [numSizeClasses]*list.List

	freeBlockCount uint64

	descriptors *descriptorPool
	pmWriter    PMWriter
	logger      *logrus.Logger

	hint *runDescriptor // advisory start point for the next free(); latency only
}

// Option configures an Allocator at construction time.
type Option func(*Allocator)

// WithLogger directs DoubleFreeOrCorruption reports to logger instead of
// logrus's standard logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(a *Allocator) { a.logger = logger }
}

// WithPMWriter installs the collaborator Allocate delegates to when asked to
// zero-fill a freshly allocated range. Without one, zero-fill requests are a
// no-op: callers that never ask for zero-fill (e.g. callers that always
// overwrite what they allocate) don't need to supply one.
func WithPMWriter(w PMWriter) Option {
	return func(a *Allocator) { a.pmWriter = w }
}

// WithDescriptorPoolCapacity bounds the number of run descriptors the
// Allocator may have live at once. Exceeding it panics via
// ResourceExhaustion, per the node pool's own exhaustion policy. Capacity 0
// (the default) is unbounded.
func WithDescriptorPoolCapacity(capacity int) Option {
	return func(a *Allocator) { a.descriptors = newDescriptorPool(capacity) }
}

// NewAllocator builds an Allocator for the block range [blockStart,
// blockEnd] inclusive, with the first reservedPrefixBlocks blocks of that
// range carved out for the caller's own use (inode tables, the superblock
// itself, journal blocks — anything the filesystem places before the first
// allocatable block). The remainder starts out as a single free run.
func NewAllocator(blockStart, blockEnd, reservedPrefixBlocks uint64, opts ...Option) (*Allocator, error) {
	if blockEnd < blockStart {
		return nil, errors.Errorf("blockmap: block_end %d before block_start %d", blockEnd, blockStart)
	}
	total := blockEnd - blockStart + 1
	if reservedPrefixBlocks > total {
		return nil, errors.Errorf("blockmap: reserved_prefix_blocks %d exceeds device size %d", reservedPrefixBlocks, total)
	}

	a := &Allocator{
		blockStart:     blockStart,
		blockEnd:       blockEnd,
		firstFreeBlock: blockStart + reservedPrefixBlocks,
		freeRuns:       list.New(),
		descriptors:    newDescriptorPool(0),
	}
	for i := range a.classes {
		a.classes[i] = list.New()
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.firstFreeBlock <= blockEnd {
		d := a.insertRunAfter(nil, a.firstFreeBlock, blockEnd)
		a.hint = d
		a.freeBlockCount = d.length()
	}
	return a, nil
}

// allocate implements the cascading size-class lookup described for
// allocate(): start at the requested class and climb to larger classes
// until one has a non-empty bucket. Splitting a larger run peels the
// low-numbered end off; the remainder (if any) is reclassified and stays in
// both indices. The returned *runDescriptor, when non-nil, is the
// fully-consumed descriptor the caller must return to the pool once it has
// released the lock.
func (a *Allocator) allocate(class SizeClass) (uint64, *runDescriptor, error) {
	need := NumBlocks(class)
	for c := int(class); c < numSizeClasses; c++ {
		d := a.popClass(SizeClass(c))
		if d == nil {
			continue
		}
		allocatedLow := d.low
		if d.length() == need {
			a.freeRuns.Remove(d.elem)
			d.elem = nil
			return allocatedLow, d, nil
		}
		d.low += need
		a.linkClass(d)
		return allocatedLow, nil, nil
	}
	return 0, nil, ErrOutOfSpace
}

// free implements the coalescing algorithm: the freed range [low, high] is
// merged with whichever existing free runs border it, in one forward scan
// of the Free-Run Index. The scan classifies every run it visits into
// exactly one of:
//
//   - strictly before [low, high] and not adjacent: keep scanning
//   - adjacent on the left (run.high+1 == low): candidate merge target
//   - adjacent on the right (run.low == high+1): candidate merge target,
//     scan stops here
//   - strictly after [low, high] and not adjacent: scan stops here, no
//     merge on the right
//   - anything else overlaps [low, high], which is only possible on a
//     double free or a corrupted index
//
// The returned *runDescriptor, when non-nil, is a run descriptor freed by a
// merge (fill-gap) that the caller must return to the pool once it has
// released the lock.
func (a *Allocator) free(firstBlock uint64, class SizeClass) (*runDescriptor, error) {
	numBlocks := NumBlocks(class)
	low := firstBlock
	high := firstBlock + numBlocks - 1

	if low < a.firstFreeBlock || high > a.blockEnd || low > high {
		return nil, &CorruptionError{FirstBlock: firstBlock, SizeClass: class}
	}

	var prev, curr *runDescriptor
	var mergeLeft, mergeRight bool

	start := a.freeRuns.Front()
	if a.hint != nil && a.hint.elem != nil && a.hint.low <= low {
		start = a.hint.elem
	}

scanLoop:
	for e := start; e != nil; e = e.Next() {
		d := e.Value.(*runDescriptor)
		switch {
		case d.high+1 < low:
			prev = d
		case d.low > high+1:
			curr = d
			break scanLoop
		case d.high+1 == low:
			prev, mergeLeft = d, true
		case d.low == high+1:
			curr, mergeRight = d, true
			break scanLoop
		default:
			return nil, &CorruptionError{FirstBlock: firstBlock, SizeClass: class}
		}
	}

	switch {
	case mergeLeft && mergeRight:
		// fill-gap: the freed range closes a gap between two runs;
		// fold curr into prev and drop curr.
		prev.high = curr.high
		removed := curr
		a.removeRun(removed)
		a.reclassify(prev)
		a.hint = prev
		return removed, nil
	case mergeLeft:
		// aligns-left: extend the preceding run rightward.
		prev.high = high
		a.reclassify(prev)
		a.hint = prev
		return nil, nil
	case mergeRight:
		// aligns-right: extend the following run leftward.
		curr.low = low
		a.reclassify(curr)
		a.hint = curr
		return nil, nil
	default:
		// aligns-middle, or insert-after-tail when prev is the last run and
		// curr is nil: no adjacency, so the freed range becomes its own run.
		var mark *list.Element
		if prev != nil {
			mark = prev.elem
		}
		d := a.insertRunAfter(mark, low, high)
		a.hint = d
		return nil, nil
	}
}

// Allocate removes a free run of the given size class, returning the
// block number of its first block. If zeroFill is true and a PMWriter was
// configured, the newly allocated range is zeroed before the call returns
// and before the Allocator's lock is released, per the concurrency model:
// no other goroutine can observe an allocated-but-unzeroed range.
func (a *Allocator) Allocate(class SizeClass, zeroFill bool) (uint64, error) {
	firstBlock, consumed, err := a.lockedAllocate(class, zeroFill)
	if consumed != nil {
		a.descriptors.put(consumed)
	}
	return firstBlock, err
}

// lockedAllocate is Allocate's critical section, split out so its
// defer-guarded unlock covers every exit path, including a panic from a
// caller-supplied PMWriter.ZeroBlocks.
func (a *Allocator) lockedAllocate(class SizeClass, zeroFill bool) (uint64, *runDescriptor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	firstBlock, consumed, err := a.allocate(class)
	if err == nil {
		a.freeBlockCount -= NumBlocks(class)
		if zeroFill && a.pmWriter != nil {
			a.pmWriter.ZeroBlocks(firstBlock, NumBlocks(class))
		}
	}
	return firstBlock, consumed, err
}

// Free returns a previously allocated range to the index, coalescing it
// with any bordering free runs. A CorruptionError return indicates the
// range could not be placed consistently with the index — a double free or
// external corruption — and is also reported through the configured
// logger (logrus's standard logger when none was configured), since
// callers of Free frequently ignore or only log its error.
func (a *Allocator) Free(firstBlock uint64, class SizeClass) error {
	freed, err := a.lockedFree(firstBlock, class)

	if err != nil {
		logger := a.logger
		if logger == nil {
			logger = logrus.StandardLogger()
		}
		logger.WithFields(logrus.Fields{
			"first_block": firstBlock,
			"size_class":  class,
		}).Error("blockmap: double free or corruption")
		return err
	}

	if freed != nil {
		a.descriptors.put(freed)
	}
	return nil
}

// lockedFree is Free's critical section, split out so its defer-guarded
// unlock covers every exit path, including a panic from resourceExhaustion
// reached through insertRunAfter's descriptors.get() when the freed range
// borders no existing run and so needs a new descriptor.
func (a *Allocator) lockedFree(firstBlock uint64, class SizeClass) (*runDescriptor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	freed, err := a.free(firstBlock, class)
	if err == nil {
		a.freeBlockCount += NumBlocks(class)
	}
	return freed, err
}

// FreeBlockCount returns the number of blocks currently held free across
// every run in the index.
func (a *Allocator) FreeBlockCount() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.freeBlockCount
}
