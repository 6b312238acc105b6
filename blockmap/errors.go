// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import "github.com/pkg/errors"

// ErrOutOfSpace is returned by Allocate when the requested size class and
// every larger size class have an empty bucket.
var ErrOutOfSpace = errors.New("blockmap: out of space")

// CorruptionError is returned by Free when the range being freed cannot be
// placed at a position consistent with the Free-Run Index invariants: it
// overlaps an existing free run, starts before the reserved prefix, or ends
// past the device's last block. It always indicates caller error (a double
// free) or external corruption; Free never silently drops the call instead.
type CorruptionError struct {
	FirstBlock uint64
	SizeClass  SizeClass
}

func (e *CorruptionError) Error() string {
	return errors.Errorf(
		"blockmap: double free or corruption: first_block=%d size_class=%s",
		e.FirstBlock, e.SizeClass,
	).Error()
}

// resourceExhaustion reports that the node pool could not satisfy an
// allocation. Per the spec this is fatal: implementations must assert
// rather than attempt to recover.
func resourceExhaustion(kind string) {
	panic(errors.Errorf("blockmap: resource exhaustion allocating %s", kind))
}
