// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmfs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hustpzx/mypmfs/blockmap"
)

func TestInitBlockmapRoundsReservedBytesUpToBlocks(t *testing.T) {
	// 1 byte of reserved prefix still consumes a whole block.
	a, err := InitBlockmap(0, 1048575, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1048575), a.FreeBlockCount())

	got, err := a.Allocate(blockmap.SizeClass4K, false)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got)
}

func TestInitBlockmapExactBlockMultiple(t *testing.T) {
	a, err := InitBlockmap(0, 1048575, 4*BlockSize)
	require.NoError(t, err)
	require.Equal(t, uint64(1048572), a.FreeBlockCount())

	got, err := a.Allocate(blockmap.SizeClass4K, false)
	require.NoError(t, err)
	require.Equal(t, uint64(4), got)
}

func TestInitBlockmapRejectsBlockEndBeforeStart(t *testing.T) {
	_, err := InitBlockmap(100, 0, 0)
	require.Error(t, err)
}
