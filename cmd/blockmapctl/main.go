// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command blockmapctl drives an in-memory blockmap.Allocator through a
// seeded pseudo-random sequence of allocate/free calls, for manual inspection of the
// free-run and size-class indices outside a real mount.
package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/hustpzx/mypmfs/blockmap"
	"github.com/hustpzx/mypmfs/pmfs"
)

var (
	blocks   = flag.Uint64("blocks", 1<<20, "device size in 4K blocks")
	reserved = flag.Uint64("reserved", 16*4096, "reserved prefix size in bytes")
	rounds   = flag.Int("rounds", 1000, "number of alloc/free rounds to run")
	seed     = flag.Int64("seed", 1, "PRNG seed")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	logger := logrus.New()
	writer := blockmap.NewMemoryWriter(pmfs.BlockSize, *blocks)

	a, err := pmfs.InitBlockmap(0, *blocks-1, *reserved,
		blockmap.WithLogger(logger),
		blockmap.WithPMWriter(writer),
	)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	classes := []blockmap.SizeClass{blockmap.SizeClass4K, blockmap.SizeClass2M, blockmap.SizeClass1G}

	type live struct {
		firstBlock uint64
		class      blockmap.SizeClass
	}
	var held []live

	for i := 0; i < *rounds; i++ {
		if len(held) == 0 || rng.Intn(2) == 0 {
			class := classes[rng.Intn(len(classes))]
			firstBlock, err := a.Allocate(class, true)
			if err != nil {
				logger.WithError(err).Infof("round %d: allocate(%s) failed", i, class)
				continue
			}
			held = append(held, live{firstBlock, class})
			continue
		}

		idx := rng.Intn(len(held))
		h := held[idx]
		held[idx] = held[len(held)-1]
		held = held[:len(held)-1]
		if err := a.Free(h.firstBlock, h.class); err != nil {
			log.Fatalf("round %d: free(%d, %s): %v", i, h.firstBlock, h.class, err)
		}
	}

	logger.Infof("done: %d ranges still held, %d blocks free", len(held), a.FreeBlockCount())
}
