// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockmap

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// PMFile is the minimal set of *os.File methods FileWriter needs. Real
// persistent memory is mapped, not written through a WriterAt, but a
// file-backed PMWriter is useful for development, where the device is just
// a regular file.
type PMFile interface {
	io.WriterAt
	Sync() error
}

// FileWriter is a PMWriter backed by a PMFile, in the spirit of lldb's
// OSFiler: a thin adapter from the block-numbered world this package works
// in to the byte-offset world a file lives in.
type FileWriter struct {
	mu        sync.Mutex
	f         PMFile
	blockSize uint64
	zero      []byte
	logger    *logrus.Logger
}

// NewFileWriter returns a FileWriter addressing f in blockSize-sized
// blocks. A nil logger falls back to logrus's standard logger.
func NewFileWriter(f PMFile, blockSize uint64, logger *logrus.Logger) *FileWriter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FileWriter{
		f:         f,
		blockSize: blockSize,
		zero:      make([]byte, blockSize),
		logger:    logger,
	}
}

// ZeroBlocks implements PMWriter. Persistent memory writes cannot fail the
// way a file write can; a write error here is logged rather than returned,
// since PMWriter's signature has no error to report it through.
func (w *FileWriter) ZeroBlocks(firstBlock, numBlocks uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	off := int64(firstBlock * w.blockSize)
	for i := uint64(0); i < numBlocks; i++ {
		if _, err := w.f.WriteAt(w.zero, off); err != nil {
			w.logger.WithError(err).WithField("offset", off).Error("blockmap: zero-fill write failed")
			return
		}
		off += int64(w.blockSize)
	}
}
