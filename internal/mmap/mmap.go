// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmap maps byte ranges of files read-only into memory.
package mmap

import (
	"os"
	"sync/atomic"
	"syscall"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Region is a read-only mapping of [off, off+size) of a file.  The slice
// returned by Data is only valid until Close.
type Region struct {
	// mapping is the page-aligned slice handed back by mmap; data is the
	// requested range within it.
	mapping  []byte
	data     []byte
	off      int64
	isClosed atomic.Bool
}

// Map maps size bytes of f starting at off.  A zero size produces an empty
// region without calling mmap.  The range must lie within the file: touching
// pages past EOF of a mapping faults rather than returning an error.
func Map(f *os.File, off, size int64) (*Region, error) {
	if off < 0 || size < 0 {
		return nil, errors.Newf("mmap: invalid range [%d, %d+%d)", off, off, size)
	}
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "f.Stat")
	}
	if fileSize := stat.Size(); off > fileSize || size > fileSize-off {
		return nil, errors.Newf("mmap: range [%d, %d) beyond end of %s (%d bytes)", off, off+size, f.Name(), fileSize)
	}
	if size == 0 {
		return &Region{off: off}, nil
	}
	if int64(int(size)) != size {
		return nil, errors.Newf("mmap: size %d too large for this platform", size)
	}

	pageSize := int64(os.Getpagesize())
	alignedOff := off &^ (pageSize - 1)
	delta := off - alignedOff

	mapping, err := unix.Mmap(int(f.Fd()), alignedOff, int(delta+size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap(%s, off: %d, len: %d)", f.Name(), alignedOff, delta+size)
	}
	// lookups jump around the blob; readahead only wastes page cache
	if err := unix.Madvise(mapping, syscall.MADV_RANDOM); err != nil {
		_ = unix.Munmap(mapping)
		return nil, errors.Wrap(err, "madvise")
	}

	return &Region{
		mapping: mapping,
		data:    mapping[delta : delta+size : delta+size],
		off:     off,
	}, nil
}

// Data returns the mapped bytes.  Callers must never write to it.
func (r *Region) Data() []byte {
	return r.data
}

// Len returns the size of the mapped range.
func (r *Region) Len() int {
	return len(r.data)
}

// Offset returns the file offset the region starts at.
func (r *Region) Offset() int64 {
	return r.off
}

// Close unmaps the region.  Only the first call has any effect.
func (r *Region) Close() error {
	if r.isClosed.Swap(true) {
		return nil
	}
	mapping := r.mapping
	r.mapping = nil
	r.data = nil
	if mapping == nil {
		return nil
	}
	if err := unix.Munmap(mapping); err != nil {
		return errors.Wrap(err, "munmap")
	}
	return nil
}
