// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const defaultBufferSize = 4 * 1024 * 1024

// WriteFile writes s to a new read-only file at path.  The file is built
// next to path and renamed into place, so path never holds a partial store.
func WriteFile(path string, s Store) (err error) {
	// we want to write to a new file and do an atomic rename when we're done on disk
	path, err = filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "filepath.Abs")
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "vstore.*.tmp")
	if err != nil {
		return errors.Wrapf(err, "CreateTemp failed (may need permissions for dir %q)", dir)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriterSize(f, defaultBufferSize)
	if _, err = newFileHeader(s.Kind()).WriteTo(w); err != nil {
		return errors.Wrap(err, "fileHeader.WriteTo")
	}
	if _, err = s.WriteTo(w); err != nil {
		return errors.Wrapf(err, "writing %s store", s.Kind())
	}
	if err = w.Flush(); err != nil {
		return errors.Wrap(err, "bufio.Flush")
	}
	if err = f.Sync(); err != nil {
		return errors.Wrap(err, "f.Sync")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "f.Close")
	}

	// make the file read-only
	if err = os.Chmod(f.Name(), 0444); err != nil {
		return errors.Wrap(err, "os.Chmod(0444)")
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrap(err, "os.Rename")
	}
	return nil
}

// OpenFile opens a file written by WriteFile.  The returned Reader doesn't
// keep the file open; its mapping outlives the descriptor.
func OpenFile(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "os.Open(%s)", path)
	}
	defer func() {
		_ = f.Close()
	}()

	headerBytes := make([]byte, fileHeaderSize)
	if _, err := io.ReadFull(f, headerBytes); err != nil {
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}
	var h fileHeader
	if err := h.UnmarshalBytes(headerBytes); err != nil {
		return nil, errors.Wrapf(err, "fileHeader.UnmarshalBytes(%s)", path)
	}

	r, err := OpenReader(h.kind, f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "OpenReader(%s)", path)
	}
	return r, nil
}
