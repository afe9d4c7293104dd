// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

const (
	magicFileHeader   = 0xC0FFEE5A
	fileFormatVersion = 1
	fileHeaderSize    = 16
)

type fileHeader struct {
	magic         uint32
	formatVersion uint32
	kind          Kind
}

func newFileHeader(kind Kind) *fileHeader {
	return &fileHeader{
		magic:         magicFileHeader,
		formatVersion: fileFormatVersion,
		kind:          kind,
	}
}

func (h *fileHeader) MarshalTo(headerBuf []byte) error {
	if len(headerBuf) < fileHeaderSize {
		return errors.Newf("headerBuf too short: %d < %d", len(headerBuf), fileHeaderSize)
	}
	binary.LittleEndian.PutUint32(headerBuf[:4], h.magic)
	binary.LittleEndian.PutUint32(headerBuf[4:8], h.formatVersion)
	binary.LittleEndian.PutUint32(headerBuf[8:12], uint32(h.kind))
	// reserved
	binary.LittleEndian.PutUint32(headerBuf[12:16], 0)
	return nil
}

func (h *fileHeader) WriteTo(w io.Writer) (n int64, err error) {
	var headerBuf [fileHeaderSize]byte
	if err := h.MarshalTo(headerBuf[:]); err != nil {
		return 0, err
	}
	if _, err = w.Write(headerBuf[:]); err != nil {
		return 0, errors.Wrap(err, "write")
	}
	return int64(fileHeaderSize), nil
}

func (h *fileHeader) UnmarshalBytes(headerBytes []byte) error {
	if len(headerBytes) < fileHeaderSize {
		return errors.Newf("headerBytes too short: %d < %d", len(headerBytes), fileHeaderSize)
	}

	headerBytes = headerBytes[:fileHeaderSize]

	h.magic = binary.LittleEndian.Uint32(headerBytes[:4])
	if h.magic != magicFileHeader {
		return errors.Newf("bad magic number on value store file (%x) -- not a vstore file or corrupted", h.magic)
	}

	h.formatVersion = binary.LittleEndian.Uint32(headerBytes[4:8])
	if h.formatVersion != fileFormatVersion {
		return errors.Newf("this version of vstore can only read v%d files; found v%d", fileFormatVersion, h.formatVersion)
	}

	h.kind = Kind(binary.LittleEndian.Uint32(headerBytes[8:12]))
	switch h.kind {
	case KindNull, KindString:
	default:
		return errors.Newf("unknown value store kind %d", h.kind)
	}

	return nil
}
