// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package minhash contains the construction-time index used to deduplicate
// values while a dictionary is being built.  Records never hold the bytes of
// the value they describe: they point into the value blob, and candidate
// values are compared against the blob in place.
package minhash

import (
	"github.com/dgryski/go-farm"
)

const (
	// MaxLength is the largest value the Length field of a Record can hold.
	// A record with this length describes a value at least this long, and
	// the real length has to be re-measured from the blob.
	MaxLength = (1 << 16) - 1
	// MaxLink is the largest overflow index a Table can chain through.
	MaxLink = (1 << 16) - 1
)

// Record stands in for a persisted value: Length bytes with hash Hash start
// at Offset in the value blob.
type Record struct {
	Offset uint64
	Hash   int32
	Length uint16
	// Link is owned by Table and is never interpreted by callers.
	Link uint16
}

// NewRecord returns a record for a value of n bytes at off, clamping n to
// MaxLength.
func NewRecord(off uint64, hash int32, n int) Record {
	if n > MaxLength {
		n = MaxLength
	}
	return Record{
		Offset: off,
		Hash:   hash,
		Length: uint16(n),
	}
}

// IsEmpty reports whether r is the "not found" sentinel.
func (r Record) IsEmpty() bool {
	return r.Offset == 0 && r.Hash == 0 && r.Length == 0
}

// Escaped reports whether the value is too long for the Length field.
func (r Record) Escaped() bool {
	return r.Length == MaxLength
}

// HashValue returns the content hash used for value deduplication.  It is
// never zero, so a record for the empty value stored at offset 0 can't be
// mistaken for the empty sentinel.
func HashValue(value []byte) int32 {
	h := int32(farm.Hash32(value))
	if h == 0 {
		h = 1
	}
	return h
}
