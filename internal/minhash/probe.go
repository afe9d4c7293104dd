// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package minhash

import (
	"bytes"
)

// Probe is a not-yet-stored candidate that a Table compares against the
// records it holds.
type Probe interface {
	Hash() int32
	Equal(r Record) bool
}

// ValueProbe compares a candidate value against records describing
// zero-terminated values in blob.
type ValueProbe struct {
	value []byte
	blob  []byte
	hash  int32
}

var _ Probe = ValueProbe{}

// NewValueProbe builds a probe for value against the in-progress blob.
// Neither slice is copied.
func NewValueProbe(value, blob []byte) ValueProbe {
	return ValueProbe{
		value: value,
		blob:  blob,
		hash:  HashValue(value),
	}
}

func (p ValueProbe) Hash() int32 {
	return p.hash
}

func (p ValueProbe) Len() int {
	return len(p.value)
}

// Equal reports whether r describes the same bytes as the probe.  Checks go
// from cheapest to most expensive, and a record that points outside the blob
// is never equal.
func (p ValueProbe) Equal(r Record) bool {
	if r.Hash != p.hash {
		return false
	}

	n := uint64(len(p.value))
	escaped := r.Escaped()
	if !escaped && uint64(r.Length) != n {
		return false
	}

	size := uint64(len(p.blob))
	if r.Offset > size || n > size-r.Offset {
		return false
	}

	if escaped {
		// the stored length is unknown: the candidate matches only if the
		// stored value ends exactly where the candidate does.
		end := r.Offset + n
		if end >= size || p.blob[end] != 0 {
			return false
		}
	}

	return bytes.Equal(p.blob[r.Offset:r.Offset+n], p.value)
}
