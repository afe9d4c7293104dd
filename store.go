// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"io"

	"github.com/cockroachdb/errors"
)

var (
	// ErrFinished is returned when a store is used after it was written.
	ErrFinished = errors.New("vstore: store already written")
	// ErrEmbeddedNUL is returned for string values containing a zero byte,
	// which can't be read back from a zero-terminated blob.
	ErrEmbeddedNUL = errors.New("vstore: value contains a zero byte")
)

// Store is the build-time side of a value store.
type Store interface {
	Kind() Kind
	// Intern returns the handle for value.  isNew reports whether value was
	// stored by this call; false means the handle was handed out before (or
	// that the store keeps no values at all), and the automaton state it is
	// attached to may be merged right away.
	Intern(value []byte) (handle uint64, isNew bool, err error)
	// WriteTo writes the store's section.  It may be called once, after
	// all values have been interned.
	WriteTo(w io.Writer) (int64, error)
}

// NewStore returns an empty store of the given kind.
func NewStore(kind Kind, opts ...Option) (Store, error) {
	switch kind {
	case KindNull:
		return NewNullStore(), nil
	case KindString:
		return NewStringStore(opts...), nil
	default:
		return nil, errors.Newf("vstore: no store for kind %d", kind)
	}
}
