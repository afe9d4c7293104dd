// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"io"
)

// NullStore is the store for key-only dictionaries: every key shares the
// same null value, and nothing is written.
type NullStore struct{}

var _ Store = NullStore{}

func NewNullStore() NullStore {
	return NullStore{}
}

func (NullStore) Kind() Kind {
	return KindNull
}

// Intern ignores value and always returns handle 0.
func (NullStore) Intern([]byte) (uint64, bool, error) {
	return 0, false, nil
}

func (NullStore) WriteTo(io.Writer) (int64, error) {
	return 0, nil
}
