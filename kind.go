// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"github.com/cockroachdb/errors"
)

// Kind identifies how a store encodes its values.
type Kind uint32

const (
	KindNull   Kind = 1
	KindString Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "null":
		return KindNull, nil
	case "string":
		return KindString, nil
	default:
		return 0, errors.Newf("unknown value store kind %q", s)
	}
}
