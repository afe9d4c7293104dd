// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package record reads and writes the self-describing header records that
// precede each section of a dictionary file.
//
// A record is a 4-byte big-endian length n followed by n bytes of a JSON
// object whose values are all strings:
//
//	+----+----+----+----+----+----+----+----+
//	| n (big endian)    | {"size":"42"}...  |
//	+----+----+----+----+----+----+----+----+
package record

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

const (
	lenPrefixSize = 4
	// MaxLen bounds the JSON body; headers are tiny, so anything larger is
	// corruption.
	MaxLen = 1 << 20
)

// ErrMissingField is returned when a required property is absent.
var ErrMissingField = errors.New("record: missing field")

// Properties is the decoded body of a header record.
type Properties map[string]string

// Uint64 parses the decimal value stored under key.
func (p Properties) Uint64(key string) (uint64, error) {
	s, ok := p[key]
	if !ok {
		return 0, errors.Wrapf(ErrMissingField, "%q", key)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "record: field %q", key)
	}
	return n, nil
}

// SetUint64 stores n under key as a decimal string.
func (p Properties) SetUint64(key string, n uint64) {
	p[key] = strconv.FormatUint(n, 10)
}

// Write writes p as a single header record, returning the number of bytes
// written.
func Write(w io.Writer, p Properties) (int64, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, errors.Wrap(err, "json.Marshal")
	}
	if len(body) > MaxLen {
		return 0, errors.Newf("record: body of %d bytes exceeds %d", len(body), MaxLen)
	}

	buf := make([]byte, lenPrefixSize+len(body))
	binary.BigEndian.PutUint32(buf[:lenPrefixSize], uint32(len(body)))
	copy(buf[lenPrefixSize:], body)

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), errors.Wrap(err, "record: write")
	} else if n != len(buf) {
		return int64(n), errors.Newf("record: short write of %d (wanted %d)", n, len(buf))
	}
	return int64(n), nil
}

// Read reads exactly one header record from r, returning its properties and
// the number of bytes consumed.  r is never read past the end of the record.
func Read(r io.Reader) (Properties, int64, error) {
	var lenBuf [lenPrefixSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, 0, errors.Wrap(err, "record: reading length")
	}
	bodyLen := binary.BigEndian.Uint32(lenBuf[:])
	if bodyLen > MaxLen {
		return nil, lenPrefixSize, errors.Newf("record: body length %d exceeds %d (corrupt header?)", bodyLen, MaxLen)
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, lenPrefixSize, errors.Wrapf(err, "record: reading %d byte body", bodyLen)
	}

	p := make(Properties)
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, lenPrefixSize + int64(bodyLen), errors.Wrap(err, "record: decoding body")
	}
	return p, lenPrefixSize + int64(bodyLen), nil
}
