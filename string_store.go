// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/bpowers/vstore/internal/minhash"
	"github.com/bpowers/vstore/internal/record"
	"github.com/bpowers/vstore/internal/unsafestring"
)

const (
	sizeField   = "size"
	valuesField = "values"
)

// StringStore stores string values in an append-only blob, deduplicating
// identical values.
type StringStore struct {
	blob     []byte
	table    *minhash.Table
	count    int
	finished bool
	logger   *slog.Logger
	metrics  *Metrics
}

var _ Store = (*StringStore)(nil)

func NewStringStore(opts ...Option) *StringStore {
	o := buildOptions(opts)
	return &StringStore{
		table:   minhash.NewTable(o.capacity),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

func (s *StringStore) Kind() Kind {
	return KindString
}

// Intern returns the offset of value in the blob, appending it if no
// identical value was interned before.  value is not retained.
func (s *StringStore) Intern(value []byte) (handle uint64, isNew bool, err error) {
	if s.finished {
		return 0, false, ErrFinished
	}
	if bytes.IndexByte(value, 0) >= 0 {
		return 0, false, errors.Wrapf(ErrEmbeddedNUL, "value of length %d", len(value))
	}

	p := minhash.NewValueProbe(value, s.blob)
	if r := s.table.Lookup(p); !r.IsEmpty() {
		if s.metrics != nil {
			s.metrics.Interned.Inc()
			s.metrics.Deduplicated.Inc()
		}
		return r.Offset, false, nil
	}

	handle = uint64(len(s.blob))
	s.blob = append(s.blob, value...)
	s.blob = append(s.blob, 0)

	oldCap := s.table.Cap()
	if err := s.table.Insert(minhash.NewRecord(handle, p.Hash(), len(value))); err != nil {
		// keep the blob in step with the table
		s.blob = s.blob[:handle]
		return 0, false, errors.Wrap(err, "table.Insert")
	}
	if newCap := s.table.Cap(); newCap != oldCap {
		s.logger.Debug("grew minimization table", "slots", newCap, "values", s.table.Len())
	}
	s.count++

	if s.metrics != nil {
		s.metrics.Interned.Inc()
		s.metrics.BlobBytes.Set(float64(len(s.blob)))
	}
	return handle, true, nil
}

// InternString is Intern for a string, without copying it.
func (s *StringStore) InternString(value string) (uint64, bool, error) {
	return s.Intern(unsafestring.ToBytes(value))
}

// Len returns the number of distinct values stored.
func (s *StringStore) Len() int {
	return s.count
}

// Size returns the size of the value blob in bytes.
func (s *StringStore) Size() uint64 {
	return uint64(len(s.blob))
}

// WriteTo writes the header record followed by the value blob.  The store
// can't be used afterwards.
func (s *StringStore) WriteTo(w io.Writer) (int64, error) {
	if s.finished {
		return 0, ErrFinished
	}
	s.finished = true
	// we're done with this -- nil it so it can be GC'd earlier
	s.table = nil

	props := record.Properties{}
	props.SetUint64(sizeField, uint64(len(s.blob)))
	props.SetUint64(valuesField, uint64(s.count))

	headerLen, err := record.Write(w, props)
	if err != nil {
		return headerLen, errors.Wrap(err, "record.Write")
	}

	n, err := w.Write(s.blob)
	written := headerLen + int64(n)
	if err != nil {
		return written, errors.Wrap(err, "writing value blob")
	} else if n != len(s.blob) {
		return written, errors.Newf("short write of value blob: %d (wanted %d)", n, len(s.blob))
	}

	s.logger.Info("wrote string value store", "values", s.count, "blobBytes", len(s.blob), "headerBytes", headerLen)
	return written, nil
}
