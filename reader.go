// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/bpowers/vstore/internal/mmap"
	"github.com/bpowers/vstore/internal/record"
	"github.com/bpowers/vstore/internal/unsafestring"
)

// ValueAttribute is the attribute name a string value is exposed under.
const ValueAttribute = "value"

// Attributes is the attribute view of a value.
type Attributes map[string]string

// ValueReader resolves handles handed out by a Store.
type ValueReader interface {
	GetString(handle uint64) string
	Attributes(handle uint64) Attributes
}

// Reader is the query-time side of a value store.  It never changes after
// OpenReader returns, so it is safe for concurrent use.  Strings and slices
// it returns point into the mapping and are only valid until Close.
type Reader struct {
	kind   Kind
	region *mmap.Region
	data   []byte
	count  uint64
}

var _ ValueReader = (*Reader)(nil)

// OpenReader opens the section of a store of the given kind that starts at
// f's current position, leaving f positioned just past the section.
func OpenReader(kind Kind, f *os.File, opts ...Option) (*Reader, error) {
	o := buildOptions(opts)
	switch kind {
	case KindNull:
		return &Reader{kind: kind}, nil
	case KindString:
		return openStringReader(f, o.logger)
	default:
		return nil, errors.Newf("vstore: no reader for kind %d", kind)
	}
}

func openStringReader(f *os.File, logger *slog.Logger) (*Reader, error) {
	props, _, err := record.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading value store header from %s", f.Name())
	}
	size, err := props.Uint64(sizeField)
	if err != nil {
		return nil, errors.Wrap(err, "value store header")
	}
	if size > math.MaxInt64 {
		return nil, errors.Newf("value store header: size %d out of range", size)
	}
	// older writers didn't record a count; it is informational only
	count, _ := props.Uint64(valuesField)

	start, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "f.Seek")
	}

	region, err := mmap.Map(f, start, int64(size))
	if err != nil {
		return nil, errors.Wrap(err, "mapping value blob")
	}
	if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
		_ = region.Close()
		return nil, errors.Wrap(err, "f.Seek past value blob")
	}

	logger.Debug("mapped value blob", "file", f.Name(), "offset", start, "size", size)

	return &Reader{
		kind:   KindString,
		region: region,
		data:   region.Data(),
		count:  count,
	}, nil
}

func (r *Reader) Kind() Kind {
	return r.kind
}

// Size returns the size of the mapped value blob.
func (r *Reader) Size() uint64 {
	return uint64(len(r.data))
}

// Len returns the number of distinct values recorded in the section
// header, or 0 if it wasn't recorded.
func (r *Reader) Len() uint64 {
	return r.count
}

// GetBytes returns the value for handle as a read-only view into the
// mapping.  handle must come from the store that wrote this section;
// anything outside the blob panics.
func (r *Reader) GetBytes(handle uint64) []byte {
	if r.kind == KindNull {
		return nil
	}
	if handle >= uint64(len(r.data)) {
		panic(errors.AssertionFailedf("vstore: handle %d outside of %d byte value blob", handle, len(r.data)))
	}
	v := r.data[handle:]
	if i := bytes.IndexByte(v, 0); i >= 0 {
		v = v[:i]
	}
	return v[:len(v):len(v)]
}

// GetString returns the value for handle without copying it.  The null
// store has no values and always returns "".
func (r *Reader) GetString(handle uint64) string {
	return unsafestring.FromBytes(r.GetBytes(handle))
}

// Attributes returns {"value": <the string>} for string stores and an empty
// map for the null store.
func (r *Reader) Attributes(handle uint64) Attributes {
	if r.kind == KindNull {
		return Attributes{}
	}
	return Attributes{ValueAttribute: r.GetString(handle)}
}

// Close releases the mapping.  Only the first call has any effect.
func (r *Reader) Close() error {
	if r.region == nil {
		return nil
	}
	r.data = nil
	return r.region.Close()
}

// ValueItem is a value and the handle it is stored under.
type ValueItem struct {
	Handle uint64
	Value  []byte
}

// ValueIter walks the values of a Reader in blob order.
type ValueIter struct {
	r   *Reader
	off uint64
}

// Iter returns an iterator over every stored value.
func (r *Reader) Iter() *ValueIter {
	return &ValueIter{r: r}
}

func (it *ValueIter) Next() (ValueItem, bool) {
	if it.off >= uint64(len(it.r.data)) {
		return ValueItem{}, false
	}
	item := ValueItem{
		Handle: it.off,
		Value:  it.r.GetBytes(it.off),
	}
	it.off += uint64(len(item.Value)) + 1
	return item, true
}
