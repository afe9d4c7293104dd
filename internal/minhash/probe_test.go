// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package minhash

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendValue appends a zero-terminated value and returns its record.
func appendValue(blob []byte, value string) ([]byte, Record) {
	off := uint64(len(blob))
	blob = append(blob, value...)
	blob = append(blob, 0)
	return blob, NewRecord(off, HashValue([]byte(value)), len(value))
}

func TestHashValue_NeverZero(t *testing.T) {
	for _, v := range []string{"", "a", "pet", "\xff\xfe"} {
		assert.NotZero(t, HashValue([]byte(v)))
	}
}

func TestRecord_IsEmpty(t *testing.T) {
	assert.True(t, Record{}.IsEmpty())
	assert.True(t, Record{Link: 7}.IsEmpty())
	assert.False(t, Record{Offset: 1}.IsEmpty())
	assert.False(t, Record{Hash: -1}.IsEmpty())
	assert.False(t, Record{Length: 1}.IsEmpty())
	// the empty value at offset 0 is a real record
	assert.False(t, NewRecord(0, HashValue(nil), 0).IsEmpty())
}

func TestNewRecord_ClampsLength(t *testing.T) {
	r := NewRecord(10, 1, MaxLength+100)
	require.Equal(t, uint16(MaxLength), r.Length)
	require.True(t, r.Escaped())
	require.False(t, NewRecord(10, 1, MaxLength-1).Escaped())
}

func TestValueProbe_Equal(t *testing.T) {
	var blob []byte
	var cat, dog, empty Record
	blob, cat = appendValue(blob, "cat")
	blob, dog = appendValue(blob, "dog")
	blob, empty = appendValue(blob, "")

	p := NewValueProbe([]byte("cat"), blob)
	assert.True(t, p.Equal(cat))
	assert.False(t, p.Equal(dog))
	assert.False(t, p.Equal(empty))

	assert.True(t, NewValueProbe(nil, blob).Equal(empty))
	assert.True(t, NewValueProbe([]byte{}, blob).Equal(empty))

	// same hash, different length
	short := cat
	short.Length = 2
	assert.False(t, p.Equal(short))

	// same hash and length, different bytes
	moved := cat
	moved.Offset = dog.Offset
	assert.False(t, p.Equal(moved))
}

func TestValueProbe_BoundsMatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := []byte("abcdefgh")
	hash := HashValue(value)

	for blobLen := 0; blobLen <= 2*len(value)+2; blobLen++ {
		blob := make([]byte, blobLen)
		// fill the blob with copies of value so that any in-bounds read
		// could plausibly match
		for i := range blob {
			blob[i] = value[i%len(value)]
		}
		for _, off := range []uint64{0, 1, uint64(blobLen) - 1, uint64(blobLen), uint64(blobLen) + 1, 1 << 40, ^uint64(0), ^uint64(0) - 3} {
			for _, length := range []uint16{0, uint16(len(value)), MaxLength} {
				r := Record{Offset: off, Hash: hash, Length: length}
				p := NewValueProbe(value, blob)
				require.NotPanics(t, func() { p.Equal(r) }, "blobLen=%d off=%d length=%d", blobLen, off, length)
				if off > uint64(blobLen) || off+uint64(len(value)) > uint64(blobLen) || off+uint64(len(value)) < off {
					require.False(t, p.Equal(r), "blobLen=%d off=%d length=%d", blobLen, off, length)
				}
			}
		}
	}

	// random offsets against a shrunken view of the blob
	for i := 0; i < 1000; i++ {
		var blob []byte
		var r Record
		blob, r = appendValue(blob, "prefix")
		blob, r = appendValue(blob, string(value))
		cut := rng.Intn(len(blob) + 1)
		p := NewValueProbe(value, blob[:cut])
		eq := p.Equal(r)
		if cut < int(r.Offset)+len(value) {
			require.False(t, eq, "cut=%d", cut)
		} else {
			require.True(t, eq, "cut=%d", cut)
		}
	}
}

func TestValueProbe_EscapedLength(t *testing.T) {
	long := bytes.Repeat([]byte{'x'}, MaxLength+10)
	var blob []byte
	blob, _ = appendValue(blob, "head")
	blob, r := appendValue(blob, string(long))
	require.True(t, r.Escaped())

	assert.True(t, NewValueProbe(long, blob).Equal(r))

	// a prefix of the stored value shares a length field of MaxLength only
	// if it is itself escaped; force the same hash to exercise re-measuring
	prefix := long[:MaxLength+5]
	p := NewValueProbe(prefix, blob)
	p.hash = r.Hash
	assert.False(t, p.Equal(r))

	// a longer candidate runs past the terminator
	longer := append(append([]byte(nil), long...), 'x')
	p = NewValueProbe(longer, blob)
	p.hash = r.Hash
	assert.False(t, p.Equal(r))

	// a candidate shorter than MaxLength never matches an escaped record
	p = NewValueProbe([]byte("x"), blob)
	p.hash = r.Hash
	assert.False(t, p.Equal(r))

	// missing terminator: blob truncated right after the value
	p = NewValueProbe(long, blob[:len(blob)-1])
	assert.False(t, p.Equal(r))
}
