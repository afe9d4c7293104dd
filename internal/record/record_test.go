// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	p := Properties{}
	p.SetUint64("size", 1234)
	p["kind"] = "string"

	n, err := Write(&buf, p)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	// trailing bytes belong to whoever follows the record
	buf.WriteString("trailing")

	got, consumed, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, n, consumed)
	require.Equal(t, p, got)

	size, err := got.Uint64("size")
	require.NoError(t, err)
	require.Equal(t, uint64(1234), size)

	rest, err := io.ReadAll(&buf)
	require.NoError(t, err)
	require.Equal(t, "trailing", string(rest))
}

func TestUint64_Errors(t *testing.T) {
	p := Properties{"size": "twelve"}
	_, err := p.Uint64("size")
	assert.Error(t, err)

	_, err = p.Uint64("missing")
	require.ErrorIs(t, err, ErrMissingField)

	_, err = Properties{"size": "-1"}.Uint64("size")
	assert.Error(t, err)
}

func TestRead_Malformed(t *testing.T) {
	for name, input := range map[string][]byte{
		"empty":         nil,
		"short prefix":  {0, 0},
		"short body":    {0, 0, 0, 10, '{', '}'},
		"bad json":      {0, 0, 0, 3, '{', 'x', '}'},
		"non-string":    append([]byte{0, 0, 0, 10}, []byte(`{"size":1}`)...),
		"huge body len": {0xff, 0xff, 0xff, 0xff},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Read(bytes.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestRead_WireFormat(t *testing.T) {
	body := []byte(`{"size":"7"}`)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
	input := append(lenBuf[:], body...)

	p, n, err := Read(bytes.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, int64(len(input)), n)
	require.Equal(t, Properties{"size": "7"}, p)
}
