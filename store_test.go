// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vstore

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestStoreDataDriven(t *testing.T) {
	var (
		s Store
		r *Reader
	)
	defer func() {
		if r != nil {
			_ = r.Close()
		}
	}()

	datadriven.RunTest(t, "testdata/store", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "new":
			var kindStr string
			td.ScanArgs(t, "kind", &kindStr)
			kind, err := ParseKind(kindStr)
			require.NoError(t, err)
			s, err = NewStore(kind)
			require.NoError(t, err)
			if r != nil {
				require.NoError(t, r.Close())
				r = nil
			}
			return ""

		case "intern":
			var buf strings.Builder
			for _, line := range strings.Split(td.Input, "\n") {
				value := line
				if value == "<empty>" {
					value = ""
				} else {
					var err error
					value, err = strconv.Unquote(`"` + line + `"`)
					require.NoError(t, err)
				}
				h, isNew, err := s.Intern([]byte(value))
				if err != nil {
					fmt.Fprintf(&buf, "error: %s\n", err)
					continue
				}
				fmt.Fprintf(&buf, "%q: handle=%d new=%t\n", value, h, isNew)
			}
			return buf.String()

		case "write":
			path := filepath.Join(t.TempDir(), "store")
			if err := WriteFile(path, s); err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			var err error
			r, err = OpenFile(path)
			require.NoError(t, err)
			return fmt.Sprintf("size=%d values=%d\nblob=%q\n", r.Size(), r.Len(), r.data)

		case "get":
			var buf strings.Builder
			for _, line := range strings.Split(td.Input, "\n") {
				h, err := strconv.ParseUint(line, 10, 64)
				require.NoError(t, err)
				fmt.Fprintf(&buf, "%d: %q %v\n", h, r.GetString(h), r.Attributes(h))
			}
			return buf.String()

		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}
