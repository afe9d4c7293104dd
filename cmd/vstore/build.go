// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/bpowers/vstore"
)

var buildConfig struct {
	kind      string
	separator string
}

var buildCmd = &cobra.Command{
	Use:   "build <input> <output>",
	Short: "build a value store from key/value lines",
	Long: `
Reads lines of the form <key><separator><value> from <input> ("-" for
stdin), interns every value and writes the store to <output>.  The handle
assigned to each key is printed as <key>\t<handle>.
`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(
		&buildConfig.kind, "kind", "k", vstore.KindString.String(), "value store kind (null or string)")
	buildCmd.Flags().StringVarP(
		&buildConfig.separator, "separator", "s", ":", "separator between key and value")
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	kind, err := vstore.ParseKind(buildConfig.kind)
	if err != nil {
		return err
	}
	if buildConfig.separator == "" {
		return errors.New("separator must not be empty")
	}

	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, "os.Open(%s)", args[0])
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}

	s, err := vstore.NewStore(kind, vstore.WithLogger(logger))
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	sep := []byte(buildConfig.separator)
	var keys, dedups int

	scanner := bufio.NewScanner(bufio.NewReaderSize(in, 16*1024))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		key, value, ok := bytes.Cut(scanner.Bytes(), sep)
		if !ok {
			return errors.Newf("%s:%d: missing separator %q", args[0], lineNo, buildConfig.separator)
		}
		handle, isNew, err := s.Intern(value)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", args[0], lineNo)
		}
		if !isNew {
			dedups++
		}
		keys++
		if _, err := fmt.Fprintf(out, "%s\t%d\n", key, handle); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	if err := out.Flush(); err != nil {
		return err
	}

	if err := vstore.WriteFile(args[1], s); err != nil {
		return err
	}
	logger.Info("built value store", "path", args[1], "kind", kind, "keys", keys, "deduplicated", dedups)
	return nil
}
