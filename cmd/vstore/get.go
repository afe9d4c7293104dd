// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/bpowers/vstore"
)

var getAttrs bool

var getCmd = &cobra.Command{
	Use:   "get <store> <handle>...",
	Short: "print the values stored under the given handles",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().BoolVarP(
		&getAttrs, "attributes", "a", false, "print values as attributes")
}

func runGet(cmd *cobra.Command, args []string) error {
	r, err := vstore.OpenFile(args[0], vstore.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	out := cmd.OutOrStdout()
	for _, arg := range args[1:] {
		handle, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "bad handle %q", arg)
		}
		// the reader trusts its handles; this one came from the command line
		if r.Kind() != vstore.KindNull && handle >= r.Size() {
			return errors.Newf("handle %d outside of %d byte value blob", handle, r.Size())
		}
		if !getAttrs {
			fmt.Fprintf(out, "%d\t%s\n", handle, r.GetString(handle))
			continue
		}
		attrs := r.Attributes(handle)
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(out, "%d", handle)
		for _, name := range names {
			fmt.Fprintf(out, "\t%s=%q", name, attrs[name])
		}
		fmt.Fprintln(out)
	}
	return nil
}
