// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bpowers/vstore"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <store>",
	Short: "list every value in a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	r, err := vstore.OpenFile(args[0], vstore.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind: %s\nblob bytes: %d\n", r.Kind(), r.Size())

	tbl := tablewriter.NewWriter(out)
	tbl.SetHeader([]string{"Handle", "Length", "Value"})
	it := r.Iter()
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		tbl.Append([]string{
			strconv.FormatUint(item.Handle, 10),
			strconv.Itoa(len(item.Value)),
			strconv.Quote(string(item.Value)),
		})
	}
	tbl.Render()
	return nil
}
