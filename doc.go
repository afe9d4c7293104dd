// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package vstore holds the values of an automaton-backed dictionary.
//
// While a dictionary is built, every accepted key hands its value to a
// Store, which returns a 64-bit handle for it.  Identical values get
// identical handles, so the automaton builder can merge states whose values
// match.  When the build is done the store writes its section, and at query
// time a Reader maps that section read-only and resolves handles back into
// values without copying them.
//
// A string store section looks like:
//
//	┌───────────────────┐
//	│ header record     │  4-byte big-endian length + JSON {"size": "..."}
//	├───────────────────┤
//	│ value blob        │  "size" bytes: every distinct value, in the
//	│                   │  order it was first interned, each followed
//	│                   │  by a single zero byte
//	└───────────────────┘
//
// A handle is the offset of its value within the blob.  The null store,
// used for key-only dictionaries, writes an empty section and hands out 0
// for every value.
//
// WriteFile and OpenFile wrap a single section in a small file with a
// fixed 16-byte header naming the store's Kind.
package vstore
