// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata prints key:value lines for `vstore build`.  Values are drawn
// from a fixed pool so that most of them repeat and get deduplicated.
package main

import (
	"bufio"
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

const (
	prefix    = "pref_"
	suffixLen = 16
	hmacKey   = "d259c7f656caf7f1"
)

var (
	nPairs   = flag.Int("n", 1000000, "number of key/value lines")
	poolSize = flag.Int("values", 1000, "number of distinct values")
)

func newRand() *rand.Rand {
	var seedBytes [8]byte
	_, _ = crand.Read(seedBytes[:])
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
	return rand.New(rand.NewSource(seed))
}

func main() {
	flag.Parse()
	if *poolSize <= 0 {
		fmt.Fprintln(os.Stderr, "-values must be positive")
		os.Exit(2)
	}

	rng := newRand()
	h := hmac.New(sha256.New, []byte(hmacKey))

	pool := make([]string, *poolSize)
	for i := range pool {
		var buf [suffixLen / 2]byte
		if _, err := rng.Read(buf[:]); err != nil {
			panic(err)
		}
		pool[i] = fmt.Sprintf("%s%x", prefix, buf)
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() {
		_ = w.Flush()
	}()
	for i := 0; i < *nPairs; i++ {
		h.Reset()
		var counter [8]byte
		binary.LittleEndian.PutUint64(counter[:], uint64(i))
		h.Write(counter[:])
		key := hex.EncodeToString(h.Sum(nil))
		value := pool[rng.Intn(len(pool))]

		fmt.Fprintf(w, "%s:%s\n", key, value)
	}
}
