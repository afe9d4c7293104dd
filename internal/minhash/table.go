// Copyright 2024 The vstore Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package minhash

import (
	"github.com/cockroachdb/errors"
)

const (
	minSlotsLog2 = 4

	// grow once the table is 3/4 full
	maxLoadNum = 3
	maxLoadDen = 4

	fibonacciMul = 0x9E3779B97F4A7C15
)

// ErrProbeTooLong is returned when a record can't be placed within MaxLink
// slots of its home slot, even after growing the table.
var ErrProbeTooLong = errors.New("minhash: probe sequence longer than MaxLink")

// Table is an open-addressed, linearly probed index from candidate values to
// the records describing them.  The Link field of the record in slot i holds
// the longest probe distance of any record whose home slot is i, so a lookup
// never scans past the records that could match.
//
// Records are never updated or removed once inserted.
type Table struct {
	slots []Record
	log2  uint
	count int
	// maxDist is MaxLink outside of tests
	maxDist uint64
}

// NewTable returns a table sized to hold capacity records before growing.
func NewTable(capacity int) *Table {
	log2 := uint(minSlotsLog2)
	for (1<<log2)*maxLoadNum/maxLoadDen < capacity {
		log2++
	}
	return &Table{
		slots:   make([]Record, 1<<log2),
		log2:    log2,
		maxDist: MaxLink,
	}
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return t.count
}

// Cap returns the number of slots in the table.
func (t *Table) Cap() int {
	return len(t.slots)
}

func (t *Table) home(hash int32) uint64 {
	return (uint64(uint32(hash)) * fibonacciMul) >> (64 - t.log2)
}

func (t *Table) mask() uint64 {
	return uint64(len(t.slots) - 1)
}

// Lookup returns the first inserted record equal to p, or the empty record.
func (t *Table) Lookup(p Probe) Record {
	home := t.home(p.Hash())
	maxDist := uint64(t.slots[home].Link)
	mask := t.mask()
	for d := uint64(0); d <= maxDist; d++ {
		r := t.slots[(home+d)&mask]
		if r.IsEmpty() {
			break
		}
		if p.Equal(r) {
			r.Link = 0
			return r
		}
	}
	return Record{}
}

// Insert adds r to the table.  It does not check whether an equal record is
// already present.  Inserting the empty record is a no-op.
func (t *Table) Insert(r Record) error {
	if r.IsEmpty() {
		return nil
	}
	if (t.count+1)*maxLoadDen > len(t.slots)*maxLoadNum {
		if err := t.grow(); err != nil {
			return err
		}
	}
	if t.place(r) {
		return nil
	}
	// a pathologically long run; spreading the records out once more is
	// the only thing that can help.
	if err := t.grow(); err != nil {
		return err
	}
	if !t.place(r) {
		return errors.Wrapf(ErrProbeTooLong, "inserting record at offset %d", r.Offset)
	}
	return nil
}

// place puts r in the first free slot after its home, reporting false if
// that slot is too far away for the home's Link to describe.
func (t *Table) place(r Record) bool {
	home := t.home(r.Hash)
	mask := t.mask()
	for d := uint64(0); d <= t.maxDist; d++ {
		i := (home + d) & mask
		if !t.slots[i].IsEmpty() {
			continue
		}
		// the link belongs to the slot, not the record
		r.Link = t.slots[i].Link
		t.slots[i] = r
		if uint64(t.slots[home].Link) < d {
			t.slots[home].Link = uint16(d)
		}
		t.count++
		return true
	}
	return false
}

// grow doubles the slot count and re-places every record.  Records are
// visited starting just past an empty slot, so every probe run is replayed
// in its original order and records sharing a home keep their relative
// (insertion) order.
func (t *Table) grow() error {
	old := t.slots
	start := 0
	for i := range old {
		if old[i].IsEmpty() {
			start = i
			break
		}
	}

	t.log2++
	t.slots = make([]Record, 1<<t.log2)
	t.count = 0

	n := len(old)
	for j := 1; j <= n; j++ {
		r := old[(start+j)%n]
		if r.IsEmpty() {
			continue
		}
		r.Link = 0
		if !t.place(r) {
			return errors.Wrapf(ErrProbeTooLong, "rehashing into %d slots", len(t.slots))
		}
	}
	return nil
}
