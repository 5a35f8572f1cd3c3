// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular

import (
	"github.com/grailbio/base/log"
)

// Rows is a queue of fixed-width uint32 counter rows, stored in a circular
// buffer whose size is always a power of two.  Row i of the queue (0 = front)
// lives at circular position (head + i) & (nCirc - 1).
//
// Rows never shrinks; it doubles whenever Extend asks for more rows than it
// can currently hold.  When used as a window accumulator, its capacity is
// therefore bounded by the widest span seen so far, not by the length of the
// underlying coordinate space.
type Rows struct {
	// counts stores the raw counters.  Circular row n is
	// counts[n*width:(n+1)*width].
	counts []uint32
	width  int
	// head is the circular position of the front row.
	head int
	// n is the number of live rows.
	n int
}

// NewRows creates an empty Rows with the given row width.  nCirc is a
// capacity hint; it is rounded up to a power of two.
func NewRows(nCirc, width int) Rows {
	if width <= 0 {
		log.Panicf("circular.NewRows: invalid row width %d", width)
	}
	if nCirc < 1 {
		nCirc = 1
	}
	if (nCirc & (nCirc - 1)) != 0 {
		nCirc = NextExp2(nCirc)
	}
	return Rows{
		counts: make([]uint32, nCirc*width),
		width:  width,
	}
}

// NCirc returns the current capacity, in rows.
func (r *Rows) NCirc() int {
	return len(r.counts) / r.width
}

// Width returns the number of counters per row.
func (r *Rows) Width() int {
	return r.width
}

// Len returns the number of live rows.
func (r *Rows) Len() int {
	return r.n
}

// Extend makes sure at least n rows are live.  Newly exposed rows are
// all-zero.
func (r *Rows) Extend(n int) {
	if n <= r.n {
		return
	}
	if n > r.NCirc() {
		r.grow(n)
	}
	r.n = n
}

// grow reallocates the buffer so that it can hold at least n rows, and
// rewrites the live rows so that the front row is at circular position 0.
func (r *Rows) grow(n int) {
	nCirc := r.NCirc()
	newNCirc := NextExp2(n - 1)
	counts := make([]uint32, newNCirc*r.width)
	mask := nCirc - 1
	for i := 0; i < r.n; i++ {
		src := ((r.head + i) & mask) * r.width
		copy(counts[i*r.width:(i+1)*r.width], r.counts[src:src+r.width])
	}
	r.counts = counts
	r.head = 0
}

// Row returns live row i, counting from the front.  The returned slice
// aliases the buffer and is invalidated by Extend and PopFront.
func (r *Rows) Row(i int) []uint32 {
	if i < 0 || i >= r.n {
		log.Panicf("circular.Rows.Row: index %d out of range [0, %d)", i, r.n)
	}
	start := ((r.head + i) & (r.NCirc() - 1)) * r.width
	return r.counts[start : start+r.width]
}

// Increment adds one to counter col of live row i.
func (r *Rows) Increment(i, col int) {
	r.Row(i)[col]++
}

// Front returns the front row.  REQUIRES: Len() > 0.
func (r *Rows) Front() []uint32 {
	return r.Row(0)
}

// PopFront clears the front row and removes it from the queue.
// REQUIRES: Len() > 0.
func (r *Rows) PopFront() {
	row := r.Row(0)
	for i := range row {
		row[i] = 0
	}
	r.head = (r.head + 1) & (r.NCirc() - 1)
	r.n--
}
