// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window_test

import (
	"testing"

	"github.com/grailbio/bamwindow/window"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
)

func TestNumWins(t *testing.T) {
	for _, tt := range []struct {
		seqLen, winSize, want uint32
	}{
		{10, 1, 10},
		{10, 3, 4},
		{11, 2, 6},
		{62, 5, 13},
		{1, 100, 1},
		{0, 100, 1},
	} {
		ra := window.NewRowAssigner(tt.seqLen, tt.winSize)
		expect.EQ(t, ra.NumWins, tt.want, "seqLen=%d winSize=%d", tt.seqLen, tt.winSize)
		if tt.seqLen > 0 {
			expect.True(t, ra.StartPosForRow(ra.NumWins-1) < tt.seqLen)
			expect.True(t, ra.StartPosForRow(ra.NumWins) >= tt.seqLen)
		}
	}
}

func TestRowRangeSpan(t *testing.T) {
	ra := window.NewRowAssigner(20, 9)
	for _, tt := range []struct {
		first, last         uint32
		wantFirst, wantLast uint32
	}{
		{0, 9, 0, 0}, // [0, 9) stays in the first window
		{0, 10, 0, 1},
		{8, 9, 0, 0},
		{8, 10, 0, 1},
		{9, 10, 1, 1},
		{17, 19, 1, 2},
		// Zero-length spans occupy their start.
		{0, 0, 0, 0},
		{9, 9, 1, 1},
	} {
		gotFirst, gotLast := ra.RowRange(tt.first, tt.last)
		expect.EQ(t, gotFirst, tt.wantFirst, "span [%d, %d)", tt.first, tt.last)
		expect.EQ(t, gotLast, tt.wantLast, "span [%d, %d)", tt.first, tt.last)
	}
	expect.EQ(t, ra.StartPosForRow(0), uint32(0))
	expect.EQ(t, ra.StartPosForRow(1), uint32(9))
	expect.EQ(t, ra.StartPosForRow(2), uint32(18))
}

func TestRowRangeStartOnly(t *testing.T) {
	ra := window.NewRowAssigner(20, 9)
	ra.StartOnly = true
	for _, tt := range []struct {
		first, last uint32
		want        uint32
	}{
		{0, 8, 0},
		{0, 9, 0},
		{0, 19, 0},
		{8, 8, 0},
		{8, 9, 0},
		{9, 9, 1},
		{17, 18, 1},
		// last is ignored entirely, even if it is out of order.
		{18, 2, 2},
	} {
		gotFirst, gotLast := ra.RowRange(tt.first, tt.last)
		expect.EQ(t, gotFirst, tt.want)
		expect.EQ(t, gotLast, tt.want)
	}
}

func TestRowAssignerPanics(t *testing.T) {
	assert.Panics(t, func() { window.NewRowAssigner(10, 0) })
	ra := window.NewRowAssigner(10, 2)
	assert.Panics(t, func() { ra.RowRange(5, 4) })
}
