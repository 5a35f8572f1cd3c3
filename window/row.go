// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

import (
	"github.com/grailbio/base/log"
)

// RowAssigner maps coordinate spans on one sequence to window (row) indices.
type RowAssigner struct {
	// SeqLen is the sequence length.
	SeqLen uint32
	// WinSize is the window size; always >= 1.
	WinSize uint32
	// NumWins is the number of windows needed to tile the sequence,
	// ceil(SeqLen / WinSize).  It is at least 1, even for an empty sequence.
	NumWins uint32
	// StartOnly causes RowRange to attribute each span only to the window
	// containing its first position.
	StartOnly bool
}

// NewRowAssigner creates a RowAssigner in span mode.
//
// REQUIRES: winSize >= 1.
func NewRowAssigner(seqLen, winSize uint32) RowAssigner {
	if winSize == 0 {
		log.Panicf("window.NewRowAssigner: window size must be >= 1")
	}
	tiled := seqLen
	if tiled == 0 {
		tiled = 1
	}
	return RowAssigner{
		SeqLen:  seqLen,
		WinSize: winSize,
		NumWins: 1 + (tiled-1)/winSize,
	}
}

// RowRange returns the inclusive range of rows touched by the 0-based
// half-open span [firstPos, lastPos).
//
// A zero-length span [x, x) is treated as [x, x+1); it still occupies its
// starting coordinate.
func (ra *RowAssigner) RowRange(firstPos, lastPos uint32) (firstRow, lastRow uint32) {
	firstRow = firstPos / ra.WinSize
	if ra.StartOnly {
		return firstRow, firstRow
	}
	if lastPos < firstPos {
		log.Panicf("window.RowAssigner.RowRange: span [%d, %d) ends before it starts", firstPos, lastPos)
	}
	if lastPos == firstPos {
		lastPos++
	}
	lastRow = (lastPos - 1) / ra.WinSize
	if lastRow < firstRow {
		log.Panicf("window.RowAssigner.RowRange: last row %d < first row %d", lastRow, firstRow)
	}
	return firstRow, lastRow
}

// StartPosForRow returns the 0-based start coordinate of row idx.
func (ra *RowAssigner) StartPosForRow(idx uint32) uint32 {
	return idx * ra.WinSize
}
