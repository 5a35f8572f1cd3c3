// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bamwindow/circular"
)

// RowPrinter receives the rows of a table, in increasing window order.  pos is
// the 1-based start of the window.
type RowPrinter interface {
	// PrintEmptyRow prints a row whose counts are all zero.
	PrintEmptyRow(seqName string, pos uint32) error
	// PrintRow prints a row.  counts is only valid for the duration of the
	// call.
	PrintRow(seqName string, pos uint32, counts []uint32) error
}

// initRowBufSize is the initial row buffer capacity.  It is enough for reads
// up to a few windows wide; Add grows the buffer as needed.
const initRowBufSize = 4

// TableBuilder accumulates window counts for one sequence.  Entries must be
// added in nondecreasing FirstPos order.
type TableBuilder struct {
	seqName  string
	rows     *RowAssigner
	cols     ColumnAssigner
	printer  RowPrinter
	warnings *WarningCollector

	// curRow is the index of the first row not yet printed.  pending.Row(i)
	// holds the counts of row curRow+i.
	curRow  uint32
	pending circular.Rows
}

// NewTableBuilder creates a TableBuilder for sequence seqName.  cols may be
// shared with other TableBuilders; warnings receives the entries cols
// rejects.
func NewTableBuilder(seqName string, rows *RowAssigner, cols ColumnAssigner, printer RowPrinter, warnings *WarningCollector) *TableBuilder {
	return &TableBuilder{
		seqName:  seqName,
		rows:     rows,
		cols:     cols,
		printer:  printer,
		warnings: warnings,
		pending:  circular.NewRows(initRowBufSize, cols.NumColumns()),
	}
}

// advance prints every row before row.
func (tb *TableBuilder) advance(row uint32) error {
	for ; tb.curRow < row; tb.curRow++ {
		pos := tb.rows.StartPosForRow(tb.curRow) + 1
		if tb.pending.Len() == 0 {
			if err := tb.printer.PrintEmptyRow(tb.seqName, pos); err != nil {
				return err
			}
			continue
		}
		if err := tb.printer.PrintRow(tb.seqName, pos, tb.pending.Front()); err != nil {
			return err
		}
		tb.pending.PopFront()
	}
	return nil
}

// Add counts e in every row it touches.  Rows before e's first row are
// printed, since no later entry can reach them.
//
// If e cannot be assigned a column, it is reported to the WarningCollector
// and otherwise ignored.  An entry that starts before a row which has
// already been printed is an error.
func (tb *TableBuilder) Add(e Entry) error {
	firstRow, lastRow := tb.rows.RowRange(e.FirstPos(), e.LastPos())
	var rg string
	if tb.cols.NeedsReadGroup() {
		rg = e.ReadGroup()
	}
	col := tb.cols.AssignColumn(rg, e.Length())
	if col < 0 {
		tb.warnings.WarnInvalidColumn(rg, e.Length())
		return nil
	}
	if firstRow < tb.curRow {
		return errors.E(errors.Invalid, fmt.Sprintf(
			"window.TableBuilder.Add: entry %s at %s:%d is out of order; input must be position-sorted",
			e.Name(), tb.seqName, e.FirstPos()))
	}
	if firstRow >= tb.rows.NumWins {
		return errors.E(errors.Invalid, fmt.Sprintf(
			"window.TableBuilder.Add: entry %s at %s:%d starts past the end of the sequence",
			e.Name(), tb.seqName, e.FirstPos()))
	}
	// Entries hanging off the end of the sequence are counted in the last
	// window.
	if lastRow >= tb.rows.NumWins {
		lastRow = tb.rows.NumWins - 1
	}
	if err := tb.advance(firstRow); err != nil {
		return err
	}
	tb.pending.Extend(int(lastRow-tb.curRow) + 1)
	for i := int(firstRow - tb.curRow); i <= int(lastRow-tb.curRow); i++ {
		tb.pending.Increment(i, col)
	}
	return nil
}

// Flush prints all remaining rows of the sequence, so that exactly NumWins
// rows are printed in total.  The TableBuilder must not be used afterwards.
func (tb *TableBuilder) Flush() error {
	return tb.advance(tb.rows.NumWins)
}
