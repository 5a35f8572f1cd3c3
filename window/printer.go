// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

import (
	"bytes"
	"io"

	"github.com/grailbio/base/tsv"
)

// TSVPrinter is a RowPrinter which writes tab-separated lines of the form
// "<seqName>\t<pos>\t<count>...".
type TSVPrinter struct {
	w *tsv.Writer
	// emptyCounts is "0\t" repeated once per column.
	emptyCounts []byte
}

// NewTSVPrinter creates a TSVPrinter for a table with numColumns columns.
// Call Flush when done.
func NewTSVPrinter(w io.Writer, numColumns int) *TSVPrinter {
	return &TSVPrinter{
		w:           tsv.NewWriter(w),
		emptyCounts: bytes.Repeat([]byte("0\t"), numColumns),
	}
}

// PrintEmptyRow implements RowPrinter.
func (p *TSVPrinter) PrintEmptyRow(seqName string, pos uint32) error {
	p.w.WriteString(seqName)
	p.w.WriteUint32(pos)
	p.w.WritePartialBytes(p.emptyCounts)
	return p.w.EndLine()
}

// PrintRow implements RowPrinter.
func (p *TSVPrinter) PrintRow(seqName string, pos uint32, counts []uint32) error {
	p.w.WriteString(seqName)
	p.w.WriteUint32(pos)
	for _, c := range counts {
		p.w.WriteUint32(c)
	}
	return p.w.EndLine()
}

// Flush flushes buffered output to the underlying writer.
func (p *TSVPrinter) Flush() error {
	return p.w.Flush()
}
