// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
Package window tiles a sequence into fixed-size windows and counts, per
window, the position-sorted entries (usually aligned reads) that overlap it
or start in it, optionally split into columns by library and/or length.

A run is assembled from four pieces:

  - RowAssigner maps an entry's [first, last) span to the range of window
    indices it touches.  In start-only mode an entry only ever lands in the
    window containing its leftmost position.
  - ColumnAssigner maps (read group, length) to an output column.  The
    variants are SingleColumnAssigner, PerLengthColumnAssigner,
    PerLibraryColumnAssigner and PerLibraryAndLengthColumnAssigner;
    NewColumnAssigner picks one from two flags.
  - WarningCollector counts the entries which could not be assigned a
    column, for an end-of-run summary.
  - TableBuilder consumes entries in position order and emits exactly one
    row per window, in increasing order, through a RowPrinter.  Only rows
    that some in-flight entry still reaches are held in memory.

The column assigner is built once per run and shared (read-only) by every
sequence; a RowAssigner and TableBuilder are built per sequence.
*/
package window
