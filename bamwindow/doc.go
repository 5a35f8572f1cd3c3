// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
Package bamwindow counts the reads of a sorted, indexed BAM file in
fixed-size windows tiling each reference sequence, and writes the counts as
a TSV table.

Counts may be split into columns by library (from the @RG LB field of the
header), by read length, or both; see package window for the counting
itself.  This package supplies the pieces around it: record filtering and
downsampling, the read-length pre-scan, the output sink, and the per-sequence
driver loop, Run.
*/
package bamwindow
