// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-bamwindow counts the reads in a sorted, indexed BAM file in fixed-size
windows tiling each reference sequence.

The output is a TSV table with a "Chr\tStart" header followed by one column
per count channel, and exactly one line per window.  Start is the 1-based
first position of the window.  By default there is a single "Counts" column;
-by-library and -by-read-length split the counts into one column per library
(taken from the @RG LB header field), per read length (taken from the first
-read-length-scan-limit reads), or both.

Sample usage:
bio-bamwindow \
    -window-size 10000 \
    -by-library \
    -min-mapq 20 \
    -o counts.tsv.gz \
    my.bam
*/
package main
