// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"strconv"

	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

// Opts configures Run.
type Opts struct {
	// IndexPath is the BAM index path. Defaults to bampath + ".bai".
	IndexPath string
	// OutputPath is where the table is written.  "-" means stdout; a ".gz"
	// suffix causes BGZF compression.
	OutputPath string
	// Sequences lists the reference names to process, in output order.  If
	// empty, every reference in the header is processed, in header order.
	Sequences []string

	// WindowSize is the tiling window size.  Must be >= 1.
	WindowSize int
	// Leftmost causes each read to be counted only in the window containing
	// its leftmost aligned position, instead of in every window it overlaps.
	Leftmost bool
	// ByLibrary reports counts in one column per library.
	ByLibrary bool
	// ByReadLength reports counts in one column per read length.  Combined
	// with ByLibrary, there is one column per (library, length) pair.
	ByReadLength bool

	// MinMapQ drops reads with a lower mapping quality.
	MinMapQ int
	// PairsOnly adds sam.Paired to RequiredFlags.
	PairsOnly bool
	// ProperPairsOnly adds sam.Paired and sam.ProperPair to RequiredFlags.
	ProperPairsOnly bool
	// RequiredFlags lists the SAM flags every counted read must have.
	RequiredFlags int
	// ForbiddenFlags lists the SAM flags no counted read may have.
	ForbiddenFlags int

	// Downsample is the probability with which each read passing the filter
	// is counted.  Must be in (0, 1].
	Downsample float64
	// Seed seeds the downsampling RNG.  It must be empty or an integer; if
	// empty, the current time is used.
	Seed string

	// ReadLengthScanLimit is the number of filtered records read from the
	// start of the file to find the read lengths, when ByReadLength is set.
	ReadLengthScanLimit int
	// Parallelism is the number of BGZF compression workers for ".gz"
	// output.
	Parallelism int
}

// DefaultOpts holds the default values of Opts.
var DefaultOpts = Opts{
	OutputPath:          "-",
	WindowSize:          1000,
	ForbiddenFlags:      int(sam.Secondary | sam.Supplementary),
	Downsample:          1.0,
	ReadLengthScanLimit: 1000000,
	Parallelism:         1,
}

// Validate checks opts, and folds PairsOnly and ProperPairsOnly into
// RequiredFlags.
func (opts *Opts) Validate() error {
	if opts.PairsOnly {
		opts.RequiredFlags |= int(sam.Paired)
	}
	if opts.ProperPairsOnly {
		opts.RequiredFlags |= int(sam.ProperPair | sam.Paired)
	}
	if opts.RequiredFlags&opts.ForbiddenFlags != 0 {
		return errors.Errorf("Required flags (%d) and forbidden flags (%d) must be disjoint.",
			opts.RequiredFlags, opts.ForbiddenFlags)
	}
	if opts.WindowSize < 1 {
		return errors.Errorf("Invalid window size (%d), must be >= 1.", opts.WindowSize)
	}
	if opts.Downsample <= 0 || opts.Downsample > 1 {
		return errors.Errorf("Invalid downsampling value (%v), must be > 0 and <= 1.", opts.Downsample)
	}
	if opts.Seed != "" {
		if _, err := strconv.ParseInt(opts.Seed, 10, 64); err != nil {
			return errors.Errorf("Invalid seed value '%s', argument must be numeric.", opts.Seed)
		}
	}
	if opts.ByReadLength && opts.ReadLengthScanLimit < 1 {
		return errors.Errorf("Invalid read length scan limit (%d), must be >= 1.", opts.ReadLengthScanLimit)
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return nil
}
