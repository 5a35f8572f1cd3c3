// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/bamwindow/encoding/bamprovider"
	"github.com/grailbio/bamwindow/window"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
)

// runStats counts records as they pass through the driver loop.
type runStats struct {
	read, filtered, downsampled, counted int
}

// selectRefs returns the header references named by seqs, in the given
// order, or every reference when seqs is empty.
func selectRefs(header *sam.Header, seqs []string) ([]*sam.Reference, error) {
	if len(seqs) == 0 {
		return header.Refs(), nil
	}
	refs := make([]*sam.Reference, 0, len(seqs))
	for _, name := range seqs {
		ref := bamprovider.RefByName(header, name)
		if ref == nil {
			return nil, errors.E(errors.NotExist, "sequence "+name+" not found in the BAM header")
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// newColumnAssigner gathers the metadata the column split asks for and
// builds the column assigner.  It also returns the read group -> library map
// (nil unless splitting by library).
func newColumnAssigner(p bamprovider.Provider, header *sam.Header, filter Filter, opts Opts) (window.ColumnAssigner, map[string]string, error) {
	colOpts := window.ColumnOpts{ByLibrary: opts.ByLibrary, ByLength: opts.ByReadLength}
	var err error
	if opts.ByLibrary {
		if colOpts.ReadGroupLibraries, err = ReadGroupLibraries(header); err != nil {
			return nil, nil, err
		}
	}
	if opts.ByReadLength {
		if opts.ByLibrary {
			colOpts.LibraryReadLengths, err = ScanLibraryReadLengths(p, filter, opts.ReadLengthScanLimit, colOpts.ReadGroupLibraries)
		} else {
			colOpts.ReadLengths, err = ScanReadLengths(p, filter, opts.ReadLengthScanLimit)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	ca, err := window.NewColumnAssigner(colOpts)
	if err != nil {
		return nil, nil, err
	}
	return ca, colOpts.ReadGroupLibraries, nil
}

// countRef writes the table rows of one reference.
func countRef(p bamprovider.Provider, ref *sam.Reference, opts Opts, filter Filter, ds *Downsampler,
	ca window.ColumnAssigner, printer window.RowPrinter, warnings *window.WarningCollector, stats *runStats) error {
	ra := window.NewRowAssigner(uint32(ref.Len()), uint32(opts.WindowSize))
	ra.StartOnly = opts.Leftmost
	tb := window.NewTableBuilder(ref.Name(), &ra, ca, printer, warnings)
	log.Debug.Printf("%s: %d windows", ref.Name(), ra.NumWins)

	if ref.Len() > 0 {
		iter := p.NewIterator(ref, 0, ref.Len())
		for iter.Scan() {
			r := iter.Record()
			stats.read++
			if !filter.Want(r) {
				stats.filtered++
				continue
			}
			if !ds.Keep() {
				stats.downsampled++
				continue
			}
			stats.counted++
			if err := tb.Add(samEntry{r}); err != nil {
				iter.Close() // nolint: errcheck
				return err
			}
		}
		if err := iter.Close(); err != nil {
			return err
		}
	}
	return tb.Flush()
}

// Run counts the reads of the BAM file at path in windows, and writes the
// table to opts.OutputPath.  Entries that could not be assigned a column are
// summarized on stderr at the end.
func Run(ctx context.Context, path string, opts Opts) error {
	return run(ctx, path, opts, os.Stderr)
}

func run(ctx context.Context, path string, opts Opts, warnOut io.Writer) (err error) {
	if err = opts.Validate(); err != nil {
		return err
	}
	p := bamprovider.NewProvider(path, bamprovider.ProviderOpts{Index: opts.IndexPath})
	defer func() {
		if e := p.Close(); e != nil && err == nil {
			err = e
		}
	}()
	header, err := p.GetHeader()
	if err != nil {
		return err
	}
	refs, err := selectRefs(header, opts.Sequences)
	if err != nil {
		return err
	}
	filter := NewFilter(opts)
	ca, rgToLib, err := newColumnAssigner(p, header, filter, opts)
	if err != nil {
		return err
	}
	ds, err := NewDownsampler(opts.Downsample, opts.Seed)
	if err != nil {
		return err
	}

	out, err := createOutput(ctx, opts.OutputPath, opts.Parallelism)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	if err = ca.PrintHeader(out.w); err != nil {
		return err
	}
	printer := window.NewTSVPrinter(out.w, ca.NumColumns())
	warnings := window.NewWarningCollector(opts.ByLibrary, opts.ByReadLength, rgToLib)
	var stats runStats
	for _, ref := range refs {
		if err = countRef(p, ref, opts, filter, ds, ca, printer, warnings, &stats); err != nil {
			return err
		}
	}
	if err = printer.Flush(); err != nil {
		return err
	}
	log.Printf("%s: %d records read, %d filtered out, %d downsampled away, %d counted",
		path, stats.read, stats.filtered, stats.downsampled, stats.counted)
	if !warnings.Empty() {
		err = warnings.Print(warnOut)
	}
	return err
}
