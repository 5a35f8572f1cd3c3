// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

import (
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

// NoColumn is returned by ColumnAssigner.AssignColumn when an entry matches
// no column.
const NoColumn = -1

// ColumnAssigner maps (read group, read length) to an output column.
//
// The set of columns is fixed at construction time.  Implementations are
// read-only after construction and may be shared across sequences.
type ColumnAssigner interface {
	// AssignColumn returns the column index for an entry, or NoColumn.  An
	// empty readGroup means the entry has none.  It never fails otherwise.
	AssignColumn(readGroup string, readLen uint32) int
	// NeedsReadGroup reports whether AssignColumn looks at readGroup.  When
	// false, callers may skip the (possibly expensive) read-group lookup and
	// pass "".
	NeedsReadGroup() bool
	// NumColumns returns the number of columns.
	NumColumns() int
	// ColumnNames returns the column names in output order.  The caller must
	// not modify the result.
	ColumnNames() []string
	// PrintHeader writes the table header line.
	PrintHeader(w io.Writer) error
}

// columnSet supplies the name-based parts of ColumnAssigner.
type columnSet struct {
	names []string
}

// NumColumns implements ColumnAssigner.
func (c *columnSet) NumColumns() int { return len(c.names) }

// ColumnNames implements ColumnAssigner.
func (c *columnSet) ColumnNames() []string { return c.names }

// PrintHeader writes "Chr\tStart", then a tab and the name of each column,
// then a newline.  Downstream tools parse this line; keep it byte-exact.
func (c *columnSet) PrintHeader(w io.Writer) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("Chr")
	tw.WriteString("Start")
	for _, name := range c.names {
		tw.WriteString(name)
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	return tw.Flush()
}

// SingleColumnAssigner counts every entry in one column named "Counts".
type SingleColumnAssigner struct {
	columnSet
}

// NewSingleColumnAssigner creates a SingleColumnAssigner.
func NewSingleColumnAssigner() *SingleColumnAssigner {
	return &SingleColumnAssigner{columnSet{names: []string{"Counts"}}}
}

// AssignColumn implements ColumnAssigner.  It always returns 0.
func (*SingleColumnAssigner) AssignColumn(string, uint32) int { return 0 }

// NeedsReadGroup implements ColumnAssigner.
func (*SingleColumnAssigner) NeedsReadGroup() bool { return false }

// PerLengthColumnAssigner has one column per known read length, in ascending
// length order, named by the length.
type PerLengthColumnAssigner struct {
	columnSet
	lens []uint32
}

// sortedLengths returns the distinct values of lens in ascending order.
func sortedLengths(lens []uint32) []uint32 {
	sorted := append([]uint32(nil), lens...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:0]
	for i, l := range sorted {
		if i == 0 || l != sorted[i-1] {
			out = append(out, l)
		}
	}
	return out
}

// NewPerLengthColumnAssigner creates a PerLengthColumnAssigner.  lens may be
// unsorted and contain duplicates, but must not be empty.
func NewPerLengthColumnAssigner(lens []uint32) (*PerLengthColumnAssigner, error) {
	if len(lens) == 0 {
		return nil, errors.E(errors.Invalid, "window.NewPerLengthColumnAssigner: no read lengths given")
	}
	ca := &PerLengthColumnAssigner{lens: sortedLengths(lens)}
	for _, l := range ca.lens {
		ca.names = append(ca.names, strconv.FormatUint(uint64(l), 10))
	}
	return ca, nil
}

// lengthRank returns the index of l in the sorted slice lens, or NoColumn.
func lengthRank(lens []uint32, l uint32) int {
	i := sort.Search(len(lens), func(i int) bool { return lens[i] >= l })
	if i == len(lens) || lens[i] != l {
		return NoColumn
	}
	return i
}

// AssignColumn implements ColumnAssigner.
func (ca *PerLengthColumnAssigner) AssignColumn(_ string, readLen uint32) int {
	return lengthRank(ca.lens, readLen)
}

// NeedsReadGroup implements ColumnAssigner.
func (*PerLengthColumnAssigner) NeedsReadGroup() bool { return false }

// sortedLibraries returns the distinct library names of rgToLib, sorted.
func sortedLibraries(rgToLib map[string]string) []string {
	seen := make(map[string]bool, len(rgToLib))
	var libs []string
	for _, lib := range rgToLib {
		if !seen[lib] {
			seen[lib] = true
			libs = append(libs, lib)
		}
	}
	sort.Strings(libs)
	return libs
}

// PerLibraryColumnAssigner has one column per library, in lexicographic
// order.  Read groups sharing a library share its column.
type PerLibraryColumnAssigner struct {
	columnSet
	rgToCol map[string]int
}

// NewPerLibraryColumnAssigner creates a PerLibraryColumnAssigner from a read
// group -> library mapping, which must not be empty.
func NewPerLibraryColumnAssigner(rgToLib map[string]string) (*PerLibraryColumnAssigner, error) {
	if len(rgToLib) == 0 {
		return nil, errors.E(errors.Invalid, "window.NewPerLibraryColumnAssigner: no read groups with libraries given")
	}
	ca := &PerLibraryColumnAssigner{
		columnSet: columnSet{names: sortedLibraries(rgToLib)},
		rgToCol:   make(map[string]int, len(rgToLib)),
	}
	libCol := make(map[string]int, len(ca.names))
	for i, lib := range ca.names {
		libCol[lib] = i
	}
	for rg, lib := range rgToLib {
		ca.rgToCol[rg] = libCol[lib]
	}
	return ca, nil
}

// AssignColumn implements ColumnAssigner.  The read length is ignored.
func (ca *PerLibraryColumnAssigner) AssignColumn(readGroup string, _ uint32) int {
	if readGroup == "" {
		return NoColumn
	}
	col, ok := ca.rgToCol[readGroup]
	if !ok {
		return NoColumn
	}
	return col
}

// NeedsReadGroup implements ColumnAssigner.
func (*PerLibraryColumnAssigner) NeedsReadGroup() bool { return true }

// PerLibraryAndLengthColumnAssigner has, for each library, one column per
// read length seen in that library.  Libraries may have different length
// sets.  Library blocks appear in lexicographic order, and lengths within a
// block in ascending order; column names are "<library>.<length>".
type PerLibraryAndLengthColumnAssigner struct {
	columnSet
	rgToLib map[string]string
	// libStart is the first column of each library's block.
	libStart map[string]int
	// libLens holds each library's sorted, distinct lengths.
	libLens map[string][]uint32
}

// NewPerLibraryAndLengthColumnAssigner creates a
// PerLibraryAndLengthColumnAssigner.  rgToLib maps read groups to libraries;
// libLens maps libraries to their expected read lengths.  Neither may be
// empty.
//
// A read group whose library has no lengths is logged once here; entries in
// it are never assigned a column.
func NewPerLibraryAndLengthColumnAssigner(rgToLib map[string]string, libLens map[string][]uint32) (*PerLibraryAndLengthColumnAssigner, error) {
	if len(rgToLib) == 0 {
		return nil, errors.E(errors.Invalid, "window.NewPerLibraryAndLengthColumnAssigner: no read groups with libraries given")
	}
	if len(libLens) == 0 {
		return nil, errors.E(errors.Invalid, "window.NewPerLibraryAndLengthColumnAssigner: no read lengths by library given")
	}
	ca := &PerLibraryAndLengthColumnAssigner{
		rgToLib:  make(map[string]string, len(rgToLib)),
		libStart: make(map[string]int, len(libLens)),
		libLens:  make(map[string][]uint32, len(libLens)),
	}
	libs := make([]string, 0, len(libLens))
	for lib := range libLens {
		libs = append(libs, lib)
	}
	sort.Strings(libs)
	for _, lib := range libs {
		lens := sortedLengths(libLens[lib])
		ca.libStart[lib] = len(ca.names)
		ca.libLens[lib] = lens
		for _, l := range lens {
			ca.names = append(ca.names, lib+"."+strconv.FormatUint(uint64(l), 10))
		}
	}

	rgs := make([]string, 0, len(rgToLib))
	for rg := range rgToLib {
		rgs = append(rgs, rg)
	}
	sort.Strings(rgs)
	for _, rg := range rgs {
		lib := rgToLib[rg]
		ca.rgToLib[rg] = lib
		if len(ca.libLens[lib]) == 0 {
			log.Printf("WARNING: no read lengths found for read group %s (library %s)", rg, lib)
		}
	}
	return ca, nil
}

// AssignColumn implements ColumnAssigner.
func (ca *PerLibraryAndLengthColumnAssigner) AssignColumn(readGroup string, readLen uint32) int {
	if readGroup == "" {
		return NoColumn
	}
	lib, ok := ca.rgToLib[readGroup]
	if !ok {
		return NoColumn
	}
	lens := ca.libLens[lib]
	if len(lens) == 0 {
		return NoColumn
	}
	rank := lengthRank(lens, readLen)
	if rank == NoColumn {
		return NoColumn
	}
	return ca.libStart[lib] + rank
}

// NeedsReadGroup implements ColumnAssigner.
func (*PerLibraryAndLengthColumnAssigner) NeedsReadGroup() bool { return true }

// ColumnOpts selects and parameterizes a ColumnAssigner.
type ColumnOpts struct {
	// ByLibrary splits counts by library.
	ByLibrary bool
	// ByLength splits counts by read length.
	ByLength bool
	// ReadGroupLibraries maps read group IDs to library names.  Required when
	// ByLibrary is set.
	ReadGroupLibraries map[string]string
	// ReadLengths lists the expected read lengths.  Required when ByLength is
	// set and ByLibrary is not.
	ReadLengths []uint32
	// LibraryReadLengths lists the expected read lengths of each library.
	// Required when both ByLibrary and ByLength are set.
	LibraryReadLengths map[string][]uint32
}

// NewColumnAssigner returns the ColumnAssigner selected by opts.ByLibrary and
// opts.ByLength.
func NewColumnAssigner(opts ColumnOpts) (ColumnAssigner, error) {
	var (
		ca  ColumnAssigner
		err error
	)
	switch {
	case opts.ByLibrary && opts.ByLength:
		var c *PerLibraryAndLengthColumnAssigner
		if c, err = NewPerLibraryAndLengthColumnAssigner(opts.ReadGroupLibraries, opts.LibraryReadLengths); err == nil {
			ca = c
		}
	case opts.ByLength:
		var c *PerLengthColumnAssigner
		if c, err = NewPerLengthColumnAssigner(opts.ReadLengths); err == nil {
			ca = c
		}
	case opts.ByLibrary:
		var c *PerLibraryColumnAssigner
		if c, err = NewPerLibraryColumnAssigner(opts.ReadGroupLibraries); err == nil {
			ca = c
		}
	default:
		ca = NewSingleColumnAssigner()
	}
	return ca, err
}
