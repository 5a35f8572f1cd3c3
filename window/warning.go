// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/log"
)

const unknownLibrary = "<unknown>"

// WarningCollector counts entries that could not be assigned a column, so
// that they can be reported once at the end of a run instead of per entry.
// Nothing it records affects binning.
type WarningCollector struct {
	byLibrary, byLength bool
	rgToLib             map[string]string

	// missingReadGroups counts entries with no read group at all, when
	// splitting by library.
	missingReadGroups int
	// skippedLengths counts unrecognized lengths when only splitting by
	// length.
	skippedLengths map[uint32]int
	// skippedLibraries counts entries with an unrecognized read group when
	// only splitting by library, keyed by library (or "<unknown>").
	skippedLibraries map[string]int
	// libSkippedLengths counts unrecognized (library, length) combinations
	// when splitting by both.
	libSkippedLengths map[string]map[uint32]int
}

// NewWarningCollector creates a WarningCollector for a run with the given
// column split flags.  rgToLib is used to name the library of a rejected read
// group; it may be nil when byLibrary is false.
func NewWarningCollector(byLibrary, byLength bool, rgToLib map[string]string) *WarningCollector {
	return &WarningCollector{
		byLibrary:         byLibrary,
		byLength:          byLength,
		rgToLib:           rgToLib,
		skippedLengths:    map[uint32]int{},
		skippedLibraries:  map[string]int{},
		libSkippedLengths: map[string]map[uint32]int{},
	}
}

// WarnInvalidColumn records an entry whose (readGroup, readLen) was rejected
// by the column assigner.
func (w *WarningCollector) WarnInvalidColumn(readGroup string, readLen uint32) {
	if !w.byLibrary {
		if !w.byLength {
			log.Panicf("window.WarningCollector: single-column assignment cannot reject entries")
		}
		w.skippedLengths[readLen]++
		return
	}
	if readGroup == "" {
		w.missingReadGroups++
		return
	}
	lib, ok := w.rgToLib[readGroup]
	if !ok {
		lib = unknownLibrary
	}
	if !w.byLength {
		w.skippedLibraries[lib]++
		return
	}
	lens := w.libSkippedLengths[lib]
	if lens == nil {
		lens = map[uint32]int{}
		w.libSkippedLengths[lib] = lens
	}
	lens[readLen]++
}

// Empty reports whether nothing has been recorded.
func (w *WarningCollector) Empty() bool {
	return w.missingReadGroups == 0 && len(w.skippedLengths) == 0 &&
		len(w.skippedLibraries) == 0 && len(w.libSkippedLengths) == 0
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func readCount(key interface{}, n int) string {
	return fmt.Sprintf("%v (%d read%s)", key, n, plural(n))
}

func joinLengthCounts(counts map[uint32]int) string {
	lens := make([]uint32, 0, len(counts))
	for l := range counts {
		lens = append(lens, l)
	}
	sort.Slice(lens, func(i, j int) bool { return lens[i] < lens[j] })
	parts := make([]string, len(lens))
	for i, l := range lens {
		parts[i] = readCount(l, counts[l])
	}
	return strings.Join(parts, ",")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Print writes the summary, one category per line (or block), skipping empty
// categories.  Keys are listed in sorted order.
func (w *WarningCollector) Print(out io.Writer) error {
	bw := bufio.NewWriter(out)
	if w.missingReadGroups > 0 {
		fmt.Fprintf(bw, "WARNING: %d read%s with no read group information.\n",
			w.missingReadGroups, plural(w.missingReadGroups))
	}
	if len(w.skippedLengths) > 0 {
		fmt.Fprintf(bw, "WARNING: the following read lengths were encountered but not reported: %s\n",
			joinLengthCounts(w.skippedLengths))
	}
	if len(w.skippedLibraries) > 0 {
		libs := sortedKeys(w.skippedLibraries)
		parts := make([]string, len(libs))
		for i, lib := range libs {
			parts[i] = readCount(lib, w.skippedLibraries[lib])
		}
		fmt.Fprintf(bw, "WARNING: unknown read groups encountered: %s\n", strings.Join(parts, ","))
	}
	if len(w.libSkippedLengths) > 0 {
		bw.WriteString("WARNING: the following read lengths were encountered but not reported:\n")
		libs := make([]string, 0, len(w.libSkippedLengths))
		for lib := range w.libSkippedLengths {
			libs = append(libs, lib)
		}
		sort.Strings(libs)
		for _, lib := range libs {
			fmt.Fprintf(bw, "\tin library '%s': %s\n", lib, joinLengthCounts(w.libSkippedLengths[lib]))
		}
	}
	return bw.Flush()
}
