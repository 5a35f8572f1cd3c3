// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"sort"

	"github.com/grailbio/bamwindow/encoding/bamprovider"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"
)

// ReadGroupLibraries maps each @RG ID in header to its LB field.  A read
// group without a library is an error.
func ReadGroupLibraries(header *sam.Header) (map[string]string, error) {
	rgToLib := make(map[string]string, len(header.RGs()))
	for _, rg := range header.RGs() {
		lib := rg.Library()
		if lib == "" {
			return nil, errors.E(errors.Invalid, "failed to get library name for read group "+rg.Name())
		}
		rgToLib[rg.Name()] = lib
	}
	return rgToLib, nil
}

// scanRecords calls fn on each of the first limit records of the file which
// pass filter.
func scanRecords(p bamprovider.Provider, filter Filter, limit int, fn func(r *sam.Record)) error {
	iter := p.NewFileIterator()
	n := 0
	for n < limit && iter.Scan() {
		r := iter.Record()
		if !filter.Want(r) {
			continue
		}
		n++
		fn(r)
	}
	log.Debug.Printf("read length scan: %d records", n)
	return iter.Close()
}

func sortedSet(set map[uint32]struct{}) []uint32 {
	lens := make([]uint32, 0, len(set))
	for l := range set {
		lens = append(lens, l)
	}
	sort.Slice(lens, func(i, j int) bool { return lens[i] < lens[j] })
	return lens
}

// ScanReadLengths returns the distinct read lengths, in ascending order, of
// the first limit records of the file which pass filter.
func ScanReadLengths(p bamprovider.Provider, filter Filter, limit int) ([]uint32, error) {
	set := map[uint32]struct{}{}
	err := scanRecords(p, filter, limit, func(r *sam.Record) {
		set[uint32(r.Seq.Length)] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	return sortedSet(set), nil
}

// ScanLibraryReadLengths returns, for each library, the distinct read lengths
// of the first limit records of the file which pass filter.  Records without
// a read group, or whose read group is not in rgToLib, are skipped (but still
// count towards the limit).
func ScanLibraryReadLengths(p bamprovider.Provider, filter Filter, limit int, rgToLib map[string]string) (map[string][]uint32, error) {
	sets := map[string]map[uint32]struct{}{}
	err := scanRecords(p, filter, limit, func(r *sam.Record) {
		lib, ok := rgToLib[readGroup(r)]
		if !ok {
			return
		}
		set := sets[lib]
		if set == nil {
			set = map[uint32]struct{}{}
			sets[lib] = set
		}
		set[uint32(r.Seq.Length)] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, errors.E(errors.Invalid, "Unable to determine read lengths by library. Are RG tags missing?")
	}
	libLens := make(map[string][]uint32, len(sets))
	for lib, set := range sets {
		libLens[lib] = sortedSet(set)
	}
	return libLens, nil
}
