// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"testing"
	"time"

	"github.com/grailbio/bamwindow/encoding/bamprovider/bamprovidertest"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/require"
)

// newTestHeader creates a header with references chr1 (62 bases) and chr2
// (20 bases), and read groups rg1, rg2 (library libA) and rg3 (libB).
func newTestHeader(t *testing.T) *sam.Header {
	chr1, err := sam.NewReference("chr1", "", "", 62, nil, nil)
	require.NoError(t, err)
	chr2, err := sam.NewReference("chr2", "", "", 20, nil, nil)
	require.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	require.NoError(t, err)
	for _, rg := range []struct{ id, lib string }{
		{"rg1", "libA"},
		{"rg2", "libA"},
		{"rg3", "libB"},
	} {
		g, err := sam.NewReadGroup(rg.id, "", "", rg.lib, "", "illumina", "", "sample", "", "", time.Time{}, 0)
		require.NoError(t, err)
		require.NoError(t, header.AddReadGroup(g))
	}
	return header
}

// newTestRecords returns, in coordinate order:
//
//   a: chr1:0, 36 bases, rg1
//   b: chr1:5, 36 bases, rg2, secondary
//   c: chr1:40, 50 bases, rg3 (hangs off the end of chr1)
//   d: chr2:3, 36 bases, rg1, mapq 10
//   e: unmapped, 36 bases, no read group
func newTestRecords(header *sam.Header) []*sam.Record {
	refs := header.Refs()
	b := bamprovidertest.NewRecord("b", refs[0], 5, 36, sam.Secondary, "rg2")
	d := bamprovidertest.NewRecord("d", refs[1], 3, 36, 0, "rg1")
	d.MapQ = 10
	return []*sam.Record{
		bamprovidertest.NewRecord("a", refs[0], 0, 36, 0, "rg1"),
		b,
		bamprovidertest.NewRecord("c", refs[0], 40, 50, 0, "rg3"),
		d,
		bamprovidertest.NewRecord("e", nil, 0, 36, 0, ""),
	}
}
