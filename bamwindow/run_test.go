// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/grailbio/bamwindow/encoding/bamprovider/bamprovidertest"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bgzf"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

// rows builds the expected table body for a reference: one line per
// window, with the given (already tab-joined) counts.
func rows(seq string, winSize int, counts ...string) string {
	var buf strings.Builder
	for i, c := range counts {
		buf.WriteString(seq)
		buf.WriteByte('\t')
		buf.WriteString(strconv.Itoa(1 + i*winSize))
		buf.WriteByte('\t')
		buf.WriteString(c)
		buf.WriteByte('\n')
	}
	return buf.String()
}

func writeTestBAM(t *testing.T, dir string, header *sam.Header, recs []*sam.Record) string {
	bamPath := filepath.Join(dir, "test.bam")
	assert.NoError(t, bamprovidertest.WriteIndexedBAM(vcontext.Background(), bamPath, header, recs))
	return bamPath
}

func runToString(t *testing.T, dir, bamPath string, opts Opts) (table, warnings string) {
	opts.OutputPath = filepath.Join(dir, "out.tsv")
	var warnBuf bytes.Buffer
	assert.NoError(t, run(vcontext.Background(), bamPath, opts, &warnBuf))
	data, err := ioutil.ReadFile(opts.OutputPath)
	assert.NoError(t, err)
	return string(data), warnBuf.String()
}

func TestRun(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tmpDir:", tmpDir)
	header := newTestHeader(t)
	bamPath := writeTestBAM(t, tmpDir, header, newTestRecords(header))

	tests := []struct {
		name   string
		modify func(o *Opts)
		want   string
	}{
		{
			"single",
			func(o *Opts) {},
			"Chr\tStart\tCounts\n" +
				rows("chr1", 10, "1", "1", "1", "1", "1", "1", "1") +
				rows("chr2", 10, "1", "1"),
		},
		{
			"byLibrary",
			func(o *Opts) { o.ByLibrary = true },
			"Chr\tStart\tlibA\tlibB\n" +
				rows("chr1", 10, "1\t0", "1\t0", "1\t0", "1\t0", "0\t1", "0\t1", "0\t1") +
				rows("chr2", 10, "1\t0", "1\t0"),
		},
		{
			"byReadLength",
			func(o *Opts) { o.ByReadLength = true },
			"Chr\tStart\t36\t50\n" +
				rows("chr1", 10, "1\t0", "1\t0", "1\t0", "1\t0", "0\t1", "0\t1", "0\t1") +
				rows("chr2", 10, "1\t0", "1\t0"),
		},
		{
			"leftmostByLibraryAndLength",
			func(o *Opts) { o.Leftmost = true; o.ByLibrary = true; o.ByReadLength = true },
			"Chr\tStart\tlibA.36\tlibB.50\n" +
				rows("chr1", 10, "1\t0", "0\t0", "0\t0", "0\t0", "0\t1", "0\t0", "0\t0") +
				rows("chr2", 10, "1\t0", "0\t0"),
		},
		{
			"minMapQ",
			func(o *Opts) { o.MinMapQ = 20 },
			"Chr\tStart\tCounts\n" +
				rows("chr1", 10, "1", "1", "1", "1", "1", "1", "1") +
				rows("chr2", 10, "0", "0"),
		},
		{
			"secondaryAllowed",
			func(o *Opts) { o.ForbiddenFlags = 0; o.WindowSize = 20 },
			"Chr\tStart\tCounts\n" +
				rows("chr1", 20, "2", "2", "2", "1") +
				rows("chr2", 20, "1"),
		},
		{
			"sequences",
			func(o *Opts) { o.Sequences = []string{"chr2", "chr1"}; o.WindowSize = 40 },
			"Chr\tStart\tCounts\n" +
				rows("chr2", 40, "1") +
				rows("chr1", 40, "1", "1"),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOpts
			opts.WindowSize = 10
			test.modify(&opts)
			table, warnings := runToString(t, tmpDir, bamPath, opts)
			expect.EQ(t, table, test.want)
			expect.EQ(t, warnings, "")
		})
	}
}

func TestRunWarnings(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tmpDir:", tmpDir)
	header := newTestHeader(t)
	recs := newTestRecords(header)
	x := bamprovidertest.NewRecord("x", header.Refs()[0], 10, 40, 0, "rg2")
	recs = append(recs[:2], append([]*sam.Record{x}, recs[2:]...)...)
	bamPath := writeTestBAM(t, tmpDir, header, recs)

	opts := DefaultOpts
	opts.WindowSize = 10
	opts.ByLibrary = true
	opts.ByReadLength = true
	// Only a is scanned, so libA has only length 36 and libB none.
	opts.ReadLengthScanLimit = 1
	table, warnings := runToString(t, tmpDir, bamPath, opts)
	expect.EQ(t, table, "Chr\tStart\tlibA.36\n"+
		rows("chr1", 10, "1", "1", "1", "1", "0", "0", "0")+
		rows("chr2", 10, "1", "1"))
	expect.EQ(t, warnings,
		"WARNING: the following read lengths were encountered but not reported:\n"+
			"\tin library 'libA': 40 (1 read)\n"+
			"\tin library 'libB': 50 (1 read)\n")
}

func TestRunGzipOutput(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tmpDir:", tmpDir)
	header := newTestHeader(t)
	bamPath := writeTestBAM(t, tmpDir, header, newTestRecords(header))

	opts := DefaultOpts
	opts.WindowSize = 40
	opts.OutputPath = filepath.Join(tmpDir, "out.tsv.gz")
	opts.Parallelism = 2
	assert.NoError(t, Run(vcontext.Background(), bamPath, opts))

	f, err := os.Open(opts.OutputPath)
	assert.NoError(t, err)
	defer f.Close() // nolint: errcheck
	r, err := bgzf.NewReader(f, 1)
	assert.NoError(t, err)
	data, err := ioutil.ReadAll(r)
	assert.NoError(t, err)
	expect.EQ(t, string(data), "Chr\tStart\tCounts\n"+
		rows("chr1", 40, "1", "1")+
		rows("chr2", 40, "1"))
}

func TestRunDownsample(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tmpDir:", tmpDir)
	header := newTestHeader(t)
	bamPath := writeTestBAM(t, tmpDir, header, newTestRecords(header))

	opts := DefaultOpts
	opts.WindowSize = 5
	opts.Downsample = 0.5
	opts.Seed = "7"
	a, _ := runToString(t, tmpDir, bamPath, opts)
	b, _ := runToString(t, tmpDir, bamPath, opts)
	expect.EQ(t, a, b)
	expect.EQ(t, strings.Count(a, "\n"), 1+13+4)
}

func TestRunErrors(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, "tmpDir:", tmpDir)
	header := newTestHeader(t)
	bamPath := writeTestBAM(t, tmpDir, header, newTestRecords(header))
	ctx := vcontext.Background()

	opts := DefaultOpts
	opts.OutputPath = filepath.Join(tmpDir, "out.tsv")
	opts.Sequences = []string{"chrZ"}
	err := Run(ctx, bamPath, opts)
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "sequence chrZ not found")

	opts = DefaultOpts
	opts.WindowSize = 0
	err = Run(ctx, bamPath, opts)
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "Invalid window size")

	err = Run(ctx, filepath.Join(tmpDir, "nonexistent.bam"), DefaultOpts)
	assert.NotNil(t, err)
}
