// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Opts)
		errStr string
	}{
		{"default", func(o *Opts) {}, ""},
		{"windowSize", func(o *Opts) { o.WindowSize = 0 }, "Invalid window size (0)"},
		{"downsampleZero", func(o *Opts) { o.Downsample = 0 }, "Invalid downsampling value"},
		{"downsampleBig", func(o *Opts) { o.Downsample = 1.5 }, "Invalid downsampling value"},
		{"downsampleOK", func(o *Opts) { o.Downsample = 0.25 }, ""},
		{"seed", func(o *Opts) { o.Seed = "abc" }, "Invalid seed value 'abc'"},
		{"seedOK", func(o *Opts) { o.Seed = "-12" }, ""},
		{"disjoint", func(o *Opts) { o.RequiredFlags = int(sam.Secondary) }, "must be disjoint"},
		{"scanLimit", func(o *Opts) { o.ByReadLength = true; o.ReadLengthScanLimit = 0 }, "read length scan limit"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOpts
			test.modify(&opts)
			err := opts.Validate()
			if test.errStr == "" {
				expect.NoError(t, err)
			} else {
				assert.NotNil(t, err)
				assert.HasSubstr(t, err.Error(), test.errStr)
			}
		})
	}
}

func TestValidatePairFlags(t *testing.T) {
	opts := DefaultOpts
	opts.PairsOnly = true
	assert.NoError(t, opts.Validate())
	expect.EQ(t, opts.RequiredFlags, int(sam.Paired))

	opts = DefaultOpts
	opts.ProperPairsOnly = true
	opts.RequiredFlags = int(sam.Read1)
	assert.NoError(t, opts.Validate())
	expect.EQ(t, opts.RequiredFlags, int(sam.Paired|sam.ProperPair|sam.Read1))

	opts = DefaultOpts
	opts.PairsOnly = true
	opts.ForbiddenFlags = int(sam.Paired)
	expect.NotNil(t, opts.Validate())
}

func TestFilter(t *testing.T) {
	opts := DefaultOpts
	opts.MinMapQ = 20
	opts.ProperPairsOnly = true
	assert.NoError(t, opts.Validate())
	filter := NewFilter(opts)

	tests := []struct {
		mapQ  byte
		flags sam.Flags
		want  bool
	}{
		{60, sam.Paired | sam.ProperPair, true},
		{20, sam.Paired | sam.ProperPair | sam.Reverse, true},
		{19, sam.Paired | sam.ProperPair, false},
		{60, sam.Paired, false},
		{60, sam.ProperPair, false},
		{60, sam.Paired | sam.ProperPair | sam.Secondary, false},
		{60, sam.Paired | sam.ProperPair | sam.Supplementary, false},
		{60, sam.Paired | sam.ProperPair | sam.Duplicate, true},
	}
	for _, test := range tests {
		r := &sam.Record{MapQ: test.mapQ, Flags: test.flags}
		expect.EQ(t, filter.Want(r), test.want, "mapq=%d flags=%v", test.mapQ, test.flags)
	}
}

func TestDownsampler(t *testing.T) {
	ds, err := NewDownsampler(1, "")
	assert.NoError(t, err)
	expect.True(t, ds == nil)
	expect.True(t, ds.Keep())

	_, err = NewDownsampler(0.5, "x")
	expect.NotNil(t, err)
	_, err = NewDownsampler(0, "1")
	expect.NotNil(t, err)

	sample := func() []bool {
		ds, err := NewDownsampler(0.3, "12345")
		assert.NoError(t, err)
		expect.EQ(t, ds.Seed(), int64(12345))
		keep := make([]bool, 10000)
		for i := range keep {
			keep[i] = ds.Keep()
		}
		return keep
	}
	a, b := sample(), sample()
	expect.EQ(t, a, b)
	n := 0
	for _, k := range a {
		if k {
			n++
		}
	}
	// 3000 +- 10 sigma.
	expect.True(t, n > 2540 && n < 3460, "kept %d", n)

	ds, err = NewDownsampler(0.5, "")
	assert.NoError(t, err)
	expect.True(t, ds.Seed() > 0)
}
