// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"github.com/grailbio/hts/sam"
)

// Filter selects the records to count.
type Filter struct {
	MinMapQ        int
	RequiredFlags  sam.Flags
	ForbiddenFlags sam.Flags
}

// NewFilter creates a Filter from validated opts.
func NewFilter(opts Opts) Filter {
	return Filter{
		MinMapQ:        opts.MinMapQ,
		RequiredFlags:  sam.Flags(opts.RequiredFlags),
		ForbiddenFlags: sam.Flags(opts.ForbiddenFlags),
	}
}

// Want reports whether r passes the filter: its mapping quality is at least
// MinMapQ, it has every RequiredFlags bit, and none of the ForbiddenFlags
// bits.
func (f Filter) Want(r *sam.Record) bool {
	return int(r.MapQ) >= f.MinMapQ &&
		r.Flags&f.RequiredFlags == f.RequiredFlags &&
		r.Flags&f.ForbiddenFlags == 0
}
