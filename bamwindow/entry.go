// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"github.com/grailbio/hts/sam"
)

var rgTag = sam.NewTag("RG")

// readGroup returns the RG tag value of r, or "" if it has none.
func readGroup(r *sam.Record) string {
	aux := r.AuxFields.Get(rgTag)
	if aux == nil {
		return ""
	}
	rg, ok := aux.Value().(string)
	if !ok {
		return ""
	}
	return rg
}

// samEntry adapts a sam.Record to window.Entry.
type samEntry struct {
	r *sam.Record
}

func (e samEntry) FirstPos() uint32 { return uint32(e.r.Pos) }

// LastPos is the exclusive end of the reference span of the alignment.  It
// equals FirstPos when the cigar consumes no reference bases.
func (e samEntry) LastPos() uint32 { return uint32(e.r.End()) }

func (e samEntry) Length() uint32    { return uint32(e.r.Seq.Length) }
func (e samEntry) ReadGroup() string { return readGroup(e.r) }
func (e samEntry) Name() string      { return e.r.Name }
