// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

// Entry is the projection of an aligned record that TableBuilder needs.
type Entry interface {
	// FirstPos is the 0-based, inclusive start of the aligned span.
	FirstPos() uint32
	// LastPos is the 0-based, exclusive end of the aligned span.  A value
	// equal to FirstPos denotes a zero-length span.
	LastPos() uint32
	// Length is the entry length used for column assignment (e.g. the read
	// sequence length).  It is unrelated to LastPos - FirstPos.
	Length() uint32
	// ReadGroup returns the entry's read group, or "" if it has none.  It may
	// be expensive; TableBuilder only calls it when the column assigner needs
	// it.
	ReadGroup() string
	// Name is used in diagnostics only.
	Name() string
}

// Observation is a plain-struct Entry.
type Observation struct {
	First, Last uint32
	Len         uint32
	RG          string
	ID          string
}

// FirstPos implements Entry.
func (o *Observation) FirstPos() uint32 { return o.First }

// LastPos implements Entry.
func (o *Observation) LastPos() uint32 { return o.Last }

// Length implements Entry.
func (o *Observation) Length() uint32 { return o.Len }

// ReadGroup implements Entry.
func (o *Observation) ReadGroup() string { return o.RG }

// Name implements Entry.
func (o *Observation) Name() string { return o.ID }
