// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bamprovidertest writes small indexed BAM files for tests.
package bamprovidertest

import (
	"bytes"
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
)

// WriteIndexedBAM writes recs to a BAM file at path, and its index to
// path+".bai".  recs must be coordinate sorted.
func WriteIndexedBAM(ctx context.Context, path string, header *sam.Header, recs []*sam.Record) error {
	if err := writeBAM(ctx, path, header, recs); err != nil {
		return err
	}
	return writeIndex(ctx, path, path+".bai")
}

func writeBAM(ctx context.Context, path string, header *sam.Header, recs []*sam.Record) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	w, err := bam.NewWriter(out.Writer(ctx), header, 1)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Close()
}

// writeIndex builds a BAI index by re-reading the BAM file and recording the
// chunk of each record.
func writeIndex(ctx context.Context, bamPath, indexPath string) (err error) {
	in, err := file.Open(ctx, bamPath)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return err
	}
	defer r.Close() // nolint: errcheck

	var idx bam.Index
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := idx.Add(rec, r.LastChunk()); err != nil {
			return err
		}
	}

	out, err := file.Create(ctx, indexPath)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	return bam.WriteIndex(out.Writer(ctx), &idx)
}

// NewRecord creates a record named name, aligned at ref:pos with a
// readLen-base sequence and a "<readLen>M" cigar.  If ref is nil, the record
// is unmapped and pos is ignored.  If rg is nonempty, it is stored in the RG
// tag.  mapQ is set to 60.
func NewRecord(name string, ref *sam.Reference, pos, readLen int, flags sam.Flags, rg string) *sam.Record {
	var cigar []sam.CigarOp
	if ref == nil {
		pos = -1
		flags |= sam.Unmapped
	} else {
		cigar = []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, readLen)}
	}
	var aux []sam.Aux
	if rg != "" {
		a, err := sam.NewAux(sam.NewTag("RG"), rg)
		if err != nil {
			log.Panicf("bamprovidertest.NewRecord: %v", err)
		}
		aux = append(aux, a)
	}
	seq := bytes.Repeat([]byte{'A'}, readLen)
	qual := bytes.Repeat([]byte{30}, readLen)
	r, err := sam.NewRecord(name, ref, nil, pos, -1, 0, 60, cigar, seq, qual, aux)
	if err != nil {
		log.Panicf("bamprovidertest.NewRecord %s: %v", name, err)
	}
	r.Flags = flags
	return r
}
