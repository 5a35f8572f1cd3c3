// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/hts/bgzf"
)

// output is the destination of the table.
type output struct {
	f    file.File
	bgzf *bgzf.Writer
	w    io.Writer
}

// createOutput opens path for writing.  "-" means stdout, and a ".gz" suffix
// selects BGZF compression with the given number of workers.
func createOutput(ctx context.Context, path string, parallelism int) (*output, error) {
	if path == "" || path == "-" {
		return &output{w: os.Stdout}, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	out := &output{f: f, w: f.Writer(ctx)}
	if strings.HasSuffix(path, ".gz") {
		out.bgzf = bgzf.NewWriter(out.w, parallelism)
		out.w = out.bgzf
	}
	return out, nil
}

// Close flushes and closes the output.  Stdout is left open.
func (out *output) Close(ctx context.Context) (err error) {
	if out.f == nil {
		return nil
	}
	defer file.CloseAndReport(ctx, out.f, &err)
	if out.bgzf != nil {
		err = out.bgzf.Close()
	}
	return err
}
