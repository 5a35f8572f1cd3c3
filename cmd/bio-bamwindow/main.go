// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/bamwindow/bamwindow"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"v.io/x/lib/cmdline"
)

var samFlagDescriptions = []struct {
	flag sam.Flags
	desc string
}{
	{sam.Paired, "template having multiple segments in sequencing"},
	{sam.ProperPair, "each segment properly aligned according to the aligner"},
	{sam.Unmapped, "segment unmapped"},
	{sam.MateUnmapped, "next segment in the template unmapped"},
	{sam.Reverse, "SEQ being reverse complemented"},
	{sam.MateReverse, "SEQ of the next segment in the template being reversed"},
	{sam.Read1, "the first segment in the template"},
	{sam.Read2, "the last segment in the template"},
	{sam.Secondary, "secondary alignment"},
	{sam.QCFail, "not passing quality controls"},
	{sam.Duplicate, "PCR or optical duplicate"},
	{sam.Supplementary, "supplementary alignment"},
}

// printSAMFlags writes the SAM flag reference table.
func printSAMFlags(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%8s %8s  %s\n", "Decimal", "Hex", "Description")
	b.WriteString(strings.Repeat("-", 78))
	b.WriteByte('\n')
	for _, f := range samFlagDescriptions {
		fmt.Fprintf(&b, "%8d %8s  %s\n", int(f.flag), fmt.Sprintf("%#x", int(f.flag)), f.desc)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func newCmdRoot() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "bio-bamwindow",
		Short:    "Count reads in fixed-size windows of a sorted, indexed BAM file",
		ArgsName: "bampath",
		ArgsLong: "bampath is a coordinate-sorted BAM file with a .bai index.",
		LookPath: false,
	}
	opts := bamwindow.DefaultOpts
	flags := cmd.Flags
	flags.StringVar(&opts.IndexPath, "index", opts.IndexPath, "Input BAM index path. Defaults to bampath + .bai")
	flags.StringVar(&opts.OutputPath, "o", opts.OutputPath, "Output file (- for stdout). A .gz suffix selects BGZF compression")
	sequences := flags.String("sequence", "", "Comma-separated sequence/chromosome names to operate on, in output order. By default, all sequences are processed")
	flags.IntVar(&opts.WindowSize, "window-size", opts.WindowSize, "Tiling window size")
	flags.IntVar(&opts.WindowSize, "w", opts.WindowSize, "Shorthand for -window-size")
	flags.BoolVar(&opts.Leftmost, "leftmost", opts.Leftmost, "Use only the leftmost position of each read (i.e., don't let reads span windows)")
	flags.BoolVar(&opts.ByLibrary, "by-library", opts.ByLibrary, "Count and report reads (in columns) per-library")
	flags.BoolVar(&opts.ByReadLength, "by-read-length", opts.ByReadLength, "Count and report reads (in columns) per-read length (compatible with -by-library)")
	flags.IntVar(&opts.MinMapQ, "min-mapq", opts.MinMapQ, "Filter reads with mapping quality less than this")
	flags.BoolVar(&opts.PairsOnly, "pairs-only", opts.PairsOnly, "Only include paired-end reads (equivalent to -required-flags 1)")
	flags.BoolVar(&opts.ProperPairsOnly, "proper-pairs-only", opts.ProperPairsOnly, "Only include 'properly' paired reads (equivalent to -required-flags 3)")
	flags.IntVar(&opts.RequiredFlags, "required-flags", opts.RequiredFlags, "SAM flags that each read must have")
	flags.IntVar(&opts.ForbiddenFlags, "forbidden-flags", opts.ForbiddenFlags, "SAM flags that each read is forbidden to have")
	flags.Float64Var(&opts.Downsample, "downsample", opts.Downsample, "If set to something < 1.0, report reads with this probability")
	flags.StringVar(&opts.Seed, "seed", opts.Seed, "Seed for random number generator when downsampling. The current time is used by default")
	flags.IntVar(&opts.ReadLengthScanLimit, "read-length-scan-limit", opts.ReadLengthScanLimit, "Number of reads scanned to find the read lengths for -by-read-length")
	flags.IntVar(&opts.Parallelism, "parallelism", opts.Parallelism, "Number of BGZF compression workers for .gz output")
	listSAMFlags := flags.Bool("list-sam-flags", false, "Print SAM flag reference table and exit")

	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *listSAMFlags {
			return printSAMFlags(env.Stdout)
		}
		if len(argv) != 1 {
			return env.UsageErrorf("bio-bamwindow takes one bampath argument, but got %v", argv)
		}
		if *sequences != "" {
			opts.Sequences = strings.Split(*sequences, ",")
		}
		return bamwindow.Run(vcontext.Background(), argv[0], opts)
	})
	return cmd
}

func main() {
	cmdline.Main(newCmdRoot())
}
