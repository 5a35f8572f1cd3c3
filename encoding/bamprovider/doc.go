// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bamprovider provides utilities for scanning an indexed BAM file one
// reference at a time.
//
// The Provider is an interface for reading a BAM file.  BAMProvider reads a
// local or remote (e.g. S3) file through github.com/grailbio/base/file, and
// NewFakeProvider serves an in-memory record list for unittests.
package bamprovider
