// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bamwindow

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Downsampler keeps each record independently with a fixed probability.
type Downsampler struct {
	rate   float64
	seed   int64
	random *rand.Rand
}

// NewDownsampler creates a Downsampler with the given rate in (0, 1].  seed
// must be empty or an integer; an empty seed is replaced by the current
// time in milliseconds.  A nil Downsampler, returned when rate is 1, keeps
// everything.
func NewDownsampler(rate float64, seed string) (*Downsampler, error) {
	if rate <= 0 || rate > 1 {
		return nil, errors.Errorf("Invalid downsampling value (%v), must be > 0 and <= 1.", rate)
	}
	if rate == 1 {
		return nil, nil
	}
	d := &Downsampler{rate: rate}
	if seed == "" {
		d.seed = time.Now().UnixNano() / int64(time.Millisecond)
	} else {
		var err error
		if d.seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, errors.Wrapf(err, "Invalid seed value '%s', argument must be numeric.", seed)
		}
	}
	log.Printf("RNG seed: %d", d.seed)
	d.random = rand.New(rand.NewSource(d.seed))
	return d, nil
}

// Seed returns the RNG seed in use.
func (d *Downsampler) Seed() int64 {
	return d.seed
}

// Keep reports whether the next record is kept.
func (d *Downsampler) Keep() bool {
	if d == nil {
		return true
	}
	return d.random.Float64() < d.rate
}
