// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"runtime"

	"github.com/nigeltao/bc7/lib/lanes"
)

// EncodeOptions are optional arguments to Encode and EncodeBlocks. The zero
// value is valid and means to use the default configuration: search every
// mode, with 2 refine rounds, uniform channel weights and as many lanes and
// workers as the machine offers.
type EncodeOptions struct {
	// DisablePartitioning skips the modes with more than one subset (modes 0,
	// 1, 2, 3 and 7).
	DisablePartitioning bool

	// Disable3Subsets skips the modes with three subsets (modes 0 and 2).
	Disable3Subsets bool

	// DisableDualPlane skips the modes with separate alpha indexes (modes 4
	// and 5).
	DisableDualPlane bool

	// RefineRounds is the number of fit-then-refine rounds per candidate
	// endpoint pair. Zero means 2. At most MaxRefineRounds.
	RefineRounds int

	// ChannelWeights multiply each channel's (red, green, blue and alpha)
	// squared error when comparing candidates. All zeroes means uniform
	// weights. Each weight must be in the range [0, MaxChannelWeight].
	ChannelWeights [4]float32

	// Lanes is the number of blocks searched in lock-step: 1, 8 or 16. Zero
	// means to pick the widest that the CPU supports.
	Lanes int

	// Workers is the maximum number of goroutines. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
}

// MaxRefineRounds is the maximum EncodeOptions.RefineRounds value.
const MaxRefineRounds = 16

// MaxChannelWeight is the maximum EncodeOptions.ChannelWeights element value.
const MaxChannelWeight = 65536

const defaultRefineRounds = 2

// PerceptualChannelWeights weighs red, green and blue by their contribution to
// luminance (ITU-R BT.709), relative to green.
var PerceptualChannelWeights = [4]float32{0.2125 / 0.7154, 1, 0.0721 / 0.7154, 1}

// settings are validated EncodeOptions, with defaults applied.
type settings struct {
	allowPartitioning bool
	allow3Subsets     bool
	allowDualPlane    bool
	refineRounds      int
	weights           [4]float32
	level             lanes.Level
	workers           int
}

func (o *EncodeOptions) settings() (settings, error) {
	s := settings{
		allowPartitioning: true,
		allow3Subsets:     true,
		allowDualPlane:    true,
		refineRounds:      defaultRefineRounds,
		weights:           [4]float32{1, 1, 1, 1},
		level:             lanes.Detect(),
		workers:           runtime.GOMAXPROCS(0),
	}
	if o == nil {
		return s, nil
	}

	s.allowPartitioning = !o.DisablePartitioning
	s.allow3Subsets = !o.Disable3Subsets
	s.allowDualPlane = !o.DisableDualPlane

	if (o.RefineRounds < 0) || (MaxRefineRounds < o.RefineRounds) {
		return settings{}, ErrBadOptions
	} else if o.RefineRounds > 0 {
		s.refineRounds = o.RefineRounds
	}

	if o.ChannelWeights != ([4]float32{}) {
		for _, w := range o.ChannelWeights {
			if !(w >= 0) || !(w <= MaxChannelWeight) {
				return settings{}, ErrBadOptions
			}
		}
		s.weights = o.ChannelWeights
	}

	if o.Lanes != 0 {
		level, ok := lanes.LevelForLanes(o.Lanes)
		if !ok {
			return settings{}, ErrBadOptions
		}
		s.level = level
	}

	if o.Workers < 0 {
		return settings{}, ErrBadOptions
	} else if o.Workers > 0 {
		s.workers = o.Workers
	}
	return s, nil
}

// Validate returns ErrBadOptions if o is out of range. A nil o is valid.
func (o *EncodeOptions) Validate() error {
	_, err := o.settings()
	return err
}

// allows returns whether the search should try the mode.
func (s *settings) allows(mode int) bool {
	m := &modeInfos[mode]
	switch {
	case (m.alpha == alphaSeparate) && !s.allowDualPlane:
		return false
	case (m.numSubsets > 1) && !s.allowPartitioning:
		return false
	case (m.numSubsets > 2) && !s.allow3Subsets:
		return false
	}
	return true
}

// Lanes returns the number of blocks that EncodeBlocks searches in lock-step
// for the given options, or 0 if the options are invalid.
func Lanes(options *EncodeOptions) int {
	s, err := options.settings()
	if err != nil {
		return 0
	}
	return s.level.Lanes()
}

// Backend returns the name of the lanes backend that EncodeBlocks uses for the
// given options, or "" if the options are invalid.
func Backend(options *EncodeOptions) string {
	s, err := options.settings()
	if err != nil {
		return ""
	}
	return s.level.String()
}
