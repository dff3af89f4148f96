// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package bc7 implements a BC7 (also known as BPTC) texture encoder and
// decoder.
//
// BC7 compresses each 4×4 block of RGBA pixels to 16 bytes. Each block picks
// one of eight modes, which trade off the number of subsets (regions of the
// block with their own pair of endpoint colors), endpoint precision, index
// precision and how alpha is handled.
//
// The encoder searches every mode, partition, parity bit combination, rotation
// and index selector, fitting endpoints by principal component analysis and
// then refining them by least squares. Several blocks are searched in
// lock-step, one per lane of a lanes.Math backend.
//
// BC7 is specified at
// https://registry.khronos.org/DataFormat/specs/1.3/dataformat.1.3.html#BPTC
package bc7

import (
	"errors"
)

var (
	ErrBadArgument     = errors.New("bc7: bad argument")
	ErrBadOptions      = errors.New("bc7: bad options")
	ErrImageIsTooLarge = errors.New("bc7: image is too large")
)

// BytesPerBlock is the size of one encoded 4×4 block.
const BytesPerBlock = 16

// Block is a 4×4 block of pixels, in row-major order. Each pixel is 4 bytes:
// red, green, blue and alpha. Alpha is not premultiplied.
type Block [64]uint8

// parityMode is how a mode's endpoints share their parity (low) bits.
type parityMode uint8

const (
	parityNone        = parityMode(0)
	parityPerSubset   = parityMode(1)
	parityPerEndpoint = parityMode(2)
)

// alphaMode is how a mode represents the alpha channel.
type alphaMode uint8

const (
	// alphaNone modes decode alpha as 0xFF.
	alphaNone = alphaMode(0)
	// alphaCombined modes interpolate alpha with the same indexes as RGB.
	alphaCombined = alphaMode(1)
	// alphaSeparate modes have a second set of indexes for one channel.
	alphaSeparate = alphaMode(2)
)

type modeInfo struct {
	parity           parityMode
	alpha            alphaMode
	rgbBits          int
	alphaBits        int
	partitionBits    int
	numSubsets       int
	indexBits        int
	alphaIndexBits   int
	hasIndexSelector bool
}

// modeInfos is indexed by mode number.
//
// Mode 3's parity bits are per endpoint, not per subset.
var modeInfos = [8]modeInfo{
	{parityPerEndpoint, alphaNone, 4, 0, 4, 3, 3, 0, false},
	{parityPerSubset, alphaNone, 6, 0, 6, 2, 3, 0, false},
	{parityNone, alphaNone, 5, 0, 6, 3, 2, 0, false},
	{parityPerEndpoint, alphaNone, 7, 0, 6, 2, 2, 0, false},
	{parityNone, alphaSeparate, 5, 6, 0, 1, 2, 3, true},
	{parityNone, alphaSeparate, 7, 8, 0, 1, 2, 2, false},
	{parityPerEndpoint, alphaCombined, 7, 7, 0, 1, 4, 0, false},
	{parityPerEndpoint, alphaCombined, 5, 5, 6, 2, 2, 0, false},
}

// numParityCombinations returns how many parity bit assignments the search
// tries for a single-plane mode.
func (m *modeInfo) numParityCombinations() int {
	switch m.parity {
	case parityPerSubset:
		return 2
	case parityPerEndpoint:
		return 4
	}
	return 1
}
