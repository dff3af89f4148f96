// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"github.com/nigeltao/bc7/internal/assert"
	"github.com/nigeltao/bc7/lib/lanes"
)

// applyFixups flips index ranges (and swaps the corresponding endpoints) so
// that the index at every fixup pixel has a zero top bit, which the bitstream
// then omits.
func (s *solution) applyFixups() {
	mi := &modeInfos[s.mode]

	if l, ok := s.layout.(rotationLayout); ok {
		flipRGB := (s.indexes[0] & (1 << (mi.indexBits - 1))) != 0
		flipAlpha := (s.indexes2[0] & (1 << (mi.alphaIndexBits - 1))) != 0

		if flipRGB {
			highIndex := uint8((1 << mi.indexBits) - 1)
			for px := range 16 {
				s.indexes[px] = highIndex - s.indexes[px]
			}
		}
		if flipAlpha {
			highIndex := uint8((1 << mi.alphaIndexBits) - 1)
			for px := range 16 {
				s.indexes2[px] = highIndex - s.indexes2[px]
			}
		}

		// The flags so far are per index stream. Map them to per plane.
		if l.indexSelector != 0 {
			flipRGB, flipAlpha = flipAlpha, flipRGB
		}

		ep := &s.ep[0]
		if flipRGB {
			for ch := range 3 {
				ep[0][ch], ep[1][ch] = ep[1][ch], ep[0][ch]
			}
		}
		if flipAlpha {
			ep[0][3], ep[1][3] = ep[1][3], ep[0][3]
		}
		return
	}

	partition := s.partition()
	fix := fixupPixels(mi.numSubsets, partition)

	flip := [3]bool{}
	anyFlip := false
	for subset := range mi.numSubsets {
		flip[subset] = (s.indexes[fix[subset]] & (1 << (mi.indexBits - 1))) != 0
		anyFlip = anyFlip || flip[subset]
	}
	if !anyFlip {
		return
	}

	highIndex := uint8((1 << mi.indexBits) - 1)
	for px := range 16 {
		if flip[subsetOf(mi.numSubsets, partition, px)] {
			s.indexes[px] = highIndex - s.indexes[px]
		}
	}

	numChannels := 3
	if mi.alpha == alphaCombined {
		numChannels = 4
	}
	for subset := range mi.numSubsets {
		if !flip[subset] {
			continue
		}
		ep := &s.ep[subset]
		for ch := range numChannels {
			ep[0][ch], ep[1][ch] = ep[1][ch], ep[0][ch]
		}
	}
}

// pack serializes s, which must have had its fixups applied, to dst.
func (s *solution) pack(dst *[BytesPerBlock]byte) {
	mi := &modeInfos[s.mode]
	pv := lanes.PackingVector{}

	pv.Pack(1<<s.mode, s.mode+1)

	fix := fixups{}
	switch l := s.layout.(type) {
	case partitionLayout:
		if mi.partitionBits > 0 {
			pv.Pack(uint16(l.partition), mi.partitionBits)
		}
		fix = fixupPixels(mi.numSubsets, l.partition)
	case rotationLayout:
		pv.Pack(uint16(l.rotation), 2)
		if mi.hasIndexSelector {
			pv.Pack(uint16(l.indexSelector), 1)
		}
	default:
		assert.Assert(false)
	}

	for ch := range 3 {
		for subset := range mi.numSubsets {
			for e := range 2 {
				pv.Pack(uint16(s.ep[subset][e][ch]>>(8-mi.rgbBits)), mi.rgbBits)
			}
		}
	}

	if mi.alpha != alphaNone {
		for subset := range mi.numSubsets {
			for e := range 2 {
				pv.Pack(uint16(s.ep[subset][e][3]>>(8-mi.alphaBits)), mi.alphaBits)
			}
		}
	}

	// The parity bit sits just below the quantized bits, in every channel.
	switch mi.parity {
	case parityPerSubset:
		for subset := range mi.numSubsets {
			pv.Pack(uint16(s.ep[subset][0][0]>>(7-mi.rgbBits)), 1)
		}
	case parityPerEndpoint:
		for subset := range mi.numSubsets {
			for e := range 2 {
				pv.Pack(uint16(s.ep[subset][e][0]>>(7-mi.rgbBits)), 1)
			}
		}
	}

	for px := range 16 {
		bits := mi.indexBits
		if fix.contains(px) {
			bits--
		}
		pv.Pack(uint16(s.indexes[px]), bits)
	}

	if mi.alpha == alphaSeparate {
		for px := range 16 {
			bits := mi.alphaIndexBits
			if px == 0 {
				bits--
			}
			pv.Pack(uint16(s.indexes2[px]), bits)
		}
	}

	pv.Flush(dst)
}
