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

// computer runs the block search on one lanes backend. F, I, FM and IM are the
// backend's value types and M is the backend itself.
//
// A computer holds no mutable state, so one computer can serve many
// goroutines.
type computer[F any, I any, FM any, IM any, M lanes.Math[F, I, FM, IM]] struct {
	m        M
	settings settings
	weights  [4]F
}

func newComputer[F any, I any, FM any, IM any, M lanes.Math[F, I, FM, IM]](s settings) *computer[F, I, FM, IM, M] {
	c := &computer[F, I, FM, IM, M]{settings: s}
	for ch := range 4 {
		c.weights[ch] = c.m.MakeFloat(s.weights[ch])
	}
	return c
}

// computeError returns the weighted sum of squared differences between the
// reconstructed and original pixels.
func (c *computer[F, I, FM, IM, M]) computeError(reconstructed *[4]I, original *[4]I) F {
	m := c.m
	err := m.MakeFloat(0)
	for ch := range 4 {
		sq := m.UInt16ToFloat(m.SqDiff(reconstructed[ch], original[ch]))
		err = m.Add(err, m.Mul(c.weights[ch], sq))
	}
	return err
}

// ----

func (c *computer[F, I, FM, IM, M]) quantize(color *[4]I, bits int, channels int) {
	m := c.m
	maxColor := m.MakeFloat(float32((int(1) << bits) - 1))
	for ch := range channels {
		f := m.Mul(m.Mul(m.UInt16ToFloat(color[ch]), m.MakeFloat(1.0/255.0)), maxColor)
		color[ch] = m.FloatToUInt16(m.Clamp(f, 0, 255))
	}
}

// quantizeP quantizes to bits bits and then appends the parity bit p, giving a
// (bits + 1)-bit value.
func (c *computer[F, I, FM, IM, M]) quantizeP(color *[4]I, bits int, p bool, channels int) {
	m := c.m
	pShift := uint16(1) << (7 - bits)
	pShiftV := m.MakeUInt16(pShift)
	maxColorF := m.MakeFloat(float32(255 - pShift))
	maxQuantized := float32((int(1) << bits) - 1)
	maxQuantizedV := m.MakeFloat(maxQuantized)

	for ch := range channels {
		clr := color[ch]
		if p {
			clr = m.SubInt16(m.MaxInt16(clr, pShiftV), pShiftV)
		}
		reranged := m.Div(m.Mul(m.UInt16ToFloat(clr), maxQuantizedV), maxColorF)
		clr = m.ShiftLeft(m.FloatToUInt16(m.Clamp(reranged, 0, maxQuantized)), 1)
		if p {
			clr = m.OrInt16(clr, m.MakeUInt16(1))
		}
		color[ch] = clr
	}
}

// unquantize expands bits-bit values to 8 bits by replicating the high bits
// into the low bits.
func (c *computer[F, I, FM, IM, M]) unquantize(color *[4]I, bits int, channels int) {
	m := c.m
	for ch := range channels {
		clr := m.ShiftLeft(color[ch], 8-bits)
		color[ch] = m.OrInt16(clr, m.UnsignedRightShift(clr, bits))
	}
}

// compressEndpoints rounds a single-plane mode's endpoints to what the
// bitstream can represent, given the parity bits p.
func (c *computer[F, I, FM, IM, M]) compressEndpoints(mode int, ep *[2][4]I, p [2]bool) {
	switch mode {
	case 0:
		for j := range 2 {
			c.quantizeP(&ep[j], 4, p[j], 3)
			c.unquantize(&ep[j], 5, 3)
			ep[j][3] = c.m.MakeUInt16(255)
		}
	case 1:
		for j := range 2 {
			c.quantizeP(&ep[j], 6, p[0], 3)
			c.unquantize(&ep[j], 7, 3)
			ep[j][3] = c.m.MakeUInt16(255)
		}
	case 2:
		for j := range 2 {
			c.quantize(&ep[j], 5, 3)
			c.unquantize(&ep[j], 5, 3)
			ep[j][3] = c.m.MakeUInt16(255)
		}
	case 3:
		for j := range 2 {
			c.quantizeP(&ep[j], 7, p[j], 3)
		}
	case 6:
		for j := range 2 {
			c.quantizeP(&ep[j], 7, p[j], 4)
		}
	case 7:
		for j := range 2 {
			c.quantizeP(&ep[j], 5, p[j], 4)
			c.unquantize(&ep[j], 6, 4)
		}
	default:
		assert.Assert(false)
	}
}

// compressDualPlaneEndpoints is like compressEndpoints for modes 4 and 5. Only
// the first 3 channels of rgb are used.
func (c *computer[F, I, FM, IM, M]) compressDualPlaneEndpoints(mode int, rgb *[2][4]I, alpha *[2]I) {
	switch mode {
	case 4:
		for j := range 2 {
			c.quantize(&rgb[j], 5, 3)
			c.unquantize(&rgb[j], 5, 3)
			a := [4]I{alpha[j]}
			c.quantize(&a, 6, 1)
			c.unquantize(&a, 6, 1)
			alpha[j] = a[0]
		}
	case 5:
		// Alpha keeps its full 8 bits.
		for j := range 2 {
			c.quantize(&rgb[j], 7, 3)
			c.unquantize(&rgb[j], 7, 3)
		}
	default:
		assert.Assert(false)
	}
}
