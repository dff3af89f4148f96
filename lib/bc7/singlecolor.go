// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"sync"
)

// singleColorIndex is the mode 5 index used for every pixel of a single-color
// block. Its interpolation weight is 21 (out of 64).
const singleColorIndex = 1

// singleColorTable maps an 8-bit value v to the closest pair of 7-bit mode 5
// endpoints whose interpolation at singleColorIndex is exactly v. Among equal
// pairs, it prefers the pair that is closest together.
var singleColorTable = sync.OnceValue(func() (table [256][2]uint8) {
	const w = 21
	for v := range 256 {
		bestLoss, bestGap := 1<<30, 1<<30
		for q0 := range 128 {
			e0 := int(unquantizeEndpoint(uint8(q0), 7))
			for q1 := range 128 {
				e1 := int(unquantizeEndpoint(uint8(q1), 7))
				got := (((64 - w) * e0) + (w * e1) + 32) >> 6
				loss := abs(got - v)
				gap := abs(q0 - q1)
				if (loss < bestLoss) || ((loss == bestLoss) && (gap < bestGap)) {
					bestLoss, bestGap = loss, gap
					table[v] = [2]uint8{uint8(q0), uint8(q1)}
				}
			}
		}
	}
	return table
})

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// trySingleColor tries encoding each lane's block as pixel 0's color, using
// mode 5 with a fixed index. Alpha is carried at full precision. It wins for
// constant blocks that the line-fitting search cannot represent exactly.
func (c *computer[F, I, FM, IM, M]) trySingleColor(pixels *[16][4]I, work *workInfo[F, I]) {
	const mode = 5
	if !c.settings.allows(mode) {
		return
	}
	m := c.m
	table := singleColorTable()

	cand := candidate[F, I]{mode: mode}
	for lane := range m.Lanes() {
		for ch := range 3 {
			q := table[m.ExtractUInt16(pixels[0][ch], lane)&0xFF]
			m.InsertUInt16(&cand.ep[0][0][ch], lane, uint16(unquantizeEndpoint(q[0], 7)))
			m.InsertUInt16(&cand.ep[0][1][ch], lane, uint16(unquantizeEndpoint(q[1], 7)))
		}
	}
	cand.ep[0][0][3] = pixels[0][3]
	cand.ep[0][1][3] = pixels[0][3]
	for px := range 16 {
		cand.indexes[px] = m.MakeUInt16(singleColorIndex)
	}

	sel := indexSelector[F, I]{n: 3, endpoints: cand.ep[0], prec: modeInfos[mode].indexBits}
	color := c.reconstruct(&sel, m.MakeUInt16(singleColorIndex))
	color[3] = pixels[0][3]

	cand.err = m.MakeFloat(0)
	for px := range 16 {
		cand.err = m.Add(cand.err, c.computeError(&color, &pixels[px]))
	}
	c.improveIfBetter(work, &cand)
}
