// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"math"
)

// workInfo is the best configuration found so far, per lane.
//
// partition is meaningful for single-plane modes. rotation and indexSelector
// are meaningful for dual-plane modes.
type workInfo[F any, I any] struct {
	mode          I
	err           F
	ep            [3][2][4]I
	indexes       [16]I
	indexes2      [16]I
	partition     I
	rotation      I
	indexSelector I
}

func (c *computer[F, I, FM, IM, M]) newWorkInfo() (w workInfo[F, I]) {
	w.err = c.m.MakeFloat(math.MaxFloat32)
	return w
}

// candidate is one search configuration's best result. Its mode, partition,
// rotation and index selector are the same for every lane. Its other fields
// vary per lane.
type candidate[F any, I any] struct {
	mode          int
	partition     int
	rotation      int
	indexSelector int
	err           F
	ep            [3][2][4]I
	indexes       [16]I
	indexes2      [16]I
}

// improveIfBetter replaces w's per-lane configuration with cand's, in those
// lanes where cand has strictly lower error. It is the only way that w
// changes after newWorkInfo, so a lane's error never increases.
//
// It returns whether any lane improved.
func (c *computer[F, I, FM, IM, M]) improveIfBetter(w *workInfo[F, I], cand *candidate[F, I]) bool {
	m := c.m
	better := m.Less(cand.err, w.err)
	better16 := m.FloatFlagToInt16(better)
	if !m.AnySet(better16) {
		return false
	}

	m.ConditionalSet(&w.err, better, cand.err)
	m.ConditionalSetInt16(&w.mode, better16, m.MakeUInt16(uint16(cand.mode)))
	m.ConditionalSetInt16(&w.partition, better16, m.MakeUInt16(uint16(cand.partition)))
	m.ConditionalSetInt16(&w.rotation, better16, m.MakeUInt16(uint16(cand.rotation)))
	m.ConditionalSetInt16(&w.indexSelector, better16, m.MakeUInt16(uint16(cand.indexSelector)))
	for px := range 16 {
		m.ConditionalSetInt16(&w.indexes[px], better16, cand.indexes[px])
		m.ConditionalSetInt16(&w.indexes2[px], better16, cand.indexes2[px])
	}
	for subset := range 3 {
		for e := range 2 {
			for ch := range 4 {
				m.ConditionalSetInt16(&w.ep[subset][e][ch], better16, cand.ep[subset][e][ch])
			}
		}
	}
	return true
}

// layout is the mode-category-specific part of a solution: partitionLayout for
// single-plane modes and rotationLayout for dual-plane modes.
type layout interface {
	isLayout()
}

type partitionLayout struct {
	partition int
}

type rotationLayout struct {
	rotation      int
	indexSelector int
}

func (partitionLayout) isLayout() {}
func (rotationLayout) isLayout()  {}

// solution is one lane's final configuration, before fixups.
//
// Endpoints are 8-bit values that the mode can represent exactly. indexes2 is
// only used by dual-plane modes.
type solution struct {
	mode     int
	layout   layout
	err      float32
	ep       [3][2][4]uint8
	indexes  [16]uint8
	indexes2 [16]uint8
}

// partition returns the partition for single-plane modes and 0 otherwise.
func (s *solution) partition() int {
	if l, ok := s.layout.(partitionLayout); ok {
		return l.partition
	}
	return 0
}

func (c *computer[F, I, FM, IM, M]) extractSolution(w *workInfo[F, I], lane int) (s solution) {
	m := c.m
	s.mode = int(m.ExtractUInt16(w.mode, lane))
	if modeInfos[s.mode].alpha == alphaSeparate {
		s.layout = rotationLayout{
			rotation:      int(m.ExtractUInt16(w.rotation, lane)),
			indexSelector: int(m.ExtractUInt16(w.indexSelector, lane)),
		}
	} else {
		s.layout = partitionLayout{
			partition: int(m.ExtractUInt16(w.partition, lane)),
		}
	}
	s.err = m.ExtractFloat(w.err, lane)

	for subset := range 3 {
		for e := range 2 {
			for ch := range 4 {
				s.ep[subset][e][ch] = uint8(m.ExtractUInt16(w.ep[subset][e][ch], lane))
			}
		}
	}
	for px := range 16 {
		s.indexes[px] = uint8(m.ExtractUInt16(w.indexes[px], lane))
		s.indexes2[px] = uint8(m.ExtractUInt16(w.indexes2[px], lane))
	}
	return s
}
