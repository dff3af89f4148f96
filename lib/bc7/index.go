// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

// indexSelector maps pixels to the nearest of the 2^prec interpolated colors
// between two endpoints, over n channels.
type indexSelector[F any, I any] struct {
	n         int
	endpoints [2][4]I
	prec      int
	maxValue  float32
	origin    [4]F
	axis      [4]F
}

func (c *computer[F, I, FM, IM, M]) newIndexSelector(endpoints *[2][4]I, n int, prec int) (s indexSelector[F, I]) {
	m := c.m
	s.n = n
	s.endpoints = *endpoints
	s.prec = prec
	s.maxValue = float32((int(1) << prec) - 1)

	var axis [4]F
	for ch := range n {
		s.origin[ch] = m.UInt16ToFloat(endpoints[0][ch])
		axis[ch] = m.Sub(m.UInt16ToFloat(endpoints[1][ch]), s.origin[ch])
	}

	lenSquared := m.Mul(axis[0], axis[0])
	for ch := 1; ch < n; ch++ {
		lenSquared = m.Add(lenSquared, m.Mul(axis[ch], axis[ch]))
	}
	m.ConditionalSet(&lenSquared, m.Equal(lenSquared, m.MakeFloat(0)), m.MakeFloat(1))

	maxValue := m.MakeFloat(s.maxValue)
	for ch := range n {
		s.axis[ch] = m.Mul(m.Div(axis[ch], lenSquared), maxValue)
	}
	return s
}

// selectIndex projects pixel onto the endpoint line and rounds to the nearest
// index.
func (c *computer[F, I, FM, IM, M]) selectIndex(s *indexSelector[F, I], pixel *[4]I) I {
	m := c.m
	dist := m.Mul(m.Sub(m.UInt16ToFloat(pixel[0]), s.origin[0]), s.axis[0])
	for ch := 1; ch < s.n; ch++ {
		dist = m.Add(dist, m.Mul(m.Sub(m.UInt16ToFloat(pixel[ch]), s.origin[ch]), s.axis[ch]))
	}
	return m.FloatToUInt16(m.Clamp(dist, 0, s.maxValue))
}

// indexWeightReciprocals give, for 2, 3 and 4 bit indexes, a multiplier such
// that ((index * r) + 256) >> 9 is the decoder's interpolation weight (out of
// 64) for that index.
var indexWeightReciprocals = [5]uint16{2: 10923, 3: 4681, 4: 2184}

// reconstruct returns the color that a decoder produces for index, matching
// the decoder's interpolation exactly.
func (c *computer[F, I, FM, IM, M]) reconstruct(s *indexSelector[F, I], index I) (pixel [4]I) {
	m := c.m
	rcp := m.MakeUInt16(indexWeightReciprocals[s.prec])
	w := m.UnsignedRightShift(m.AddInt16(m.MulInt16(index, rcp), m.MakeUInt16(256)), 9)
	invW := m.SubInt16(m.MakeUInt16(64), w)
	for ch := range s.n {
		v := m.AddInt16(m.MulInt16(invW, s.endpoints[0][ch]), m.MulInt16(w, s.endpoints[1][ch]))
		pixel[ch] = m.UnsignedRightShift(m.AddInt16(v, m.MakeUInt16(32)), 6)
	}
	return pixel
}

// endpointRefiner solves, by least squares, for the endpoints a and b that
// best fit v = a*t + b, where t is each pixel's index scaled to [0, 1] and v
// is the pixel's color.
type endpointRefiner[F any] struct {
	n        int
	tv       [4]F
	v        [4]F
	tt       F
	t        F
	w        F
	maxIndex float32
}

func newEndpointRefiner[F any](n int, indexBits int) endpointRefiner[F] {
	return endpointRefiner[F]{
		n:        n,
		maxIndex: float32((int(1) << indexBits) - 1),
	}
}

func (c *computer[F, I, FM, IM, M]) contributeToRefiner(r *endpointRefiner[F], pixel *[4]I, index I, weight F) {
	m := c.m
	t := m.Div(m.UInt16ToFloat(index), m.MakeFloat(r.maxIndex))
	wt := m.Mul(weight, t)
	for ch := range r.n {
		v := m.UInt16ToFloat(pixel[ch])
		r.tv[ch] = m.Add(r.tv[ch], m.Mul(wt, v))
		r.v[ch] = m.Add(r.v[ch], m.Mul(weight, v))
	}
	r.tt = m.Add(r.tt, m.Mul(wt, t))
	r.t = m.Add(r.t, wt)
	r.w = m.Add(r.w, weight)
}

// refinedEndpoints returns the least squares fit. A lane with zero weight, or
// whose indexes are all equal, gets both endpoints at the mean color.
func (c *computer[F, I, FM, IM, M]) refinedEndpoints(r *endpointRefiner[F]) (ep [2][4]I) {
	m := c.m
	zero, one := m.MakeFloat(0), m.MakeFloat(1)
	w := m.Select(m.Equal(r.w, zero), one, r.w)

	aDenom := m.Sub(r.tt, m.Div(m.Mul(r.t, r.t), w))
	aDenomZero := m.Equal(aDenom, zero)
	m.ConditionalSet(&aDenom, aDenomZero, one)

	for ch := range r.n {
		a := m.Div(m.Sub(r.tv[ch], m.Div(m.Mul(r.t, r.v[ch]), w)), aDenom)
		b := m.Div(m.Sub(r.v[ch], m.Mul(a, r.t)), w)

		p1 := m.Clamp(b, 0, 255)
		p2 := m.Clamp(m.Add(a, b), 0, 255)
		m.ConditionalSet(&p1, aDenomZero, m.Div(r.v[ch], w))
		m.ConditionalSet(&p2, aDenomZero, p1)

		ep[0][ch] = m.FloatToUInt16(p1)
		ep[1][ch] = m.FloatToUInt16(p2)
	}
	return ep
}
