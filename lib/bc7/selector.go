// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

const (
	numSelectorPasses  = 3
	numPowerIterations = 8
	numTweakRounds     = 4
)

// unfinishedEndpoints is a line segment through color space: base + t*offset
// for t in [0, 1]. The tweak round decides where the endpoints go.
type unfinishedEndpoints[F any] struct {
	base   [4]F
	offset [4]F
}

// endpointSelector fits a line through a subset's pixels, over n channels (3
// or 4), in three passes:
//
//   - pass 0 accumulates the centroid,
//   - pass 1 accumulates the covariance matrix, whose principal eigenvector
//     (found by power iteration) is the line's direction,
//   - pass 2 finds the extent of the pixels' projections onto the line.
type endpointSelector[F any] struct {
	n          int
	total      [4]F
	centroid   [4]F
	axis       [4]F
	covariance [4][4]F
	minDist    F
	maxDist    F
}

func (c *computer[F, I, FM, IM, M]) newEndpointSelector(n int) endpointSelector[F] {
	return endpointSelector[F]{
		n:       n,
		minDist: c.m.MakeFloat(1000),
		maxDist: c.m.MakeFloat(-1000),
	}
}

func (c *computer[F, I, FM, IM, M]) initSelectorPass(s *endpointSelector[F], pass int) {
	m := c.m
	switch pass {
	case 1:
		for i := range s.n {
			s.centroid[i] = m.Div(s.centroid[i], m.Max(s.total[i], m.MakeFloat(0.0001)))
		}

	case 2:
		var matrix [4][4]F
		for i := range s.n {
			for j := i; j < s.n; j++ {
				matrix[i][j] = s.covariance[i][j]
				matrix[j][i] = s.covariance[i][j]
			}
		}

		var v [4]F
		for i := range s.n {
			v[i] = m.MakeFloat(1)
		}
		for range numPowerIterations {
			var w [4]F
			for i := range s.n {
				w[i] = m.Mul(matrix[0][i], v[0])
				for row := 1; row < s.n; row++ {
					w[i] = m.Add(w[i], m.Mul(matrix[row][i], v[row]))
				}
			}

			a := w[s.n-1]
			for i := s.n - 2; i >= 0; i-- {
				a = m.Max(w[i], a)
			}
			m.ConditionalSet(&a, m.Equal(a, m.MakeFloat(0)), m.MakeFloat(1))

			for i := range s.n {
				v[i] = m.Div(w[i], a)
			}
		}

		lenSquared := m.Mul(v[0], v[0])
		for i := 1; i < s.n; i++ {
			lenSquared = m.Add(lenSquared, m.Mul(v[i], v[i]))
		}
		vLen := m.Sqrt(lenSquared)
		m.ConditionalSet(&vLen, m.Equal(vLen, m.MakeFloat(0)), m.MakeFloat(1))

		for i := range s.n {
			s.axis[i] = m.Div(v[i], vLen)
		}
	}
}

func (c *computer[F, I, FM, IM, M]) contributeToSelector(s *endpointSelector[F], pass int, pixel *[4]I, weight F) {
	m := c.m
	var pt [4]F
	for i := range s.n {
		pt[i] = m.UInt16ToFloat(pixel[i])
	}

	switch pass {
	case 0:
		for i := range s.n {
			s.total[i] = m.Add(s.total[i], weight)
			s.centroid[i] = m.Add(s.centroid[i], m.Mul(weight, pt[i]))
		}

	case 1:
		var a, b [4]F
		for i := range s.n {
			a[i] = m.Sub(pt[i], s.centroid[i])
			b[i] = m.Mul(weight, a[i])
		}
		for i := range s.n {
			for j := i; j < s.n; j++ {
				s.covariance[i][j] = m.Add(s.covariance[i][j], m.Mul(a[i], b[j]))
			}
		}

	case 2:
		dist := m.Mul(m.Sub(pt[0], s.centroid[0]), s.axis[0])
		for i := 1; i < s.n; i++ {
			dist = m.Add(dist, m.Mul(m.Sub(pt[i], s.centroid[i]), s.axis[i]))
		}
		s.minDist = m.Min(dist, s.minDist)
		s.maxDist = m.Max(dist, s.maxDist)
	}
}

func (c *computer[F, I, FM, IM, M]) selectorEndpoints(s *endpointSelector[F]) (u unfinishedEndpoints[F]) {
	m := c.m
	length := m.Sub(s.maxDist, s.minDist)
	for i := range s.n {
		u.base[i] = m.Add(s.centroid[i], m.Mul(s.axis[i], s.minDist))
		u.offset[i] = m.Mul(s.axis[i], length)
	}
	return u
}

// tweakFactors returns where, along an unfinished line, to put the two
// endpoints. Tweak bit 1 (or bit 0) moves the low (or high) endpoint one
// index step beyond the pixels' extent.
func tweakFactors(tweak int, bits int) (f0 float32, f1 float32) {
	totalUnits := (1 << bits) - 1
	minOutsideUnits := (tweak >> 1) & 1
	maxOutsideUnits := tweak & 1
	insideUnits := totalUnits - minOutsideUnits - maxOutsideUnits

	f0 = -float32(minOutsideUnits) / float32(insideUnits)
	f1 = float32(maxOutsideUnits)/float32(insideUnits) + 1
	return f0, f1
}

// finishEndpoints turns the first n channels of u into two 8-bit endpoints.
func (c *computer[F, I, FM, IM, M]) finishEndpoints(u *unfinishedEndpoints[F], n int, tweak int, bits int) (ep [2][4]I) {
	m := c.m
	f0, f1 := tweakFactors(tweak, bits)
	f0V, f1V := m.MakeFloat(f0), m.MakeFloat(f1)
	for ch := range n {
		ep0 := m.Clamp(m.Add(u.base[ch], m.Mul(u.offset[ch], f0V)), 0, 255)
		ep1 := m.Clamp(m.Add(u.base[ch], m.Mul(u.offset[ch], f1V)), 0, 255)
		ep[0][ch] = m.FloatToUInt16(ep0)
		ep[1][ch] = m.FloatToUInt16(ep1)
	}
	return ep
}

// tweakAlpha is like finishEndpoints for a scalar range.
func (c *computer[F, I, FM, IM, M]) tweakAlpha(original [2]I, tweak int, bits int) (ret [2]I) {
	m := c.m
	f0, f1 := tweakFactors(tweak, bits)
	base := m.UInt16ToFloat(original[0])
	offset := m.Sub(m.UInt16ToFloat(original[1]), base)
	ret[0] = m.FloatToUInt16(m.Clamp(m.Add(base, m.Mul(offset, m.MakeFloat(f0))), 0, 255))
	ret[1] = m.FloatToUInt16(m.Clamp(m.Add(base, m.Mul(offset, m.MakeFloat(f1))), 0, 255))
	return ret
}
