// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testFloats = []float32{
	0, 0.5, 1.5, 2.5, 254.49, 254.5, 255, 1000, -3, 0.0001,
	17.25, 99.75, 128, 3.5, 65535, 12,
}

var testUInt16s = []uint16{
	0, 1, 2, 127, 128, 255, 256, 1000, 0x7FFF, 0x8000, 0xFFFF,
	10923, 4681, 2184, 64, 32,
}

// runOps applies a fixed sequence of operations to per-lane inputs and
// returns the per-lane outputs, flattened.
func runOps[F any, I any, FM any, IM any](m Math[F, I, FM, IM], fs []float32, us []uint16) (outF []float32, outU []uint16, outB []bool) {
	n := m.Lanes()
	for base := 0; base < len(fs); base += n {
		a, b := m.MakeFloat(0), m.MakeFloat(0)
		x, y := m.MakeUInt16(0), m.MakeUInt16(0)
		for lane := range n {
			i := (base + lane) % len(fs)
			j := (base + lane + 1) % len(fs)
			a = m.Select(laneMask[F, I, FM, IM](m, lane), m.MakeFloat(fs[i]), a)
			b = m.Select(laneMask[F, I, FM, IM](m, lane), m.MakeFloat(fs[j]), b)
			m.InsertUInt16(&x, lane, us[i])
			m.InsertUInt16(&y, lane, us[j])
		}

		fResults := []F{
			m.Add(a, b),
			m.Sub(a, b),
			m.Mul(a, b),
			m.Div(a, m.Max(b, m.MakeFloat(1))),
			m.Min(a, b),
			m.Max(a, b),
			m.Clamp(a, 0, 255),
			m.Sqrt(m.Max(a, m.MakeFloat(0))),
			m.UInt16ToFloat(x),
		}
		iResults := []I{
			m.AddInt16(x, y),
			m.SubInt16(x, y),
			m.MulInt16(x, y),
			m.OrInt16(x, y),
			m.MinInt16(x, y),
			m.MaxInt16(x, y),
			m.ShiftLeft(x, 3),
			m.UnsignedRightShift(x, 9),
			m.FloatToUInt16(m.Clamp(a, 0, 255)),
			m.SqDiff(m.UnsignedRightShift(x, 8), m.UnsignedRightShift(y, 8)),
			m.SelectInt16(m.LessInt16(x, y), x, y),
		}
		bResults := []IM{
			m.LessInt16(x, y),
			m.EqualInt16(x, y),
			m.FloatFlagToInt16(m.Less(a, b)),
			m.FloatFlagToInt16(m.Equal(a, b)),
		}

		for lane := range n {
			for _, r := range fResults {
				outF = append(outF, m.ExtractFloat(r, lane))
			}
			for _, r := range iResults {
				outU = append(outU, m.ExtractUInt16(r, lane))
			}
			for _, r := range bResults {
				outB = append(outB, m.ExtractFlag(r, lane))
			}
		}
	}
	return outF, outU, outB
}

// laneMask returns a float mask with only the given lane set.
func laneMask[F any, I any, FM any, IM any](m Math[F, I, FM, IM], lane int) FM {
	var idx I
	for i := range m.Lanes() {
		m.InsertUInt16(&idx, i, uint16(i))
	}
	return m.Equal(m.UInt16ToFloat(idx), m.MakeFloat(float32(lane)))
}

func TestBackendsAgree(tt *testing.T) {
	wantF, wantU, wantB := runOps[F32x1, I16x1, F32x1Mask, I16x1Mask](Scalar{}, testFloats, testUInt16s)

	gotF, gotU, gotB := runOps[F32x8, I16x8, F32x8Mask, I16x8Mask](Vec128{}, testFloats, testUInt16s)
	require.Equal(tt, wantF, gotF, "Vec128 floats")
	require.Equal(tt, wantU, gotU, "Vec128 uint16s")
	require.Equal(tt, wantB, gotB, "Vec128 flags")

	gotF, gotU, gotB = runOps[F32x16, I16x16, F32x16Mask, I16x16Mask](Vec256{}, testFloats, testUInt16s)
	require.Equal(tt, wantF, gotF, "Vec256 floats")
	require.Equal(tt, wantU, gotU, "Vec256 uint16s")
	require.Equal(tt, wantB, gotB, "Vec256 flags")
}

func TestFloatToUInt16RoundsHalfUp(tt *testing.T) {
	m := Scalar{}
	testCases := []struct {
		in   float32
		want uint16
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{3.5, 4},
		{254.5, 255},
		{255, 255},
	}
	for _, tc := range testCases {
		got := m.ExtractUInt16(m.FloatToUInt16(m.MakeFloat(tc.in)), 0)
		require.Equal(tt, tc.want, got, "in=%v", tc.in)
	}
}

func TestClamp(tt *testing.T) {
	m := Vec128{}
	require.Equal(tt, float32(0), m.ExtractFloat(m.Clamp(m.MakeFloat(-5), 0, 255), 3))
	require.Equal(tt, float32(255), m.ExtractFloat(m.Clamp(m.MakeFloat(300), 0, 255), 3))
	require.Equal(tt, float32(17), m.ExtractFloat(m.Clamp(m.MakeFloat(17), 0, 255), 3))
}

func TestInt16Wrapping(tt *testing.T) {
	m := Vec256{}
	x := m.MakeUInt16(7)
	rcp := m.MakeUInt16(2184)
	// 7*2184 + 256 = 15544, still positive as int16.
	w := m.UnsignedRightShift(m.AddInt16(m.MulInt16(x, rcp), m.MakeUInt16(256)), 9)
	require.Equal(tt, uint16(30), m.ExtractUInt16(w, 15))

	// 15*2184 + 256 = 33016 wraps negative as int16 but is fine unsigned.
	x = m.MakeUInt16(15)
	w = m.UnsignedRightShift(m.AddInt16(m.MulInt16(x, rcp), m.MakeUInt16(256)), 9)
	require.Equal(tt, uint16(64), m.ExtractUInt16(w, 0))

	require.Equal(tt, uint16(255*255), m.ExtractUInt16(m.SqDiff(m.MakeUInt16(0), m.MakeUInt16(255)), 1))
}

func TestMasks(tt *testing.T) {
	m := Vec128{}
	a := m.MakeUInt16(5)
	require.False(tt, m.AnySet(m.LessInt16(a, a)))
	require.True(tt, m.AnySet(m.EqualInt16(a, a)))

	b := a
	m.InsertUInt16(&b, 6, 9)
	lt := m.LessInt16(a, b)
	require.True(tt, m.AnySet(lt))
	for lane := range m.Lanes() {
		require.Equal(tt, lane == 6, m.ExtractFlag(lt, lane), "lane %d", lane)
	}

	m.ConditionalSetInt16(&a, lt, m.MakeUInt16(100))
	require.Equal(tt, uint16(100), m.ExtractUInt16(a, 6))
	require.Equal(tt, uint16(5), m.ExtractUInt16(a, 5))

	f := m.MakeFloat(1)
	m.ConditionalSet(&f, m.Less(m.MakeFloat(0), m.MakeFloat(1)), m.MakeFloat(2))
	require.Equal(tt, float32(2), m.ExtractFloat(f, 0))
}

func TestLevels(tt *testing.T) {
	for _, l := range []Level{LevelScalar, Level128, Level256} {
		got, ok := LevelForLanes(l.Lanes())
		require.True(tt, ok)
		require.Equal(tt, l, got)
	}
	_, ok := LevelForLanes(4)
	require.False(tt, ok)
	require.Equal(tt, "vec128", Level128.String())
	require.NotZero(tt, Detect().Lanes())
}

func TestNoSIMDEnv(tt *testing.T) {
	testCases := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tc := range testCases {
		tt.Setenv("BC7_NO_SIMD", tc.val)
		require.Equal(tt, tc.want, NoSIMDEnv(), "val=%q", tc.val)
	}
}
