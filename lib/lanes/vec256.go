// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

// F32x16 holds 16 float32 lanes.
type F32x16 [16]float32

// I16x16 holds 16 int16 lanes, the width of one 256-bit register.
type I16x16 [16]int16

// F32x16Mask is the result of comparing two F32x16 values.
type F32x16Mask [16]bool

// I16x16Mask is the result of comparing two I16x16 values.
type I16x16Mask [16]bool

// Vec256 is the 16-lane backend.
type Vec256 struct{}

var _ Math[F32x16, I16x16, F32x16Mask, I16x16Mask] = Vec256{}

func (Vec256) Lanes() int { return 16 }

func (Vec256) MakeFloat(v float32) (r F32x16) {
	for i := range r {
		r[i] = v
	}
	return r
}

func (Vec256) MakeUInt16(v uint16) (r I16x16) {
	for i := range r {
		r[i] = int16(v)
	}
	return r
}

func (Vec256) ExtractFloat(v F32x16, lane int) float32 { return v[lane] }
func (Vec256) ExtractUInt16(v I16x16, lane int) uint16 { return uint16(v[lane]) }
func (Vec256) InsertUInt16(v *I16x16, lane int, x uint16) { v[lane] = int16(x) }
func (Vec256) ExtractFlag(m I16x16Mask, lane int) bool { return m[lane] }
func (Vec256) Add(a F32x16, b F32x16) (r F32x16) { addF32(r[:], a[:], b[:]); return r }
func (Vec256) Sub(a F32x16, b F32x16) (r F32x16) { subF32(r[:], a[:], b[:]); return r }
func (Vec256) Mul(a F32x16, b F32x16) (r F32x16) { mulF32(r[:], a[:], b[:]); return r }
func (Vec256) Div(a F32x16, b F32x16) (r F32x16) { divF32(r[:], a[:], b[:]); return r }
func (Vec256) Min(a F32x16, b F32x16) (r F32x16) { minF32(r[:], a[:], b[:]); return r }
func (Vec256) Max(a F32x16, b F32x16) (r F32x16) { maxF32(r[:], a[:], b[:]); return r }
func (Vec256) Clamp(v F32x16, lo float32, hi float32) (r F32x16) { clampF32(r[:], v[:], lo, hi); return r }
func (Vec256) Sqrt(v F32x16) (r F32x16) { sqrtF32(r[:], v[:]); return r }
func (Vec256) Less(a F32x16, b F32x16) (r F32x16Mask) { lessF32(r[:], a[:], b[:]); return r }
func (Vec256) Equal(a F32x16, b F32x16) (r F32x16Mask) { equalF32(r[:], a[:], b[:]); return r }

func (Vec256) Select(m F32x16Mask, a F32x16, b F32x16) (r F32x16) {
	selectF32(r[:], m[:], a[:], b[:])
	return r
}

func (Vec256) ConditionalSet(dst *F32x16, m F32x16Mask, src F32x16) {
	condSetF32(dst[:], m[:], src[:])
}

func (Vec256) AddInt16(a I16x16, b I16x16) (r I16x16) { addI16(r[:], a[:], b[:]); return r }
func (Vec256) SubInt16(a I16x16, b I16x16) (r I16x16) { subI16(r[:], a[:], b[:]); return r }
func (Vec256) MulInt16(a I16x16, b I16x16) (r I16x16) { mulI16(r[:], a[:], b[:]); return r }
func (Vec256) OrInt16(a I16x16, b I16x16) (r I16x16) { orI16(r[:], a[:], b[:]); return r }
func (Vec256) MinInt16(a I16x16, b I16x16) (r I16x16) { minI16(r[:], a[:], b[:]); return r }
func (Vec256) MaxInt16(a I16x16, b I16x16) (r I16x16) { maxI16(r[:], a[:], b[:]); return r }
func (Vec256) LessInt16(a I16x16, b I16x16) (r I16x16Mask) { lessI16(r[:], a[:], b[:]); return r }
func (Vec256) EqualInt16(a I16x16, b I16x16) (r I16x16Mask) { equalI16(r[:], a[:], b[:]); return r }
func (Vec256) ShiftLeft(v I16x16, bits int) (r I16x16) { shiftLeftI16(r[:], v[:], bits); return r }
func (Vec256) UInt16ToFloat(v I16x16) (r F32x16) { uint16ToF32(r[:], v[:]); return r }
func (Vec256) FloatToUInt16(v F32x16) (r I16x16) { f32ToUInt16(r[:], v[:]); return r }
func (Vec256) SqDiff(a I16x16, b I16x16) (r I16x16) { sqDiffI16(r[:], a[:], b[:]); return r }
func (Vec256) FloatFlagToInt16(m F32x16Mask) I16x16Mask { return I16x16Mask(m) }
func (Vec256) AnySet(m I16x16Mask) bool { return anySet(m[:]) }

func (Vec256) SelectInt16(m I16x16Mask, a I16x16, b I16x16) (r I16x16) {
	selectI16(r[:], m[:], a[:], b[:])
	return r
}

func (Vec256) ConditionalSetInt16(dst *I16x16, m I16x16Mask, src I16x16) {
	condSetI16(dst[:], m[:], src[:])
}

func (Vec256) UnsignedRightShift(v I16x16, bits int) (r I16x16) {
	unsignedRightShiftI16(r[:], v[:], bits)
	return r
}
