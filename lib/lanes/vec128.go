// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

// F32x8 holds 8 float32 lanes.
type F32x8 [8]float32

// I16x8 holds 8 int16 lanes, the width of one 128-bit register.
type I16x8 [8]int16

// F32x8Mask is the result of comparing two F32x8 values.
type F32x8Mask [8]bool

// I16x8Mask is the result of comparing two I16x8 values.
type I16x8Mask [8]bool

// Vec128 is the 8-lane backend.
type Vec128 struct{}

var _ Math[F32x8, I16x8, F32x8Mask, I16x8Mask] = Vec128{}

func (Vec128) Lanes() int { return 8 }

func (Vec128) MakeFloat(v float32) (r F32x8) {
	for i := range r {
		r[i] = v
	}
	return r
}

func (Vec128) MakeUInt16(v uint16) (r I16x8) {
	for i := range r {
		r[i] = int16(v)
	}
	return r
}

func (Vec128) ExtractFloat(v F32x8, lane int) float32 { return v[lane] }
func (Vec128) ExtractUInt16(v I16x8, lane int) uint16 { return uint16(v[lane]) }
func (Vec128) InsertUInt16(v *I16x8, lane int, x uint16) { v[lane] = int16(x) }
func (Vec128) ExtractFlag(m I16x8Mask, lane int) bool { return m[lane] }
func (Vec128) Add(a F32x8, b F32x8) (r F32x8) { addF32(r[:], a[:], b[:]); return r }
func (Vec128) Sub(a F32x8, b F32x8) (r F32x8) { subF32(r[:], a[:], b[:]); return r }
func (Vec128) Mul(a F32x8, b F32x8) (r F32x8) { mulF32(r[:], a[:], b[:]); return r }
func (Vec128) Div(a F32x8, b F32x8) (r F32x8) { divF32(r[:], a[:], b[:]); return r }
func (Vec128) Min(a F32x8, b F32x8) (r F32x8) { minF32(r[:], a[:], b[:]); return r }
func (Vec128) Max(a F32x8, b F32x8) (r F32x8) { maxF32(r[:], a[:], b[:]); return r }
func (Vec128) Clamp(v F32x8, lo float32, hi float32) (r F32x8) { clampF32(r[:], v[:], lo, hi); return r }
func (Vec128) Sqrt(v F32x8) (r F32x8) { sqrtF32(r[:], v[:]); return r }
func (Vec128) Less(a F32x8, b F32x8) (r F32x8Mask) { lessF32(r[:], a[:], b[:]); return r }
func (Vec128) Equal(a F32x8, b F32x8) (r F32x8Mask) { equalF32(r[:], a[:], b[:]); return r }

func (Vec128) Select(m F32x8Mask, a F32x8, b F32x8) (r F32x8) {
	selectF32(r[:], m[:], a[:], b[:])
	return r
}

func (Vec128) ConditionalSet(dst *F32x8, m F32x8Mask, src F32x8) {
	condSetF32(dst[:], m[:], src[:])
}

func (Vec128) AddInt16(a I16x8, b I16x8) (r I16x8) { addI16(r[:], a[:], b[:]); return r }
func (Vec128) SubInt16(a I16x8, b I16x8) (r I16x8) { subI16(r[:], a[:], b[:]); return r }
func (Vec128) MulInt16(a I16x8, b I16x8) (r I16x8) { mulI16(r[:], a[:], b[:]); return r }
func (Vec128) OrInt16(a I16x8, b I16x8) (r I16x8) { orI16(r[:], a[:], b[:]); return r }
func (Vec128) MinInt16(a I16x8, b I16x8) (r I16x8) { minI16(r[:], a[:], b[:]); return r }
func (Vec128) MaxInt16(a I16x8, b I16x8) (r I16x8) { maxI16(r[:], a[:], b[:]); return r }
func (Vec128) LessInt16(a I16x8, b I16x8) (r I16x8Mask) { lessI16(r[:], a[:], b[:]); return r }
func (Vec128) EqualInt16(a I16x8, b I16x8) (r I16x8Mask) { equalI16(r[:], a[:], b[:]); return r }
func (Vec128) ShiftLeft(v I16x8, bits int) (r I16x8) { shiftLeftI16(r[:], v[:], bits); return r }
func (Vec128) UInt16ToFloat(v I16x8) (r F32x8) { uint16ToF32(r[:], v[:]); return r }
func (Vec128) FloatToUInt16(v F32x8) (r I16x8) { f32ToUInt16(r[:], v[:]); return r }
func (Vec128) SqDiff(a I16x8, b I16x8) (r I16x8) { sqDiffI16(r[:], a[:], b[:]); return r }
func (Vec128) FloatFlagToInt16(m F32x8Mask) I16x8Mask { return I16x8Mask(m) }
func (Vec128) AnySet(m I16x8Mask) bool { return anySet(m[:]) }

func (Vec128) SelectInt16(m I16x8Mask, a I16x8, b I16x8) (r I16x8) {
	selectI16(r[:], m[:], a[:], b[:])
	return r
}

func (Vec128) ConditionalSetInt16(dst *I16x8, m I16x8Mask, src I16x8) {
	condSetI16(dst[:], m[:], src[:])
}

func (Vec128) UnsignedRightShift(v I16x8, bits int) (r I16x8) {
	unsignedRightShiftI16(r[:], v[:], bits)
	return r
}
