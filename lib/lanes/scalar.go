// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

// F32x1 holds a single float32 lane.
type F32x1 [1]float32

// I16x1 holds a single int16 lane.
type I16x1 [1]int16

// F32x1Mask is the result of comparing two F32x1 values.
type F32x1Mask [1]bool

// I16x1Mask is the result of comparing two I16x1 values.
type I16x1Mask [1]bool

// Scalar is the 1-lane backend, used when no vector unit is detected.
type Scalar struct{}

var _ Math[F32x1, I16x1, F32x1Mask, I16x1Mask] = Scalar{}

func (Scalar) Lanes() int { return 1 }

func (Scalar) MakeFloat(v float32) (r F32x1) {
	for i := range r {
		r[i] = v
	}
	return r
}

func (Scalar) MakeUInt16(v uint16) (r I16x1) {
	for i := range r {
		r[i] = int16(v)
	}
	return r
}

func (Scalar) ExtractFloat(v F32x1, lane int) float32 { return v[lane] }
func (Scalar) ExtractUInt16(v I16x1, lane int) uint16 { return uint16(v[lane]) }
func (Scalar) InsertUInt16(v *I16x1, lane int, x uint16) { v[lane] = int16(x) }
func (Scalar) ExtractFlag(m I16x1Mask, lane int) bool { return m[lane] }
func (Scalar) Add(a F32x1, b F32x1) (r F32x1) { addF32(r[:], a[:], b[:]); return r }
func (Scalar) Sub(a F32x1, b F32x1) (r F32x1) { subF32(r[:], a[:], b[:]); return r }
func (Scalar) Mul(a F32x1, b F32x1) (r F32x1) { mulF32(r[:], a[:], b[:]); return r }
func (Scalar) Div(a F32x1, b F32x1) (r F32x1) { divF32(r[:], a[:], b[:]); return r }
func (Scalar) Min(a F32x1, b F32x1) (r F32x1) { minF32(r[:], a[:], b[:]); return r }
func (Scalar) Max(a F32x1, b F32x1) (r F32x1) { maxF32(r[:], a[:], b[:]); return r }
func (Scalar) Clamp(v F32x1, lo float32, hi float32) (r F32x1) { clampF32(r[:], v[:], lo, hi); return r }
func (Scalar) Sqrt(v F32x1) (r F32x1) { sqrtF32(r[:], v[:]); return r }
func (Scalar) Less(a F32x1, b F32x1) (r F32x1Mask) { lessF32(r[:], a[:], b[:]); return r }
func (Scalar) Equal(a F32x1, b F32x1) (r F32x1Mask) { equalF32(r[:], a[:], b[:]); return r }

func (Scalar) Select(m F32x1Mask, a F32x1, b F32x1) (r F32x1) {
	selectF32(r[:], m[:], a[:], b[:])
	return r
}

func (Scalar) ConditionalSet(dst *F32x1, m F32x1Mask, src F32x1) {
	condSetF32(dst[:], m[:], src[:])
}

func (Scalar) AddInt16(a I16x1, b I16x1) (r I16x1) { addI16(r[:], a[:], b[:]); return r }
func (Scalar) SubInt16(a I16x1, b I16x1) (r I16x1) { subI16(r[:], a[:], b[:]); return r }
func (Scalar) MulInt16(a I16x1, b I16x1) (r I16x1) { mulI16(r[:], a[:], b[:]); return r }
func (Scalar) OrInt16(a I16x1, b I16x1) (r I16x1) { orI16(r[:], a[:], b[:]); return r }
func (Scalar) MinInt16(a I16x1, b I16x1) (r I16x1) { minI16(r[:], a[:], b[:]); return r }
func (Scalar) MaxInt16(a I16x1, b I16x1) (r I16x1) { maxI16(r[:], a[:], b[:]); return r }
func (Scalar) LessInt16(a I16x1, b I16x1) (r I16x1Mask) { lessI16(r[:], a[:], b[:]); return r }
func (Scalar) EqualInt16(a I16x1, b I16x1) (r I16x1Mask) { equalI16(r[:], a[:], b[:]); return r }
func (Scalar) ShiftLeft(v I16x1, bits int) (r I16x1) { shiftLeftI16(r[:], v[:], bits); return r }
func (Scalar) UInt16ToFloat(v I16x1) (r F32x1) { uint16ToF32(r[:], v[:]); return r }
func (Scalar) FloatToUInt16(v F32x1) (r I16x1) { f32ToUInt16(r[:], v[:]); return r }
func (Scalar) SqDiff(a I16x1, b I16x1) (r I16x1) { sqDiffI16(r[:], a[:], b[:]); return r }
func (Scalar) FloatFlagToInt16(m F32x1Mask) I16x1Mask { return I16x1Mask(m) }
func (Scalar) AnySet(m I16x1Mask) bool { return anySet(m[:]) }

func (Scalar) SelectInt16(m I16x1Mask, a I16x1, b I16x1) (r I16x1) {
	selectI16(r[:], m[:], a[:], b[:])
	return r
}

func (Scalar) ConditionalSetInt16(dst *I16x1, m I16x1Mask, src I16x1) {
	condSetI16(dst[:], m[:], src[:])
}

func (Scalar) UnsignedRightShift(v I16x1, bits int) (r I16x1) {
	unsignedRightShiftI16(r[:], v[:], bits)
	return r
}
