// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package lanes implements lane-parallel arithmetic: every value holds one
// number per lane and every operation applies to all lanes at once.
//
// There are three backends, all implementing Math. Scalar has 1 lane, Vec128
// has 8 lanes (eight int16 values fill a 128-bit register) and Vec256 has 16
// lanes. For the same per-lane inputs, all three produce the same per-lane
// outputs, bit for bit, so an algorithm written once against Math can run on
// whichever backend Detect picks.
//
// There are four value kinds per backend: float32 values, int16 values (which
// often hold unsigned 8-bit color channels with headroom) and a comparison
// mask for each of those two.
package lanes

// Math is the vocabulary of lane-parallel operations.
//
// F is the float value type, I the int16 value type, FM the float comparison
// mask type and IM the int16 comparison mask type.
//
// Backends are zero-sized, so the zero value of any implementation is ready
// to use.
type Math[F any, I any, FM any, IM any] interface {
	// Lanes returns the number of lanes in each value.
	Lanes() int

	MakeFloat(v float32) F
	MakeUInt16(v uint16) I

	ExtractFloat(v F, lane int) float32
	ExtractUInt16(v I, lane int) uint16
	InsertUInt16(v *I, lane int, x uint16)
	ExtractFlag(m IM, lane int) bool

	Add(a F, b F) F
	Sub(a F, b F) F
	Mul(a F, b F) F
	Div(a F, b F) F
	Min(a F, b F) F
	Max(a F, b F) F
	// Clamp returns Max(Min(v, hi), lo).
	Clamp(v F, lo float32, hi float32) F
	Sqrt(v F) F
	Less(a F, b F) FM
	Equal(a F, b F) FM
	// Select returns a in the lanes where m is set and b elsewhere.
	Select(m FM, a F, b F) F
	// ConditionalSet overwrites dst with src in the lanes where m is set.
	ConditionalSet(dst *F, m FM, src F)

	AddInt16(a I, b I) I
	SubInt16(a I, b I) I
	// MulInt16 keeps the low 16 bits of the product.
	MulInt16(a I, b I) I
	OrInt16(a I, b I) I
	MinInt16(a I, b I) I
	MaxInt16(a I, b I) I
	LessInt16(a I, b I) IM
	EqualInt16(a I, b I) IM
	SelectInt16(m IM, a I, b I) I
	ConditionalSetInt16(dst *I, m IM, src I)
	ShiftLeft(v I, bits int) I
	// UnsignedRightShift treats each lane as a uint16.
	UnsignedRightShift(v I, bits int) I

	// UInt16ToFloat treats each lane as a uint16.
	UInt16ToFloat(v I) F
	// FloatToUInt16 rounds half up: floor(v + 0.5). v must not be negative.
	FloatToUInt16(v F) I
	FloatFlagToInt16(m FM) IM
	// SqDiff returns (a - b)², truncated to 16 unsigned bits.
	SqDiff(a I, b I) I

	// AnySet returns whether any lane of m is set.
	AnySet(m IM) bool
}
