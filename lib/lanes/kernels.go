// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

import (
	"math"
)

// The element-wise kernels below are shared by every backend. Each backend
// passes array slices of its own width, so that all of them round and wrap in
// exactly the same way.
//
// Products are wrapped in explicit float32 conversions so that the compiler
// never fuses a multiply with a neighboring add.

func addF32(dst []float32, a []float32, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subF32(dst []float32, a []float32, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulF32(dst []float32, a []float32, b []float32) {
	for i := range dst {
		dst[i] = float32(a[i] * b[i])
	}
}

func divF32(dst []float32, a []float32, b []float32) {
	for i := range dst {
		dst[i] = float32(a[i] / b[i])
	}
}

func minF32(dst []float32, a []float32, b []float32) {
	for i := range dst {
		if a[i] < b[i] {
			dst[i] = a[i]
		} else {
			dst[i] = b[i]
		}
	}
}

func maxF32(dst []float32, a []float32, b []float32) {
	for i := range dst {
		if a[i] > b[i] {
			dst[i] = a[i]
		} else {
			dst[i] = b[i]
		}
	}
}

func clampF32(dst []float32, v []float32, lo float32, hi float32) {
	for i := range dst {
		x := v[i]
		if !(x < hi) {
			x = hi
		}
		if !(x > lo) {
			x = lo
		}
		dst[i] = x
	}
}

func sqrtF32(dst []float32, v []float32) {
	for i := range dst {
		dst[i] = float32(math.Sqrt(float64(v[i])))
	}
}

func lessF32(dst []bool, a []float32, b []float32) {
	for i := range dst {
		dst[i] = a[i] < b[i]
	}
}

func equalF32(dst []bool, a []float32, b []float32) {
	for i := range dst {
		dst[i] = a[i] == b[i]
	}
}

func selectF32(dst []float32, m []bool, a []float32, b []float32) {
	for i := range dst {
		if m[i] {
			dst[i] = a[i]
		} else {
			dst[i] = b[i]
		}
	}
}

func condSetF32(dst []float32, m []bool, src []float32) {
	for i := range dst {
		if m[i] {
			dst[i] = src[i]
		}
	}
}

func addI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func orI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		dst[i] = a[i] | b[i]
	}
}

func minI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		dst[i] = min(a[i], b[i])
	}
}

func maxI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		dst[i] = max(a[i], b[i])
	}
}

func lessI16(dst []bool, a []int16, b []int16) {
	for i := range dst {
		dst[i] = a[i] < b[i]
	}
}

func equalI16(dst []bool, a []int16, b []int16) {
	for i := range dst {
		dst[i] = a[i] == b[i]
	}
}

func selectI16(dst []int16, m []bool, a []int16, b []int16) {
	for i := range dst {
		if m[i] {
			dst[i] = a[i]
		} else {
			dst[i] = b[i]
		}
	}
}

func condSetI16(dst []int16, m []bool, src []int16) {
	for i := range dst {
		if m[i] {
			dst[i] = src[i]
		}
	}
}

func shiftLeftI16(dst []int16, v []int16, bits int) {
	for i := range dst {
		dst[i] = int16(uint16(v[i]) << bits)
	}
}

func unsignedRightShiftI16(dst []int16, v []int16, bits int) {
	for i := range dst {
		dst[i] = int16(uint16(v[i]) >> bits)
	}
}

func uint16ToF32(dst []float32, v []int16) {
	for i := range dst {
		dst[i] = float32(uint16(v[i]))
	}
}

func f32ToUInt16(dst []int16, v []float32) {
	for i := range dst {
		r := float32(math.Floor(float64(v[i] + 0.5)))
		dst[i] = int16(uint16(int32(r)))
	}
}

func sqDiffI16(dst []int16, a []int16, b []int16) {
	for i := range dst {
		d := int32(a[i]) - int32(b[i])
		dst[i] = int16(uint16(d * d))
	}
}

func anySet(m []bool) bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}
