// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

import (
	"os"
	"strconv"
)

// Level names a backend.
type Level int8

const (
	LevelScalar = Level(0)
	Level128    = Level(1)
	Level256    = Level(2)
)

// String returns a human-readable name for the Level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case Level128:
		return "vec128"
	case Level256:
		return "vec256"
	}
	return "unknown"
}

// Lanes returns the number of lanes of the Level's backend, or 0 for an
// invalid Level.
func (l Level) Lanes() int {
	switch l {
	case LevelScalar:
		return 1
	case Level128:
		return 8
	case Level256:
		return 16
	}
	return 0
}

// LevelForLanes returns the Level whose backend has n lanes.
func LevelForLanes(n int) (Level, bool) {
	switch n {
	case 1:
		return LevelScalar, true
	case 8:
		return Level128, true
	case 16:
		return Level256, true
	}
	return 0, false
}

// detected is set by the per-architecture init functions.
var detected = LevelScalar

// Detect returns the widest Level that the CPU supports, or LevelScalar if
// NoSIMDEnv is true.
func Detect() Level {
	return detected
}

// NoSIMDEnv returns whether the BC7_NO_SIMD environment variable asks for the
// scalar backend. Any non-empty value other than a false boolean counts.
func NoSIMDEnv() bool {
	val := os.Getenv("BC7_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
