// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package assert checks programming invariants.
//
// A failed assertion is a bug in this module, not a bad input, so it panics
// instead of returning an error.
package assert

import (
	"runtime/debug"
)

// Assert panics, with a stack trace, if condition is false.
func Assert(condition bool) {
	if !condition {
		panic("assertion failed:\n" + string(debug.Stack()))
	}
}
