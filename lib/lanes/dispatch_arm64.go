// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build arm64

package lanes

import "golang.org/x/sys/cpu"

func init() {
	if NoSIMDEnv() {
		return
	}
	// ASIMD is part of ARMv8-A, but check anyway.
	if cpu.ARM64.HasASIMD {
		detected = Level128
	}
}
