// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build amd64

package lanes

import "golang.org/x/sys/cpu"

func init() {
	if NoSIMDEnv() {
		return
	}
	if cpu.X86.HasAVX2 {
		detected = Level256
	} else if cpu.X86.HasSSE2 {
		detected = Level128
	}
}
