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

// packZeros appends n zero bits, at most 16 at a time.
func packZeros(p *PackingVector, n int) {
	for n > 0 {
		k := min(16, n)
		p.Pack(0, k)
		n -= k
	}
}

func TestPackingVector(tt *testing.T) {
	p := PackingVector{}
	// Mode 6 prefix: 7 bits of 0b1000000.
	p.Pack(1<<6, 7)
	require.Equal(tt, 7, p.Offset())
	p.Pack(0x7FFF, 15)
	require.Equal(tt, 22, p.Offset())
	// A field straddling the first word boundary.
	p.Pack(0x7FFF, 15)
	require.Equal(tt, 37, p.Offset())
	packZeros(&p, 128-p.Offset())

	got := [16]byte{}
	p.Flush(&got)
	want := [16]byte{
		0xC0, 0xFF, 0xFF, 0xFF, 0x1F, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	require.Equal(tt, want, got)
	require.Equal(tt, 0, p.Offset())
}

func TestPackingVectorMasksValue(tt *testing.T) {
	p := PackingVector{}
	p.Pack(0xFFFF, 3)
	packZeros(&p, 125)
	got := [16]byte{}
	p.Flush(&got)
	require.Equal(tt, byte(0x07), got[0])
	require.Equal(tt, byte(0x00), got[1])
}

func TestPackingVectorPanics(tt *testing.T) {
	require.Panics(tt, func() {
		p := PackingVector{}
		p.Pack(0, 17)
	})

	short := PackingVector{}
	require.NotPanics(tt, func() { packZeros(&short, 100) })
	require.Equal(tt, 100, short.Offset())
	require.Panics(tt, func() {
		short.Flush(&[16]byte{})
	})

	require.Panics(tt, func() {
		p := PackingVector{}
		p.Pack(0, 16)
		for range 8 {
			p.Pack(0, 16)
		}
	})
}
