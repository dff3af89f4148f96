// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lanes

import (
	"github.com/nigeltao/bc7/internal/assert"
)

// PackingVector accumulates up to 128 bits, least significant bit first, for
// one lane's output block.
//
// The zero value is an empty vector.
type PackingVector struct {
	vector [4]uint32
	offset int
}

// Offset returns the number of bits packed so far.
func (p *PackingVector) Offset() int {
	return p.offset
}

// Pack appends the low bits bits of value. It panics if the total would exceed
// 128 bits.
func (p *PackingVector) Pack(value uint16, bits int) {
	assert.Assert((0 <= bits) && (bits <= 16) && (p.offset+bits <= 128))
	if bits == 0 {
		return
	}

	v := uint32(value) & ((1 << bits) - 1)
	vOffset := p.offset >> 5
	bitOffset := p.offset & 31

	p.vector[vOffset] |= v << bitOffset
	if overflowBits := bitOffset + bits - 32; overflowBits > 0 {
		p.vector[vOffset+1] |= v >> (bits - overflowBits)
	}
	p.offset += bits
}

// Flush writes the 128 packed bits to dst as four little-endian uint32 words
// and resets p. It panics unless exactly 128 bits were packed.
func (p *PackingVector) Flush(dst *[16]byte) {
	assert.Assert(p.offset == 128)
	for v, chunk := range p.vector {
		dst[(4*v)+0] = uint8(chunk >> 0)
		dst[(4*v)+1] = uint8(chunk >> 8)
		dst[(4*v)+2] = uint8(chunk >> 16)
		dst[(4*v)+3] = uint8(chunk >> 24)
	}
	*p = PackingVector{}
}
