// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"image"
	"io"
)

// bitReader reads a 128-bit block least significant bit first.
type bitReader struct {
	lo uint64
	hi uint64
}

func newBitReader(src *[BytesPerBlock]byte) bitReader {
	r := bitReader{}
	for i := range 8 {
		r.lo |= uint64(src[i+0]) << (8 * i)
		r.hi |= uint64(src[i+8]) << (8 * i)
	}
	return r
}

func (r *bitReader) read(n int) uint8 {
	if n == 0 {
		return 0
	}
	ret := uint8(r.lo & ((1 << n) - 1))
	r.lo = (r.lo >> n) | (r.hi << (64 - n))
	r.hi >>= n
	return ret
}

// unquantizeEndpoint expands a bits-bit value to 8 bits.
func unquantizeEndpoint(v uint8, bits int) uint8 {
	if bits >= 8 {
		return v
	}
	x := uint16(v) << (8 - bits)
	return uint8(x | (x >> bits))
}

func interpolate(a uint8, b uint8, indexBits int, index uint8) uint8 {
	w := uint32(weightFor(indexBits, index))
	return uint8((((64 - w) * uint32(a)) + (w * uint32(b)) + 32) >> 6)
}

// DecodeBlock decodes one 16-byte block to dst.
//
// The eight mode bits of a block whose first byte is zero are all clear. Such
// a block is reserved and decodes to transparent black.
func DecodeBlock(dst *Block, src *[BytesPerBlock]byte) {
	if src[0] == 0 {
		*dst = Block{}
		return
	}

	r := newBitReader(src)
	mode := 0
	for r.read(1) == 0 {
		mode++
	}
	mi := &modeInfos[mode]

	partition := int(r.read(mi.partitionBits))
	rotation, indexSelector := 0, 0
	if mi.alpha == alphaSeparate {
		rotation = int(r.read(2))
	}
	if mi.hasIndexSelector {
		indexSelector = int(r.read(1))
	}

	// ep is indexed by (2 * subset) + endpoint, then by channel.
	numEndpoints := 2 * mi.numSubsets
	ep := [6][4]uint8{}
	for ch := range 3 {
		for i := range numEndpoints {
			ep[i][ch] = r.read(mi.rgbBits)
		}
	}
	if mi.alpha != alphaNone {
		for i := range numEndpoints {
			ep[i][3] = r.read(mi.alphaBits)
		}
	}

	if mi.parity == parityNone {
		for i := range numEndpoints {
			for ch := range 3 {
				ep[i][ch] = unquantizeEndpoint(ep[i][ch], mi.rgbBits)
			}
			ep[i][3] = unquantizeEndpoint(ep[i][3], mi.alphaBits)
		}
	} else {
		for i := 0; i < numEndpoints; i += 2 {
			p0 := r.read(1)
			p1 := p0
			if mi.parity == parityPerEndpoint {
				p1 = r.read(1)
			}
			for ch := range 4 {
				bits := mi.rgbBits
				if ch == 3 {
					bits = mi.alphaBits
				}
				ep[i+0][ch] = unquantizeEndpoint((ep[i+0][ch]<<1)|p0, bits+1)
				ep[i+1][ch] = unquantizeEndpoint((ep[i+1][ch]<<1)|p1, bits+1)
			}
		}
	}
	if mi.alpha == alphaNone {
		for i := range numEndpoints {
			ep[i][3] = 0xFF
		}
	}

	fix := fixupPixels(mi.numSubsets, partition)
	indexes := [16]uint8{}
	for px := range 16 {
		bits := mi.indexBits
		if fix.contains(px) {
			bits--
		}
		indexes[px] = r.read(bits)
	}
	indexes2 := [16]uint8{}
	if mi.alpha == alphaSeparate {
		for px := range 16 {
			bits := mi.alphaIndexBits
			if px == 0 {
				bits--
			}
			indexes2[px] = r.read(bits)
		}
	}

	rgbIndexes, rgbBits := &indexes, mi.indexBits
	alphaIndexes, alphaBits := &indexes2, mi.alphaIndexBits
	if indexSelector != 0 {
		rgbIndexes, alphaIndexes = alphaIndexes, rgbIndexes
		rgbBits, alphaBits = alphaBits, rgbBits
	}

	for px := range 16 {
		s := subsetOf(mi.numSubsets, partition, px)
		e0, e1 := &ep[(2*s)+0], &ep[(2*s)+1]
		i := rgbIndexes[px]

		c := [4]uint8{
			interpolate(e0[0], e1[0], rgbBits, i),
			interpolate(e0[1], e1[1], rgbBits, i),
			interpolate(e0[2], e1[2], rgbBits, i),
			0xFF,
		}
		switch mi.alpha {
		case alphaCombined:
			c[3] = interpolate(e0[3], e1[3], rgbBits, i)
		case alphaSeparate:
			c[3] = interpolate(e0[3], e1[3], alphaBits, alphaIndexes[px])
		}
		if rotation > 0 {
			c[rotation-1], c[3] = c[3], c[rotation-1]
		}
		copy(dst[4*px:], c[:])
	}
}

// NewImage returns an image suitable for passing to Decode.
func NewImage(width int, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Decode reads blocksWide × blocksHigh blocks, in row-major order, from src
// and decodes them to dst. Pixels that fall outside of dst's bounds, such as
// the padding of an image whose size is not a multiple of 4, are dropped.
func Decode(dst *image.NRGBA, src io.Reader, blocksWide int, blocksHigh int) error {
	if (dst == nil) || (src == nil) || (blocksWide < 0) || (blocksHigh < 0) {
		return ErrBadArgument
	} else if (blocksWide > (maxDimension / 4)) || (blocksHigh > (maxDimension / 4)) {
		return ErrImageIsTooLarge
	}

	b := dst.Bounds()
	row := make([]byte, BytesPerBlock*blocksWide)
	block := Block{}
	for blockY := range blocksHigh {
		if _, err := io.ReadFull(src, row); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}

		for blockX := range blocksWide {
			DecodeBlock(&block, (*[BytesPerBlock]byte)(row[BytesPerBlock*blockX:]))
			for y := range 4 {
				dy := b.Min.Y + (4 * blockY) + y
				if dy >= b.Max.Y {
					break
				}
				for x := range 4 {
					dx := b.Min.X + (4 * blockX) + x
					if dx >= b.Max.X {
						break
					}
					i := dst.PixOffset(dx, dy)
					j := (16 * y) + (4 * x)
					copy(dst.Pix[i:i+4], block[j:j+4])
				}
			}
		}
	}
	return nil
}
