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
)

// makeExtract returns a closure that extracts the 4×4 block from src with the
// given top-left corner, writing non-premultiplied RGBA to dst.
//
// Out-of-bound pixels right of and below the image are substituted with the
// nearest in-bound pixel from the right and bottom edges.
func makeExtract(src image.Image) func(dst *Block, blockX int, blockY int) {
	maxPoint := src.Bounds().Max
	mX1 := maxPoint.X - 1
	mY1 := maxPoint.Y - 1

	if srcNRGBA, ok := src.(*image.NRGBA); ok {
		return func(dst *Block, blockX int, blockY int) {
			for y := range 4 {
				row := srcNRGBA.PixOffset(0, min(mY1, blockY+y))
				for x := range 4 {
					i := (16 * y) + (4 * x)
					j := row + (4 * min(mX1, blockX+x))
					copy(dst[i:i+4], srcNRGBA.Pix[j:j+4])
				}
			}
		}

	} else if srcNRGBA64, ok := src.(*image.NRGBA64); ok {
		return func(dst *Block, blockX int, blockY int) {
			for y := range 4 {
				for x := range 4 {
					i := (16 * y) + (4 * x)
					c := srcNRGBA64.NRGBA64At(min(mX1, blockX+x), min(mY1, blockY+y))
					dst[i+0] = uint8(c.R >> 8)
					dst[i+1] = uint8(c.G >> 8)
					dst[i+2] = uint8(c.B >> 8)
					dst[i+3] = uint8(c.A >> 8)
				}
			}
		}

	} else if srcRGBA64, ok := src.(image.RGBA64Image); ok {
		return func(dst *Block, blockX int, blockY int) {
			for y := range 4 {
				for x := range 4 {
					i := (16 * y) + (4 * x)
					c := srcRGBA64.RGBA64At(min(mX1, blockX+x), min(mY1, blockY+y))
					if (c.A != 0x0000) && (c.A != 0xFFFF) {
						c.R = uint16((uint32(c.R) * 0xFFFF) / uint32(c.A))
						c.G = uint16((uint32(c.G) * 0xFFFF) / uint32(c.A))
						c.B = uint16((uint32(c.B) * 0xFFFF) / uint32(c.A))
					}
					dst[i+0] = uint8(c.R >> 8)
					dst[i+1] = uint8(c.G >> 8)
					dst[i+2] = uint8(c.B >> 8)
					dst[i+3] = uint8(c.A >> 8)
				}
			}
		}
	}

	return func(dst *Block, blockX int, blockY int) {
		for y := range 4 {
			for x := range 4 {
				i := (16 * y) + (4 * x)
				r, g, b, a := src.At(min(mX1, blockX+x), min(mY1, blockY+y)).RGBA()
				if (a != 0x0000) && (a != 0xFFFF) {
					r = (r * 0xFFFF) / a
					g = (g * 0xFFFF) / a
					b = (b * 0xFFFF) / a
				}
				dst[i+0] = uint8(r >> 8)
				dst[i+1] = uint8(g >> 8)
				dst[i+2] = uint8(b >> 8)
				dst[i+3] = uint8(a >> 8)
			}
		}
	}
}
