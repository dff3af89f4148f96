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
	"log/slog"
)

// maxDimension is the largest image width or height that Encode accepts.
const maxDimension = 65532

// blocksPerBand is roughly how many blocks Encode extracts and encodes before
// writing them to dst.
const blocksPerBand = 4096

// Encode writes src to dst as a sequence of BC7 blocks, with no header. Blocks
// are in row-major order. If src's width or height is not a multiple of 4, the
// right and bottom blocks are padded by repeating the edge pixels.
//
// options may be nil, which means to use the default configuration.
func Encode(dst io.Writer, src image.Image, options *EncodeOptions) error {
	if (dst == nil) || (src == nil) {
		return ErrBadArgument
	}
	if _, err := options.settings(); err != nil {
		return err
	}

	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (bW > maxDimension) || (bH > maxDimension) {
		return ErrImageIsTooLarge
	}
	blocksWide, blocksHigh := (bW+3)/4, (bH+3)/4
	if (blocksWide == 0) || (blocksHigh == 0) {
		return nil
	}

	Logger().Debug("bc7: encoding image",
		slog.Int("width", bW),
		slog.Int("height", bH),
		slog.Int("blocks", blocksWide*blocksHigh))

	bandRows := max(1, blocksPerBand/blocksWide)
	blocks := make([]Block, blocksWide*min(bandRows, blocksHigh))
	buf := make([]byte, BytesPerBlock*len(blocks))

	extract := makeExtract(src)

	for blockY0 := 0; blockY0 < blocksHigh; blockY0 += bandRows {
		blockY1 := min(blockY0+bandRows, blocksHigh)
		n := 0
		for blockY := blockY0; blockY < blockY1; blockY++ {
			for blockX := range blocksWide {
				extract(&blocks[n], b.Min.X+(4*blockX), b.Min.Y+(4*blockY))
				n++
			}
		}

		if err := EncodeBlocks(buf[:BytesPerBlock*n], blocks[:n], options); err != nil {
			return err
		}
		if _, err := dst.Write(buf[:BytesPerBlock*n]); err != nil {
			return err
		}
	}
	return nil
}
