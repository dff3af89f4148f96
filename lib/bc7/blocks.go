// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nigeltao/bc7/lib/lanes"
)

// maxLanes is the widest backend's lane count.
const maxLanes = 16

// batchEncoder encodes lanes() blocks at a time.
type batchEncoder interface {
	lanes() int

	// encodeBatch encodes len(src) blocks, which must equal lanes(), to dst.
	// If errs is non-nil, it also receives each block's error: the weighted
	// sum of squared differences between src and the decoded result.
	encodeBatch(dst []byte, src []Block, errs []float32)
}

func newBatchEncoder(s settings) batchEncoder {
	switch s.level {
	case lanes.Level128:
		return newComputer[lanes.F32x8, lanes.I16x8, lanes.F32x8Mask, lanes.I16x8Mask, lanes.Vec128](s)
	case lanes.Level256:
		return newComputer[lanes.F32x16, lanes.I16x16, lanes.F32x16Mask, lanes.I16x16Mask, lanes.Vec256](s)
	}
	return newComputer[lanes.F32x1, lanes.I16x1, lanes.F32x1Mask, lanes.I16x1Mask, lanes.Scalar](s)
}

func (c *computer[F, I, FM, IM, M]) lanes() int {
	return c.m.Lanes()
}

// search returns the best configuration for each of the len(src) blocks,
// which must equal c.lanes().
func (c *computer[F, I, FM, IM, M]) search(src []Block) workInfo[F, I] {
	m := c.m
	var pixels [16][4]I
	for px := range 16 {
		for ch := range 4 {
			for lane := range m.Lanes() {
				m.InsertUInt16(&pixels[px][ch], lane, uint16(src[lane][(4*px)+ch]))
			}
		}
	}

	work := c.newWorkInfo()
	c.tryDualPlane(&pixels, &work)
	c.trySinglePlane(&pixels, &work)
	c.trySingleColor(&pixels, &work)
	return work
}

func (c *computer[F, I, FM, IM, M]) encodeBatch(dst []byte, src []Block, errs []float32) {
	work := c.search(src)
	for lane := range c.m.Lanes() {
		s := c.extractSolution(&work, lane)
		if errs != nil {
			errs[lane] = s.err
		}
		s.applyFixups()
		s.pack((*[BytesPerBlock]byte)(dst[BytesPerBlock*lane:]))
	}
}

// EncodeBlocks encodes each src block to 16 bytes of dst.
//
// options may be nil, which means to use the default configuration.
func EncodeBlocks(dst []byte, src []Block, options *EncodeOptions) error {
	return encodeBlocks(dst, src, nil, options)
}

// encodeBlocks is EncodeBlocks that can also report per-block errors.
func encodeBlocks(dst []byte, src []Block, errs []float32, options *EncodeOptions) error {
	if len(dst) < (BytesPerBlock * len(src)) {
		return ErrBadArgument
	} else if (errs != nil) && (len(errs) < len(src)) {
		return ErrBadArgument
	}
	s, err := options.settings()
	if err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}

	enc := newBatchEncoder(s)
	n := enc.lanes()
	numBatches := (len(src) + n - 1) / n
	workers := min(s.workers, numBatches)
	chunkSize := (numBatches + workers - 1) / workers

	Logger().Debug("bc7: encoding blocks",
		slog.Int("blocks", len(src)),
		slog.String("backend", s.level.String()),
		slog.Int("batches", numBatches),
		slog.Int("workers", workers))

	g := errgroup.Group{}
	g.SetLimit(workers)
	for start := 0; start < numBatches; start += chunkSize {
		end := min(start+chunkSize, numBatches)
		g.Go(func() error {
			encodeBatchRange(enc, dst, src, errs, start, end)
			return nil
		})
	}
	return g.Wait()
}

// encodeBatchRange encodes batches [start, end). A short final batch is padded
// by repeating its last block. The padding's output is discarded.
func encodeBatchRange(enc batchEncoder, dst []byte, src []Block, errs []float32, start int, end int) {
	n := enc.lanes()
	for b := start; b < end; b++ {
		i := b * n
		j := min(i+n, len(src))
		if (j - i) == n {
			var batchErrs []float32
			if errs != nil {
				batchErrs = errs[i:j]
			}
			enc.encodeBatch(dst[BytesPerBlock*i:], src[i:j], batchErrs)
			continue
		}

		padded := [maxLanes]Block{}
		copy(padded[:], src[i:j])
		for k := j - i; k < n; k++ {
			padded[k] = src[j-1]
		}
		paddedDst := [BytesPerBlock * maxLanes]byte{}
		paddedErrs := [maxLanes]float32{}
		enc.encodeBatch(paddedDst[:], padded[:n], paddedErrs[:])
		copy(dst[BytesPerBlock*i:], paddedDst[:BytesPerBlock*(j-i)])
		if errs != nil {
			copy(errs[i:j], paddedErrs[:j-i])
		}
	}
}
