// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"bytes"
	"encoding/hex"
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nigeltao/bc7/lib/lanes"
)

func solidBlock(r uint8, g uint8, b uint8, a uint8) (ret Block) {
	for px := range 16 {
		ret[(4*px)+0] = r
		ret[(4*px)+1] = g
		ret[(4*px)+2] = b
		ret[(4*px)+3] = a
	}
	return ret
}

// splitBlock's top two rows are opaque red and its bottom two rows are opaque
// green.
func splitBlock() (ret Block) {
	for px := range 16 {
		if px < 8 {
			copy(ret[4*px:], []uint8{0xFF, 0x00, 0x00, 0xFF})
		} else {
			copy(ret[4*px:], []uint8{0x00, 0xFF, 0x00, 0xFF})
		}
	}
	return ret
}

func grayGradientBlock() (ret Block) {
	for px := range 16 {
		v := uint8(17 * px)
		copy(ret[4*px:], []uint8{v, v, v, 0xFF})
	}
	return ret
}

func colorGradientBlock() (ret Block) {
	for px := range 16 {
		copy(ret[4*px:], []uint8{
			uint8(10 + (12 * px)),
			uint8(200 - (8 * px)),
			uint8(64 + (5 * px)),
			uint8(255 - (4 * px)),
		})
	}
	return ret
}

// noiseBlock fills a block from a linear congruential generator.
func noiseBlock(seed uint32) (ret Block) {
	for i := range ret {
		seed = ((seed * 1103515245) + 12345) & 0x7FFFFFFF
		ret[i] = uint8(seed >> 16)
	}
	return ret
}

func encodeAll(tt *testing.T, src []Block, options *EncodeOptions) (enc [][BytesPerBlock]byte, errs []float32) {
	tt.Helper()
	dst := make([]byte, BytesPerBlock*len(src))
	errs = make([]float32, len(src))
	if err := encodeBlocks(dst, src, errs, options); err != nil {
		tt.Fatalf("encodeBlocks: %v", err)
	}
	enc = make([][BytesPerBlock]byte, len(src))
	for i := range enc {
		copy(enc[i][:], dst[BytesPerBlock*i:])
	}
	return enc, errs
}

// decodedSSE returns the decoded form of enc and its sum of squared
// differences from src.
func decodedSSE(enc *[BytesPerBlock]byte, src *Block) (dec Block, sse int) {
	DecodeBlock(&dec, enc)
	for i := range dec {
		d := int(dec[i]) - int(src[i])
		sse += d * d
	}
	return dec, sse
}

func modeOf(enc *[BytesPerBlock]byte) int {
	return bits.TrailingZeros8(enc[0])
}

func TestEncodeBlackBlock(tt *testing.T) {
	src := solidBlock(0x00, 0x00, 0x00, 0xFF)
	enc, errs := encodeAll(tt, []Block{src}, nil)

	if errs[0] != 0 {
		tt.Errorf("error: got %v, want 0", errs[0])
	}
	if got, want := modeOf(&enc[0]), 4; got != want {
		tt.Errorf("mode: got %d, want %d", got, want)
	}
	if want, _ := hex.DecodeString("10000000c0ff03000000000000000000"); !bytes.Equal(enc[0][:], want) {
		tt.Errorf("bytes:\ngot  % 02X\nwant % 02X", enc[0][:], want)
	}
	if dec, _ := decodedSSE(&enc[0], &src); dec != src {
		tt.Errorf("decoded block (-want +got):\n%s", cmp.Diff(src, dec))
	}
}

func TestEncodeConstantBlocks(tt *testing.T) {
	testCases := []struct {
		color    [4]uint8
		wantMode int
	}{
		{[4]uint8{0x00, 0x00, 0x00, 0x00}, -1},
		{[4]uint8{0xFF, 0xFF, 0xFF, 0xFF}, -1},
		{[4]uint8{0x01, 0x02, 0x03, 0x04}, -1},
		{[4]uint8{100, 150, 200, 255}, 3},
		{[4]uint8{12, 34, 56, 78}, 5},
		{[4]uint8{253, 230, 241, 194}, 5},
		{[4]uint8{136, 117, 52, 162}, 6},
		{[4]uint8{0x80, 0x7F, 0x81, 0xFF}, -1},
	}

	src := make([]Block, len(testCases))
	for i, tc := range testCases {
		src[i] = solidBlock(tc.color[0], tc.color[1], tc.color[2], tc.color[3])
	}
	enc, errs := encodeAll(tt, src, nil)

	for i, tc := range testCases {
		if errs[i] != 0 {
			tt.Errorf("color=%v: error: got %v, want 0", tc.color, errs[i])
		}
		if got := modeOf(&enc[i]); (tc.wantMode >= 0) && (got != tc.wantMode) {
			tt.Errorf("color=%v: mode: got %d, want %d", tc.color, got, tc.wantMode)
		}
		if dec, _ := decodedSSE(&enc[i], &src[i]); dec != src[i] {
			tt.Errorf("color=%v: decoded block (-want +got):\n%s", tc.color, cmp.Diff(src[i], dec))
		}
	}
}

func TestEncodeSplitBlock(tt *testing.T) {
	testCases := []struct {
		name     string
		options  *EncodeOptions
		wantMode int
		maxErr   float32
	}{{
		name:     "default",
		options:  nil,
		wantMode: 4,
		maxErr:   0,
	}, {
		name:     "noDualPlane",
		options:  &EncodeOptions{DisableDualPlane: true},
		wantMode: 2,
		maxErr:   0,
	}, {
		name:     "noDualPlaneNo3Subsets",
		options:  &EncodeOptions{DisableDualPlane: true, Disable3Subsets: true},
		wantMode: 3,
		maxErr:   49,
	}}

	src := splitBlock()
	for _, tc := range testCases {
		enc, errs := encodeAll(tt, []Block{src}, tc.options)
		if got := modeOf(&enc[0]); got != tc.wantMode {
			tt.Errorf("%s: mode: got %d, want %d", tc.name, got, tc.wantMode)
			continue
		}
		if errs[0] > tc.maxErr {
			tt.Errorf("%s: error: got %v, want <= %v", tc.name, errs[0], tc.maxErr)
		}
		if _, sse := decodedSSE(&enc[0], &src); float32(sse) != errs[0] {
			tt.Errorf("%s: decoded SSE: got %d, want %v", tc.name, sse, errs[0])
		}

		if tc.wantMode != 3 {
			continue
		}
		// The partition number follows mode 3's four mode bits.
		r := newBitReader(&enc[0])
		r.read(4)
		partition := int(r.read(6))
		for px := range 16 {
			if got, want := subsetOf(2, partition, px), px/8; got != want {
				tt.Errorf("%s: partition %d does not match the split at pixel %d", tc.name, partition, px)
				break
			}
		}
	}
}

func TestReportedErrorIsDecodedSSE(tt *testing.T) {
	src := []Block{
		splitBlock(),
		grayGradientBlock(),
		colorGradientBlock(),
		solidBlock(0x12, 0x34, 0x56, 0x78),
		noiseBlock(12345),
		noiseBlock(1),
		noiseBlock(2),
	}
	for _, options := range []*EncodeOptions{
		nil,
		{DisableDualPlane: true},
		{DisablePartitioning: true},
		{RefineRounds: 1},
	} {
		enc, errs := encodeAll(tt, src, options)
		for i := range src {
			if _, sse := decodedSSE(&enc[i], &src[i]); float32(sse) != errs[i] {
				tt.Errorf("options=%+v, i=%d: decoded SSE: got %d, want %v", options, i, sse, errs[i])
			}
		}
	}
}

func TestRoundTripGradients(tt *testing.T) {
	const maxChannelError = 2

	src := []Block{grayGradientBlock(), colorGradientBlock()}
	enc, _ := encodeAll(tt, src, nil)
	for i := range src {
		dec, _ := decodedSSE(&enc[i], &src[i])
		for j := range dec {
			d := int(dec[j]) - int(src[i][j])
			if (d < -maxChannelError) || (maxChannelError < d) {
				tt.Errorf("i=%d, j=%d: got %d, want %d ± %d", i, j, dec[j], src[i][j], maxChannelError)
			}
		}
	}
}

func TestMoreRefineRoundsNeverIncreaseError(tt *testing.T) {
	src := []Block{noiseBlock(12345), noiseBlock(777), colorGradientBlock()}
	maxRounds := 4
	if testing.Short() {
		maxRounds = 2
	}

	prev := []float32(nil)
	for rounds := 1; rounds <= maxRounds; rounds++ {
		_, errs := encodeAll(tt, src, &EncodeOptions{RefineRounds: rounds})
		for i := range prev {
			if errs[i] > prev[i] {
				tt.Errorf("i=%d: rounds=%d error %v > rounds=%d error %v", i, rounds, errs[i], rounds-1, prev[i])
			}
		}
		prev = errs
	}
}

func TestEncodeIsDeterministic(tt *testing.T) {
	src := make([]Block, 21)
	for i := range src {
		src[i] = noiseBlock(uint32(i))
	}

	want, _ := encodeAll(tt, src, &EncodeOptions{Workers: 1})
	for _, workers := range []int{1, 3, 8} {
		got, _ := encodeAll(tt, src, &EncodeOptions{Workers: workers})
		if diff := cmp.Diff(want, got); diff != "" {
			tt.Errorf("workers=%d: (-want +got):\n%s", workers, diff)
		}
	}
}

func TestBackendsAgree(tt *testing.T) {
	n := 19
	if testing.Short() {
		n = 3
	}
	src := []Block{splitBlock(), grayGradientBlock(), solidBlock(12, 34, 56, 78)}
	for i := len(src); i < n; i++ {
		src = append(src, noiseBlock(uint32(1000+i)))
	}

	wantEnc, wantErrs := encodeAll(tt, src, &EncodeOptions{Lanes: 1})
	for _, numLanes := range []int{8, 16} {
		gotEnc, gotErrs := encodeAll(tt, src, &EncodeOptions{Lanes: numLanes})
		if diff := cmp.Diff(wantEnc, gotEnc); diff != "" {
			tt.Errorf("lanes=%d: bytes (-want +got):\n%s", numLanes, diff)
		}
		if diff := cmp.Diff(wantErrs, gotErrs); diff != "" {
			tt.Errorf("lanes=%d: errors (-want +got):\n%s", numLanes, diff)
		}
	}
}

func TestEncodeBlocksPadsShortBatches(tt *testing.T) {
	// Five blocks need a padded batch on every backend wider than 1 lane.
	src := []Block{
		solidBlock(10, 20, 30, 40),
		splitBlock(),
		solidBlock(0x00, 0x00, 0x00, 0xFF),
		grayGradientBlock(),
		solidBlock(200, 100, 50, 25),
	}
	all, _ := encodeAll(tt, src, &EncodeOptions{Lanes: 8})
	for i := range src {
		one, _ := encodeAll(tt, src[i:i+1], &EncodeOptions{Lanes: 8})
		if one[0] != all[i] {
			tt.Errorf("i=%d: alone % 02X, batched % 02X", i, one[0][:], all[i][:])
		}
	}
}

func TestFixupIndexesHaveClearTopBits(tt *testing.T) {
	s, err := (&EncodeOptions{}).settings()
	if err != nil {
		tt.Fatalf("settings: %v", err)
	}
	c := newComputer[lanes.F32x1, lanes.I16x1, lanes.F32x1Mask, lanes.I16x1Mask, lanes.Scalar](s)

	src := []Block{splitBlock(), grayGradientBlock(), colorGradientBlock()}
	for i := range 8 {
		src = append(src, noiseBlock(uint32(50+i)))
	}

	for i := range src {
		work := c.search(src[i : i+1])
		sol := c.extractSolution(&work, 0)
		sol.applyFixups()

		mi := &modeInfos[sol.mode]
		if _, ok := sol.layout.(rotationLayout); ok {
			if (sol.indexes[0] >> (mi.indexBits - 1)) != 0 {
				tt.Errorf("i=%d, mode=%d: indexes[0] = %d", i, sol.mode, sol.indexes[0])
			}
			if (sol.indexes2[0] >> (mi.alphaIndexBits - 1)) != 0 {
				tt.Errorf("i=%d, mode=%d: indexes2[0] = %d", i, sol.mode, sol.indexes2[0])
			}
			continue
		}

		fix := fixupPixels(mi.numSubsets, sol.partition())
		for subset := range mi.numSubsets {
			if index := sol.indexes[fix[subset]]; (index >> (mi.indexBits - 1)) != 0 {
				tt.Errorf("i=%d, mode=%d, subset=%d: fixup index = %d", i, sol.mode, subset, index)
			}
		}
	}
}

func TestApplyFixupsSwapsEndpoints(tt *testing.T) {
	sol := solution{
		mode:   1,
		layout: partitionLayout{partition: 0},
	}
	sol.ep[0] = [2][4]uint8{{8, 16, 24, 0xFF}, {200, 208, 216, 0xFF}}
	sol.ep[1] = [2][4]uint8{{32, 40, 48, 0xFF}, {96, 104, 112, 0xFF}}
	for px := range 16 {
		if subsetOf(2, 0, px) == 0 {
			sol.indexes[px] = 5
		} else {
			sol.indexes[px] = 2
		}
	}

	want := sol
	want.ep[0] = [2][4]uint8{{200, 208, 216, 0xFF}, {8, 16, 24, 0xFF}}
	for px := range 16 {
		if subsetOf(2, 0, px) == 0 {
			want.indexes[px] = 2
		}
	}

	sol.applyFixups()
	if diff := cmp.Diff(want, sol, cmp.AllowUnexported(solution{}, partitionLayout{})); diff != "" {
		tt.Errorf("(-want +got):\n%s", diff)
	}
}
