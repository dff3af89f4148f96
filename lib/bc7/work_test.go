// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"testing"

	"github.com/nigeltao/bc7/lib/lanes"
)

func TestImproveIfBetter(tt *testing.T) {
	s, err := (*EncodeOptions)(nil).settings()
	if err != nil {
		tt.Fatalf("settings: %v", err)
	}
	c := newComputer[lanes.F32x8, lanes.I16x8, lanes.F32x8Mask, lanes.I16x8Mask, lanes.Vec128](s)
	w := c.newWorkInfo()

	first := candidate[lanes.F32x8, lanes.I16x8]{
		mode:      1,
		partition: 7,
		err:       lanes.F32x8{10, 10, 10, 10, 10, 10, 10, 10},
	}
	first.indexes[3] = lanes.I16x8{1, 1, 1, 1, 1, 1, 1, 1}
	if !c.improveIfBetter(&w, &first) {
		tt.Fatalf("first candidate: got false, want true")
	}

	// Lanes 0 and 5 are strictly better. Lanes 1 and 6 tie, which is not
	// enough to replace the incumbent.
	second := candidate[lanes.F32x8, lanes.I16x8]{
		mode:      6,
		partition: 0,
		err:       lanes.F32x8{9, 10, 11, 20, 30, 0, 10, 11},
	}
	second.indexes[3] = lanes.I16x8{2, 2, 2, 2, 2, 2, 2, 2}
	if !c.improveIfBetter(&w, &second) {
		tt.Fatalf("second candidate: got false, want true")
	}

	wantErr := lanes.F32x8{9, 10, 10, 10, 10, 0, 10, 10}
	wantMode := lanes.I16x8{6, 1, 1, 1, 1, 6, 1, 1}
	wantPartition := lanes.I16x8{0, 7, 7, 7, 7, 0, 7, 7}
	wantIndex := lanes.I16x8{2, 1, 1, 1, 1, 2, 1, 1}
	if w.err != wantErr {
		tt.Errorf("err: got %v, want %v", w.err, wantErr)
	}
	if w.mode != wantMode {
		tt.Errorf("mode: got %v, want %v", w.mode, wantMode)
	}
	if w.partition != wantPartition {
		tt.Errorf("partition: got %v, want %v", w.partition, wantPartition)
	}
	if w.indexes[3] != wantIndex {
		tt.Errorf("indexes[3]: got %v, want %v", w.indexes[3], wantIndex)
	}

	third := candidate[lanes.F32x8, lanes.I16x8]{
		mode: 2,
		err:  lanes.F32x8{9, 10, 10, 10, 10, 0, 10, 10},
	}
	if c.improveIfBetter(&w, &third) {
		tt.Errorf("third candidate: got true, want false")
	}
	if w.mode != wantMode {
		tt.Errorf("mode after third: got %v, want %v", w.mode, wantMode)
	}
}

func TestExtractSolutionLayout(tt *testing.T) {
	s, err := (*EncodeOptions)(nil).settings()
	if err != nil {
		tt.Fatalf("settings: %v", err)
	}
	c := newComputer[lanes.F32x1, lanes.I16x1, lanes.F32x1Mask, lanes.I16x1Mask, lanes.Scalar](s)

	w := c.newWorkInfo()
	w.mode = lanes.I16x1{5}
	w.rotation = lanes.I16x1{2}
	w.partition = lanes.I16x1{9}
	if got, want := c.extractSolution(&w, 0).layout, layout(rotationLayout{rotation: 2}); got != want {
		tt.Errorf("mode 5: got %#v, want %#v", got, want)
	}

	w.mode = lanes.I16x1{7}
	sol := c.extractSolution(&w, 0)
	if got, want := sol.layout, layout(partitionLayout{partition: 9}); got != want {
		tt.Errorf("mode 7: got %#v, want %#v", got, want)
	}
	if got := sol.partition(); got != 9 {
		tt.Errorf("mode 7: partition: got %d, want 9", got)
	}
}
