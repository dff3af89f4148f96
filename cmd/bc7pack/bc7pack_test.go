// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/nigeltao/bc7/internal/testimage"
	"github.com/nigeltao/bc7/lib/bc7"
	"github.com/nigeltao/bc7/lib/dds"
)

// setFlag sets a flag variable for the duration of a test.
func setFlag[T any](tt *testing.T, p *T, v T) {
	old := *p
	*p = v
	tt.Cleanup(func() { *p = old })
}

func testPNG(tt *testing.T) []byte {
	tt.Helper()
	m, err := testimage.Digits("49", 12, false)
	if err != nil {
		tt.Fatalf("testimage.Digits: %v", err)
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, m); err != nil {
		tt.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeThenDecode(tt *testing.T) {
	for _, compress := range []string{"", "zstd"} {
		setFlag(tt, compressFlag, compress)
		setFlag(tt, outputFlag, "")
		encoded := &bytes.Buffer{}
		if err := pack(encoded, bytes.NewReader(testPNG(tt)), encode); err != nil {
			tt.Fatalf("compress=%q: encode: %v", compress, err)
		}
		if got := bytes.HasPrefix(encoded.Bytes(), []byte(zstdMagic)); got != (compress == "zstd") {
			tt.Errorf("compress=%q: zstd magic: got %t", compress, got)
		}

		// Compression only applies to the output. The input is sniffed.
		setFlag(tt, compressFlag, "")
		decoded := &bytes.Buffer{}
		if err := pack(decoded, encoded, decode); err != nil {
			tt.Fatalf("compress=%q: decode: %v", compress, err)
		}
		m, err := png.Decode(decoded)
		if err != nil {
			tt.Fatalf("compress=%q: png.Decode: %v", compress, err)
		}
		if got, want := m.Bounds(), image.Rect(0, 0, 12, 12); got != want {
			tt.Errorf("compress=%q: bounds: got %v, want %v", compress, got, want)
		}
	}
}

func TestEncodeRaw(tt *testing.T) {
	setFlag(tt, outputFlag, "raw")
	setFlag(tt, lanesFlag, 1)
	setFlag(tt, perceptualFlag, true)

	got := &bytes.Buffer{}
	if err := pack(got, bytes.NewReader(testPNG(tt)), encode); err != nil {
		tt.Fatalf("encode: %v", err)
	}
	if want := 3 * 3 * bc7.BytesPerBlock; got.Len() != want {
		tt.Errorf("length: got %d, want %d", got.Len(), want)
	}
}

func TestEncodeSRGB(tt *testing.T) {
	setFlag(tt, srgbFlag, true)
	setFlag(tt, noDualPlaneFlag, true)

	buf := &bytes.Buffer{}
	if err := pack(buf, bytes.NewReader(testPNG(tt)), encode); err != nil {
		tt.Fatalf("encode: %v", err)
	}
	h, err := dds.DecodeHeader(buf)
	if err != nil {
		tt.Fatalf("dds.DecodeHeader: %v", err)
	}
	if !h.SRGB {
		tt.Errorf("SRGB: got false, want true")
	}
}

func TestBadFlags(tt *testing.T) {
	testCases := []struct {
		name  string
		setup func(tt *testing.T)
		run   func(w *bytes.Buffer, r *bytes.Reader) error
		want  error
	}{{
		name:  "decodeOutput",
		setup: func(tt *testing.T) { setFlag(tt, outputFlag, "dds") },
		run:   func(w *bytes.Buffer, r *bytes.Reader) error { return pack(w, r, decode) },
		want:  ErrBadOutputFlag,
	}, {
		name:  "encodeOutput",
		setup: func(tt *testing.T) { setFlag(tt, outputFlag, "png") },
		run:   func(w *bytes.Buffer, r *bytes.Reader) error { return pack(w, r, encode) },
		want:  ErrBadOutputFlag,
	}, {
		name:  "compress",
		setup: func(tt *testing.T) { setFlag(tt, compressFlag, "gzip") },
		run:   func(w *bytes.Buffer, r *bytes.Reader) error { return pack(w, r, encode) },
		want:  ErrBadCompressFlag,
	}, {
		name:  "refine",
		setup: func(tt *testing.T) { setFlag(tt, refineFlag, 99) },
		run:   func(w *bytes.Buffer, r *bytes.Reader) error { return pack(w, r, encode) },
		want:  bc7.ErrBadOptions,
	}}

	for _, tc := range testCases {
		tt.Run(tc.name, func(tt *testing.T) {
			tc.setup(tt)
			if err := tc.run(&bytes.Buffer{}, bytes.NewReader(nil)); err != tc.want {
				tt.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}
