// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package testimage renders deterministic test images: two italic digits over
// a radial and a linear gradient, downscaled to a small size. The result has
// flat regions, sharp edges, smooth ramps and (optionally) varying alpha,
// which between them exercise every BC7 mode.
package testimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const largeSize = 256

// faceMu guards face, as opentype faces are not safe for concurrent use.
var faceMu sync.Mutex

var face = sync.OnceValues(func() (font.Face, error) {
	f, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("opentype.Parse: %w", err)
	}
	ff, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    200,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("opentype.NewFace: %w", err)
	}
	return ff, nil
})

// Digits renders the two-character string s at size×size pixels. The first
// character is knocked out of a reddish radial gradient and the second is
// filled with a green-blue linear gradient. If opaque is false, the radial
// gradient fades to transparent.
func Digits(s string, size int, opaque bool) (*image.NRGBA, error) {
	if (len(s) != 2) || (size <= 0) {
		return nil, errors.New("testimage: bad argument")
	}
	ff, err := face()
	if err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, largeSize, largeSize)

	faceMu.Lock()
	digit0 := image.NewAlpha(r)
	(&font.Drawer{Dst: digit0, Src: image.Opaque, Face: ff, Dot: fixed.P(4, 224)}).DrawString(s[0:1])
	digit1 := image.NewAlpha(r)
	(&font.Drawer{Dst: digit1, Src: image.Opaque, Face: ff, Dot: fixed.P(4+112, 224-48)}).DrawString(s[1:2])
	faceMu.Unlock()

	for i := range digit0.Pix {
		digit0.Pix[i] ^= 0xFF
	}

	circ := image.NewNRGBA(r)
	const cx, cy = 30, 50
	for y := range largeSize {
		dy := y - cy
		for x := range largeSize {
			dx := x - cx
			distance := int(math.Sqrt(float64((dx * dx) + (dy * dy))))
			v := 0xFF - uint8(max(0x00, min(0xFF, distance)))
			a := uint8(0xFF)
			if !opaque {
				a = v
			}
			circ.SetNRGBA(x, y, color.NRGBA{v, v / 3, 0, a})
		}
	}

	grad := image.NewNRGBA(r)
	for y := range largeSize {
		for x := range largeSize {
			grad.SetNRGBA(x, y, color.NRGBA{0x00, uint8(x), uint8(y), 0xFF})
		}
	}

	large := image.NewRGBA(r)
	if opaque {
		draw.Draw(large, r, image.Black, image.Point{}, draw.Src)
	}
	draw.DrawMask(large, r, circ, image.Point{}, digit0, image.Point{}, draw.Over)
	draw.DrawMask(large, r, grad, image.Point{}, digit1, image.Point{}, draw.Over)

	small := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(small, small.Bounds(), large, r, draw.Src, nil)
	return small, nil
}
