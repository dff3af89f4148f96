// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package nie implements the NIE (Naive) image file format.
//
// It is an incomplete implementation (and hence an internal package), only
// providing what's needed by the github.com/nigeltao/bc7 module: writing
// non-premultiplied BGRA images at 8 or 16 bits per channel.
//
// NIE is specified at
// https://github.com/google/wuffs/blob/main/doc/spec/nie-spec.md
package nie

import (
	"errors"
	"image"
	"image/color"
)

var (
	ErrBadArgument          = errors.New("nie: bad argument")
	ErrUnsupportedImageType = errors.New("nie: unsupported image type")
)

// EncodeBN4 encodes m as a NIE file in BGRA order, non-premultiplied alpha, 4
// bytes per pixel (8 bits per channel).
func EncodeBN4(m image.Image) ([]byte, error) {
	return encode(m, '4')
}

// EncodeBN8 encodes m as a NIE file in BGRA order, non-premultiplied alpha, 8
// bytes per pixel (16 bits per channel).
func EncodeBN8(m image.Image) ([]byte, error) {
	return encode(m, '8')
}

func encode(m image.Image, depth byte) (ret []byte, retErr error) {
	if m == nil {
		return nil, ErrBadArgument
	}
	b := m.Bounds()
	bytesPerPixel := 4
	if depth == '8' {
		bytesPerPixel = 8
	}

	ret = make([]byte, 0, 16+(bytesPerPixel*b.Dx()*b.Dy()))
	ret = append(ret, 0x6E, 0xC3, 0xAF, 0x45, 0xFF, 'b', 'n', depth)
	ret = appendU32LE(ret, uint32(b.Dx()))
	ret = appendU32LE(ret, uint32(b.Dy()))

	at, err := makeNRGBA64At(m)
	if err != nil {
		return nil, err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, err := at(x, y)
			if err != nil {
				return nil, err
			}
			if depth == '4' {
				ret = append(ret,
					uint8(c.B>>8),
					uint8(c.G>>8),
					uint8(c.R>>8),
					uint8(c.A>>8),
				)
			} else {
				ret = append(ret,
					uint8(c.B>>0), uint8(c.B>>8),
					uint8(c.G>>0), uint8(c.G>>8),
					uint8(c.R>>0), uint8(c.R>>8),
					uint8(c.A>>0), uint8(c.A>>8),
				)
			}
		}
	}
	return ret, nil
}

// makeNRGBA64At returns a pixel accessor for m. Premultiplied sources are only
// accepted where alpha is fully opaque or fully transparent, so that no
// precision is lost to un-premultiplying.
func makeNRGBA64At(m image.Image) (func(x int, y int) (color.NRGBA64, error), error) {
	switch m := m.(type) {
	case *image.Gray:
		return func(x int, y int) (color.NRGBA64, error) {
			v := uint16(m.GrayAt(x, y).Y) * 0x101
			return color.NRGBA64{v, v, v, 0xFFFF}, nil
		}, nil

	case *image.Gray16:
		return func(x int, y int) (color.NRGBA64, error) {
			v := m.Gray16At(x, y).Y
			return color.NRGBA64{v, v, v, 0xFFFF}, nil
		}, nil

	case *image.NRGBA:
		return func(x int, y int) (color.NRGBA64, error) {
			c := m.NRGBAAt(x, y)
			return color.NRGBA64{
				uint16(c.R) * 0x101,
				uint16(c.G) * 0x101,
				uint16(c.B) * 0x101,
				uint16(c.A) * 0x101,
			}, nil
		}, nil

	case *image.NRGBA64:
		return func(x int, y int) (color.NRGBA64, error) {
			return m.NRGBA64At(x, y), nil
		}, nil

	case *image.RGBA:
		return func(x int, y int) (color.NRGBA64, error) {
			c := m.RGBAAt(x, y)
			if (c.A != 0x00) && (c.A != 0xFF) {
				return color.NRGBA64{}, ErrUnsupportedImageType
			}
			return color.NRGBA64{
				uint16(c.R) * 0x101,
				uint16(c.G) * 0x101,
				uint16(c.B) * 0x101,
				uint16(c.A) * 0x101,
			}, nil
		}, nil

	case *image.RGBA64:
		return func(x int, y int) (color.NRGBA64, error) {
			c := m.RGBA64At(x, y)
			if (c.A != 0x0000) && (c.A != 0xFFFF) {
				return color.NRGBA64{}, ErrUnsupportedImageType
			}
			return color.NRGBA64(c), nil
		}, nil

	case *image.Paletted:
		return func(x int, y int) (color.NRGBA64, error) {
			switch c := m.Palette[m.ColorIndexAt(x, y)].(type) {
			case color.NRGBA:
				return color.NRGBA64{
					uint16(c.R) * 0x101,
					uint16(c.G) * 0x101,
					uint16(c.B) * 0x101,
					uint16(c.A) * 0x101,
				}, nil
			case color.RGBA:
				if (c.A != 0x00) && (c.A != 0xFF) {
					break
				}
				return color.NRGBA64{
					uint16(c.R) * 0x101,
					uint16(c.G) * 0x101,
					uint16(c.B) * 0x101,
					uint16(c.A) * 0x101,
				}, nil
			}
			return color.NRGBA64{}, ErrUnsupportedImageType
		}, nil
	}

	return nil, ErrUnsupportedImageType
}

func appendU32LE(b []byte, u uint32) []byte {
	return append(b,
		uint8(u>>0),
		uint8(u>>8),
		uint8(u>>16),
		uint8(u>>24),
	)
}
