// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package dds implements the DDS (DirectDraw Surface) container format for BC7
// textures.
//
// Only single-image 2D textures with a DX10 extended header and a BC7 pixel
// format are supported. Any mipmaps after the first level are ignored.
//
// DDS is specified at
// https://learn.microsoft.com/en-us/windows/win32/direct3ddds/dx-graphics-dds-pguide
package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/nigeltao/bc7/lib/bc7"
)

// Magic is the byte string prefix of every DDS image file.
const Magic = "DDS "

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

var (
	ErrBadArgument       = errors.New("dds: bad argument")
	ErrNotADDSFile       = errors.New("dds: not a DDS file")
	ErrUnsupportedFormat = errors.New("dds: unsupported format")
	ErrImageIsTooLarge   = errors.New("dds: image is too large")
)

const (
	// headerSize is the size of the magic, the DDS_HEADER and the
	// DDS_HEADER_DXT10.
	headerSize = 4 + 124 + 20

	maxDimension = 65532
)

// DDS_HEADER flags and capabilities.
const (
	flagCaps        = 0x00000001
	flagHeight      = 0x00000002
	flagWidth       = 0x00000004
	flagPixelFormat = 0x00001000
	flagMipMapCount = 0x00020000
	flagLinearSize  = 0x00080000

	pixelFormatFourCC = 0x00000004

	capsTexture = 0x00001000
)

// DDS_HEADER_DXT10 values.
const (
	dxgiFormatBC7UNorm     = 98
	dxgiFormatBC7UNormSRGB = 99

	resourceDimensionTexture2D = 3

	alphaModeStraight = 1
)

// Header is the parts of a DDS header that this package reads and writes.
type Header struct {
	Width  int
	Height int

	// SRGB is whether the pixel format is DXGI_FORMAT_BC7_UNORM_SRGB instead
	// of DXGI_FORMAT_BC7_UNORM.
	SRGB bool
}

// BlocksWide returns the number of 4×4 blocks per row.
func (h Header) BlocksWide() int { return (h.Width + 3) / 4 }

// BlocksHigh returns the number of rows of 4×4 blocks.
func (h Header) BlocksHigh() int { return (h.Height + 3) / 4 }

// DecodeHeader reads a DDS header from r, leaving r positioned at the first
// block.
func DecodeHeader(r io.Reader) (Header, error) {
	if r == nil {
		return Header{}, ErrBadArgument
	}
	buf := [headerSize]byte{}
	if _, err := io.ReadFull(r, buf[:]); err == io.EOF {
		return Header{}, io.ErrUnexpectedEOF
	} else if err != nil {
		return Header{}, err
	} else if string(buf[:4]) != Magic {
		return Header{}, ErrNotADDSFile
	}

	le := binary.LittleEndian
	if (le.Uint32(buf[0x04:]) != 124) || (le.Uint32(buf[0x4C:]) != 32) {
		return Header{}, ErrNotADDSFile
	} else if ((le.Uint32(buf[0x50:]) & pixelFormatFourCC) == 0) || (string(buf[0x54:0x58]) != "DX10") {
		return Header{}, ErrUnsupportedFormat
	}

	h := Header{
		Width:  int(le.Uint32(buf[0x10:])),
		Height: int(le.Uint32(buf[0x0C:])),
	}
	switch le.Uint32(buf[0x80:]) {
	case dxgiFormatBC7UNorm:
		// No-op.
	case dxgiFormatBC7UNormSRGB:
		h.SRGB = true
	default:
		return Header{}, ErrUnsupportedFormat
	}
	if (le.Uint32(buf[0x84:]) != resourceDimensionTexture2D) || (le.Uint32(buf[0x8C:]) != 1) {
		return Header{}, ErrUnsupportedFormat
	}

	if (h.Width > maxDimension) || (h.Height > maxDimension) {
		return Header{}, ErrImageIsTooLarge
	}
	return h, nil
}

func encodeHeader(h Header) (buf [headerSize]byte) {
	le := binary.LittleEndian
	copy(buf[:4], Magic)
	le.PutUint32(buf[0x04:], 124)
	le.PutUint32(buf[0x08:], flagCaps|flagHeight|flagWidth|flagPixelFormat|flagMipMapCount|flagLinearSize)
	le.PutUint32(buf[0x0C:], uint32(h.Height))
	le.PutUint32(buf[0x10:], uint32(h.Width))
	le.PutUint32(buf[0x14:], uint32(bc7.BytesPerBlock*h.BlocksWide()*h.BlocksHigh()))
	le.PutUint32(buf[0x1C:], 1)

	le.PutUint32(buf[0x4C:], 32)
	le.PutUint32(buf[0x50:], pixelFormatFourCC)
	copy(buf[0x54:0x58], "DX10")
	le.PutUint32(buf[0x6C:], capsTexture)

	format := uint32(dxgiFormatBC7UNorm)
	if h.SRGB {
		format = dxgiFormatBC7UNormSRGB
	}
	le.PutUint32(buf[0x80:], format)
	le.PutUint32(buf[0x84:], resourceDimensionTexture2D)
	le.PutUint32(buf[0x8C:], 1)
	le.PutUint32(buf[0x90:], alphaModeStraight)
	return buf
}

// DecodeConfig reads a DDS image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// Decode reads a DDS image from r. The image is an *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}
	bw, bh := h.BlocksWide(), h.BlocksHigh()

	// Read every block before allocating the image, so that a short file
	// cannot claim a huge one.
	n := int64(bc7.BytesPerBlock) * int64(bw) * int64(bh)
	blocks := &bytes.Buffer{}
	if got, err := blocks.ReadFrom(io.LimitReader(r, n)); err != nil {
		return nil, err
	} else if got < n {
		return nil, io.ErrUnexpectedEOF
	}

	m := bc7.NewImage(h.Width, h.Height)
	if err := bc7.Decode(m, blocks, bw, bh); err != nil {
		return nil, err
	}
	return m, nil
}

// EncodeOptions are optional arguments to Encode. The zero value is valid and
// means to use the default configuration.
type EncodeOptions struct {
	// SRGB is whether to mark the pixel format as sRGB. It does not change
	// the encoded blocks.
	SRGB bool

	// BC7 holds the block encoder's options. Nil means the default.
	BC7 *bc7.EncodeOptions
}

// Encode writes src to w in the DDS format.
//
// options may be nil, which means to use the default configuration.
func Encode(w io.Writer, src image.Image, options *EncodeOptions) error {
	if (w == nil) || (src == nil) {
		return ErrBadArgument
	}
	b := src.Bounds()
	h := Header{Width: b.Dx(), Height: b.Dy()}
	if (h.Width > maxDimension) || (h.Height > maxDimension) {
		return ErrImageIsTooLarge
	}

	bc7Options := (*bc7.EncodeOptions)(nil)
	if options != nil {
		h.SRGB = options.SRGB
		bc7Options = options.BC7
	}
	if err := bc7Options.Validate(); err != nil {
		return err
	}

	bc7.Logger().Debug("dds: encoding",
		slog.Int("width", h.Width),
		slog.Int("height", h.Height),
		slog.Bool("srgb", h.SRGB))

	buf := encodeHeader(h)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	return bc7.Encode(w, src, bc7Options)
}
