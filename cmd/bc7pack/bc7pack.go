// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// bc7pack decodes and encodes the BC7 (also known as BPTC) lossy texture
// format, in a DDS container.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/nigeltao/bc7/internal/nie"
	"github.com/nigeltao/bc7/lib/bc7"
	"github.com/nigeltao/bc7/lib/dds"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	decodeFlag   = flag.Bool("decode", false, "whether to decode the input")
	encodeFlag   = flag.Bool("encode", false, "whether to encode the input")
	outputFlag   = flag.String("output", "", "output format")
	compressFlag = flag.String("compress", "", "output compression")
	verboseFlag  = flag.Bool("v", false, "whether to log progress to stderr")

	refineFlag         = flag.Int("refine", 0, "refine rounds per candidate (0 means the default)")
	noPartitioningFlag = flag.Bool("no-partitioning", false, "whether to skip modes 0, 1, 2, 3 and 7")
	no3SubsetsFlag     = flag.Bool("no-3subsets", false, "whether to skip modes 0 and 2")
	noDualPlaneFlag    = flag.Bool("no-dual-plane", false, "whether to skip modes 4 and 5")
	perceptualFlag     = flag.Bool("perceptual", false, "whether to weigh channels by luminance")
	lanesFlag          = flag.Int("lanes", 0, "blocks searched in lock-step: 1, 8 or 16 (0 means auto)")
	workersFlag        = flag.Int("workers", 0, "maximum goroutines (0 means GOMAXPROCS)")
	srgbFlag           = flag.Bool("srgb", false, "whether to mark the DDS pixel format as sRGB")
)

const usageStr = `bc7pack decodes and encodes the BC7 lossy texture format.

Usage: choose one of

    bc7pack -decode [path]
    bc7pack -encode [path]

The path to the input image file is optional. If omitted, stdin is read. The
input may be zstd-compressed, which is detected automatically.

When decoding you can also pass one of these flags (before the path):

    -output=nie-bn4
    -output=nie-bn8
    -output=png (this is the default)

When encoding you can also pass one of these flags (before the path):

    -output=dds (this is the default)
    -output=raw (BC7 blocks in row-major order, with no header)

and any of these:

    -refine=N          fit-then-refine rounds per candidate, up to 16
    -no-partitioning   skip the modes with more than one subset
    -no-3subsets       skip the modes with three subsets
    -no-dual-plane     skip the modes with separate alpha indexes
    -perceptual        weigh red, green and blue by luminance
    -lanes=N           1, 8 or 16 blocks searched in lock-step
    -workers=N         the maximum number of goroutines
    -srgb              mark the DDS pixel format as sRGB

Either way, you can also pass:

    -compress=zstd     compress the output
    -v                 log progress to stderr

The output image (in NIE/PNG or DDS/raw format) is written to stdout.

Decode inputs DDS and outputs NIE/PNG.
Encode inputs BMP, GIF, JPEG, PNG, TIFF or WEBP and outputs DDS/raw.
`

var (
	ErrBadCompressFlag = errors.New("main: bad -compress flag")
	ErrBadOutputFlag   = errors.New("main: bad -output flag")
)

// zstdMagic is the byte string prefix of every zstd frame.
const zstdMagic = "\x28\xB5\x2F\xFD"

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	if *verboseFlag {
		bc7.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	inFile := os.Stdin
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		inFile = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	run := (func(io.Writer, io.Reader) error)(nil)
	if *decodeFlag && !*encodeFlag {
		run = decode
	} else if !*decodeFlag && *encodeFlag {
		run = encode
	} else {
		return errors.New("must specify exactly one of -decode, -encode or -help")
	}

	bw := bufio.NewWriter(os.Stdout)
	if err := pack(bw, inFile, run); err != nil {
		return err
	}
	return bw.Flush()
}

// pack runs run from r to w, decompressing r and compressing w as needed.
func pack(w io.Writer, r io.Reader, run func(io.Writer, io.Reader) error) error {
	in, closeIn, err := newInput(r)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := newOutput(w)
	if err != nil {
		return err
	}
	if err := run(out, in); err != nil {
		return err
	}
	return closeOut()
}

func newInput(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zstdMagic)); (err != nil) || (string(magic) != zstdMagic) {
		return br, func() {}, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("zstd.NewReader: %w", err)
	}
	return dec, dec.Close, nil
}

func newOutput(w io.Writer) (io.Writer, func() error, error) {
	switch *compressFlag {
	case "":
		return w, func() error { return nil }, nil
	case "zstd":
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd.NewWriter: %w", err)
		}
		return enc, enc.Close, nil
	}
	return nil, nil, ErrBadCompressFlag
}

func decode(w io.Writer, r io.Reader) error {
	switch *outputFlag {
	case "", "nie-bn4", "nie-bn8", "png":
		// No-op.
	default:
		return ErrBadOutputFlag
	}

	src, err := dds.Decode(r)
	if err != nil {
		return err
	}

	encodeNIE := (func(image.Image) ([]byte, error))(nil)
	switch *outputFlag {
	case "nie-bn4":
		encodeNIE = nie.EncodeBN4
	case "nie-bn8":
		encodeNIE = nie.EncodeBN8
	default:
		return png.Encode(w, src)
	}

	dst, err := encodeNIE(src)
	if err != nil {
		return err
	}
	_, err = w.Write(dst)
	return err
}

func encode(w io.Writer, r io.Reader) error {
	switch *outputFlag {
	case "", "dds", "raw":
		// No-op.
	default:
		return ErrBadOutputFlag
	}

	options := &bc7.EncodeOptions{
		DisablePartitioning: *noPartitioningFlag,
		Disable3Subsets:     *no3SubsetsFlag,
		DisableDualPlane:    *noDualPlaneFlag,
		RefineRounds:        *refineFlag,
		Lanes:               *lanesFlag,
		Workers:             *workersFlag,
	}
	if *perceptualFlag {
		options.ChannelWeights = bc7.PerceptualChannelWeights
	}
	if err := options.Validate(); err != nil {
		return err
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return err
	}

	if *outputFlag == "raw" {
		return bc7.Encode(w, src, options)
	}
	return dds.Encode(w, src, &dds.EncodeOptions{
		SRGB: *srgbFlag,
		BC7:  options,
	})
}
