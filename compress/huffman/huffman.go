// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman implements a lossless byte-level Huffman compressor.
//
// Compress counts byte frequencies, builds the merge tree, reads a prefix code
// off it and packs the input with that code. The result is a self-describing
// container holding the inverse code table, the original file type tag and the
// packed bits, so Decompress needs nothing but the container bytes.
//
// Every call builds its own tables; a Codec only carries configuration and is
// safe for concurrent use.
package huffman

import (
	"fmt"

	"github.com/intel/huffgo/compress/huffman/internal/bitstream"
	"github.com/intel/huffgo/compress/huffman/internal/container"
	"github.com/intel/huffgo/compress/huffman/internal/prefix"
	"github.com/intel/huffgo/config"
	"github.com/intel/huffgo/errors"
)

var (
	ErrEmptyInput         = errors.ErrEmptyInput
	ErrTooLarge           = errors.ErrTooLarge
	ErrUnsupportedType    = errors.ErrUnsupportedType
	ErrMalformedContainer = errors.ErrMalformedContainer
	ErrCorruptStream      = errors.ErrCorruptStream
	ErrUnmappedSymbol     = errors.ErrUnmappedSymbol
)

// Stats describes one compression.
type Stats struct {
	Original   int // input bytes
	Compressed int // container bytes, metadata included
	Symbols    int // distinct byte values
	Bits       int // code bits in the payload
	Pad        int // zero bits appended to the payload
}

// Ratio is the compressed size relative to the original one.
func (s Stats) Ratio() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Compressed) / float64(s.Original)
}

// Saving is the fraction of the original size saved, negative when the
// container is larger than the input.
func (s Stats) Saving() float64 {
	if s.Original == 0 {
		return 0
	}
	return 1 - s.Ratio()
}

// Codec compresses and decompresses whole buffers.
type Codec struct {
	cfg *config.Config
}

// NewCodec returns a Codec using cfg, or config.Default() when cfg is nil.
func NewCodec(cfg *config.Config) *Codec {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Codec{cfg: cfg}
}

// Compress encodes data into a container. tag is the original file type,
// usually its extension, and is handed back by Decompress.
func (c *Codec) Compress(data []byte, tag string) ([]byte, Stats, error) {
	if int64(len(data)) > c.cfg.Codec.MaxInputSize {
		return nil, Stats{}, fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, len(data), c.cfg.Codec.MaxInputSize)
	}
	hist, err := prefix.Count(data)
	if err != nil {
		return nil, Stats{}, err
	}
	tree, err := prefix.Build(hist)
	if err != nil {
		return nil, Stats{}, err
	}
	tab := prefix.Assign(tree)

	packed, layout, err := bitstream.Pack(tab, data)
	if err != nil {
		return nil, Stats{}, err
	}
	out, err := container.Marshal(&container.Meta{
		Digest: container.Digest(data),
		Codes:  tab.Inverse(),
		Size:   int64(len(data)),
		Tag:    NormalizeTag(tag),
	}, packed)
	if err != nil {
		return nil, Stats{}, err
	}

	return out, Stats{
		Original:   len(data),
		Compressed: len(out),
		Symbols:    tab.Len(),
		Bits:       layout.Bits,
		Pad:        layout.Pad,
	}, nil
}

// Decompress restores the original bytes and type tag from a container.
//
// Besides resolving to whole codes, the decoded bytes must match the length and
// digest recorded at compression time, so a truncated or altered payload fails
// with ErrCorruptStream instead of yielding partial output.
func (c *Codec) Decompress(raw []byte) ([]byte, string, error) {
	ct, err := container.Read(raw, c.cfg.Codec.MaxMetaSize)
	if err != nil {
		return nil, "", err
	}
	tab, err := prefix.FromInverse(ct.Codes)
	if err != nil {
		return nil, "", err
	}

	// every code is at least one bit long
	hint := ct.Size
	if limit := int64(len(ct.Payload)) * 8; hint > limit {
		hint = limit
	}
	out, err := bitstream.Unpack(tab, ct.Payload, int(hint))
	if err != nil {
		return nil, "", err
	}
	if int64(len(out)) != ct.Size {
		return nil, "", fmt.Errorf("%w: decoded %d bytes, expected %d", ErrCorruptStream, len(out), ct.Size)
	}
	if container.Digest(out) != ct.Digest {
		return nil, "", fmt.Errorf("%w: digest mismatch", ErrCorruptStream)
	}
	return out, ct.Tag, nil
}

// Compress encodes data with a fresh default Codec.
func Compress(data []byte, tag string) ([]byte, Stats, error) {
	return NewCodec(nil).Compress(data, tag)
}

// Decompress decodes a container with a fresh default Codec.
func Decompress(raw []byte) ([]byte, string, error) {
	return NewCodec(nil).Decompress(raw)
}
