// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package bitstream packs Huffman codes into bytes and back.
//
// A packed stream is laid out as
//
//	[u8 pad][code bits...][pad zero bits]
//
// where pad in [0,7] is the number of filler bits needed to end on a byte
// boundary. Bits are stored most significant first within each byte.
package bitstream

import (
	"fmt"

	"github.com/intel/huffgo/compress/huffman/internal/prefix"
	"github.com/intel/huffgo/errors"
)

// Layout describes a packed stream.
type Layout struct {
	Bits int // code bits, without header and padding
	Pad  int // zero bits appended after the codes
}

// Len is the packed size in bytes, header included.
func (l Layout) Len() int {
	return 1 + (l.Bits+l.Pad)/8
}

// PadFor returns the number of zero bits that align bits to a byte boundary.
func PadFor(bits int) int {
	return (8 - bits%8) % 8
}

type chunk struct {
	val uint64
	n   uint8
}

// chunks splits a bit-string into pieces WriteBit accepts.
func chunks(code string) []chunk {
	out := make([]chunk, 0, len(code)/maxWrite+1)
	var c chunk
	for i := 0; i < len(code); i++ {
		c.val = c.val<<1 | uint64(code[i]-'0')
		c.n++
		if c.n == maxWrite {
			out = append(out, c)
			c = chunk{}
		}
	}
	if c.n > 0 {
		out = append(out, c)
	}
	return out
}

// Pack encodes data with the codes of t. Every byte of data must have a code.
func Pack(t *prefix.Table, data []byte) ([]byte, Layout, error) {
	var (
		words [256][]chunk
		lens  [256]int
	)
	for sym, code := range t.Forward() {
		words[sym] = chunks(code)
		lens[sym] = len(code)
	}

	var l Layout
	for i, b := range data {
		if lens[b] == 0 {
			return nil, Layout{}, fmt.Errorf("%w: %#02x at offset %d", errors.ErrUnmappedSymbol, b, i)
		}
		l.Bits += lens[b]
	}
	l.Pad = PadFor(l.Bits)

	out := make([]byte, l.Len())
	out[0] = byte(l.Pad)
	buf := newBitBuf(out[1:])
	for _, b := range data {
		for _, c := range words[b] {
			buf.WriteBit(c.val, c.n)
		}
	}
	buf.flushLastByte()
	return out, l, nil
}
