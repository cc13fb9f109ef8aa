// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitstream

import (
	"fmt"

	"github.com/intel/huffgo/compress/huffman/internal/prefix"
	"github.com/intel/huffgo/errors"
)

// ReadLayout validates the header of a packed stream and returns its layout.
func ReadLayout(packed []byte) (Layout, error) {
	if len(packed) == 0 {
		return Layout{}, fmt.Errorf("%w: missing pad header", errors.ErrCorruptStream)
	}
	l := Layout{Pad: int(packed[0])}
	if l.Pad > 7 {
		return Layout{}, fmt.Errorf("%w: pad count %d out of range", errors.ErrCorruptStream, l.Pad)
	}
	l.Bits = (len(packed)-1)*8 - l.Pad
	if l.Bits < 0 {
		return Layout{}, fmt.Errorf("%w: pad count %d exceeds stream", errors.ErrCorruptStream, l.Pad)
	}
	return l, nil
}

// Unpack decodes a stream produced by Pack with the same table. sizeHint is the
// expected number of output bytes and only used to size the result.
//
// The stream must resolve to whole codes: a bit path leaving the code set, or
// bits left over once the stream ends, is reported as ErrCorruptStream.
func Unpack(t *prefix.Table, packed []byte, sizeHint int) ([]byte, error) {
	l, err := ReadLayout(packed)
	if err != nil {
		return nil, err
	}
	dec, err := t.Decoder()
	if err != nil {
		return nil, err
	}

	payload := packed[1:]
	out := make([]byte, 0, sizeHint)
	n := prefix.Root
	for i := 0; i < l.Bits; i++ {
		bit := payload[i>>3] >> (7 - i&7) & 1
		n = dec.Next(n, bit)
		if n == prefix.Root {
			return nil, fmt.Errorf("%w: no code matches at bit %d", errors.ErrCorruptStream, i)
		}
		if s, ok := dec.Symbol(n); ok {
			out = append(out, s)
			n = prefix.Root
		}
	}
	if n != prefix.Root {
		return nil, fmt.Errorf("%w: stream ended in the middle of a code", errors.ErrCorruptStream)
	}
	return out, nil
}
