// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package prefix

import (
	"github.com/intel/huffgo/errors"
)

// Histogram counts the occurrences of every byte value in a buffer.
// A byte is present in the histogram iff its count is not zero.
type Histogram [256]uint64

// Count builds the histogram of data. Empty input is rejected before anything
// else is computed.
func Count(data []byte) (*Histogram, error) {
	if len(data) == 0 {
		return nil, errors.ErrEmptyInput
	}
	h := &Histogram{}
	for j := 0; j < len(data); j++ {
		h[data[j]]++
	}
	return h, nil
}

// Symbols returns the distinct byte values present, in ascending order.
func (h *Histogram) Symbols() []byte {
	syms := make([]byte, 0, 256)
	for i, v := range h {
		if v != 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// Total is the number of bytes counted.
func (h *Histogram) Total() (n uint64) {
	for _, v := range h {
		n += v
	}
	return n
}
