// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package errors holds the error values shared by the huffman codec and its
// collaborators. Errors returned by the codec wrap one of these and can be
// matched with errors.Is.
package errors

import (
	"errors"
)

var (
	ErrEmptyInput         = errors.New("nothing to compress: empty input")
	ErrTooLarge           = errors.New("input too large")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrMalformedContainer = errors.New("malformed container")
	ErrCorruptStream      = errors.New("corrupt bit stream")

	// ErrUnmappedSymbol means a byte reached the packer without a code. The
	// public API always derives the table from the same input, so seeing it
	// indicates a bug rather than bad input.
	ErrUnmappedSymbol = errors.New("byte has no code")
)
