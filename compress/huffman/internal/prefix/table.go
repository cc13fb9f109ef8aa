// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package prefix

import (
	"fmt"

	"github.com/intel/huffgo/errors"
)

// Table is a code table: byte value to bit-string and the exact inverse. Codes
// are strings of '0' and '1', most significant (first written) bit first.
type Table struct {
	codes   [256]string
	inverse map[string]byte
	dec     *Decoder
}

type frame struct {
	node  int32
	depth int
	bit   byte
}

// Assign reads the codes off the tree: '0' for every left edge and '1' for every
// right edge on the path from the root to a leaf. A tree made of a single leaf
// has no edges, so its byte gets the code "0".
func Assign(t *Tree) *Table {
	tab := &Table{inverse: make(map[string]byte, (t.Len()+1)/2)}
	root := t.Node(t.Root())
	if root.IsLeaf() {
		tab.set(root.Symbol, "0")
		return tab
	}

	// Pre-order walk with an explicit stack. Skewed trees get as deep as 255
	// levels, the path buffer only ever holds the current one.
	path := make([]byte, 0, 64)
	stack := []frame{{node: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > 0 {
			path = append(path[:f.depth-1], f.bit)
		}
		n := t.Node(f.node)
		if n.IsLeaf() {
			tab.set(n.Symbol, string(path))
			continue
		}
		stack = append(stack,
			frame{node: n.Right, depth: f.depth + 1, bit: '1'},
			frame{node: n.Left, depth: f.depth + 1, bit: '0'},
		)
	}
	return tab
}

// FromInverse rebuilds a table from a stored bit-string to byte mapping. The
// mapping must be a non-empty prefix code over distinct bytes.
func FromInverse(inverse map[string]byte) (*Table, error) {
	if len(inverse) == 0 || len(inverse) > 256 {
		return nil, fmt.Errorf("%w: code table has %d entries", errors.ErrMalformedContainer, len(inverse))
	}
	tab := &Table{inverse: make(map[string]byte, len(inverse))}
	for code, sym := range inverse {
		if tab.codes[sym] != "" {
			return nil, fmt.Errorf("%w: byte %#02x has two codes", errors.ErrMalformedContainer, sym)
		}
		tab.set(sym, code)
	}
	dec, err := newDecoder(tab.inverse)
	if err != nil {
		return nil, err
	}
	tab.dec = dec
	return tab, nil
}

func (t *Table) set(sym byte, code string) {
	t.codes[sym] = code
	t.inverse[code] = sym
}

// Code returns the code of b.
func (t *Table) Code(b byte) (string, bool) {
	c := t.codes[b]
	return c, c != ""
}

// Symbol returns the byte whose code is exactly code.
func (t *Table) Symbol(code string) (byte, bool) {
	b, ok := t.inverse[code]
	return b, ok
}

// Len is the number of coded bytes.
func (t *Table) Len() int { return len(t.inverse) }

// Forward returns a copy of the byte to code mapping.
func (t *Table) Forward() map[byte]string {
	m := make(map[byte]string, len(t.inverse))
	for code, sym := range t.inverse {
		m[sym] = code
	}
	return m
}

// Inverse returns a copy of the code to byte mapping.
func (t *Table) Inverse() map[string]byte {
	m := make(map[string]byte, len(t.inverse))
	for code, sym := range t.inverse {
		m[code] = sym
	}
	return m
}

// Decoder returns the decoding trie of the table.
func (t *Table) Decoder() (*Decoder, error) {
	if t.dec == nil {
		dec, err := newDecoder(t.inverse)
		if err != nil {
			return nil, err
		}
		t.dec = dec
	}
	return t.dec, nil
}
