// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package prefix

import (
	"fmt"
	"sort"

	"github.com/intel/huffgo/errors"
)

// Root is the handle of the decoder's start state.
const Root = int32(0)

type decNode struct {
	next [2]int32 // 0 means no edge, the root is never a child
	sym  int16    // -1 unless a code ends here
}

// Decoder is a binary trie over the codes of a table. Walking it bit by bit and
// restarting at Root after each leaf accepts exactly the same bit sequences as
// accumulating bits until they equal a code.
type Decoder struct {
	nodes []decNode
}

func newDecoder(inverse map[string]byte) (*Decoder, error) {
	codes := make([]string, 0, len(inverse))
	for code := range inverse {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	d := &Decoder{nodes: make([]decNode, 1, 2*len(codes))}
	d.nodes[Root].sym = -1
	for _, code := range codes {
		if code == "" {
			return nil, fmt.Errorf("%w: empty code", errors.ErrMalformedContainer)
		}
		n := Root
		for i := 0; i < len(code); i++ {
			if d.nodes[n].sym >= 0 {
				return nil, fmt.Errorf("%w: code %q has a prefix that is a code", errors.ErrMalformedContainer, code)
			}
			var bit int
			switch code[i] {
			case '0':
				bit = 0
			case '1':
				bit = 1
			default:
				return nil, fmt.Errorf("%w: code %q is not a bit string", errors.ErrMalformedContainer, code)
			}
			if d.nodes[n].next[bit] == 0 {
				d.nodes = append(d.nodes, decNode{sym: -1})
				d.nodes[n].next[bit] = int32(len(d.nodes) - 1)
			}
			n = d.nodes[n].next[bit]
		}
		if d.nodes[n].next != [2]int32{} {
			return nil, fmt.Errorf("%w: code %q is a prefix of another code", errors.ErrMalformedContainer, code)
		}
		d.nodes[n].sym = int16(inverse[code])
	}
	return d, nil
}

// Next follows the edge for bit from state n. It returns Root when there is no
// such edge, which never happens on a valid stream since Root is nobody's child.
func (d *Decoder) Next(n int32, bit uint8) int32 {
	return d.nodes[n].next[bit&1]
}

// Symbol reports the byte completed at state n, if any.
func (d *Decoder) Symbol(n int32) (byte, bool) {
	s := d.nodes[n].sym
	return byte(s), s >= 0
}
