// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package prefix builds byte-level Huffman codes: the frequency histogram, the
// merge tree and the code table read off the tree.
package prefix

import (
	"github.com/intel/huffgo/errors"
)

// leaf marks a missing child handle. A node whose children are both leaf is a leaf.
const leaf = int32(-1)

// Node is an element of the tree arena. Internal nodes reference their children
// by index into the arena and carry the sum of their frequencies.
type Node struct {
	Freq        uint64
	Symbol      byte
	Left, Right int32
}

// IsLeaf reports whether the node owns a byte value.
func (n Node) IsLeaf() bool {
	return n.Left == leaf
}

// Tree is a Huffman merge tree stored as an arena of nodes. It is immutable once
// built.
type Tree struct {
	nodes []Node
	root  int32
}

// Root returns the handle of the root node.
func (t *Tree) Root() int32 { return t.root }

// Node returns the node with handle i.
func (t *Tree) Node(i int32) Node { return t.nodes[i] }

// Len is the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Build merges the histogram into a tree. Leaves are queued in ascending byte
// order, then the two lowest-frequency nodes are repeatedly merged under a new
// node with the first popped one on the left. Equal frequencies leave the queue
// in the order they entered it, which makes the tree a pure function of the
// histogram.
//
// A histogram with a single symbol yields a tree made of one leaf.
func Build(h *Histogram) (*Tree, error) {
	syms := h.Symbols()
	if len(syms) == 0 {
		return nil, errors.ErrEmptyInput
	}
	t := &Tree{nodes: make([]Node, 0, 2*len(syms)-1)}
	q := newMinQueue(len(syms))
	for _, s := range syms {
		t.nodes = append(t.nodes, Node{Freq: h[s], Symbol: s, Left: leaf, Right: leaf})
		q.push(int32(len(t.nodes)-1), h[s])
	}
	for q.size() > 1 {
		a := q.pop()
		b := q.pop()
		t.nodes = append(t.nodes, Node{Freq: a.freq + b.freq, Left: a.node, Right: b.node})
		q.push(int32(len(t.nodes)-1), a.freq+b.freq)
	}
	t.root = q.pop().node
	return t, nil
}
