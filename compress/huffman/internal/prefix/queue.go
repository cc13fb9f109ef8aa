// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package prefix

// item is a queued tree node. seq is the push order and breaks ties between
// equal frequencies, so equal items come out first-in first-out.
type item struct {
	freq uint64
	seq  uint32
	node int32
}

func (a item) less(b item) bool {
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.seq < b.seq
}

// minQueue is a binary min-heap of items.
type minQueue struct {
	arr []item
	seq uint32
}

func newMinQueue(capacity int) *minQueue {
	return &minQueue{arr: make([]item, 0, capacity)}
}

func (q *minQueue) size() int { return len(q.arr) }

func (q *minQueue) push(node int32, freq uint64) {
	q.arr = append(q.arr, item{freq: freq, seq: q.seq, node: node})
	q.seq++
	i := len(q.arr) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !q.arr[i].less(q.arr[parent]) {
			return
		}
		q.arr[parent], q.arr[i] = q.arr[i], q.arr[parent]
		i = parent
	}
}

func (q *minQueue) pop() item {
	out := q.arr[0]
	last := len(q.arr) - 1
	q.arr[0] = q.arr[last]
	q.arr = q.arr[:last]

	parent := 0
	for {
		child := 2*parent + 1
		if child >= len(q.arr) {
			break
		}
		if child+1 < len(q.arr) && q.arr[child+1].less(q.arr[child]) {
			child++
		}
		if !q.arr[child].less(q.arr[parent]) {
			break
		}
		q.arr[parent], q.arr[child] = q.arr[child], q.arr[parent]
		parent = child
	}
	return out
}
