// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitstream

// BitBuf accumulates bits most significant first and stores every completed
// byte into output. output must be large enough for everything written.
type BitBuf struct {
	output []byte
	idx    int
	bits   uint64
	bitLen int
}

// maxWrite is the largest count WriteBit accepts: with up to 7 bits pending the
// accumulator never exceeds 63 bits.
const maxWrite = 56

func newBitBuf(output []byte) *BitBuf {
	return &BitBuf{output: output}
}

// WriteBit appends the low count bits of code, highest of them first.
func (b *BitBuf) WriteBit(code uint64, count uint8) {
	b.bits = b.bits<<count | code&(1<<count-1)
	b.bitLen += int(count)
	for b.bitLen >= 8 {
		b.bitLen -= 8
		b.output[b.idx] = byte(b.bits >> b.bitLen)
		b.idx++
	}
	b.bits &= 1<<b.bitLen - 1
}

// flushLastByte writes a pending partial byte, filling its low bits with zeros.
func (b *BitBuf) flushLastByte() {
	if b.bitLen == 0 {
		return
	}
	b.output[b.idx] = byte(b.bits << (8 - b.bitLen))
	b.idx++
	b.bitLen = 0
	b.bits = 0
}

// Bytes returns the bytes completed so far.
func (b *BitBuf) Bytes() []byte {
	return b.output[:b.idx]
}
