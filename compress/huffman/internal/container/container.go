// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package container reads and writes the single-file format holding a packed
// Huffman stream together with everything needed to decode it.
package container

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/crypto/blake2b"

	"github.com/intel/huffgo/errors"
)

const (
	Magic   = "HFGO"
	Version = uint16(1)

	headerLen = len(Magic) + 2 + 4
)

// Sorted map keys keep the output a pure function of the input.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Wire format (version 1):
//
//	magic   [4] = "HFGO"
//	version     = uint16 little-endian
//	metaLen     = uint32 little-endian
//	meta        = metaLen bytes of JSON encoding Meta
//	payload     = the rest of the file, as produced by bitstream.Pack
//
// Unknown JSON fields are ignored.

// Meta is the structured section of a container.
type Meta struct {
	// Digest is the hex BLAKE2b-256 of the original bytes.
	Digest string `json:"blake2b"`
	// Codes maps every code (as a bit-string) to its byte.
	Codes map[string]byte `json:"codes"`
	// Size is the length of the original bytes.
	Size int64 `json:"size"`
	// Tag is the original file extension, with the leading dot, or empty.
	Tag string `json:"tag"`
}

// Container is a decoded container file.
type Container struct {
	Meta
	Payload []byte
}

// Digest returns the hex BLAKE2b-256 of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// Write serialises meta and payload to w.
func Write(w io.Writer, meta *Meta, payload []byte) (int64, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return 0, fmt.Errorf("encode metadata: %w", err)
	}
	var hdr [headerLen]byte
	copy(hdr[:], Magic)
	binary.LittleEndian.PutUint16(hdr[4:], Version)
	binary.LittleEndian.PutUint32(hdr[6:], uint32(len(raw)))

	var total int64
	for _, b := range [][]byte{hdr[:], raw, payload} {
		n, err := writeBytes(w, b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Marshal returns the container bytes for meta and payload.
func Marshal(meta *Meta, payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerLen + 64*len(meta.Codes) + len(payload))
	if _, err := Write(&buf, meta, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read splits data into its metadata and payload. maxMeta bounds the declared
// metadata length. The code table itself is validated by the caller when it is
// turned into a decoder.
func Read(data []byte, maxMeta uint32) (*Container, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errors.ErrMalformedContainer, len(data))
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", errors.ErrMalformedContainer, data[:len(Magic)])
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", errors.ErrMalformedContainer, v)
	}
	metaLen := binary.LittleEndian.Uint32(data[6:])
	if metaLen > maxMeta {
		return nil, fmt.Errorf("%w: metadata length %d exceeds limit %d", errors.ErrMalformedContainer, metaLen, maxMeta)
	}
	if uint64(metaLen) > uint64(len(data)-headerLen) {
		return nil, fmt.Errorf("%w: metadata length %d exceeds file", errors.ErrMalformedContainer, metaLen)
	}

	c := &Container{Payload: data[headerLen+int(metaLen):]}
	if err := json.Unmarshal(data[headerLen:headerLen+int(metaLen)], &c.Meta); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedContainer, err)
	}
	if c.Size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", errors.ErrMalformedContainer, c.Size)
	}
	if sum, err := hex.DecodeString(c.Digest); err != nil || len(sum) != blake2b.Size256 {
		return nil, fmt.Errorf("%w: bad digest %q", errors.ErrMalformedContainer, c.Digest)
	}
	return c, nil
}
