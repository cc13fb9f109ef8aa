// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"bytes"
	"compress/flate"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"

	"github.com/intel/huffgo/compress/huffman/internal/container"
	"github.com/intel/huffgo/config"
	"github.com/intel/huffgo/errors"
)

func opticks(t testing.TB) (data []byte) {
	data, _ = os.ReadFile(filepath.Join(runtime.GOROOT(), "src", "testdata", "Isaac.Newton-Opticks.txt"))
	if data == nil {
		t.Skip("skip for no test data file")
	}
	return data
}

func diff(d, s []byte) (pos int) {
	pos = -1
	for i := 0; i < len(d) && i < len(s); i++ {
		if d[i] != s[i] {
			pos = i
			break
		}
	}
	return
}

func roundTrip(t testing.TB, data []byte, tag string) Stats {
	out, stats, err := Compress(data, tag)
	require.NoError(t, err)
	back, gotTag, err := Decompress(out)
	require.NoError(t, err)
	if !bytes.Equal(back, data) {
		t.Fatalf("round trip differs, data_len:%d, source_len:%d, diff:%d", len(back), len(data), diff(back, data))
	}
	require.Equal(t, NormalizeTag(tag), gotTag)
	return stats
}

func TestRoundTrip(t *testing.T) {
	testdata := opticks(t)

	for size := 1; size < 128*1024; size *= 2 {
		for _, offset := range []int{0, 1, 3, 5, 7, 9, 17} {
			offsetSize := size + offset
			if len(testdata) < offsetSize {
				break
			}
			roundTrip(t, testdata[:offsetSize], ".txt")
		}
	}
}

func TestRoundTripGenerated(t *testing.T) {
	random := make([]byte, 64*1024)
	rand.Read(random)

	every := make([]byte, 0, 256*4)
	for rep := 0; rep < 4; rep++ {
		for i := 0; i < 256; i++ {
			every = append(every, byte(i))
		}
	}

	for name, data := range map[string][]byte{
		"one byte":   {0x00},
		"two bytes":  {0xff, 0x00},
		"random":     random,
		"alnum":      []byte(uniuri.NewLen(10000)),
		"every byte": every,
		"sparse":     append(bytes.Repeat([]byte{0}, 1<<16), 1, 2, 3),
	} {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, data, "bin")
		})
	}
}

func TestSingleDistinctByte(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 1000)
	stats := roundTrip(t, data, ".txt")
	require.Equal(t, 1, stats.Symbols)
	require.Equal(t, 1000, stats.Bits)
	require.Equal(t, 0, stats.Pad)

	out, _, err := Compress(data, ".txt")
	require.NoError(t, err)
	ct, err := container.Read(out, 1<<20)
	require.NoError(t, err)
	require.Equal(t, map[string]byte{"0": 0x41}, ct.Codes)
}

func TestSkewedFrequencies(t *testing.T) {
	data := append(bytes.Repeat([]byte{0x00}, 900), bytes.Repeat([]byte{0x01}, 100)...)
	out, _, err := Compress(data, "")
	require.NoError(t, err)
	ct, err := container.Read(out, 1<<20)
	require.NoError(t, err)

	lens := map[byte]int{}
	for code, sym := range ct.Codes {
		lens[sym] = len(code)
	}
	require.LessOrEqual(t, lens[0x00], lens[0x01])
	roundTrip(t, data, "")
}

func TestEmptyInput(t *testing.T) {
	out, stats, err := Compress(nil, ".txt")
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, out)
	require.Zero(t, stats)

	_, _, err = Compress([]byte{}, ".txt")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Codec.MaxInputSize = 8
	_, _, err := NewCodec(cfg).Compress([]byte("123456789"), "")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestStats(t *testing.T) {
	data := []byte(strings.Repeat("aaaaaaab", 512))
	out, stats, err := Compress(data, ".txt")
	require.NoError(t, err)
	require.Equal(t, len(data), stats.Original)
	require.Equal(t, len(out), stats.Compressed)
	require.Equal(t, 2, stats.Symbols)
	require.Equal(t, len(data), stats.Bits)
	require.Equal(t, 0, stats.Pad)
	require.InDelta(t, float64(len(out))/float64(len(data)), stats.Ratio(), 1e-9)
	require.InDelta(t, 1-stats.Ratio(), stats.Saving(), 1e-9)
	require.Less(t, stats.Ratio(), 0.25)
	require.Zero(t, Stats{}.Ratio())
}

func TestTruncatedPayload(t *testing.T) {
	inputs := [][]byte{
		[]byte(strings.Repeat("she sells sea shells by the sea shore. ", 64)),
		bytes.Repeat([]byte{0x41}, 1000),
		append(bytes.Repeat([]byte{0x00}, 900), bytes.Repeat([]byte{0x01}, 100)...),
	}
	for _, data := range inputs {
		out, _, err := Compress(data, ".txt")
		require.NoError(t, err)
		for cut := 1; cut <= 4; cut++ {
			back, _, err := Decompress(out[:len(out)-cut])
			require.ErrorIs(t, err, ErrCorruptStream, "cut %d", cut)
			require.Nil(t, back)
		}
	}
}

func TestFlippedPayload(t *testing.T) {
	data := []byte(strings.Repeat("0123456789abcdef", 256))
	out, _, err := Compress(data, "")
	require.NoError(t, err)
	for _, pos := range []int{1, 2, 17, 100} {
		bad := append([]byte(nil), out...)
		bad[len(bad)-pos] ^= 0x10
		_, _, err := Decompress(bad)
		require.ErrorIs(t, err, ErrCorruptStream, "pos %d", pos)
	}
}

func TestMalformedContainer(t *testing.T) {
	out, _, err := Compress([]byte("hello, world"), ".txt")
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"empty":       nil,
		"garbage":     []byte("definitely not a container"),
		"header only": out[:10],
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decompress(data)
			require.ErrorIs(t, err, ErrMalformedContainer)
		})
	}

	t.Run("bad table", func(t *testing.T) {
		raw, err := container.Marshal(&container.Meta{
			Digest: container.Digest([]byte("ab")),
			Codes:  map[string]byte{"0": 'a', "01": 'b'},
			Size:   2,
		}, []byte{0x05, 0b01000000})
		require.NoError(t, err)
		_, _, err = Decompress(raw)
		require.ErrorIs(t, err, ErrMalformedContainer)
	})
}

func TestDeterministic(t *testing.T) {
	data := []byte(uniuri.NewLen(8192))
	a, _, err := NewCodec(nil).Compress(data, ".txt")
	require.NoError(t, err)
	b, _, err := NewCodec(nil).Compress(data, ".txt")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestNoStateAcrossCalls(t *testing.T) {
	c := NewCodec(nil)
	first := []byte(strings.Repeat("abc", 100))
	second := []byte(strings.Repeat("xyz", 100))

	a1, _, err := c.Compress(first, "")
	require.NoError(t, err)
	_, _, err = c.Compress(second, "")
	require.NoError(t, err)
	a2, _, err := c.Compress(first, "")
	require.NoError(t, err)
	require.Equal(t, a1, a2)

	back, _, err := c.Decompress(a1)
	require.NoError(t, err)
	require.Equal(t, first, back)
}

func TestConcurrentCodec(t *testing.T) {
	c := NewCodec(nil)
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		data := []byte(strings.Repeat(strconv.Itoa(i), 1000+i))
		go func() {
			out, _, err := c.Compress(data, "")
			if err == nil {
				var back []byte
				back, _, err = c.Decompress(out)
				if err == nil && !bytes.Equal(back, data) {
					err = fmt.Errorf("mismatch for %q", data[:1])
				}
			}
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-errs)
	}
}

func TestCompressionRatio(t *testing.T) {
	cw := tabwriter.NewWriter(os.Stderr, 0, 15, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(cw, "huffgo\tstd_huffman_only\t")
	data := opticks(t)

	_, stats, err := Compress(data, ".txt")
	require.NoError(t, err)

	buf := bytes.NewBuffer(nil)
	sw, _ := flate.NewWriter(buf, flate.HuffmanOnly)
	sw.Write(data)
	sw.Close()

	fmt.Fprintf(cw, "%.2f\t%.2f\t\n", stats.Ratio(), float64(buf.Len())/float64(len(data)))
	cw.Flush()
	require.Less(t, stats.Ratio(), 1.0)
}

func BenchmarkCompress(b *testing.B) {
	data := opticks(b)
	for i := 4; i <= 64; i *= 4 {
		input := data[:i*1024]
		b.Run("huffgo@size="+strconv.Itoa(i)+"KB", func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for n := 0; n < b.N; n++ {
				Compress(input, ".txt")
			}
		})
		b.Run("std_huffman_only@size="+strconv.Itoa(i)+"KB", func(b *testing.B) {
			sw, _ := flate.NewWriter(nil, flate.HuffmanOnly)
			buf := bytes.NewBuffer(nil)
			b.SetBytes(int64(len(input)))
			for n := 0; n < b.N; n++ {
				buf.Reset()
				sw.Reset(buf)
				sw.Write(input)
				sw.Close()
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := opticks(b)
	out, _, err := Compress(data, ".txt")
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		Decompress(out)
	}
}

func TestErrorsReexported(t *testing.T) {
	for _, tc := range []struct {
		public, root error
	}{
		{ErrEmptyInput, errors.ErrEmptyInput},
		{ErrTooLarge, errors.ErrTooLarge},
		{ErrUnsupportedType, errors.ErrUnsupportedType},
		{ErrMalformedContainer, errors.ErrMalformedContainer},
		{ErrCorruptStream, errors.ErrCorruptStream},
		{ErrUnmappedSymbol, errors.ErrUnmappedSymbol},
	} {
		require.ErrorIs(t, fmt.Errorf("wrapped: %w", tc.root), tc.public)
	}
}
