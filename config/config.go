// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
)

type (
	Codec struct {
		// MaxInputSize is the largest buffer Compress accepts. The whole input and the
		// whole packed payload are held in memory at once, so this bounds the peak usage
		// of a single call to roughly twice the value.
		MaxInputSize int64
		// MaxMetaSize limits the length of the metadata section (code table and type tag)
		// a container may declare. A code table for 256 symbols stays well below it.
		MaxMetaSize uint32
	}

	Policy struct {
		// AllowedExtensions lists the file extensions (with the leading dot) a front-end
		// may hand to the codec. Matching is case-insensitive. An empty list admits
		// every file.
		AllowedExtensions []string
	}

	Output struct {
		// Extension is appended to the input name to form the default container name.
		Extension string
		// FileMode is used for every file written by a front-end.
		FileMode os.FileMode
		// TempSuffixLength is the length of the random suffix of the temporary file
		// written before being renamed into place.
		TempSuffixLength int
	}
)

// Config holds settings shared by the codec and the front-ends calling it.
type Config struct {
	Codec  Codec
	Policy Policy
	Output Output
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		Codec: Codec{
			MaxInputSize: 1 << 30,
			MaxMetaSize:  1 << 20,
		},
		Policy: Policy{
			AllowedExtensions: []string{
				".txt", ".text", ".md", ".csv", ".tsv", ".log", ".json", ".xml",
				".html", ".htm", ".yaml", ".yml", ".ini", ".cfg", ".conf",
			},
		},
		Output: Output{
			Extension:        ".huff",
			FileMode:         0o644,
			TempSuffixLength: 8,
		},
	}
}
