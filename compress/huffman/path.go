// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizeTag makes sure a non-empty type tag starts with a dot.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.HasPrefix(tag, ".") {
		return tag
	}
	return "." + tag
}

// Extension returns the extension of the last element of path, with the leading
// dot. Unlike filepath.Ext, a name made only of a leading dot and a word, such
// as ".bashrc", has no extension.
func Extension(path string) string {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		return ""
	}
	return ext
}

// ResolvePath reconciles an output path with the type tag stored in a container.
// A path without extension gets the tag appended, a path with another extension
// gets it replaced. The stored tag always wins; an empty tag leaves the path as is.
func ResolvePath(path, tag string) string {
	tag = NormalizeTag(tag)
	if tag == "" {
		return path
	}
	ext := Extension(path)
	if ext == tag {
		return path
	}
	return strings.TrimSuffix(path, ext) + tag
}

// Admit checks the extension of name against the configured allowlist.
// It is meant for front-ends, the codec itself accepts any bytes.
func (c *Codec) Admit(name string) error {
	allowed := c.cfg.Policy.AllowedExtensions
	if len(allowed) == 0 {
		return nil
	}
	ext := Extension(name)
	for _, a := range allowed {
		if strings.EqualFold(NormalizeTag(a), ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
}
