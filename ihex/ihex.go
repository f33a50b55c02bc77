// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ihex loads code images for flashing, decoding Intel HEX into
// a flat binary.
package ihex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"
)

// MaxImageSize bounds the flat image a HEX file may describe.
const MaxImageSize = 1 << 20

var ErrTooLarge = errors.New("ihex: image too large")

// Decode converts Intel HEX records into a flat image starting at
// address 0. Gaps between records are filled with 0xFF.
func Decode(r io.Reader) ([]byte, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("ihex: %w", err)
	}

	var end uint32
	for _, seg := range mem.GetDataSegments() {
		if e := seg.Address + uint32(len(seg.Data)); e > end {
			end = e
		}
	}
	if end > MaxImageSize {
		return nil, fmt.Errorf("%w: data up to 0x%X", ErrTooLarge, end)
	}
	if end == 0 {
		return []byte{}, nil
	}
	return mem.ToBinary(0, end, 0xFF), nil
}

// IsHex reports whether path names an Intel HEX file.
func IsHex(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihx":
		return true
	}
	return false
}

// Load reads a code image: Intel HEX for .hex and .ihx files, raw
// binary otherwise.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !IsHex(path) {
		return data, nil
	}
	image, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return image, nil
}
