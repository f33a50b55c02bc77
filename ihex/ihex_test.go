// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ihex

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const blinky = `:03000000020008F3
:0500080075905580FE1B
:00000001FF
`

func TestDecode(t *testing.T) {
	image, err := Decode(strings.NewReader(blinky))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []byte{0x02, 0x00, 0x08, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x75, 0x90, 0x55, 0x80, 0xFE}
	if !bytes.Equal(image, want) {
		t.Errorf("image = % X, want % X", image, want)
	}
}

func TestDecodeExtendedLinear(t *testing.T) {
	src := ":020000040001F9\n:01001000AA45\n:00000001FF\n"
	image, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(image) != 0x10011 {
		t.Fatalf("len = %#x, want 0x10011", len(image))
	}
	if image[0x10010] != 0xAA || image[0] != 0xFF {
		t.Errorf("unexpected content around 0x10010")
	}
}

func TestDecodeBadChecksum(t *testing.T) {
	src := ":03000000020008F4\n:00000001FF\n"
	if _, err := Decode(strings.NewReader(src)); err == nil {
		t.Fatal("expected checksum error")
	} else if !strings.HasPrefix(err.Error(), "ihex:") {
		t.Errorf("error %q lacks ihex prefix", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	bin := filepath.Join(dir, "app.bin")
	if err := os.WriteFile(bin, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	image, err := Load(bin)
	if err != nil {
		t.Fatalf("Load(bin): %v", err)
	}
	if !bytes.Equal(image, []byte{1, 2, 3}) {
		t.Errorf("raw image = % X", image)
	}

	hex := filepath.Join(dir, "app.IHX")
	if err := os.WriteFile(hex, []byte(blinky), 0o644); err != nil {
		t.Fatal(err)
	}
	image, err = Load(hex)
	if err != nil {
		t.Fatalf("Load(hex): %v", err)
	}
	if len(image) != 13 {
		t.Errorf("hex image length = %d, want 13", len(image))
	}
}
