// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"bytes"
	"errors"
	"testing"
)

func TestPadImage(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 512},
		{300, 512},
		{511, 512},
		{512, 512},
		{513, 1024},
		{4000, 4096},
	}
	for _, tt := range tests {
		image := bytes.Repeat([]byte{0x5A}, tt.in)
		got := padImage(image)
		if len(got) != tt.want {
			t.Errorf("padImage(%d bytes) = %d bytes, want %d", tt.in, len(got), tt.want)
			continue
		}
		if !bytes.Equal(got[:tt.in], image) {
			t.Errorf("padImage(%d bytes) changed the code", tt.in)
		}
		for i := tt.in; i < len(got); i++ {
			if got[i] != 0xFF {
				t.Errorf("padImage(%d bytes): byte %d = %02X, want FF", tt.in, i, got[i])
				break
			}
		}
		if len(image) != tt.in {
			t.Errorf("input modified")
		}
	}
}

func TestPageHeader(t *testing.T) {
	legacy := VariantFor(Protocol12C5A).pageHeader(0x0180)
	if want := []byte{0x00, 0x00, 0x01, 0x80, 0x00, 0x80}; !bytes.Equal(legacy, want) {
		t.Errorf("legacy header % X, want % X", legacy, want)
	}
	magic := VariantFor(Protocol15).pageHeader(0x0180)
	if want := []byte{0x01, 0x80, 0x5A, 0xA5}; !bytes.Equal(magic, want) {
		t.Errorf("magic header % X, want % X", magic, want)
	}
}

// eraseSession walks s to StateErased.
func eraseSession(t *testing.T, s *Session) {
	t.Helper()
	steps := []struct {
		name string
		run  func() error
	}{
		{"detect", s.Detect},
		{"ping", func() error { return s.Ping(PingBeforeHandshake) }},
		{"handshake", s.Handshake},
		{"ping", func() error { return s.Ping(PingBeforeErase) }},
		{"erase", s.Erase},
	}
	for _, st := range steps {
		if err := st.run(); err != nil {
			t.Fatalf("%s: %v", st.name, err)
		}
	}
}

func testImage(n int) []byte {
	image := make([]byte, n)
	for i := range image {
		image[i] = byte(i % 251)
	}
	return image
}

func TestFlashProgress(t *testing.T) {
	d := newSimDevice(t, 2, detectSTC15())
	s := testSession(d)
	eraseSession(t, s)

	image := testImage(300)
	var fractions []float64
	for fraction, err := range s.Flash(image) {
		if err != nil {
			t.Fatalf("flash: %v", err)
		}
		fractions = append(fractions, fraction)
	}

	want := []float64{0.25, 0.5, 0.75, 1.0}
	if len(fractions) != len(want) {
		t.Fatalf("fractions %v, want %v", fractions, want)
	}
	for i := range want {
		if fractions[i] != want[i] {
			t.Fatalf("fractions %v, want %v", fractions, want)
		}
	}
	if s.State() != StateFlashed {
		t.Fatalf("state %v, want %v", s.State(), StateFlashed)
	}

	written := bytes.Join([][]byte{d.image[0], d.image[128], d.image[256], d.image[384]}, nil)
	if !bytes.Equal(written, padImage(image)) {
		t.Fatalf("device holds % X", written)
	}

	var writes []CommandType
	for _, cmd := range d.commands() {
		if cmd == COMMAND_WRITE_FIRST || cmd == COMMAND_WRITE_NEXT {
			writes = append(writes, cmd)
		}
	}
	wantWrites := []CommandType{COMMAND_WRITE_FIRST, COMMAND_WRITE_NEXT, COMMAND_WRITE_NEXT, COMMAND_WRITE_NEXT}
	if len(writes) != len(wantWrites) {
		t.Fatalf("write commands %v, want %v", writes, wantWrites)
	}
	for i := range writes {
		if writes[i] != wantWrites[i] {
			t.Fatalf("write commands %v, want %v", writes, wantWrites)
		}
	}
}

func TestFlashConsumed(t *testing.T) {
	d := newSimDevice(t, 2, detectSTC15())
	s := testSession(d)
	eraseSession(t, s)

	seq := s.Flash(testImage(128))
	for _, err := range seq {
		if err != nil {
			t.Fatalf("flash: %v", err)
		}
	}

	var got error
	for _, err := range seq {
		got = err
	}
	if !errors.Is(got, ErrFlashConsumed) {
		t.Fatalf("second range = %v, want ErrFlashConsumed", got)
	}
	for _, err := range s.Flash(testImage(128)) {
		got = err
	}
	if !errors.Is(got, ErrFlashConsumed) {
		t.Fatalf("second Flash = %v, want ErrFlashConsumed", got)
	}
}

func TestFlashStopEarly(t *testing.T) {
	d := newSimDevice(t, 2, detectSTC15())
	s := testSession(d)
	eraseSession(t, s)

	for _, err := range s.Flash(testImage(1024)) {
		if err != nil {
			t.Fatalf("flash: %v", err)
		}
		break
	}
	if len(d.image) != 1 {
		t.Fatalf("%d pages written after break, want 1", len(d.image))
	}
	if s.State() != StateErased {
		t.Fatalf("state %v, want %v", s.State(), StateErased)
	}
}

func TestFlashPageChecksum(t *testing.T) {
	for _, strict := range []bool{false, true} {
		d := newSimDevice(t, 2, detectSTC15())
		d.override[COMMAND_WRITE_NEXT] = func(p []byte) []simReply {
			return []simReply{d.frame(COMMAND_WRITE, []byte{byte(checksum(1, p[4:]))})}
		}
		s := testSession(d, WithStrictFlashChecksum(strict))
		eraseSession(t, s)

		pages := 0
		var ferr error
		for _, err := range s.Flash(testImage(512)) {
			if err != nil {
				ferr = err
				break
			}
			pages++
		}

		if !strict {
			if ferr != nil || pages != 4 {
				t.Fatalf("lenient: %d pages, err %v", pages, ferr)
			}
			continue
		}
		if !errors.Is(ferr, ErrChecksumMismatch) {
			t.Fatalf("strict: err %v, want ErrChecksumMismatch", ferr)
		}
		if pages != 1 {
			t.Fatalf("strict: %d pages before failure, want 1", pages)
		}
		if s.State() != StateErased {
			t.Fatalf("strict: state %v, want %v", s.State(), StateErased)
		}
	}
}

func TestFlashRejectsImage(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
	}{
		{"empty", nil},
		{"larger than flash", testImage(8*1024 + 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newSimDevice(t, 2, detectSTC15())
			s := testSession(d)
			eraseSession(t, s)

			var got error
			for _, err := range s.Flash(tt.image) {
				got = err
			}
			if !errors.Is(got, ErrBadArguments) {
				t.Fatalf("Flash() = %v, want ErrBadArguments", got)
			}
			if len(d.image) != 0 {
				t.Fatalf("pages written for a rejected image")
			}
		})
	}
}

func TestFlashBeforeErase(t *testing.T) {
	d := newSimDevice(t, 2, detectSTC15())
	s := testSession(d)
	if err := s.Detect(); err != nil {
		t.Fatalf("detect: %v", err)
	}

	var got error
	for _, err := range s.Flash(testImage(128)) {
		got = err
	}
	if !errors.Is(got, ErrBadState) {
		t.Fatalf("Flash() = %v, want ErrBadState", got)
	}
}
