// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"fmt"
	"iter"
)

const (
	// PageSize is the number of code bytes sent per write command
	PageSize = 128
	// BlockSize is the granularity the image is padded to
	BlockSize = 512
)

var pageMagic = []byte{0x5A, 0xA5}

// padImage pads image with 0xFF to the next multiple of BlockSize.
// The input is not modified.
func padImage(image []byte) []byte {
	size := (len(image) + BlockSize - 1) / BlockSize * BlockSize
	out := make([]byte, size)
	copy(out, image)
	for i := len(image); i < size; i++ {
		out[i] = 0xFF
	}
	return out
}

func (v *Variant) pageHeader(addr int) []byte {
	if v.FlashHeader == pageHeaderMagic {
		return append([]byte{byte(addr >> 8), byte(addr)}, pageMagic...)
	}
	return []byte{0x00, 0x00, byte(addr >> 8), byte(addr), 0x00, PageSize}
}

// Flash returns a sequence that writes image page by page. Each step
// yields the fraction of the padded image written so far; the last
// fraction is exactly 1. An error ends the sequence.
//
// The sequence can be consumed once; a second range over it yields
// ErrFlashConsumed.
func (s *Session) Flash(image []byte) iter.Seq2[float64, error] {
	const step = "flash"
	return func(yield func(float64, error) bool) {
		if s.flashUsed {
			yield(0, &StepError{Step: step, Err: ErrFlashConsumed})
			return
		}
		if err := s.expect(step, StateErased); err != nil {
			yield(0, err)
			return
		}
		s.flashUsed = true

		if err := s.checkImage(image); err != nil {
			yield(0, &StepError{Step: step, Err: err})
			return
		}

		code := padImage(image)
		v := s.variant
		s.log.Infof("flashing %d bytes (%d padded)", len(image), len(code))

		for addr := 0; addr < len(code); addr += PageSize {
			page := code[addr : addr+PageSize]
			s.log.Debugf("flash region (%04X, %04X)", addr, addr+PageSize-1)

			cmd := v.FlashNext
			if addr == 0 {
				cmd = v.FlashFirst
			}
			payload := append(v.pageHeader(addr), page...)
			if err := s.send(cmd, payload); err != nil {
				yield(0, s.fail(step, err))
				return
			}
			_, reply, err := s.recv()
			if err != nil {
				yield(0, s.fail(step, err))
				return
			}
			if err := s.checkPage(addr, page, reply); err != nil {
				yield(0, s.fail(step, err))
				return
			}

			if addr+PageSize == len(code) {
				s.state = StateFlashed
			}
			if !yield(float64(addr+PageSize)/float64(len(code)), nil) {
				return
			}
		}
	}
}

func (s *Session) checkImage(image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: empty image", ErrBadArguments)
	}
	if !s.info.Profile.Resolved {
		return fmt.Errorf("%w: refusing to flash %s", ErrUnresolved, s.info.Profile.Name)
	}
	if limit := s.info.Profile.ROMSize * 1024; limit > 0 && len(image) > limit {
		return fmt.Errorf("%w: image of %d bytes exceeds %d KB of flash",
			ErrBadArguments, len(image), s.info.Profile.ROMSize)
	}
	return nil
}

// checkPage compares the echoed page sum. Only strict mode fails on a
// mismatch.
func (s *Session) checkPage(addr int, page, reply []byte) error {
	want := byte(checksum(0, page))
	if len(reply) > 0 && reply[0] == want {
		return nil
	}
	got := "none"
	if len(reply) > 0 {
		got = fmt.Sprintf("%02X", reply[0])
	}
	if s.config.StrictFlashChecksum {
		return fmt.Errorf("%w: page %04X echoed %s, want %02X", ErrChecksumMismatch, addr, got, want)
	}
	s.log.Debugf("page %04X echoed %s, want %02X", addr, got, want)
	return nil
}
