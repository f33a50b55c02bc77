// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"bytes"
	"io"
	"time"
)

// checksum sums data into a 16 bit accumulator; the low byte is the
// 1 byte checksum and the full value is the 2 byte checksum.
func checksum(seed uint16, data []byte) uint16 {
	sum := seed
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

// encodePacket encodes a command and payload into a host frame.
// mode is the number of trailing checksum bytes (0, 1 or 2).
func encodePacket(cmd CommandType, payload []byte, mode int) []byte {
	return encodeFrame(HOST_START, cmd, payload, mode)
}

func encodeFrame(start []byte, cmd CommandType, payload []byte, mode int) []byte {
	n := 1 + 2 + 1 + len(payload) + mode + 1
	buf := make([]byte, 0, len(start)+n-1)
	buf = append(buf, start...)
	buf = append(buf, byte(n>>8), byte(n), byte(cmd))
	buf = append(buf, payload...)

	sum := checksum(0, buf[len(start)-1:])
	if mode > 1 {
		buf = append(buf, byte(sum>>8))
	}
	if mode > 0 {
		buf = append(buf, byte(sum))
	}
	return append(buf, FRAME_END)
}

// readFull reads exactly n bytes. An empty read means the per-read
// timeout expired with nothing on the wire.
func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := r.Read(buf[got:])
		if err != nil {
			return nil, ioError(err)
		}
		if m == 0 {
			return nil, errNoData
		}
		got += m
	}
	return buf, nil
}

// decodePacket waits up to timeout for a frame starting with start and
// returns its command and payload. settle is slept once the start bytes
// matched, giving slow targets time to clock out the rest.
func decodePacket(r io.Reader, start []byte, mode int, timeout, settle time.Duration) (CommandType, []byte, error) {
	deadline := time.Now().Add(timeout)
	for {
		if !time.Now().Before(deadline) {
			return 0, nil, ErrTimeout
		}
		s, err := readFull(r, len(start))
		if err == errNoData {
			continue
		} else if err != nil {
			return 0, nil, err
		}
		if bytes.Equal(s, start) {
			break
		}
	}
	if settle > 0 {
		time.Sleep(settle)
	}

	sum := uint16(start[len(start)-1])

	s, err := readFull(r, 2)
	if err != nil {
		return 0, nil, err
	}
	n := int(s[0])<<8 | int(s[1])
	if n > MaxFrameLength || n < 5+mode {
		return 0, nil, ErrCorruptFrame
	}
	sum = checksum(sum, s)

	s, err = readFull(r, n-3)
	if err != nil {
		return 0, nil, err
	}
	if s[n-4] != FRAME_END {
		return 0, nil, ErrCorruptFrame
	}

	sum = checksum(sum, s[:len(s)-1-mode])
	if mode > 0 && byte(sum) != s[len(s)-2] {
		return 0, nil, ErrChecksumMismatch
	}
	if mode > 1 && byte(sum>>8) != s[len(s)-3] {
		return 0, nil, ErrChecksumMismatch
	}

	return CommandType(s[0]), s[1 : len(s)-1-mode], nil
}
