// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"bytes"
	"testing"
	"time"
)

// simReply is a device frame waiting to go out. A frame sent at one
// baud rate is garbage when read at another.
type simReply struct {
	frame []byte
	baud  int
	// atRead frames are clocked out at whatever rate the host listens
	// at, as long as the device accepts that rate.
	atRead bool
}

// simDevice is an STC bootloader on the far end of a Transport.
type simDevice struct {
	t *testing.T

	mode   int
	detect []byte
	// silent is the number of trigger writes ignored before answering
	silent int
	// accept reports whether the device can follow a switch to baud
	accept func(baud int) bool
	// override replaces the default reply for a command
	override map[CommandType]func(payload []byte) []simReply

	baud     int
	parity   Parity
	bauds    []int
	parities []Parity
	flushes  int
	resets   int

	pulses int
	frames []Frame
	image  map[int][]byte

	rx    []byte
	queue []simReply
	tx    []byte
}

func newSimDevice(t *testing.T, mode int, detect []byte) *simDevice {
	return &simDevice{
		t:        t,
		mode:     mode,
		detect:   detect,
		baud:     2400,
		override: make(map[CommandType]func([]byte) []simReply),
		image:    make(map[int][]byte),
	}
}

func (d *simDevice) frame(cmd CommandType, payload []byte) simReply {
	return simReply{frame: encodeFrame(DEVICE_START, cmd, payload, d.mode), baud: d.baud}
}

func (d *simDevice) Write(buf []byte) (int, error) {
	if len(d.rx) == 0 && len(bytes.Trim(buf, string([]byte{DETECT_PULSE}))) == 0 {
		d.pulses++
		if d.pulses > d.silent {
			d.queue = append(d.queue, d.frame(0x50, d.detect))
		}
		return len(buf), nil
	}

	d.rx = append(d.rx, buf...)
	for len(d.rx) >= 5 {
		if !bytes.HasPrefix(d.rx, HOST_START) {
			d.t.Errorf("host frame without preamble: % X", d.rx)
			d.rx = nil
			break
		}
		total := 2 + (int(d.rx[3])<<8 | int(d.rx[4]))
		if len(d.rx) < total {
			break
		}
		f := d.rx[:total]
		d.rx = d.rx[total:]

		if f[total-1] != FRAME_END {
			d.t.Errorf("host frame without terminator: % X", f)
		}
		sum := checksum(0, f[2:total-1-d.mode])
		if d.mode > 0 && f[total-2] != byte(sum) {
			d.t.Errorf("host frame low checksum %02X, want %02X", f[total-2], byte(sum))
		}
		if d.mode > 1 && f[total-3] != byte(sum>>8) {
			d.t.Errorf("host frame high checksum %02X, want %02X", f[total-3], byte(sum>>8))
		}

		cmd := CommandType(f[5])
		payload := append([]byte(nil), f[6:total-1-d.mode]...)
		d.frames = append(d.frames, Frame{cmd, payload})
		d.queue = append(d.queue, d.handle(cmd, payload)...)
	}
	return len(buf), nil
}

func (d *simDevice) handle(cmd CommandType, payload []byte) []simReply {
	if fn, ok := d.override[cmd]; ok {
		return fn(payload)
	}
	switch cmd {
	case COMMAND_PING_PARITY:
		return []simReply{d.frame(REPLY_PING_PARITY, nil)}
	case COMMAND_PING_FLASHED:
		return []simReply{d.frame(REPLY_PING_FLASHED, nil)}
	case COMMAND_PING_LEGACY:
		return []simReply{d.frame(REPLY_PING_LEGACY, nil)}
	case COMMAND_BAUD_PROBE, COMMAND_BAUD_SET:
		r := d.frame(cmd, nil)
		r.atRead = true
		return []simReply{r}
	case COMMAND_BAUD_FIXED:
		return []simReply{d.frame(cmd, nil)}
	case COMMAND_ERASE:
		return []simReply{d.frame(REPLY_ERASE, nil)}
	case COMMAND_ERASE_PREPARE:
		return []simReply{d.frame(cmd, nil)}
	case COMMAND_ERASE_FLASH:
		return []simReply{d.frame(cmd, []byte{0xF7, 0x00, 0x12, 0x34, 0x56, 0x78, 0x9A, 0x00})}
	case COMMAND_WRITE:
		addr := int(payload[2])<<8 | int(payload[3])
		return d.write(addr, payload[6:])
	case COMMAND_WRITE_FIRST, COMMAND_WRITE_NEXT:
		addr := int(payload[0])<<8 | int(payload[1])
		return d.write(addr, payload[4:])
	case COMMAND_OPTIONS:
		return []simReply{d.frame(cmd, nil)}
	}
	return nil
}

func (d *simDevice) write(addr int, data []byte) []simReply {
	d.image[addr] = data
	return []simReply{d.frame(COMMAND_WRITE, []byte{byte(checksum(0, data))})}
}

func (d *simDevice) Read(p []byte) (int, error) {
	for len(d.tx) == 0 && len(d.queue) > 0 {
		r := d.queue[0]
		d.queue = d.queue[1:]
		ok := r.baud == d.baud
		if r.atRead {
			ok = d.accept == nil || d.accept(d.baud)
		}
		if ok {
			d.tx = append(d.tx, r.frame...)
		}
	}
	n := copy(p, d.tx)
	d.tx = d.tx[n:]
	return n, nil
}

func (d *simDevice) SetBaudRate(baud int) error {
	d.baud = baud
	d.bauds = append(d.bauds, baud)
	return nil
}

func (d *simDevice) BaudRate() int { return d.baud }

func (d *simDevice) SetParity(p Parity) error {
	d.parity = p
	d.parities = append(d.parities, p)
	return nil
}

func (d *simDevice) Flush() error {
	d.flushes++
	return nil
}

func (d *simDevice) ResetInputBuffer() error {
	d.resets++
	d.tx = nil
	d.queue = nil
	return nil
}

// commands lists the host commands seen, in order.
func (d *simDevice) commands() []CommandType {
	var out []CommandType
	for _, f := range d.frames {
		out = append(out, f.Command)
	}
	return out
}

func (d *simDevice) lastFrame(cmd CommandType) (Frame, bool) {
	for i := len(d.frames) - 1; i >= 0; i-- {
		if d.frames[i].Command == cmd {
			return d.frames[i], true
		}
	}
	return Frame{}, false
}

// legacyCount is the calibration counter that reads back as about
// 11.0592 MHz at 2400 baud.
const legacyCount = 0x0A75

// detectData builds a detect payload of size bytes: eight calibration
// counters followed by the info block.
func detectData(size int, sig Signature) []byte {
	data := make([]byte, size)
	for i := 0; i < 16; i += 2 {
		data[i] = byte(legacyCount >> 8)
		data[i+1] = byte(legacyCount & 0xFF)
	}
	info := data[16:]
	info[0] = 0x62
	info[1] = 'I'
	info[3] = sig[0]
	info[4] = sig[1]
	return data
}

func detect12C5A() []byte {
	data := detectData(32, Signature{0xD1, 0x70})
	info := data[16:]
	copy(info[5:], []byte{0xFF, 0xBF, 0xF7, 0xF5, 0xFF, 0xFD})
	return data
}

func detect89() []byte {
	data := detectData(24, Signature{0xF0, 0x02})
	data[16+2] = 0xFD
	return data
}

func detectSTC8() []byte {
	data := detectData(40, Signature{0xF6, 0x21})
	copy(data[0:3], []byte{0x01, 0x6E, 0x36})
	data[10] = 188
	data[16] = 0x72
	data[17] = 'U'
	data[21] = 0x03
	copy(data[22:24], []byte{0x88, 0xB8})
	copy(data[34:36], []byte{0x04, 0xD2})
	copy(data[36:39], []byte{0x21, 0x05, 0x17})
	return data
}

func detectSTC15() []byte {
	data := detectData(44, Signature{0xF4, 0x41})
	copy(data[0:2], []byte{0x88, 0xB8})
	copy(data[7:10], []byte{0x01, 0x51, 0x80})
	data[16] = 0x71
	data[17] = 'T'
	data[21] = 0x01
	copy(data[34:36], []byte{0x05, 0x14})
	copy(data[41:44], []byte{0x19, 0x12, 0x03})
	return data
}

func noSleep(time.Duration) {}

// testSession opens a session on d with short timeouts and no settle
// delays.
func testSession(d *simDevice, opts ...Option) *Session {
	base := []Option{
		withSleep(noSleep),
		WithRecvTimeout(20 * time.Millisecond),
		WithEraseTimeout(20 * time.Millisecond),
		WithDetectAttempts(10, 5*time.Millisecond),
	}
	return NewSession(d, append(base, opts...)...)
}
