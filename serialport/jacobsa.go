// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package serialport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jacobsa/go-serial/serial"

	"github.com/openchirp/stcboot"
)

// jacobsaPort reopens the device whenever the line settings change.
//
// The driver cannot drain its output, so Flush waits for the bytes
// written since the last flush to clear the wire at the current rate.
type jacobsaPort struct {
	options serial.OpenOptions
	rwc     io.ReadWriteCloser
	parity  stcboot.Parity
	pending int
}

// jacobsaTimeout rounds the read timeout to the 100 ms steps termios
// supports.
func jacobsaTimeout(d time.Duration) uint {
	ms := uint(d / time.Millisecond)
	if ms < 100 {
		return 100
	}
	return ms / 100 * 100
}

func openJacobsa(cfg Config) (*jacobsaPort, error) {
	p := &jacobsaPort{
		options: serial.OpenOptions{
			PortName:              cfg.Name,
			BaudRate:              uint(cfg.BaudRate),
			DataBits:              8,
			StopBits:              1,
			ParityMode:            serial.PARITY_NONE,
			MinimumReadSize:       0,
			InterCharacterTimeout: jacobsaTimeout(cfg.ReadTimeout),
		},
	}
	if err := p.reopen(p.options); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *jacobsaPort) reopen(options serial.OpenOptions) error {
	if p.rwc != nil {
		if err := p.rwc.Close(); err != nil {
			return fmt.Errorf("serialport: close %s: %w", options.PortName, err)
		}
		p.rwc = nil
	}
	rwc, err := serial.Open(options)
	if err != nil {
		return fmt.Errorf("serialport: open %s: %w", options.PortName, err)
	}
	p.rwc = rwc
	p.options = options
	p.pending = 0
	return nil
}

// Read maps the EOF a timed out tty read produces to an empty read.
func (p *jacobsaPort) Read(buf []byte) (int, error) {
	n, err := p.rwc.Read(buf)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

func (p *jacobsaPort) Write(buf []byte) (int, error) {
	n, err := p.rwc.Write(buf)
	p.pending += n
	return n, err
}

func (p *jacobsaPort) BaudRate() int {
	return int(p.options.BaudRate)
}

func (p *jacobsaPort) SetBaudRate(baud int) error {
	if baud == p.BaudRate() {
		return nil
	}
	options := p.options
	options.BaudRate = uint(baud)
	return p.reopen(options)
}

func (p *jacobsaPort) SetParity(parity stcboot.Parity) error {
	if parity == p.parity {
		return nil
	}
	options := p.options
	switch parity {
	case stcboot.ParityEven:
		options.ParityMode = serial.PARITY_EVEN
	default:
		options.ParityMode = serial.PARITY_NONE
	}
	if err := p.reopen(options); err != nil {
		return err
	}
	p.parity = parity
	return nil
}

func (p *jacobsaPort) Flush() error {
	if p.pending > 0 {
		time.Sleep(time.Duration(p.pending) * byteTime(p.BaudRate(), p.parity))
		p.pending = 0
	}
	return nil
}

// ResetInputBuffer reads until the line is quiet.
func (p *jacobsaPort) ResetInputBuffer() error {
	buf := make([]byte, 256)
	for {
		n, err := p.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func (p *jacobsaPort) Close() error {
	if p.rwc == nil {
		return nil
	}
	err := p.rwc.Close()
	p.rwc = nil
	return err
}
