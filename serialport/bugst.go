// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package serialport

import (
	"fmt"

	"go.bug.st/serial"

	"github.com/openchirp/stcboot"
)

type bugstPort struct {
	port serial.Port
	mode serial.Mode
}

func openBugst(cfg Config) (*bugstPort, error) {
	mode := serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Name, &mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Name, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("serialport: set timeout: %w", err)
	}
	return &bugstPort{port: port, mode: mode}, nil
}

func (p *bugstPort) Read(buf []byte) (int, error) {
	return p.port.Read(buf)
}

func (p *bugstPort) Write(buf []byte) (int, error) {
	return p.port.Write(buf)
}

func (p *bugstPort) BaudRate() int {
	return p.mode.BaudRate
}

func (p *bugstPort) SetBaudRate(baud int) error {
	mode := p.mode
	mode.BaudRate = baud
	if err := p.port.SetMode(&mode); err != nil {
		return err
	}
	p.mode = mode
	return nil
}

func (p *bugstPort) SetParity(parity stcboot.Parity) error {
	mode := p.mode
	switch parity {
	case stcboot.ParityEven:
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}
	if err := p.port.SetMode(&mode); err != nil {
		return err
	}
	p.mode = mode
	return nil
}

func (p *bugstPort) Flush() error {
	return p.port.Drain()
}

func (p *bugstPort) ResetInputBuffer() error {
	return p.port.ResetInputBuffer()
}

func (p *bugstPort) Close() error {
	return p.port.Close()
}

// List returns the serial ports present on the system.
func List() ([]string, error) {
	return serial.GetPortsList()
}
