// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package serialport opens a serial device as an stcboot.Transport.
//
// Two drivers are available. "bugst" (the default) uses go.bug.st/serial
// and reconfigures the port in place. "jacobsa" uses
// github.com/jacobsa/go-serial, which cannot change settings on an open
// port, so it closes and reopens the device on every baud or parity
// change.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openchirp/stcboot"
)

const (
	DriverBugst   = "bugst"
	DriverJacobsa = "jacobsa"
)

// DefaultReadTimeout is the per-read timeout. A read that sees no data
// in this window returns (0, nil).
const DefaultReadTimeout = 50 * time.Millisecond

var ErrUnknownDriver = errors.New("serialport: unknown driver")

// Config describes the port to open.
type Config struct {
	Name        string
	BaudRate    int
	Driver      string
	ReadTimeout time.Duration
}

// Port is an open serial device.
type Port interface {
	stcboot.Transport
	io.Closer
}

// Drivers lists the accepted Config.Driver values.
func Drivers() []string {
	return []string{DriverBugst, DriverJacobsa}
}

// Open opens the port at cfg.BaudRate, 8 data bits, no parity, one
// stop bit.
func Open(cfg Config) (Port, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("serialport: no port name")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("serialport: invalid baud rate %d", cfg.BaudRate)
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}

	var (
		port Port
		err  error
	)
	switch cfg.Driver {
	case "", DriverBugst:
		port, err = openBugst(cfg)
	case DriverJacobsa:
		port, err = openJacobsa(cfg)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return port, nil
}

// byteTime is how long one 8N1 or 8E1 character takes on the wire.
func byteTime(baud int, parity stcboot.Parity) time.Duration {
	bits := 10
	if parity != stcboot.ParityNone {
		bits++
	}
	return time.Duration(bits) * time.Second / time.Duration(baud)
}
