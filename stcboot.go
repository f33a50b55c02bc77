// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stcboot provides the low level interface to the ISP
// bootloader found in STC 8051 microcontrollers.
//
// Every STC part carries a mask ROM bootloader that listens on UART
// after power-on. Several incompatible generations of the protocol
// exist (89, 12C5A, 12C52, 12Cx052, 15 and 8 series); the Session
// detects the part, picks the matching protocol and then walks it
// through handshake, erase, flash, options and terminate.
package stcboot

import (
	"errors"
	"fmt"
)

var ErrTimeout = errors.New("Timed out waiting for device")

var ErrCorruptFrame = errors.New("The received packet was malformed")

var ErrChecksumMismatch = errors.New("The received packet failed its checksum")

var ErrIO = errors.New("Error interacting with serial port")

var ErrUnresolved = errors.New("Unknown device model")

var ErrNoBaudAgreement = errors.New("Device did not accept any baud rate")

var ErrUnsupported = errors.New("Operation not supported for this protocol")

var ErrUnknownProtocol = errors.New("Unable to determine the device protocol")

var ErrUnexpectedReply = errors.New("Unexpected reply from device")

var ErrBadState = errors.New("Operation not allowed in the current session state")

var ErrBadArguments = errors.New("The arguments supplied are invalid")

var ErrFlashConsumed = errors.New("Flash sequence has already been consumed")

// errNoData is reported when a read returns nothing within the
// per-read timeout. It is an ErrIO, but the packet reader retries it
// while hunting for a preamble.
var errNoData = fmt.Errorf("%w: no data", ErrIO)

// StepError names the programming step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err leaves the session unusable. Timeouts and
// damaged frames are not fatal on their own; they are retried by the
// steps that have a retry budget.
func IsFatal(err error) bool {
	return errors.Is(err, ErrIO) ||
		errors.Is(err, ErrNoBaudAgreement) ||
		errors.Is(err, ErrUnknownProtocol)
}

// retryable reports whether a receive error may be cured by asking again.
func retryable(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrCorruptFrame) ||
		errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, errNoData)
}

func ioError(err error) error {
	if err == nil || errors.Is(err, ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}
