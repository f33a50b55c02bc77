// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import "io"

// Transport is the serial link to the target.
//
// Read must honour a short per-read timeout and return (0, nil) when
// nothing arrived in that window; the packet reader treats an empty
// read as a stalled link. Baud rate and parity are changed in place
// while the port stays open.
type Transport interface {
	io.ReadWriter

	SetBaudRate(baud int) error
	BaudRate() int
	SetParity(p Parity) error

	// Flush blocks until all written bytes have left the UART.
	Flush() error
	// ResetInputBuffer discards anything received but not yet read.
	ResetInputBuffer() error
}
