// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import "time"

// AutoISPDelay is how long the application gets to jump into the
// bootloader after the magic word.
const AutoISPDelay = 500 * time.Millisecond

// AutoISP sends magic at baud to firmware that resets itself into the
// bootloader on receipt, then restores the port's previous rate. An
// empty magic does nothing.
func AutoISP(port Transport, baud int, magic string) error {
	return autoISP(port, baud, magic, time.Sleep)
}

func autoISP(port Transport, baud int, magic string, sleep func(time.Duration)) error {
	if magic == "" {
		return nil
	}
	if baud <= 0 {
		return ErrBadArguments
	}

	bak := port.BaudRate()
	if err := port.SetBaudRate(baud); err != nil {
		return ioError(err)
	}
	if _, err := port.Write([]byte(magic)); err != nil {
		return ioError(err)
	}
	if err := port.Flush(); err != nil {
		return ioError(err)
	}
	sleep(AutoISPDelay)
	if err := port.SetBaudRate(bak); err != nil {
		return ioError(err)
	}
	return nil
}
