// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"fmt"
)

// DeviceInfo is what the bootloader reports about itself.
type DeviceInfo struct {
	Signature Signature
	Profile   DeviceProfile
	Protocol  Protocol
	Version   string

	// Fosc is the measured system clock in MHz
	Fosc float64

	// 8 and 15 series only
	WakeupFosc float64 // kHz
	Vref       int     // mV
	TestDate   string

	// 8 series only, volts
	LowVoltage float64

	// SerialNumber is filled in by Erase when the device reports one.
	SerialNumber string

	// Info holds the option bytes, checksum stripped
	Info []byte
}

// HasExtended reports whether the wake-up timer, reference voltage and
// test date fields are meaningful.
func (d *DeviceInfo) HasExtended() bool {
	return d.Protocol == Protocol8 || d.Protocol == Protocol15
}

// calibrationDivisor converts the legacy counter sum to MHz.
const calibrationDivisor = 580974

func be16(b []byte) int {
	return int(b[0])<<8 | int(b[1])
}

func be24(b []byte) float64 {
	return float64(uint32(b[0])<<24|uint32(b[1])<<16|uint32(b[2])<<8) / 1e6
}

// decodeDetect fills the clock and family specific fields from the raw
// detect payload.
func (d *DeviceInfo) decodeDetect(v *Variant, payload, info []byte, baud int) {
	switch v.Fosc {
	case foscSTC8:
		d.Fosc = be24(payload[0:3])
		d.WakeupFosc = float64(be16(payload[22:24])) / 1000
		d.Vref = be16(payload[34:36])
		d.TestDate = fmt.Sprintf("20%x-%x-%x", payload[36], payload[37], payload[38])
		if payload[10] == 191 {
			d.LowVoltage = 2.2
		} else {
			d.LowVoltage = float64(191-int(payload[10]))*0.3 + 2.1
		}
		d.Version = fmt.Sprintf("%d.%d.%d%c", info[0]>>4, info[0]&0x0F, info[5], info[1])

	case foscSTC15:
		d.Fosc = be24(payload[7:10])
		d.WakeupFosc = float64(be16(payload[0:2])) / 1000
		d.Vref = be16(payload[34:36])
		d.TestDate = fmt.Sprintf("20%x-%x-%x", payload[41], payload[42], payload[43])
		d.Version = fmt.Sprintf("%d.%d.%d%c", info[0]>>4, info[0]&0x0F, info[5], info[1])

	default:
		var even, odd int
		for i := 0; i < 16; i += 2 {
			even += int(payload[i])
			odd += int(payload[i+1])
		}
		d.Fosc = float64(even*256+odd) / 8 * float64(baud) / calibrationDivisor
	}
}

// Switch is one boolean option bit.
type Switch struct {
	Index byte
	Mask  byte
	Name  string
}

var switches89 = []Switch{
	{2, 0x80, "Reset stops"},
	{2, 0x40, "Internal XRAM"},
	{2, 0x20, "Normal ALE pin"},
	{2, 0x10, "Full gain oscillator"},
	{2, 0x08, "Not erase data EEPROM"},
	{2, 0x04, "Download regardless of P1"},
	{2, 0x01, "12T mode"},
}

var switches12C5A = []Switch{
	{6, 0x40, "Disable reset2 low level detect"},
	{6, 0x01, "Reset pin not use as I/O port"},
	{7, 0x80, "Disable long power-on-reset latency"},
	{7, 0x40, "Oscillator high gain"},
	{7, 0x02, "External system clock source"},
	{8, 0x20, "WDT disable after power-on-reset"},
	{8, 0x04, "WDT count in idle mode"},
	{10, 0x02, "Not erase data EEPROM"},
	{10, 0x01, "Download regardless of P1"},
}

var switches12B = []Switch{
	{8, 0x02, "Not erase data EEPROM"},
}

// SwitchState pairs a Switch with its current value.
type SwitchState struct {
	Switch
	On bool
}

// Switches decodes the option bits known for the protocol. Bits that
// fall outside the captured info are skipped.
func (d *DeviceInfo) Switches() []SwitchState {
	var table []Switch
	switch d.Protocol {
	case Protocol89:
		table = switches89
	case Protocol12C5A:
		table = switches12C5A
	case Protocol12C52, Protocol12Cx052:
		table = switches12B
	}
	var states []SwitchState
	for _, sw := range table {
		if int(sw.Index) >= len(d.Info) {
			continue
		}
		states = append(states, SwitchState{sw, d.Info[sw.Index]&sw.Mask != 0})
	}
	return states
}

// WDTPrescale returns the watchdog prescaler on 12C5A parts.
func (d *DeviceInfo) WDTPrescale() (int, bool) {
	if d.Protocol != Protocol12C5A || len(d.Info) < 9 {
		return 0, false
	}
	return 1 << ((d.Info[8] & 0x07) + 1), true
}
