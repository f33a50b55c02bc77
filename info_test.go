// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"math"
	"testing"
)

func TestDecodeCountedClock(t *testing.T) {
	data := detectData(24, Signature{0xF0, 0x02})
	tests := []struct {
		baud int
		want float64
	}{
		{2400, 11.0587},
		{4800, 22.1174},
		{1200, 5.5293},
	}
	for _, tt := range tests {
		var d DeviceInfo
		d.decodeDetect(VariantFor(Protocol89), data, data[16:], tt.baud)
		if math.Abs(d.Fosc-tt.want) > 0.001 {
			t.Errorf("fosc at %d baud = %.4f, want %.4f", tt.baud, d.Fosc, tt.want)
		}
		if d.HasExtended() {
			t.Errorf("legacy info claims extended fields")
		}
	}
}

func TestDecodeSTC15(t *testing.T) {
	data := detectSTC15()
	d := DeviceInfo{Protocol: Protocol15}
	d.decodeDetect(VariantFor(Protocol15), data, data[16:], 2400)

	if math.Abs(d.Fosc-22.1184) > 1e-9 {
		t.Errorf("fosc %v", d.Fosc)
	}
	if d.WakeupFosc != 35.0 || d.Vref != 1300 {
		t.Errorf("wakeup %v vref %v", d.WakeupFosc, d.Vref)
	}
	if d.TestDate != "2019-12-3" || d.Version != "7.1.1T" {
		t.Errorf("test date %q version %q", d.TestDate, d.Version)
	}
	if d.LowVoltage != 0 {
		t.Errorf("low voltage %v reported for a 15 series part", d.LowVoltage)
	}
	if !d.HasExtended() {
		t.Errorf("15 series info without extended fields")
	}
}

func TestLowVoltage(t *testing.T) {
	tests := []struct {
		raw  byte
		want float64
	}{
		{191, 2.2},
		{190, 2.4},
		{185, 3.9},
	}
	for _, tt := range tests {
		data := detectSTC8()
		data[10] = tt.raw
		var d DeviceInfo
		d.decodeDetect(VariantFor(Protocol8), data, data[16:], 2400)
		if math.Abs(d.LowVoltage-tt.want) > 1e-9 {
			t.Errorf("raw %d: low voltage %v, want %v", tt.raw, d.LowVoltage, tt.want)
		}
	}
}

func TestSwitches(t *testing.T) {
	data := detect12C5A()
	d := DeviceInfo{Protocol: Protocol12C5A, Info: data[16:]}

	want := map[string]bool{
		"Disable reset2 low level detect":     false,
		"Reset pin not use as I/O port":       true,
		"Disable long power-on-reset latency": true,
		"Oscillator high gain":                true,
		"External system clock source":        true,
		"WDT disable after power-on-reset":    true,
		"WDT count in idle mode":              true,
		"Not erase data EEPROM":               false,
		"Download regardless of P1":           true,
	}
	got := d.Switches()
	if len(got) != len(want) {
		t.Fatalf("%d switches, want %d", len(got), len(want))
	}
	for _, sw := range got {
		if on, ok := want[sw.Name]; !ok || on != sw.On {
			t.Errorf("%s = %v", sw.Name, sw.On)
		}
	}

	prescale, ok := d.WDTPrescale()
	if !ok || prescale != 64 {
		t.Errorf("WDTPrescale() = %d, %v; want 64, true", prescale, ok)
	}
}

func TestSwitchesShortInfo(t *testing.T) {
	d := DeviceInfo{Protocol: Protocol12C5A, Info: []byte{0x62, 0x49, 0x00, 0xD1, 0x70, 0xFF, 0xBF, 0xF7}}
	if got := d.Switches(); len(got) != 5 {
		t.Fatalf("%d switches from 8 info bytes, want 5", len(got))
	}
	if _, ok := d.WDTPrescale(); ok {
		t.Fatalf("WDT prescale decoded from short info")
	}

	d = DeviceInfo{Protocol: Protocol8, Info: make([]byte, 32)}
	if got := d.Switches(); len(got) != 0 {
		t.Fatalf("switches reported for protocol 8")
	}
}
