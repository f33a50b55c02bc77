// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openchirp/stcboot"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(22)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

// renderInfo formats the detect report.
func renderInfo(info stcboot.DeviceInfo) string {
	var b strings.Builder
	row := func(key, format string, args ...any) {
		b.WriteString(keyStyle.Render(key))
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteByte('\n')
	}

	b.WriteString(titleStyle.Render(info.Profile.Name))
	b.WriteByte('\n')
	row("Signature", "%v", info.Signature)
	row("Protocol", "%v", info.Protocol)
	row("System clock", "%.3f MHz", info.Fosc)
	if info.HasExtended() {
		row("Wake-up timer", "%.3f kHz", info.WakeupFosc)
		row("Reference voltage", "%d mV", info.Vref)
		if info.Protocol == stcboot.Protocol8 {
			row("Low voltage detect", "%.1f V", info.LowVoltage)
		}
		row("Test date", "%s", info.TestDate)
	}
	row("Firmware version", "%s", info.Version)
	if info.Profile.Resolved {
		row("Flash", "%d KB", info.Profile.ROMSize)
	}
	if info.SerialNumber != "" {
		row("Serial number", "%s", info.SerialNumber)
	}
	if wdt, ok := info.WDTPrescale(); ok {
		row("WDT prescale", "%d", wdt)
	}
	for _, sw := range info.Switches() {
		mark := "[ ]"
		if sw.On {
			mark = onStyle.Render("[X]")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, sw.Name))
	}
	return frameStyle.Render(strings.TrimRight(b.String(), "\n"))
}
