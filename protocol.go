// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

type foscFormula byte

const (
	// foscCounted derives the clock from the 8 calibration counters
	// the bootloader reports, scaled by the link baud rate.
	foscCounted = foscFormula(iota)
	// foscSTC8 reads a 24 bit frequency from payload[0:3].
	foscSTC8
	// foscSTC15 reads a 24 bit frequency from payload[7:10].
	foscSTC15
)

type eraseKind byte

const (
	eraseMagic = eraseKind(iota)
	eraseSized
	eraseTwoPhase
)

type optionsKind byte

const (
	optionsNone = optionsKind(iota)
	options89
	options12C5A
	options12B
)

type pageHeader byte

const (
	pageHeaderLegacy = pageHeader(iota)
	pageHeaderMagic
)

// PingStage is the position of a compliance ping in the sequence.
type PingStage byte

const (
	PingBeforeHandshake = PingStage(iota)
	PingBeforeErase
	PingBeforeOptions
)

type ping struct {
	Stage   PingStage
	Command CommandType
	Reply   CommandType
	Repeat  int
}

// calibration maps an oscillator band to the trim bytes sent with the
// fixed-rate baud command.
type calibration struct {
	Low, High float64
	Trim      []byte
}

// Variant holds every per-protocol constant the session needs.
type Variant struct {
	Protocol Protocol

	// Detect
	Trigger      []byte
	DetectParity Parity
	Fosc         foscFormula

	// After Detect
	ChecksumMode int
	Parity       Parity

	// Handshake
	SearchBaud     bool
	TimerDoubled   bool
	WaitThresholds []float64
	FlushOnSwitch  bool
	BaudProbe      CommandType
	BaudSet        CommandType
	CalibClock     float64
	BaudPrefix     []byte
	Calibrations   []calibration
	DefaultTrim    []byte

	Erase eraseKind

	FlashFirst  CommandType
	FlashNext   CommandType
	FlashHeader pageHeader

	Options     optionsKind
	EEPROMIndex int
	EEPROMBit   byte

	Terminate CommandType

	Pings []ping
}

var legacyTrigger = []byte{DETECT_PULSE, DETECT_PULSE}

var wait89 = []float64{40, 20, 10, 5}

var wait12 = []float64{30, 24, 20, 12, 6, 3, 2, 1}

var pingParity = ping{Stage: PingBeforeHandshake, Command: COMMAND_PING_PARITY, Reply: REPLY_PING_PARITY, Repeat: 1}

var pingFlashed = ping{Stage: PingBeforeOptions, Command: COMMAND_PING_FLASHED, Reply: REPLY_PING_FLASHED, Repeat: 1}

var pingLegacy = ping{Stage: PingBeforeErase, Command: COMMAND_PING_LEGACY, Reply: REPLY_PING_LEGACY, Repeat: 5}

var calibrationSTC8 = []calibration{
	{23.5, 24.5, []byte{0x01, 0x7B}},
	{26.5, 27.5, []byte{0x01, 0xB0}},
	{21.7, 22.7, []byte{0x01, 0x5A}},
	{19.5, 20.5, []byte{0x01, 0x35}},
	{11.7, 12.3, []byte{0x01, 0x7B}},
	{10.8, 11.4, []byte{0x01, 0x5A}},
	{18.0, 18.8, []byte{0x01, 0x1A}},
	{5.7, 6.3, []byte{0x01, 0x12}},
	{5.0, 5.9, []byte{0x01, 0x5A}},
}

var calibrationSTC15 = []calibration{
	{23.5, 24.5, []byte{0x40, 0x9F}},
	{26.5, 27.5, []byte{0x40, 0xDC}},
	{21.7, 22.7, []byte{0x40, 0x79}},
	{19.5, 20.5, []byte{0x40, 0x4F}},
	{11.7, 12.3, []byte{0x80, 0xA2}},
	{10.8, 11.4, []byte{0x80, 0x7D}},
	{18.0, 18.8, []byte{0x40, 0x31}},
	{5.7, 6.3, []byte{0xC0, 0x9F}},
	{5.0, 5.9, []byte{0xC0, 0x7B}},
}

var variants = map[Protocol]*Variant{
	Protocol89: {
		Protocol:       Protocol89,
		Trigger:        legacyTrigger,
		DetectParity:   ParityNone,
		Fosc:           foscCounted,
		ChecksumMode:   1,
		Parity:         ParityNone,
		SearchBaud:     true,
		WaitThresholds: wait89,
		FlushOnSwitch:  true,
		BaudProbe:      COMMAND_BAUD_PROBE,
		BaudSet:        COMMAND_BAUD_SET,
		Erase:          eraseMagic,
		FlashFirst:     COMMAND_WRITE,
		FlashNext:      COMMAND_WRITE,
		FlashHeader:    pageHeaderLegacy,
		Options:        options89,
		EEPROMIndex:    2,
		EEPROMBit:      0x08,
		Terminate:      COMMAND_TERMINATE,
		Pings:          []ping{pingLegacy},
	},
	Protocol12C5A: {
		Protocol:       Protocol12C5A,
		Trigger:        legacyTrigger,
		DetectParity:   ParityEven,
		Fosc:           foscCounted,
		ChecksumMode:   2,
		Parity:         ParityEven,
		SearchBaud:     true,
		TimerDoubled:   true,
		WaitThresholds: wait12,
		FlushOnSwitch:  true,
		BaudProbe:      COMMAND_BAUD_PROBE,
		BaudSet:        COMMAND_BAUD_SET,
		Erase:          eraseSized,
		FlashFirst:     COMMAND_WRITE,
		FlashNext:      COMMAND_WRITE,
		FlashHeader:    pageHeaderLegacy,
		Options:        options12C5A,
		EEPROMIndex:    10,
		EEPROMBit:      0x02,
		Terminate:      COMMAND_TERMINATE,
		Pings:          []ping{pingParity, pingFlashed},
	},
	Protocol12C52: {
		Protocol:       Protocol12C52,
		Trigger:        legacyTrigger,
		DetectParity:   ParityEven,
		Fosc:           foscCounted,
		ChecksumMode:   2,
		Parity:         ParityEven,
		SearchBaud:     true,
		TimerDoubled:   true,
		WaitThresholds: wait12,
		FlushOnSwitch:  true,
		BaudProbe:      COMMAND_BAUD_PROBE,
		BaudSet:        COMMAND_BAUD_SET,
		Erase:          eraseSized,
		FlashFirst:     COMMAND_WRITE,
		FlashNext:      COMMAND_WRITE,
		FlashHeader:    pageHeaderLegacy,
		Options:        options12B,
		EEPROMIndex:    8,
		EEPROMBit:      0x02,
		Terminate:      COMMAND_TERMINATE,
		Pings:          []ping{pingParity, pingFlashed},
	},
	Protocol12Cx052: {
		Protocol:       Protocol12Cx052,
		Trigger:        legacyTrigger,
		DetectParity:   ParityNone,
		Fosc:           foscCounted,
		ChecksumMode:   1,
		Parity:         ParityNone,
		SearchBaud:     true,
		TimerDoubled:   true,
		WaitThresholds: wait12,
		FlushOnSwitch:  true,
		BaudProbe:      COMMAND_BAUD_PROBE,
		BaudSet:        COMMAND_BAUD_SET,
		Erase:          eraseSized,
		FlashFirst:     COMMAND_WRITE,
		FlashNext:      COMMAND_WRITE,
		FlashHeader:    pageHeaderLegacy,
		Options:        options12B,
		EEPROMIndex:    8,
		EEPROMBit:      0x02,
		Terminate:      COMMAND_TERMINATE,
		Pings:          []ping{pingLegacy},
	},
	Protocol8: {
		Protocol:     Protocol8,
		Trigger:      []byte{DETECT_PULSE},
		DetectParity: ParityNone,
		Fosc:         foscSTC8,
		ChecksumMode: 2,
		Parity:       ParityEven,
		BaudSet:      COMMAND_BAUD_FIXED,
		CalibClock:   24.0,
		BaudPrefix:   []byte{0x00, 0x00},
		Calibrations: calibrationSTC8,
		DefaultTrim:  []byte{0x01, 0x6B},
		Erase:        eraseTwoPhase,
		FlashFirst:   COMMAND_WRITE_FIRST,
		FlashNext:    COMMAND_WRITE_NEXT,
		FlashHeader:  pageHeaderMagic,
		Options:      optionsNone,
		Terminate:    COMMAND_TERMINATE_STC8,
	},
	Protocol15: {
		Protocol:     Protocol15,
		Trigger:      []byte{DETECT_PULSE},
		DetectParity: ParityNone,
		Fosc:         foscSTC15,
		ChecksumMode: 2,
		Parity:       ParityEven,
		BaudSet:      COMMAND_BAUD_FIXED,
		CalibClock:   22.1184,
		BaudPrefix:   []byte{0x6D, 0x40},
		Calibrations: calibrationSTC15,
		Erase:        eraseTwoPhase,
		FlashFirst:   COMMAND_WRITE_FIRST,
		FlashNext:    COMMAND_WRITE_NEXT,
		FlashHeader:  pageHeaderMagic,
		Options:      optionsNone,
		Terminate:    COMMAND_TERMINATE_STC8,
	},
}

// VariantFor returns the constants for p, or nil for ProtocolAuto.
func VariantFor(p Protocol) *Variant {
	return variants[p]
}

// familyProtocols infers the protocol from the first signature byte.
var familyProtocols = map[byte]Protocol{
	0xF0: Protocol89,      // STC89/90C5xRC
	0xF1: Protocol89,      // STC89/90C5xRD+
	0xF2: Protocol12Cx052, // STC12Cx052
	0xD1: Protocol12C5A,   // STC12C5Ax
	0xD2: Protocol12C5A,   // STC10Fx
	0xE1: Protocol12C52,   // STC12C52x
	0xE2: Protocol12C5A,   // STC11Fx
	0xE6: Protocol12C52,   // STC12C56x
	0xF4: Protocol15,
	0xF5: Protocol15,
	0xF6: Protocol8,
	0xF7: Protocol8,
}

// ProtocolFor infers the wire protocol from a device signature. forced
// is true when the signature pins the protocol regardless of what the
// caller asked for.
func ProtocolFor(sig Signature) (p Protocol, forced bool) {
	if sig[0] == 0xF2 && sig[1] >= 0xA0 && sig[1] < 0xA6 {
		return Protocol15, true
	}
	if p, ok := familyProtocols[sig[0]]; ok {
		return p, false
	}
	return ProtocolAuto, false
}

// trim picks the calibration bytes for a fixed-rate handshake.
func (v *Variant) trim(fosc float64) ([]byte, bool) {
	for _, c := range v.Calibrations {
		if fosc > c.Low && fosc < c.High {
			return c.Trim, true
		}
	}
	return v.DefaultTrim, v.DefaultTrim != nil
}

// detectMinLength covers the calibration counters and the signature.
const detectMinLength = 16 + 5

// detectLength is the shortest detect reply, checksum bytes included,
// that carries every field the protocol decodes.
func (v *Variant) detectLength() int {
	switch v.Fosc {
	case foscSTC8:
		return 39
	case foscSTC15:
		return 44
	}
	return detectMinLength + v.ChecksumMode
}

// optionsLength is the number of option bytes the options payload
// reads from the detect info.
func (v *Variant) optionsLength() int {
	switch v.Options {
	case options89:
		return 3
	case options12C5A:
		return 11
	case options12B:
		return 16
	}
	return 0
}
