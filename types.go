// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Host and device frame preambles
var (
	HOST_START   = []byte{0x46, 0xB9, 0x6A}
	DEVICE_START = []byte{0x46, 0xB9, 0x68}
)

const (
	FRAME_END byte = 0x16

	// MaxFrameLength is the largest length field accepted on receive
	MaxFrameLength = 64
)

// DETECT_PULSE is the byte clocked out while the target powers up.
const DETECT_PULSE byte = 0x7F

type CommandType byte

// CommandType constants
const (
	COMMAND_WRITE          = CommandType(0x00)
	COMMAND_BAUD_FIXED     = CommandType(0x01)
	COMMAND_WRITE_NEXT     = CommandType(0x02)
	COMMAND_ERASE_FLASH    = CommandType(0x03)
	COMMAND_ERASE_PREPARE  = CommandType(0x05)
	COMMAND_WRITE_FIRST    = CommandType(0x22)
	COMMAND_PING_PARITY    = CommandType(0x50)
	COMMAND_PING_FLASHED   = CommandType(0x69)
	COMMAND_PING_LEGACY    = CommandType(0x80)
	COMMAND_TERMINATE      = CommandType(0x82)
	COMMAND_ERASE          = CommandType(0x84)
	COMMAND_OPTIONS        = CommandType(0x8D)
	COMMAND_BAUD_SET       = CommandType(0x8E)
	COMMAND_BAUD_PROBE     = CommandType(0x8F)
	COMMAND_TERMINATE_STC8 = CommandType(0xFF)

	// Replies the device sends back
	REPLY_ERASE        = CommandType(0x80)
	REPLY_PING_LEGACY  = CommandType(0x80)
	REPLY_PING_FLASHED = CommandType(0x8D)
	REPLY_PING_PARITY  = CommandType(0x8F)
)

var cmd2String = map[CommandType]string{
	COMMAND_WRITE:          "COMMAND_WRITE",
	COMMAND_BAUD_FIXED:     "COMMAND_BAUD_FIXED",
	COMMAND_WRITE_NEXT:     "COMMAND_WRITE_NEXT",
	COMMAND_ERASE_FLASH:    "COMMAND_ERASE_FLASH",
	COMMAND_ERASE_PREPARE:  "COMMAND_ERASE_PREPARE",
	COMMAND_WRITE_FIRST:    "COMMAND_WRITE_FIRST",
	COMMAND_PING_PARITY:    "COMMAND_PING_PARITY",
	COMMAND_PING_FLASHED:   "COMMAND_PING_FLASHED",
	COMMAND_PING_LEGACY:    "COMMAND_PING_LEGACY",
	COMMAND_TERMINATE:      "COMMAND_TERMINATE",
	COMMAND_ERASE:          "COMMAND_ERASE",
	COMMAND_OPTIONS:        "COMMAND_OPTIONS",
	COMMAND_BAUD_SET:       "COMMAND_BAUD_SET",
	COMMAND_BAUD_PROBE:     "COMMAND_BAUD_PROBE",
	COMMAND_TERMINATE_STC8: "COMMAND_TERMINATE_STC8",
}

func (c CommandType) String() string {
	if str, ok := cmd2String[c]; ok {
		return str
	}
	return fmt.Sprintf("0x%X", byte(c))
}

// Frame is a decoded command and its payload
type Frame struct {
	Command CommandType
	Payload []byte
}

func (f Frame) String() string {
	if len(f.Payload) == 0 {
		return f.Command.String()
	}
	return fmt.Sprintf("%v [%d]=(%s)", f.Command, len(f.Payload), hex.EncodeToString(f.Payload))
}

// Parity is the UART parity mode used on the link
type Parity byte

const (
	ParityNone = Parity(0)
	ParityEven = Parity(1)
)

var parity2String = map[Parity]string{
	ParityNone: "NONE",
	ParityEven: "EVEN",
}

func (p Parity) String() string {
	if str, ok := parity2String[p]; ok {
		return str
	}
	return fmt.Sprintf("0x%X", byte(p))
}

// Protocol identifies one of the STC bootloader wire protocols
type Protocol byte

const (
	ProtocolAuto = Protocol(iota)
	Protocol89
	Protocol12C5A
	Protocol12C52
	Protocol12Cx052
	Protocol8
	Protocol15
)

var protocol2String = map[Protocol]string{
	ProtocolAuto:    "auto",
	Protocol89:      "89",
	Protocol12C5A:   "12c5a",
	Protocol12C52:   "12c52",
	Protocol12Cx052: "12cx052",
	Protocol8:       "8",
	Protocol15:      "15",
}

func (p Protocol) String() string {
	if str, ok := protocol2String[p]; ok {
		return str
	}
	return fmt.Sprintf("0x%X", byte(p))
}

// ParseProtocol maps a protocol name such as "12c5a" or "auto" to a Protocol.
func ParseProtocol(name string) (Protocol, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ProtocolAuto, nil
	}
	for p, str := range protocol2String {
		if str == name {
			return p, nil
		}
	}
	return ProtocolAuto, fmt.Errorf("%w: unknown protocol %q", ErrBadArguments, name)
}

// ProtocolNames lists the accepted protocol names in a stable order.
func ProtocolNames() []string {
	return []string{"89", "12c5a", "12c52", "12cx052", "8", "15", "auto"}
}

// EEPROMPolicy selects what the options step does with the
// "do not erase data EEPROM" switch
type EEPROMPolicy byte

const (
	EEPROMUnchanged = EEPROMPolicy(iota)
	EEPROMErase
	EEPROMKeep
)

var eeprom2String = map[EEPROMPolicy]string{
	EEPROMUnchanged: "UNCHANGED",
	EEPROMErase:     "ERASE",
	EEPROMKeep:      "KEEP",
}

func (e EEPROMPolicy) String() string {
	if str, ok := eeprom2String[e]; ok {
		return str
	}
	return fmt.Sprintf("0x%X", byte(e))
}

// State is the position of a Session in the programming sequence
type State byte

const (
	StateIdle = State(iota)
	StateDetected
	StateHandshakeDone
	StateErased
	StateFlashed
	StateOptionsSet
	StateTerminated
	StateFailed
)

var state2String = map[State]string{
	StateIdle:          "IDLE",
	StateDetected:      "DETECTED",
	StateHandshakeDone: "HANDSHAKE_DONE",
	StateErased:        "ERASED",
	StateFlashed:       "FLASHED",
	StateOptionsSet:    "OPTIONS_SET",
	StateTerminated:    "TERMINATED",
	StateFailed:        "FAILED",
}

func (s State) String() string {
	if str, ok := state2String[s]; ok {
		return str
	}
	return fmt.Sprintf("0x%X", byte(s))
}
