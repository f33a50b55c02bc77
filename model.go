// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

import (
	"fmt"
	"sort"
)

// Signature is the raw model identifier reported by the bootloader.
type Signature [2]byte

func (s Signature) String() string {
	return fmt.Sprintf("%02X %02X", s[0], s[1])
}

// DeviceProfile is the model resolved from a Signature.
type DeviceProfile struct {
	Prefix   string
	Infix    string
	Postfix  string
	ROMSize  int // KB, zero when unresolved
	IAP      bool
	Name     string
	Resolved bool
}

type romDigits byte

const (
	romDigitsPadded = romDigits(iota)
	romDigitsPlain
	romDigitsOffset
)

// modelRange covers second signature bytes lo..hi inclusive.
type modelRange struct {
	Lo, Hi  byte
	Infix   string
	Postfix string
}

type modelFamily struct {
	Prefix string
	Ratio  int
	Digits romDigits
	Ranges []modelRange
}

// extRange maps second signature bytes in [Lo, Hi) to an extended type.
type extRange struct {
	Lo, Hi byte
	Code   uint16
}

func init() {
	for _, fam := range modelTable {
		sort.Slice(fam.Ranges, func(i, j int) bool {
			return fam.Ranges[i].Lo < fam.Ranges[j].Lo
		})
	}
	for _, ranges := range extendedTypes {
		sort.Slice(ranges, func(i, j int) bool {
			return ranges[i].Lo < ranges[j].Lo
		})
	}
}

// extendedType derives the table key for the STC15/STC8 generations
// and the STC15W1 parts that share the F2 prefix. It returns 0 when
// the signature has no extended type.
func extendedType(sig Signature) uint16 {
	ranges := extendedTypes[sig[0]]
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].Hi > sig[1]
	})
	if i < len(ranges) && ranges[i].Lo <= sig[1] {
		return ranges[i].Code
	}
	return 0
}

// familyKey returns the modelTable key for sig.
func familyKey(sig Signature) (uint16, bool) {
	switch sig[0] {
	case 0xF4, 0xF5, 0xF6, 0xF7:
		code := extendedType(sig)
		return code, code != 0
	case 0xF2:
		if code := extendedType(sig); code != 0 {
			return code, true
		}
	}
	return uint16(sig[0]), true
}

// Resolve maps a signature to a device profile. Unknown signatures
// return ErrUnresolved together with a profile that only carries a
// display name, so callers can still report what they found.
func Resolve(sig Signature) (DeviceProfile, error) {
	unknown := DeviceProfile{Name: fmt.Sprintf("Unknown %02X %02X", sig[0], sig[1])}

	key, ok := familyKey(sig)
	if !ok {
		return unknown, fmt.Errorf("%w: %v", ErrUnresolved, sig)
	}
	fam, ok := modelTable[key]
	if !ok {
		return unknown, fmt.Errorf("%w: %v", ErrUnresolved, sig)
	}

	var match *modelRange
	for i := range fam.Ranges {
		r := &fam.Ranges[i]
		if r.Lo <= sig[1] && sig[1] <= r.Hi {
			match = r
			break
		}
	}
	if match == nil {
		return unknown, fmt.Errorf("%w: %v", ErrUnresolved, sig)
	}

	prefix := fam.Prefix
	if (sig[0] == 0xF0 || sig[0] == 0xF1) && sig[1] >= 0x20 && sig[1] <= 0x30 {
		prefix = "90"
	}

	offset := int(sig[1] - match.Lo)
	rom := fam.Ratio * offset
	if pinned, ok := pinnedROMSizes[sig]; ok {
		rom = pinned
	}

	var digits string
	switch fam.Digits {
	case romDigitsOffset:
		digits = fmt.Sprintf("%d", offset)
	case romDigitsPlain:
		digits = fmt.Sprintf("%d", rom)
	default:
		digits = fmt.Sprintf("%02d", rom)
	}

	brand := "STC"
	if iapModels[sig] {
		brand = "IAP"
	}

	return DeviceProfile{
		Prefix:   prefix,
		Infix:    match.Infix,
		Postfix:  match.Postfix,
		ROMSize:  rom,
		IAP:      iapModels[sig],
		Name:     brand + prefix + match.Infix + digits + match.Postfix,
		Resolved: true,
	}, nil
}
