// Copyright 2017 OpenChirp. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stcboot

// modelTable is keyed by the first signature byte, or by the extended
// type for the STC15 and STC8 generations.
var modelTable = map[uint16]modelFamily{
	0xD1: {Prefix: "12", Ratio: 2, Ranges: []modelRange{
		{0x20, 0x3F, "C5A", "CCP"},
		{0x40, 0x5F, "C5A", "AD"},
		{0x60, 0x7F, "C5A", "S2"},
		{0xA0, 0xBF, "LE5A", "CCP"},
		{0xC0, 0xDF, "LE5A", "AD"},
		{0xE0, 0xFF, "LE5A", "S2"},
	}},
	0xD2: {Prefix: "10", Ratio: 1, Ranges: []modelRange{
		{0x00, 0x0F, "F", ""},
		{0x60, 0x6F, "F", "XE"},
		{0x70, 0x7F, "F", "X"},
		{0xA0, 0xAF, "L", ""},
		{0xE0, 0xEF, "L", "XE"},
		{0xF0, 0xFF, "L", "X"},
	}},
	0xD3: {Prefix: "11", Ratio: 2, Ranges: []modelRange{
		{0x00, 0x1F, "F", ""},
		{0x40, 0x5F, "F", "X"},
		{0x60, 0x7F, "F", "XE"},
		{0xA0, 0xBF, "L", ""},
		{0xC0, 0xDF, "L", "X"},
		{0xE0, 0xFF, "L", "XE"},
	}},
	0xE0: {Prefix: "12", Ratio: 1, Digits: romDigitsPlain, Ranges: []modelRange{
		{0x00, 0x1F, "C54", ""},
		{0x60, 0x7F, "C54", "AD"},
		{0x80, 0x9F, "LE54", ""},
		{0xE0, 0xFF, "LE54", "AD"},
	}},
	0xE1: {Prefix: "12", Ratio: 1, Digits: romDigitsPlain, Ranges: []modelRange{
		{0x00, 0x1F, "C52", ""},
		{0x20, 0x3F, "C52", "PWM"},
		{0x60, 0x7F, "C52", "AD"},
		{0x80, 0x9F, "LE52", ""},
		{0xA0, 0xBF, "LE52", "PWM"},
		{0xE0, 0xFF, "LE52", "AD"},
	}},
	0xE2: {Prefix: "11", Ratio: 1, Ranges: []modelRange{
		{0x00, 0x1F, "F", ""},
		{0x20, 0x3F, "F", "E"},
		{0x70, 0x7F, "F", ""},
		{0x80, 0x9F, "L", ""},
		{0xA0, 0xBF, "L", "E"},
		{0xF0, 0xFF, "L", ""},
	}},
	0xE6: {Prefix: "12", Ratio: 1, Digits: romDigitsPlain, Ranges: []modelRange{
		{0x00, 0x1F, "C56", ""},
		{0x60, 0x7F, "C56", "AD"},
		{0x80, 0x9F, "LE56", ""},
		{0xE0, 0xFF, "LE56", "AD"},
	}},
	0xF0: {Prefix: "89", Ratio: 4, Digits: romDigitsOffset, Ranges: []modelRange{
		{0x00, 0x10, "C5", "RC"},
		{0x20, 0x30, "C5", "RC"},
	}},
	0xF1: {Prefix: "89", Ratio: 4, Digits: romDigitsOffset, Ranges: []modelRange{
		{0x00, 0x10, "C5", "RD+"},
		{0x20, 0x30, "C5", "RD+"},
	}},
	0xF2: {Prefix: "12", Ratio: 1, Digits: romDigitsPlain, Ranges: []modelRange{
		{0x00, 0x0F, "C", "052"},
		{0x10, 0x1F, "C", "052AD"},
		{0x20, 0x2F, "LE", "052"},
		{0x30, 0x3F, "LE", "052AD"},
	}},
	0xF2A0: {Prefix: "15W", Ratio: 1, Digits: romDigitsPlain, Ranges: []modelRange{{0xA0, 0xA5, "1", ""}}},
	0xF400: {Prefix: "15F", Ratio: 8, Ranges: []modelRange{{0x00, 0x07, "2K", "S2"}}},
	0xF407: {Prefix: "15F", Ratio: 60, Ranges: []modelRange{{0x07, 0x08, "2K", "S2"}}},
	0xF408: {Prefix: "15F", Ratio: 61, Ranges: []modelRange{{0x08, 0x09, "2K", "S2"}}},
	0xF409: {Prefix: "15F", Ratio: 4, Ranges: []modelRange{{0x09, 0x0C, "4", "AD"}}},
	0xF410: {Prefix: "15F", Ratio: 8, Ranges: []modelRange{{0x10, 0x17, "1K", "AS"}}},
	0xF417: {Prefix: "15F", Ratio: 60, Ranges: []modelRange{{0x17, 0x18, "1K", "AS"}}},
	0xF418: {Prefix: "15F", Ratio: 61, Ranges: []modelRange{{0x18, 0x19, "1K", "AS"}}},
	0xF420: {Prefix: "15F", Ratio: 8, Ranges: []modelRange{{0x20, 0x27, "1K", "S"}}},
	0xF427: {Prefix: "15F", Ratio: 60, Ranges: []modelRange{{0x27, 0x28, "1K", "S"}}},
	0xF440: {Prefix: "15F", Ratio: 8, Ranges: []modelRange{{0x40, 0x47, "1K", "S2"}}},
	0xF447: {Prefix: "15F", Ratio: 60, Ranges: []modelRange{{0x47, 0x48, "1K", "S2"}}},
	0xF448: {Prefix: "15F", Ratio: 61, Ranges: []modelRange{{0x48, 0x49, "1K", "S2"}}},
	0xF44C: {Prefix: "15F", Ratio: 13, Ranges: []modelRange{{0x4C, 0x4D, "4", "AD"}}},
	0xF450: {Prefix: "15F", Ratio: 8, Ranges: []modelRange{{0x50, 0x57, "1K", "AS"}}},
	0xF457: {Prefix: "15F", Ratio: 60, Ranges: []modelRange{{0x57, 0x58, "1K", "AS"}}},
	0xF458: {Prefix: "15F", Ratio: 61, Ranges: []modelRange{{0x58, 0x59, "1K", "AS"}}},
	0xF460: {Prefix: "15F", Ratio: 8, Ranges: []modelRange{{0x60, 0x67, "1K", "S"}}},
	0xF467: {Prefix: "15F", Ratio: 60, Ranges: []modelRange{{0x67, 0x68, "1K", "S"}}},
	0xF468: {Prefix: "15F", Ratio: 61, Ranges: []modelRange{{0x68, 0x69, "1K", "S"}}},
	0xF480: {Prefix: "15L", Ratio: 8, Ranges: []modelRange{{0x80, 0x87, "2K", "S2"}}},
	0xF487: {Prefix: "15L", Ratio: 60, Ranges: []modelRange{{0x87, 0x88, "2K", "S2"}}},
	0xF488: {Prefix: "15L", Ratio: 61, Ranges: []modelRange{{0x88, 0x89, "2K", "S2"}}},
	0xF489: {Prefix: "15L", Ratio: 5, Ranges: []modelRange{{0x89, 0x8C, "4", "AD"}}},
	0xF490: {Prefix: "15L", Ratio: 8, Ranges: []modelRange{{0x90, 0x97, "2K", "AS"}}},
	0xF497: {Prefix: "15L", Ratio: 60, Ranges: []modelRange{{0x97, 0x98, "2K", "AS"}}},
	0xF498: {Prefix: "15L", Ratio: 61, Ranges: []modelRange{{0x98, 0x99, "2K", "AS"}}},
	0xF4A0: {Prefix: "15L", Ratio: 8, Ranges: []modelRange{{0xA0, 0xA7, "2K", "S"}}},
	0xF4A7: {Prefix: "15L", Ratio: 60, Ranges: []modelRange{{0xA7, 0xA8, "2K", "S"}}},
	0xF4A8: {Prefix: "15L", Ratio: 61, Ranges: []modelRange{{0xA8, 0xA9, "2K", "S"}}},
	0xF4C0: {Prefix: "15L", Ratio: 8, Ranges: []modelRange{{0xC0, 0xC7, "1K", "S2"}}},
	0xF4C7: {Prefix: "15L", Ratio: 60, Ranges: []modelRange{{0xC7, 0xC8, "1K", "S2"}}},
	0xF4C8: {Prefix: "15L", Ratio: 61, Ranges: []modelRange{{0xC8, 0xC9, "1K", "S2"}}},
	0xF4CC: {Prefix: "15L", Ratio: 13, Ranges: []modelRange{{0xCC, 0xCD, "4", "AD"}}},
	0xF4D0: {Prefix: "15L", Ratio: 8, Ranges: []modelRange{{0xD0, 0xD7, "1K", "AS"}}},
	0xF4D7: {Prefix: "15L", Ratio: 60, Ranges: []modelRange{{0xD7, 0xD8, "1K", "AS"}}},
	0xF4D8: {Prefix: "15L", Ratio: 61, Ranges: []modelRange{{0xD8, 0xD9, "1K", "AS"}}},
	0xF4E0: {Prefix: "15L", Ratio: 8, Ranges: []modelRange{{0xE0, 0xE7, "1K", "S"}}},
	0xF4E7: {Prefix: "15L", Ratio: 60, Ranges: []modelRange{{0xE7, 0xE8, "1K", "S"}}},
	0xF4E8: {Prefix: "15L", Ratio: 61, Ranges: []modelRange{{0xE8, 0xE9, "1K", "S"}}},
	0xF500: {Prefix: "15W", Ratio: 1, Ranges: []modelRange{{0x00, 0x04, "1", "SW"}}},
	0xF507: {Prefix: "15W", Ratio: 1, Ranges: []modelRange{{0x07, 0x0B, "1", "S"}}},
	0xF510: {Prefix: "15W", Ratio: 1, Ranges: []modelRange{{0x10, 0x14, "2", "S"}}},
	0xF514: {Prefix: "15W", Ratio: 8, Ranges: []modelRange{{0x14, 0x17, "1K", "S"}}},
	0xF518: {Prefix: "15W", Ratio: 4, Ranges: []modelRange{{0x18, 0x1A, "4", "S"}}},
	0xF51A: {Prefix: "15W", Ratio: 4, Ranges: []modelRange{{0x1A, 0x1C, "4", "S"}}},
	0xF51C: {Prefix: "15W", Ratio: 4, Ranges: []modelRange{{0x1C, 0x1F, "4", "AS"}}},
	0xF51F: {Prefix: "15W", Ratio: 10, Ranges: []modelRange{{0x19, 0x20, "4", "AS"}}},
	0xF520: {Prefix: "15W", Ratio: 12, Ranges: []modelRange{{0x20, 0x21, "4", "AS"}}},
	0xF522: {Prefix: "15W", Ratio: 16, Ranges: []modelRange{{0x22, 0x23, "4K", "S4"}}},
	0xF523: {Prefix: "15W", Ratio: 24, Ranges: []modelRange{{0x23, 0x24, "4K", "S4"}}},
	0xF524: {Prefix: "15W", Ratio: 32, Ranges: []modelRange{{0x24, 0x25, "4K", "S4"}}},
	0xF525: {Prefix: "15W", Ratio: 40, Ranges: []modelRange{{0x25, 0x26, "4K", "S4"}}},
	0xF526: {Prefix: "15W", Ratio: 48, Ranges: []modelRange{{0x26, 0x27, "4K", "S4"}}},
	0xF527: {Prefix: "15W", Ratio: 56, Ranges: []modelRange{{0x27, 0x28, "4K", "S4"}}},
	0xF529: {Prefix: "15W", Ratio: 1, Ranges: []modelRange{{0x29, 0x2B, "4", "A4"}}},
	0xF52C: {Prefix: "15W", Ratio: 8, Ranges: []modelRange{{0x2C, 0x2E, "1K", "PWM"}}},
	0xF52E: {Prefix: "15W", Ratio: 20, Ranges: []modelRange{{0x2E, 0x2F, "1K", "S"}}},
	0xF52F: {Prefix: "15W", Ratio: 32, Ranges: []modelRange{{0x2F, 0x30, "2K", "S2"}}},
	0xF530: {Prefix: "15W", Ratio: 48, Ranges: []modelRange{{0x30, 0x31, "2K", "S2"}}},
	0xF531: {Prefix: "15W", Ratio: 32, Ranges: []modelRange{{0x31, 0x32, "2K", "S2"}}},
	0xF533: {Prefix: "15W", Ratio: 20, Ranges: []modelRange{{0x33, 0x34, "1K", "S2"}}},
	0xF534: {Prefix: "15W", Ratio: 32, Ranges: []modelRange{{0x34, 0x35, "1K", "S2"}}},
	0xF535: {Prefix: "15W", Ratio: 48, Ranges: []modelRange{{0x35, 0x36, "1K", "S2"}}},
	0xF544: {Prefix: "15W", Ratio: 5, Ranges: []modelRange{{0x44, 0x45, "", "SW"}}},
	0xF554: {Prefix: "15W", Ratio: 5, Ranges: []modelRange{{0x54, 0x55, "2", "S"}}},
	0xF557: {Prefix: "15W", Ratio: 29, Ranges: []modelRange{{0x57, 0x58, "1K", "S"}}},
	0xF55C: {Prefix: "15W", Ratio: 13, Ranges: []modelRange{{0x5C, 0x5D, "4", "S"}}},
	0xF568: {Prefix: "15W", Ratio: 58, Ranges: []modelRange{{0x68, 0x69, "4K", "S4"}}},
	0xF569: {Prefix: "15W", Ratio: 61, Ranges: []modelRange{{0x69, 0x6A, "4K", "S4"}}},
	0xF56C: {Prefix: "15W", Ratio: 58, Ranges: []modelRange{{0x6C, 0x6D, "4K", "S4-Student"}}},
	0xF57E: {Prefix: "15U", Ratio: 8, Ranges: []modelRange{{0x7E, 0x85, "4K", "S4"}}},
	0xF600: {Prefix: "15H", Ratio: 8, Ranges: []modelRange{{0x00, 0x08, "4K", "S4"}}},
	0xF620: {Prefix: "8A", Ratio: 8, Ranges: []modelRange{{0x20, 0x28, "8K", "S4A12"}}},
	0xF628: {Prefix: "8A", Ratio: 60, Ranges: []modelRange{{0x28, 0x29, "8K", "S4A12"}}},
	0xF630: {Prefix: "8F", Ratio: 8, Ranges: []modelRange{{0x30, 0x38, "2K", "S4"}}},
	0xF638: {Prefix: "8F", Ratio: 60, Ranges: []modelRange{{0x38, 0x39, "2K", "S4"}}},
	0xF640: {Prefix: "8F", Ratio: 8, Ranges: []modelRange{{0x40, 0x48, "2K", "S2"}}},
	0xF648: {Prefix: "8F", Ratio: 60, Ranges: []modelRange{{0x48, 0x49, "2K", "S2"}}},
	0xF650: {Prefix: "8A", Ratio: 8, Ranges: []modelRange{{0x50, 0x58, "4K", "S2A12"}}},
	0xF658: {Prefix: "8A", Ratio: 60, Ranges: []modelRange{{0x58, 0x59, "4K", "S2A12"}}},
	0xF660: {Prefix: "8F", Ratio: 2, Ranges: []modelRange{{0x60, 0x66, "1K", "S2"}}},
	0xF666: {Prefix: "8F", Ratio: 17, Ranges: []modelRange{{0x66, 0x67, "1K", "S2"}}},
	0xF670: {Prefix: "8F", Ratio: 2, Ranges: []modelRange{{0x70, 0x76, "1K", ""}}},
	0xF676: {Prefix: "8F", Ratio: 17, Ranges: []modelRange{{0x76, 0x77, "1K", ""}}},
	0xF700: {Prefix: "8C", Ratio: 2, Ranges: []modelRange{{0x00, 0x06, "1K", ""}}},
	0xF730: {Prefix: "8H", Ratio: 2, Ranges: []modelRange{{0x30, 0x36, "1K", ""}}},
	0xF736: {Prefix: "8H", Ratio: 17, Ranges: []modelRange{{0x36, 0x37, "1K", ""}}},
	0xF740: {Prefix: "8H", Ratio: 8, Ranges: []modelRange{{0x40, 0x42, "3K", "S4"}}},
	0xF742: {Prefix: "8H", Ratio: 60, Ranges: []modelRange{{0x42, 0x43, "3K", "S4"}}},
	0xF743: {Prefix: "8H", Ratio: 64, Ranges: []modelRange{{0x43, 0x44, "3K", "S4"}}},
	0xF748: {Prefix: "8H", Ratio: 16, Ranges: []modelRange{{0x48, 0x4A, "3K", "S2"}}},
	0xF74A: {Prefix: "8H", Ratio: 60, Ranges: []modelRange{{0x4A, 0x4B, "3K", "S2"}}},
	0xF74B: {Prefix: "8H", Ratio: 64, Ranges: []modelRange{{0x4B, 0x4C, "3K", "S2"}}},
	0xF750: {Prefix: "8G", Ratio: 2, Ranges: []modelRange{{0x50, 0x56, "1K", "-20/16pin"}}},
	0xF756: {Prefix: "8G", Ratio: 17, Ranges: []modelRange{{0x56, 0x57, "1K", "-20/16pin"}}},
	0xF760: {Prefix: "8G", Ratio: 16, Ranges: []modelRange{{0x60, 0x62, "2K", "S4"}}},
	0xF762: {Prefix: "8G", Ratio: 60, Ranges: []modelRange{{0x62, 0x63, "2K", "S4"}}},
	0xF763: {Prefix: "8G", Ratio: 64, Ranges: []modelRange{{0x63, 0x64, "2K", "S4"}}},
	0xF768: {Prefix: "8G", Ratio: 16, Ranges: []modelRange{{0x68, 0x6A, "2K", "S2"}}},
	0xF76A: {Prefix: "8G", Ratio: 60, Ranges: []modelRange{{0x6A, 0x6B, "2K", "S2"}}},
	0xF76B: {Prefix: "8G", Ratio: 64, Ranges: []modelRange{{0x6B, 0x6C, "2K", "S2"}}},
	0xF770: {Prefix: "8G", Ratio: 2, Ranges: []modelRange{{0x70, 0x76, "1K", "T"}}},
	0xF776: {Prefix: "8G", Ratio: 17, Ranges: []modelRange{{0x76, 0x77, "1K", "T"}}},
	0xF780: {Prefix: "8H", Ratio: 16, Ranges: []modelRange{{0x80, 0x82, "8K", "U"}}},
	0xF782: {Prefix: "8H", Ratio: 60, Ranges: []modelRange{{0x82, 0x83, "8K", "U"}}},
	0xF783: {Prefix: "8H", Ratio: 64, Ranges: []modelRange{{0x83, 0x84, "8K", "U"}}},
	0xF790: {Prefix: "8G", Ratio: 2, Ranges: []modelRange{{0x90, 0x96, "1K", "A-8PIN"}}},
	0xF796: {Prefix: "8G", Ratio: 17, Ranges: []modelRange{{0x96, 0x97, "1K", "A-8PIN"}}},
	0xF7A0: {Prefix: "8G", Ratio: 2, Ranges: []modelRange{{0xA0, 0xA6, "1K", "-8PIN"}}},
	0xF7A6: {Prefix: "8G", Ratio: 17, Ranges: []modelRange{{0xA6, 0xA7, "1K", "-8PIN"}}},
}

// extendedTypes splits the STC15/STC8 signature space into families.
var extendedTypes = map[byte][]extRange{
	0xF2: {
		{0xA0, 0xA6, 0xF2A0},
	},
	0xF4: {
		{0x01, 0x08, 0xF400},
		{0x08, 0x09, 0xF407},
		{0x09, 0x0A, 0xF408},
		{0x0A, 0x0D, 0xF409},
		{0x11, 0x18, 0xF410},
		{0x18, 0x19, 0xF417},
		{0x19, 0x1A, 0xF418},
		{0x21, 0x28, 0xF420},
		{0x28, 0x29, 0xF427},
		{0x41, 0x48, 0xF440},
		{0x48, 0x49, 0xF447},
		{0x49, 0x4A, 0xF448},
		{0x4D, 0x4E, 0xF44C},
		{0x51, 0x57, 0xF450},
		{0x58, 0x59, 0xF457},
		{0x59, 0x5A, 0xF458},
		{0x61, 0x68, 0xF460},
		{0x68, 0x69, 0xF467},
		{0x69, 0x6A, 0xF468},
		{0x81, 0x88, 0xF480},
		{0x88, 0x89, 0xF487},
		{0x89, 0x8A, 0xF488},
		{0x8A, 0x8D, 0xF489},
		{0x91, 0x98, 0xF490},
		{0x98, 0x99, 0xF497},
		{0x99, 0x9A, 0xF498},
		{0xA1, 0xA8, 0xF4A0},
		{0xA8, 0xA9, 0xF4A7},
		{0xA9, 0xAA, 0xF4A8},
		{0xC1, 0xC8, 0xF4C0},
		{0xC8, 0xC9, 0xF4C7},
		{0xC9, 0xCA, 0xF4C8},
		{0xCD, 0xCE, 0xF4CC},
		{0xD1, 0xD8, 0xF4D0},
		{0xD8, 0xD9, 0xF4D7},
		{0xD9, 0xDA, 0xF4D8},
		{0xE1, 0xE8, 0xF4E0},
		{0xE8, 0xE9, 0xF4E7},
		{0xE9, 0xEA, 0xF4E8},
	},
	0xF5: {
		{0x01, 0x05, 0xF500},
		{0x08, 0x0C, 0xF507},
		{0x11, 0x15, 0xF510},
		{0x15, 0x18, 0xF514},
		{0x19, 0x1B, 0xF518},
		{0x1B, 0x1D, 0xF51A},
		{0x1D, 0x20, 0xF51C},
		{0x20, 0x21, 0xF51F},
		{0x21, 0x22, 0xF520},
		{0x23, 0x24, 0xF522},
		{0x24, 0x25, 0xF523},
		{0x25, 0x26, 0xF524},
		{0x26, 0x27, 0xF525},
		{0x27, 0x28, 0xF526},
		{0x28, 0x29, 0xF527},
		{0x2A, 0x2C, 0xF529},
		{0x2D, 0x2F, 0xF52C},
		{0x2F, 0x30, 0xF52E},
		{0x30, 0x31, 0xF52F},
		{0x31, 0x32, 0xF530},
		{0x32, 0x33, 0xF531},
		{0x34, 0x35, 0xF533},
		{0x35, 0x36, 0xF534},
		{0x36, 0x37, 0xF535},
		{0x45, 0x46, 0xF544},
		{0x55, 0x56, 0xF554},
		{0x58, 0x59, 0xF557},
		{0x5D, 0x5E, 0xF55C},
		{0x69, 0x6A, 0xF568},
		{0x6A, 0x6B, 0xF569},
		{0x6D, 0x6E, 0xF56C},
		{0x7F, 0x86, 0xF57E},
	},
	0xF6: {
		{0x01, 0x09, 0xF600},
		{0x21, 0x29, 0xF620},
		{0x29, 0x2A, 0xF628},
		{0x31, 0x39, 0xF630},
		{0x39, 0x3A, 0xF638},
		{0x41, 0x49, 0xF640},
		{0x49, 0x4A, 0xF648},
		{0x51, 0x59, 0xF650},
		{0x59, 0x5A, 0xF658},
		{0x61, 0x67, 0xF660},
		{0x67, 0x68, 0xF666},
		{0x71, 0x77, 0xF670},
		{0x77, 0x78, 0xF676},
	},
	0xF7: {
		{0x01, 0x07, 0xF700},
		{0x31, 0x37, 0xF730},
		{0x37, 0x38, 0xF736},
		{0x41, 0x43, 0xF740},
		{0x43, 0x44, 0xF742},
		{0x44, 0x45, 0xF743},
		{0x49, 0x4B, 0xF748},
		{0x4B, 0x4C, 0xF74A},
		{0x4C, 0x4D, 0xF74B},
		{0x51, 0x57, 0xF750},
		{0x57, 0x58, 0xF756},
		{0x61, 0x63, 0xF760},
		{0x63, 0x64, 0xF762},
		{0x64, 0x65, 0xF763},
		{0x69, 0x6B, 0xF768},
		{0x6B, 0x6C, 0xF76A},
		{0x6C, 0x6D, 0xF76B},
		{0x71, 0x77, 0xF770},
		{0x77, 0x78, 0xF776},
		{0x81, 0x83, 0xF780},
		{0x83, 0x84, 0xF782},
		{0x84, 0x85, 0xF783},
		{0x91, 0x97, 0xF790},
		{0x97, 0x98, 0xF796},
		{0xA1, 0xA7, 0xF7A0},
		{0xA7, 0xA8, 0xF7A6},
	},
}

// pinnedROMSizes overrides the ratio formula.
var pinnedROMSizes = map[Signature]int{
	{0xF0, 0x03}: 13,
}

// iapModels are sold under the IAP name.
var iapModels = map[Signature]bool{
	{0xD1, 0x3F}: true, {0xD1, 0x5F}: true, {0xD1, 0x7F}: true,
	{0xF4, 0x4D}: true, {0xF4, 0x99}: true, {0xF4, 0xD9}: true,
	{0xF5, 0x58}: true, {0xD2, 0x7E}: true, {0xD2, 0xFE}: true,
	{0xF4, 0x09}: true, {0xF4, 0x59}: true, {0xF4, 0xA9}: true,
	{0xF4, 0xE9}: true, {0xF5, 0x5D}: true, {0xD3, 0x5F}: true,
	{0xD3, 0xDF}: true, {0xF4, 0x19}: true, {0xF4, 0x69}: true,
	{0xF4, 0xC9}: true, {0xF5, 0x45}: true, {0xF5, 0x62}: true,
	{0xE2, 0x76}: true, {0xE2, 0xF6}: true, {0xF4, 0x49}: true,
	{0xF4, 0x89}: true, {0xF4, 0xCD}: true, {0xF5, 0x55}: true,
	{0xF5, 0x69}: true, {0xF5, 0x6A}: true, {0xF5, 0x6D}: true,
}
