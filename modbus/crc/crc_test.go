// Copyright (c) 2014 Quoc-Viet Nguyen. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package crc

import (
	"testing"
)

func TestCRC(t *testing.T) {
	var crc CRC
	crc.Reset()
	crc.PushBytes([]byte{0x02, 0x07})

	if crc.Value() != 0x1241 {
		t.Fatalf("crc expected %v, actual %v", 0x1241, crc.Value())
	}
}

// The Chargeverter polls with 01 03 00 13 00 11 74 03. The trailing
// 74 03 is the checksum of the first six bytes, low byte first.
func TestCRCChargeverterPoll(t *testing.T) {
	var crc CRC
	crc.Reset()
	crc.PushBytes([]byte{0x01, 0x03, 0x00, 0x13, 0x00, 0x11})

	if crc.Value() != 0x0374 {
		t.Fatalf("crc expected 0x0374, actual 0x%04X", crc.Value())
	}
	if lo := byte(crc.Value()); lo != 0x74 {
		t.Errorf("low byte expected 0x74, actual 0x%02X", lo)
	}
	if hi := byte(crc.Value() >> 8); hi != 0x03 {
		t.Errorf("high byte expected 0x03, actual 0x%02X", hi)
	}
}

func TestCRCPushByte(t *testing.T) {
	data := []byte{0x01, 0x03, 0x00, 0x13, 0x00, 0x11}

	var whole, oneByOne CRC
	whole.Reset().PushBytes(data)
	oneByOne.Reset()
	for _, b := range data {
		oneByOne.PushByte(b)
	}

	if whole.Value() != oneByOne.Value() {
		t.Fatalf("PushByte sequence diverged: 0x%04X vs 0x%04X", whole.Value(), oneByOne.Value())
	}
}
