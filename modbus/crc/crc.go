// Copyright (c) 2014 Quoc-Viet Nguyen. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package crc implements the Modbus CRC-16 checksum
// (polynomial 0xA001, initial value 0xFFFF, bit-serial).
package crc

// CRC is the running checksum register. The zero value is not ready for
// use; call Reset before pushing bytes.
type CRC struct {
	value uint16
}

// Reset initializes the checksum register.
func (crc *CRC) Reset() *CRC {
	crc.value = 0xFFFF
	return crc
}

// PushByte updates the checksum with one byte.
func (crc *CRC) PushByte(b byte) *CRC {
	crc.value ^= uint16(b)
	for i := 0; i < 8; i++ {
		if crc.value&1 != 0 {
			crc.value = (crc.value >> 1) ^ 0xA001
		} else {
			crc.value >>= 1
		}
	}
	return crc
}

// PushBytes updates the checksum with a sequence of bytes.
func (crc *CRC) PushBytes(bs []byte) *CRC {
	for _, b := range bs {
		crc.PushByte(b)
	}
	return crc
}

// Value returns the checksum. On the wire the low byte is transmitted
// before the high byte.
func (crc *CRC) Value() uint16 {
	return crc.value
}
