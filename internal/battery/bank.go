// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package battery

import "fmt"

// Register layout of the emulated Narada BMS. The Chargeverter polls
// start=0x0013 count=0x0011 (registers 0x0013..0x0023); any read fully
// contained in the bank is answered.
const (
	// BankSize covers 0x0000..0x0026.
	BankSize = 0x27

	// RegSOC and RegSOCMirror both report state of charge and are
	// patched with the live value on every read.
	RegSOC       = 0x0015
	RegSOCMirror = 0x0018
	RegSOH       = 0x0017
)

// Bank is the fixed register space of the emulated device. It is
// created once at startup and never resized. Reads copy; the backing
// array is only written at construction time.
type Bank struct {
	regs []uint16
}

// NewBank creates a bank seeded with plausible BMS values. The key
// ones are SOC (patched live on read anyway) and SOH = 100.
func NewBank(defaultSOC uint16) *Bank {
	regs := make([]uint16, BankSize)
	regs[0x0013] = 0x0017
	regs[0x0014] = 0x0018
	regs[RegSOC] = defaultSOC
	regs[0x0016] = 0x0032
	regs[RegSOH] = 0x0064
	regs[RegSOCMirror] = defaultSOC
	return &Bank{regs: regs}
}

// Size returns the number of registers in the bank.
func (b *Bank) Size() int {
	return len(b.regs)
}

// ReadRegisters copies quantity registers starting at address and
// patches the SOC registers in the copy with the live value. The
// stored defaults are never overwritten; injection happens on the copy
// only.
func (b *Bank) ReadRegisters(address, quantity uint16, soc uint16) ([]uint16, error) {
	if int(address)+int(quantity) > len(b.regs) {
		return nil, fmt.Errorf("address range out of bounds")
	}

	result := make([]uint16, quantity)
	copy(result, b.regs[address:int(address)+int(quantity)])

	for _, reg := range [...]uint16{RegSOC, RegSOCMirror} {
		if reg >= address && reg < address+quantity {
			result[reg-address] = soc
		}
	}
	return result, nil
}
