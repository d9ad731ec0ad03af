// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package battery

import (
	"encoding/binary"

	"github.com/ffutop/bms-emulator/modbus"
)

// Slave implements the Modbus protocol logic on top of a Bank. Only
// Read Holding Registers (0x03) is served; the real device answers
// everything else with an illegal-function exception, so we do too.
type Slave struct {
	bank *Bank
}

// NewSlave creates a new Slave.
func NewSlave(bank *Bank) *Slave {
	return &Slave{bank: bank}
}

// Process executes the request against the bank and returns the
// response PDU, patching the live SOC into the reply. Every request
// yields exactly one response PDU; address filtering and checksum
// validation happen before Process is reached.
func (s *Slave) Process(req modbus.ProtocolDataUnit, soc uint16) modbus.ProtocolDataUnit {
	if req.FunctionCode != modbus.FuncCodeReadHoldingRegisters {
		return modbus.Exception(req.FunctionCode, modbus.ExceptionCodeIllegalFunction)
	}

	if len(req.Data) < 4 {
		return modbus.Exception(req.FunctionCode, modbus.ExceptionCodeIllegalDataValue)
	}
	address := binary.BigEndian.Uint16(req.Data[0:2])
	quantity := binary.BigEndian.Uint16(req.Data[2:4])

	regs, err := s.bank.ReadRegisters(address, quantity, soc)
	if err != nil {
		return modbus.Exception(req.FunctionCode, modbus.ExceptionCodeIllegalDataAddress)
	}

	respData := make([]byte, 1+2*len(regs))
	respData[0] = byte(2 * len(regs))
	for i, reg := range regs {
		binary.BigEndian.PutUint16(respData[1+2*i:], reg)
	}

	return modbus.ProtocolDataUnit{
		FunctionCode: req.FunctionCode,
		Data:         respData,
	}
}
