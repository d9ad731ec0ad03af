// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package modbus

// Function codes relevant to the emulated device. Only
// FuncCodeReadHoldingRegisters is served; everything else is answered
// with an illegal-function exception.
const (
	FuncCodeReadCoils              = 0x01
	FuncCodeReadDiscreteInputs     = 0x02
	FuncCodeReadHoldingRegisters   = 0x03
	FuncCodeReadInputRegisters     = 0x04
	FuncCodeWriteSingleCoil        = 0x05
	FuncCodeWriteSingleRegister    = 0x06
	FuncCodeWriteMultipleCoils     = 0x0F
	FuncCodeWriteMultipleRegisters = 0x10
)

// Exception codes.
const (
	ExceptionCodeIllegalFunction    = 0x01
	ExceptionCodeIllegalDataAddress = 0x02
	ExceptionCodeIllegalDataValue   = 0x03
)

// ProtocolDataUnit (PDU) is independent of underlying communication layers.
type ProtocolDataUnit struct {
	FunctionCode byte
	Data         []byte
}

// Exception builds an exception PDU for the given request function code.
// The high bit of the function code is set and the single data byte
// carries the exception code.
func Exception(funcCode byte, code byte) ProtocolDataUnit {
	return ProtocolDataUnit{
		FunctionCode: funcCode | 0x80,
		Data:         []byte{code},
	}
}

// IsException reports whether the PDU is an exception response.
func (pdu ProtocolDataUnit) IsException() bool {
	return pdu.FunctionCode&0x80 != 0
}
