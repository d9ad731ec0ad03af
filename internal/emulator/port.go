// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package emulator

import (
	"fmt"
	"io"
	"time"

	"github.com/grid-x/serial"

	"github.com/ffutop/bms-emulator/internal/config"
)

// readTimeout bounds a single port read. It keeps the loop responsive
// enough to check the framer's gap timer without busy-spinning; a read
// that times out is treated as an empty chunk.
const readTimeout = time.Millisecond

// OpenPort opens and configures the serial port, including RS485
// direction control when enabled. This is the only unrecoverable setup
// step: a failure here must terminate the process.
func OpenPort(cfg *config.Config) (io.ReadWriteCloser, error) {
	spConfig := &serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  readTimeout,
		RS485: serial.RS485Config{
			Enabled:            cfg.RS485,
			DelayRtsBeforeSend: cfg.DelayRtsBeforeSend,
			DelayRtsAfterSend:  cfg.DelayRtsAfterSend,
			RtsHighDuringSend:  cfg.RtsHighDuringSend,
			RtsHighAfterSend:   cfg.RtsHighAfterSend,
			RxDuringTx:         cfg.RxDuringTx,
		},
	}

	port, err := serial.Open(spConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return port, nil
}
