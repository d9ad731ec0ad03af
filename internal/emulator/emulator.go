// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package emulator runs the polling loop of the emulated BMS: it reads
// the serial bus, delimits RTU frames by idle gap, validates and
// answers Chargeverter polls, and patches the live state of charge
// into every response.
package emulator

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"github.com/ffutop/bms-emulator/internal/battery"
	"github.com/ffutop/bms-emulator/internal/soc"
	"github.com/ffutop/bms-emulator/modbus/rtu"
)

// idlePause is how long the loop yields when the bus is silent.
const idlePause = time.Millisecond

// Emulator drives a single serial bus as one Modbus RTU slave. It owns
// the framer, the register bank and the session counters; everything
// runs on one goroutine, so no locking is needed.
type Emulator struct {
	slaveID byte
	slave   *battery.Slave
	source  soc.Source
	framer  *rtu.Framer

	reportInterval time.Duration

	// Session counters, reset on every report.
	okCount     int
	badCRCCount int
}

// New creates an Emulator.
func New(slaveID byte, slave *battery.Slave, source soc.Source, frameGap, reportInterval time.Duration) *Emulator {
	return &Emulator{
		slaveID:        slaveID,
		slave:          slave,
		source:         source,
		framer:         rtu.NewFramer(frameGap),
		reportInterval: reportInterval,
	}
}

// Run polls the port until ctx is cancelled. Read errors and protocol
// problems never stop the loop; cancellation between iterations is the
// only way out, and any buffered partial frame is discarded then.
func (e *Emulator) Run(ctx context.Context, port io.ReadWriter) error {
	buf := make([]byte, 4096)
	lastSOC := -1
	lastReport := time.Now()

	for {
		select {
		case <-ctx.Done():
			e.framer.Reset()
			return nil
		default:
		}

		// Re-read the SOC every iteration so an edit becomes visible
		// to the very next poll response.
		liveSOC := e.source.Read()
		if liveSOC != lastSOC {
			slog.Info("SOC changed", "soc", liveSOC)
			lastSOC = liveSOC
		}

		// A timed-out read yields n == 0, which doubles as the "bus
		// is silent" signal for the framer.
		n, err := port.Read(buf)
		if err != nil && n == 0 && ctx.Err() != nil {
			e.framer.Reset()
			return nil
		}

		frame := e.framer.Feed(buf[:n], time.Now())
		if frame != nil {
			e.handleFrame(port, frame, liveSOC)
		} else if n == 0 {
			time.Sleep(idlePause)
		}

		if e.reportInterval > 0 && time.Since(lastReport) >= e.reportInterval {
			elapsed := time.Since(lastReport).Seconds()
			slog.Info("poll rate",
				"ok_per_s", float64(e.okCount)/elapsed,
				"badcrc_per_s", float64(e.badCRCCount)/elapsed)
			e.okCount = 0
			e.badCRCCount = 0
			lastReport = time.Now()
		}
	}
}

// handleFrame validates one delimited frame and writes at most one
// response. Short frames, checksum failures and frames addressed to
// other slaves on the bus produce no response at all.
func (e *Emulator) handleFrame(w io.Writer, frame []byte, liveSOC int) {
	if len(frame) < rtu.RequestSize {
		slog.Debug("RX short", "len", len(frame), "frame", hex.EncodeToString(frame))
		return
	}

	adu, err := rtu.Decode(frame)
	if err != nil {
		e.badCRCCount++
		slog.Debug("RX bad crc", "len", len(frame), "frame", hex.EncodeToString(frame), "err", err)
		return
	}
	e.okCount++

	if adu.SlaveID != e.slaveID {
		// Shared bus; traffic for other slaves is not ours to answer.
		return
	}
	slog.Debug("RX", "frame", hex.EncodeToString(frame))

	respPDU := e.slave.Process(adu.Pdu, uint16(liveSOC))
	resp := &rtu.ApplicationDataUnit{SlaveID: adu.SlaveID, Pdu: respPDU}
	raw, err := resp.Encode()
	if err != nil {
		slog.Error("failed to encode response", "err", err)
		return
	}

	if _, err := w.Write(raw); err != nil {
		slog.Error("failed to write response", "err", err)
		return
	}
	slog.Debug("TX", "frame", hex.EncodeToString(raw), "soc", liveSOC)
}
