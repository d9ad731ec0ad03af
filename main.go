// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ffutop/bms-emulator/internal/battery"
	"github.com/ffutop/bms-emulator/internal/config"
	"github.com/ffutop/bms-emulator/internal/emulator"
	"github.com/ffutop/bms-emulator/internal/soc"
)

func main() {
	// Load Configuration
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	slog.Info("Starting BMS emulator...",
		"device", cfg.Device,
		"baud", cfg.BaudRate,
		"parity", cfg.Parity,
		"slave_id", fmt.Sprintf("0x%02X", cfg.SlaveID))
	slog.Info("Edit the SOC source to steer the Chargeverter", "path", cfg.SOCPath)

	// Live SOC source
	var source soc.Source
	switch cfg.SOCSource {
	case "mmap":
		ms, err := soc.OpenMmapSource(cfg.SOCPath, cfg.DefaultSOC)
		if err != nil {
			slog.Error("Failed to open SOC source", "path", cfg.SOCPath, "err", err)
			os.Exit(1)
		}
		defer ms.Close()
		source = ms
	default:
		source = soc.NewFileSource(cfg.SOCPath, cfg.DefaultSOC)
	}

	// Serial port; the only unrecoverable failure.
	port, err := emulator.OpenPort(cfg)
	if err != nil {
		slog.Error("Failed to open serial port", "err", err)
		os.Exit(1)
	}
	defer port.Close()

	slave := battery.NewSlave(battery.NewBank(uint16(cfg.DefaultSOC)))
	emu := emulator.New(byte(cfg.SlaveID), slave, source, cfg.FrameGap, cfg.ReportInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := emu.Run(ctx, port); err != nil {
			slog.Error("Emulator stopped with error", "err", err)
		}
	}()

	// Wait for Signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
	cancel()
	wg.Wait()
	slog.Info("Goodbye.")
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogFile != "" && cfg.LogFile != "-" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Failed to open log file, falling back to stdout: %v\n", err)
			handler = slog.NewTextHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(f, opts)
		}
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
