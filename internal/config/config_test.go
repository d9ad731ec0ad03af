// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 9600, cfg.BaudRate)
	assert.Equal(t, "N", cfg.Parity)
	assert.Equal(t, 1, cfg.StopBits)
	assert.Equal(t, 0x01, cfg.SlaveID)
	assert.Equal(t, 3*time.Millisecond, cfg.FrameGap)
	assert.Equal(t, 53, cfg.DefaultSOC)
	assert.Equal(t, "file", cfg.SOCSource)
	assert.Equal(t, "soc.txt", cfg.SOCPath)
	assert.Equal(t, 5*time.Second, cfg.ReportInterval)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := LoadConfig([]string{
		"--device", "/dev/ttyUSB0",
		"--baud_rate", "19200",
		"--parity", "e",
		"--slave_id", "17",
		"--frame_gap", "5ms",
		"--soc_path", "/run/soc",
	})
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, 19200, cfg.BaudRate)
	assert.Equal(t, "E", cfg.Parity)
	assert.Equal(t, 17, cfg.SlaveID)
	assert.Equal(t, 5*time.Millisecond, cfg.FrameGap)
	assert.Equal(t, "/run/soc", cfg.SOCPath)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
device: /dev/ttySC0
baud_rate: 115200
parity: o
slave_id: 3
soc_source: mmap
soc_path: /dev/shm/soc
`), 0644))

	cfg, err := LoadConfig([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, "O", cfg.Parity)
	assert.Equal(t, 3, cfg.SlaveID)
	assert.Equal(t, "mmap", cfg.SOCSource)
	assert.Equal(t, "/dev/shm/soc", cfg.SOCPath)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"BadParity", []string{"--parity", "X"}},
		{"BadStopBits", []string{"--stop_bits", "3"}},
		{"SlaveIDOutOfRange", []string{"--slave_id", "256"}},
		{"BadSOCSource", []string{"--soc_source", "sqlite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}
