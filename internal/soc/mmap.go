// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package soc

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MmapSource reads the state of charge from a memory-mapped file. This
// suits a writer that updates the value in place (shared-memory style)
// at high frequency: the per-iteration read costs no syscalls. The
// region size is fixed at Open; writers must rewrite in place rather
// than truncate and recreate.
type MmapSource struct {
	path     string
	fallback int
	file     *os.File
	data     mmap.MMap
}

// OpenMmapSource maps the file read-only. The file must already exist
// and be non-empty.
func OpenMmapSource(path string, fallback int) (*MmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open soc file: %w", err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	return &MmapSource{
		path:     path,
		fallback: clamp(fallback),
		file:     f,
		data:     data,
	}, nil
}

// Read implements Source. The mapped region is padded with NUL or
// whitespace beyond the digits; both are stripped before parsing.
func (s *MmapSource) Read() int {
	if s.data == nil {
		return s.fallback
	}
	raw := bytes.TrimRight(s.data, "\x00")
	return parsePercent(string(raw), s.fallback)
}

// Close unmaps and closes the file.
func (s *MmapSource) Close() error {
	var err error
	if s.data != nil {
		if e := s.data.Unmap(); e != nil {
			err = e
		}
		s.data = nil
	}
	if s.file != nil {
		if e := s.file.Close(); e != nil {
			err = e
		}
		s.file = nil
	}
	return err
}
