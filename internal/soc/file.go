// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package soc

import "os"

// FileSource reads the state of charge from a plain text file, e.g.
// one maintained with `echo 91 > soc.txt`. The file is opened on every
// read so a rewrite (new inode included) is always picked up.
type FileSource struct {
	path     string
	fallback int
}

// NewFileSource creates a FileSource. fallback is returned whenever
// the file is missing or does not parse.
func NewFileSource(path string, fallback int) *FileSource {
	return &FileSource{path: path, fallback: clamp(fallback)}
}

// Read implements Source.
func (s *FileSource) Read() int {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return s.fallback
	}
	return parsePercent(string(raw), s.fallback)
}
