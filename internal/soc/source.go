// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package soc supplies the live state-of-charge value that is patched
// into poll responses. The value lives outside the process (a text
// file, or a memory-mapped region) and is re-read on every loop
// iteration, so edits become visible within one poll period. A source
// never fails its caller: anything unreadable or unparsable yields the
// configured fallback.
package soc

import (
	"strconv"
	"strings"
)

// Source supplies the current state of charge, always in [0, 100].
type Source interface {
	Read() int
}

// parsePercent interprets raw text as a percentage. Float input like
// "53.7" is accepted and truncated; the result is clamped to [0, 100].
func parsePercent(raw string, fallback int) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return clamp(int(v))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
