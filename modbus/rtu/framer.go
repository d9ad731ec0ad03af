// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package rtu

import "time"

// Framer delimits RTU frames on a byte stream by idle gap. RTU carries
// no length prefix or terminator; the bus convention is a minimum
// silence interval between frames, so that silence is the only
// delimiter available. The gap must sit below the master's inter-poll
// pause and above plausible inter-byte gaps at the configured baud
// rate; it is supplied by the caller, not inferred here.
//
// The Framer performs no CRC or length validation. A transfer
// interrupted long enough is delivered truncated and left to the
// downstream checks.
type Framer struct {
	gap    time.Duration
	buf    []byte
	lastRx time.Time
}

// NewFramer creates a Framer with the given idle-gap threshold.
func NewFramer(gap time.Duration) *Framer {
	return &Framer{gap: gap}
}

// Feed consumes one read from the serial port. A non-empty chunk is
// buffered and stamps the receipt time. An empty chunk (nothing was
// available) completes the buffered frame once the configured silence
// has elapsed since the last byte. Returns nil while no frame is ready.
func (f *Framer) Feed(chunk []byte, now time.Time) []byte {
	if len(chunk) > 0 {
		f.buf = append(f.buf, chunk...)
		f.lastRx = now
		return nil
	}
	if len(f.buf) > 0 && now.Sub(f.lastRx) >= f.gap {
		frame := f.buf
		f.buf = nil
		return frame
	}
	return nil
}

// Reset discards any buffered partial frame.
func (f *Framer) Reset() {
	f.buf = nil
}
