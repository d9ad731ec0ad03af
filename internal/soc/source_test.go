// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package soc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"Plain", "53", 53},
		{"TrailingNewline", "91\n", 91},
		{"Float", "53.7", 53},
		{"Whitespace", "  42  \n", 42},
		{"ClampHigh", "150", 100},
		{"ClampLow", "-5", 0},
		{"Garbage", "full", 53},
		{"Empty", "", 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewFileSource(writeTemp(t, tt.content), 53)
			assert.Equal(t, tt.want, s.Read())
		})
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	s := NewFileSource(filepath.Join(t.TempDir(), "nope.txt"), 53)
	assert.Equal(t, 53, s.Read())
}

func TestFileSourceSeesRewrite(t *testing.T) {
	path := writeTemp(t, "53")
	s := NewFileSource(path, 53)
	require.Equal(t, 53, s.Read())

	require.NoError(t, os.WriteFile(path, []byte("91"), 0644))
	assert.Equal(t, 91, s.Read())
}

func TestMmapSourceRead(t *testing.T) {
	path := writeTemp(t, "53\n")

	s, err := OpenMmapSource(path, 53)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 53, s.Read())
}

func TestMmapSourceInPlaceUpdate(t *testing.T) {
	path := writeTemp(t, "53")

	s, err := OpenMmapSource(path, 53)
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, 53, s.Read())

	// Same-size in-place rewrite, as a shared-memory writer would do.
	f, err := os.OpenFile(path, os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteAt([]byte("91"), 0)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, 91, s.Read())
}

func TestMmapSourceMissingFile(t *testing.T) {
	_, err := OpenMmapSource(filepath.Join(t.TempDir(), "nope.txt"), 53)
	assert.Error(t, err)
}

func TestMmapSourceReadAfterClose(t *testing.T) {
	s, err := OpenMmapSource(writeTemp(t, "53"), 42)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, 42, s.Read())
}
