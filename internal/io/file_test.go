package ioutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "second call is a no-op")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")

	assert.False(t, Exists(path))

	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.True(t, Exists(path), "empty files count as present")
	assert.True(t, Exists(dir))
}

func TestCreateFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0644))

	f, err := CreateFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFreeSpace(t *testing.T) {
	free, err := FreeSpace(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))

	_, err = FreeSpace(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFormatMB(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0.00"},
		{1024 * 1024, "1.00"},
		{1572864, "1.50"},
		{10 * 1024 * 1024 * 1024, "10240.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMB(tt.input))
	}
}
