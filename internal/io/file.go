// Package ioutils provides file system utilities for archive-downloader.
//
// This package contains functions for:
//   - Directory creation
//   - Existence checks used to skip finished downloads
//   - Free space queries for progress lines
package ioutils

import (
	"fmt"
	"os"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/videos/archive")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists reports whether anything is present at path.
//
// Size and content are not checked: a truncated file left behind by an
// interrupted run counts as present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateFile creates or truncates the file at path for writing.
func CreateFile(path string) (*os.File, error) {
	return os.Create(path)
}

// FormatMB formats a byte count as mebibytes with two decimals.
//
// Example:
//
//	FormatMB(1572864) // Returns "1.50"
func FormatMB(b uint64) string {
	return fmt.Sprintf("%.2f", float64(b)/(1024*1024))
}
