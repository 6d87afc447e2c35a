//go:build !windows

package ioutils

import "golang.org/x/sys/unix"

// FreeSpace returns the number of bytes available to the current user on
// the volume that holds path.
func FreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
