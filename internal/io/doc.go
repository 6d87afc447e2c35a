// Package ioutils provides file system utilities.
//
// # Directories
//
//	err := ioutils.EnsureDir("/videos/archive")
//
// # Skip Checks
//
// Exists is the only test used to decide whether a download can be skipped:
//
//	if ioutils.Exists(task.Path) {
//	    // already downloaded
//	}
//
// # Free Space
//
//	free, err := ioutils.FreeSpace("/videos/archive")
//	fmt.Printf("%s MB free\n", ioutils.FormatMB(free))
package ioutils
