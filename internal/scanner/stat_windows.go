//go:build windows

package scanner

import "io/fs"

// statInfo on Windows has no device/inode/hardlink concept available
// through fs.FileInfo; ok is always false, which disables the
// hardlink-dedup and cross-filesystem checks for this platform.
func statInfo(info fs.FileInfo) (dev, ino, nlink, blocks uint64, executable bool, ok bool) {
	blocks = (uint64(info.Size()) + 511) / 512
	return 0, 0, 1, blocks, false, false
}

func rootDevice(path string) (uint64, error) {
	return 0, nil
}
