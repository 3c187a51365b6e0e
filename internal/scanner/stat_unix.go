//go:build !windows

package scanner

import (
	"io/fs"
	"syscall"
)

// statInfo extracts the platform metadata Tree Model nodes carry:
// device/inode identity, hardlink count, allocated blocks, and the
// executable bit. ok is false on platforms (or filesystems) that don't
// expose a syscall.Stat_t through fs.FileInfo.Sys().
func statInfo(info fs.FileInfo) (dev, ino, nlink, blocks uint64, executable bool, ok bool) {
	stat, isStat := info.Sys().(*syscall.Stat_t)
	if !isStat {
		return 0, 0, 0, uint64(info.Size()+511) / 512, info.Mode()&0o111 != 0, false
	}
	return uint64(stat.Dev), uint64(stat.Ino), uint64(stat.Nlink), uint64(stat.Blocks), info.Mode()&0o111 != 0, true
}

// rootDevice stats path and returns its device id, for the Scanner's
// cross-filesystem check.
func rootDevice(path string) (uint64, error) {
	var stat syscall.Stat_t
	if err := syscall.Stat(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Dev), nil
}
