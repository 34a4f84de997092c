//go:build linux

package scan

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes extracts creation, modification, and access timestamps from a
// FileInfo. Linux exposes no birth time through stat, so the inode change
// time stands in for creation.
func fileTimes(info os.FileInfo) (created, modified, accessed time.Time) {
	modified = info.ModTime()
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return modified, modified, modified
	}
	created = time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
	accessed = time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
	return created, modified, accessed
}

// usedSpace returns the used byte count of the volume holding path, for the
// upfront progress estimate. Returns 0 if the volume cannot be queried.
func usedSpace(path string) int64 {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0
	}
	used := (fs.Blocks - fs.Bfree) * uint64(fs.Bsize)
	return int64(used)
}
