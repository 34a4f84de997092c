//go:build darwin

package scan

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes extracts creation, modification, and access timestamps from a
// FileInfo. Darwin carries a real birth time in stat.
func fileTimes(info os.FileInfo) (created, modified, accessed time.Time) {
	modified = info.ModTime()
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return modified, modified, modified
	}
	created = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	accessed = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
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
