package scan

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// ErrScanActive is returned when Scan is called while another scan is
// already running on the same engine instance.
var ErrScanActive = errors.New("scan already in progress on this engine")

// isAccessError reports whether err is a recoverable per-entry failure:
// permission denied, entry vanished mid-scan, or path too long. These are
// counted and skipped; anything else aborts the scan.
func isAccessError(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, unix.EACCES) ||
		errors.Is(err, unix.ENAMETOOLONG)
}
