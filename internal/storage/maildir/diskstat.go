package maildir

import (
	"golang.org/x/sys/unix"
)

// Diagnostics reports free space on the filesystem backing this backend's
// root directory. It has no analogue in the original Python backend; a
// maildir store has no database to report on, so the one operational
// signal worth surfacing is "are we about to fail every POST with
// ENOSPC".
type Diagnostics struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// Diagnostics statfs(2)s the backend's root directory.
func (b *Backend) Diagnostics() (Diagnostics, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(b.cfg.Root, &st); err != nil {
		return Diagnostics{}, err
	}
	blockSize := uint64(st.Bsize)
	return Diagnostics{
		TotalBytes: st.Blocks * blockSize,
		FreeBytes:  st.Bavail * blockSize,
	}, nil
}
