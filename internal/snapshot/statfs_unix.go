//go:build linux || darwin

package snapshot

import "golang.org/x/sys/unix"

// fsUsage returns the total and available byte counts of the filesystem
// holding path. Best effort: zeros on failure.
func fsUsage(path string) (total, free uint64) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bavail * bsize
}
