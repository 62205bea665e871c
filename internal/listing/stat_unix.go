//go:build linux || darwin

package listing

import (
	"os"
	"syscall"
)

// ownerIDs extracts the numeric owner and group ids from a stat result.
func ownerIDs(info os.FileInfo) (uid, gid uint32) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	return st.Uid, st.Gid
}
