package listing

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
)

// Sentinel errors for the fatal root-level failures of Collect.
var (
	ErrNotFound     = errors.New("path does not exist")
	ErrNotDirectory = errors.New("path is not a directory")
)

// Collect builds a listing of the immediate children of dir, sorted by
// name. The root path must exist and be a directory; those failures and a
// top-level read error are fatal. A child that cannot be stat'd (permission
// denied, deleted mid-listing) is skipped with a warning.
func Collect(dir string) (Listing, error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Listing{}, fmt.Errorf("%w: %s", ErrNotFound, dir)
	case err != nil:
		return Listing{}, fmt.Errorf("stat %s: %w", dir, err)
	case !info.IsDir():
		return Listing{}, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	// os.ReadDir returns entries sorted by filename.
	children, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, fmt.Errorf("read %s: %w", dir, err)
	}

	out := Listing{Entries: make([]Entry, 0, len(children))}
	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		entry, err := CollectEntry(path)
		if err != nil {
			slog.Warn("skipping entry", "path", path, "error", err)
			continue
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

// CollectEntry builds the record for a single path. Symlinks are reported
// as themselves, never followed.
func CollectEntry(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("lstat %s: %w", path, err)
	}

	entry := Entry{
		Permissions: FormatPermissions(info.Mode()),
		Size:        FormatSize(info.Size()),
		Timestamp:   FormatTimestamp(info.ModTime()),
		Name:        info.Name(),
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		entry.Type = TypeSymlink
	case info.IsDir():
		entry.Type = TypeDirectory
	default:
		entry.Type = TypeFile
	}

	uid, gid := ownerIDs(info)
	entry.User = userName(uid)
	entry.Group = groupName(gid)

	if entry.Type == TypeSymlink {
		target, err := os.Readlink(path)
		if err != nil {
			target = UnknownTarget
		}
		entry.Target = target
	}
	return entry, nil
}

// userName resolves a uid against the user database, falling back to the
// decimal id when there is no matching account.
func userName(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(id); err == nil {
		return u.Username
	}
	return id
}

func groupName(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(id); err == nil {
		return g.Name
	}
	return id
}
