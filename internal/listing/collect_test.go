package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureDir builds a directory with one of each entry kind.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty_dir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test README\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.sh"), []byte("#!/bin/sh\necho test\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file with spaces.txt"), []byte("content\n"), 0644))
	require.NoError(t, os.Symlink("README.md", filepath.Join(dir, "link_to_readme")))

	return dir
}

func entryByName(t *testing.T, l Listing, name string) Entry {
	t.Helper()
	for _, e := range l.Entries {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entry %q not found", name)
	return Entry{}
}

func TestCollect_Fixture(t *testing.T) {
	dir := fixtureDir(t)

	l, err := Collect(dir)
	require.NoError(t, err)
	require.Len(t, l.Entries, 5)

	// Sorted by name.
	var names []string
	for _, e := range l.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"README.md", "empty_dir", "file with spaces.txt", "link_to_readme", "script.sh",
	}, names)

	readme := entryByName(t, l, "README.md")
	assert.Equal(t, TypeFile, readme.Type)
	assert.Equal(t, "-rw-r--r--", readme.Permissions)
	assert.Equal(t, "14 B", readme.Size)
	assert.Empty(t, readme.Target)

	emptyDir := entryByName(t, l, "empty_dir")
	assert.Equal(t, TypeDirectory, emptyDir.Type)
	assert.Equal(t, byte('d'), emptyDir.Permissions[0])

	script := entryByName(t, l, "script.sh")
	assert.Equal(t, "-rwxr-xr-x", script.Permissions)

	link := entryByName(t, l, "link_to_readme")
	assert.Equal(t, TypeSymlink, link.Type)
	assert.Equal(t, byte('l'), link.Permissions[0])
	assert.Equal(t, "README.md", link.Target)

	for _, e := range l.Entries {
		require.NoError(t, e.Validate())
		assert.True(t, ValidSize(e.Size), "size %q", e.Size)
		assert.True(t, ValidTimestamp(e.Timestamp), "timestamp %q", e.Timestamp)
		assert.NotEmpty(t, e.User)
		assert.NotEmpty(t, e.Group)
	}
}

func TestCollect_MissingPath(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCollect_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Collect(file)
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestCollect_EmptyDirectory(t *testing.T) {
	l, err := Collect(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, l.Entries)
	assert.NotNil(t, l.Entries)
}

func TestCollectEntry_DanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink("no/such/file", link))

	entry, err := CollectEntry(link)
	require.NoError(t, err)
	assert.Equal(t, TypeSymlink, entry.Type)
	assert.Equal(t, "no/such/file", entry.Target)
}

func TestCollectEntry_SymlinkNotFollowed(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	link := filepath.Join(dir, "dirlink")
	require.NoError(t, os.Symlink("sub", link))

	entry, err := CollectEntry(link)
	require.NoError(t, err)
	// The link itself is reported, not the directory behind it.
	assert.Equal(t, TypeSymlink, entry.Type)
	assert.Equal(t, "sub", entry.Target)
}

func TestOwnerNameFallback(t *testing.T) {
	// An id with no account entry renders as its decimal string.
	assert.Equal(t, "4294967294", userName(4294967294))
	assert.Equal(t, "4294967294", groupName(4294967294))
}
