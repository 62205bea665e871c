package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/lsjson/internal/filter"
	"github.com/bamsammich/lsjson/internal/listing"
)

// fixtureTree builds root/{a.txt, sub/{b.txt, deep/c.txt}, link -> a.txt}.
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("alpha\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("beta\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deep", "c.txt"), []byte("gamma\n"), 0644))
	require.NoError(t, os.Symlink("a.txt", filepath.Join(root, "link")))

	return root
}

func childByName(t *testing.T, n *Node, name string) *Node {
	t.Helper()
	for _, c := range n.Entries {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("child %q not found under %q", name, n.Name)
	return nil
}

func TestWalk_Tree(t *testing.T) {
	root := fixtureTree(t)

	snap, err := Walk(root, Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, root, snap.Root)
	assert.False(t, snap.Created.IsZero())

	require.NotNil(t, snap.Tree)
	assert.Equal(t, listing.TypeDirectory, snap.Tree.Type)
	require.Len(t, snap.Tree.Entries, 3)

	a := childByName(t, snap.Tree, "a.txt")
	assert.Equal(t, listing.TypeFile, a.Type)
	assert.Equal(t, int64(6), a.Size)
	assert.Equal(t, "-rw-r--r--", a.Mode)
	assert.Empty(t, a.Hash)

	link := childByName(t, snap.Tree, "link")
	assert.Equal(t, listing.TypeSymlink, link.Type)
	assert.Equal(t, "a.txt", link.Target)
	assert.Nil(t, link.Entries)

	sub := childByName(t, snap.Tree, "sub")
	require.Len(t, sub.Entries, 2)
	deep := childByName(t, sub, "deep")
	require.Len(t, deep.Entries, 1)
	assert.Equal(t, "c.txt", deep.Entries[0].Name)
}

func TestWalk_RootErrors(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), Options{})
	require.ErrorIs(t, err, listing.ErrNotFound)

	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = Walk(file, Options{})
	require.ErrorIs(t, err, listing.ErrNotDirectory)
}

func TestWalk_Exclude(t *testing.T) {
	root := fixtureTree(t)

	set := filter.NewSet()
	require.NoError(t, set.Add("sub/"))
	require.NoError(t, set.Add("*.txt"))

	snap, err := Walk(root, Options{Exclude: set})
	require.NoError(t, err)

	require.Len(t, snap.Tree.Entries, 1)
	assert.Equal(t, "link", snap.Tree.Entries[0].Name)
}

func TestWalk_MaxDepth(t *testing.T) {
	root := fixtureTree(t)

	snap, err := Walk(root, Options{MaxDepth: 1})
	require.NoError(t, err)

	// sub is kept at the limit but its children are omitted.
	sub := childByName(t, snap.Tree, "sub")
	assert.Nil(t, sub.Entries)

	snap, err = Walk(root, Options{MaxDepth: 2})
	require.NoError(t, err)
	sub = childByName(t, snap.Tree, "sub")
	require.Len(t, sub.Entries, 2)
	assert.Nil(t, childByName(t, sub, "deep").Entries)
}

func TestWalk_Hash(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "same1.txt"), []byte("identical"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "same2.txt"), []byte("identical"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "other.txt"), []byte("different"), 0644))

	snap, err := Walk(root, Options{Hash: true})
	require.NoError(t, err)

	s1 := childByName(t, snap.Tree, "same1.txt")
	s2 := childByName(t, snap.Tree, "same2.txt")
	other := childByName(t, snap.Tree, "other.txt")

	require.Len(t, s1.Hash, 64) // 256-bit digest, hex-encoded
	assert.Equal(t, s1.Hash, s2.Hash)
	assert.NotEqual(t, s1.Hash, other.Hash)
}

func TestWalk_FSUsage(t *testing.T) {
	snap, err := Walk(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Greater(t, snap.FSTotal, snap.FSFree)
}

func TestWriteReadFile_JSON(t *testing.T) {
	root := fixtureTree(t)
	snap, err := Walk(root, Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, snap.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Root, got.Root)
	require.NotNil(t, got.Tree)
	assert.Len(t, got.Tree.Entries, len(snap.Tree.Entries))
}

func TestWriteReadFile_Zstd(t *testing.T) {
	root := fixtureTree(t)
	snap, err := Walk(root, Options{Hash: true})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snap.json.zst")
	require.NoError(t, snap.WriteFile(path))

	// The file on disk is compressed, not JSON.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, byte('{'), raw[0])

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	a := childByName(t, got.Tree, "a.txt")
	assert.Len(t, a.Hash, 64)
}
