// Package snapshot walks a directory tree and produces a nested
// point-in-time document describing every entry beneath the root.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/bamsammich/lsjson/internal/filter"
	"github.com/bamsammich/lsjson/internal/listing"
)

// Options control the walk.
type Options struct {
	// Exclude skips entries matching any of its glob patterns.
	Exclude *filter.Set

	// MaxDepth limits recursion; 0 means unlimited. A directory at the
	// limit is kept but its children are omitted.
	MaxDepth int

	// Hash computes a BLAKE3 digest for every regular file.
	Hash bool
}

// Node is one entry in the tree. Directories carry their children in
// Entries; symlinks carry the raw link text in Target.
type Node struct {
	Name    string            `json:"name"`
	Type    listing.EntryType `json:"type"`
	Size    int64             `json:"size"`
	Mode    string            `json:"mode"`
	ModTime time.Time         `json:"mtime"`
	Target  string            `json:"target,omitempty"`
	Hash    string            `json:"hash,omitempty"`
	Entries []*Node           `json:"entries,omitempty"`
}

// Snapshot is the top-level document.
type Snapshot struct {
	ID      string    `json:"id"`
	Root    string    `json:"root"`
	Created time.Time `json:"created"`
	FSTotal uint64    `json:"fs_total_bytes,omitempty"`
	FSFree  uint64    `json:"fs_free_bytes,omitempty"`
	Tree    *Node     `json:"tree"`
}

// Walk builds a snapshot of the tree rooted at root. The root must exist
// and be a directory; below it, entries that cannot be stat'd are skipped
// with a warning, matching the listing collector.
func Walk(root string, opts Options) (*Snapshot, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", listing.ErrNotFound, root)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", root, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s", listing.ErrNotDirectory, root)
	}

	tree := dirNode(filepath.Base(abs), info)
	if err := walkDir(abs, "", tree, 1, opts); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:      uuid.NewString(),
		Root:    abs,
		Created: time.Now(),
		Tree:    tree,
	}
	snap.FSTotal, snap.FSFree = fsUsage(abs)
	return snap, nil
}

func dirNode(name string, info os.FileInfo) *Node {
	return &Node{
		Name:    name,
		Type:    listing.TypeDirectory,
		Size:    info.Size(),
		Mode:    listing.FormatPermissions(info.Mode()),
		ModTime: info.ModTime(),
		Entries: []*Node{},
	}
}

func walkDir(path, rel string, parent *Node, depth int, opts Options) error {
	children, err := os.ReadDir(path)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("read %s: %w", path, err)
		}
		slog.Warn("skipping unreadable directory", "path", path, "error", err)
		return nil
	}

	for _, child := range children {
		childPath := filepath.Join(path, child.Name())
		childRel := filepath.Join(rel, child.Name())

		info, err := os.Lstat(childPath)
		if err != nil {
			slog.Warn("skipping entry", "path", childPath, "error", err)
			continue
		}

		isDir := info.IsDir()
		if opts.Exclude != nil && opts.Exclude.Excluded(childRel, isDir) {
			continue
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(childPath)
			if err != nil {
				target = listing.UnknownTarget
			}
			parent.Entries = append(parent.Entries, &Node{
				Name:    child.Name(),
				Type:    listing.TypeSymlink,
				Size:    info.Size(),
				Mode:    listing.FormatPermissions(info.Mode()),
				ModTime: info.ModTime(),
				Target:  target,
			})

		case isDir:
			node := dirNode(child.Name(), info)
			if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
				// Depth limit reached: keep the directory, omit its children.
				node.Entries = nil
			} else if err := walkDir(childPath, childRel, node, depth+1, opts); err != nil {
				return err
			}
			parent.Entries = append(parent.Entries, node)

		default:
			node := &Node{
				Name:    child.Name(),
				Type:    listing.TypeFile,
				Size:    info.Size(),
				Mode:    listing.FormatPermissions(info.Mode()),
				ModTime: info.ModTime(),
			}
			if opts.Hash && info.Mode().IsRegular() {
				digest, err := hashFile(childPath)
				if err != nil {
					slog.Warn("hash failed", "path", childPath, "error", err)
				} else {
					node.Hash = digest
				}
			}
			parent.Entries = append(parent.Entries, node)
		}
	}
	return nil
}

// hashFile computes the BLAKE3 hash of the file at path, returning the
// hex-encoded digest.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Encode writes the snapshot as a JSON document, indented unless compact.
func (s *Snapshot) Encode(w io.Writer, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteFile writes the snapshot to path, zstd-compressed when the name
// ends in .zst.
func (s *Snapshot) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if strings.HasSuffix(path, ".zst") {
		zw, zerr := zstd.NewWriter(f)
		if zerr != nil {
			return fmt.Errorf("zstd writer: %w", zerr)
		}
		if err := s.Encode(zw, false); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("flush %s: %w", path, err)
		}
		return nil
	}
	return s.Encode(f, false)
}

// ReadFile loads a snapshot written by WriteFile, decompressing .zst files.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &snap, nil
}
