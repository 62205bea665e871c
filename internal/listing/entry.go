// Package listing defines the structured record for a directory listing and
// the two producers that emit it: one reading filesystem metadata directly,
// one parsing the textual output of lsd(1).
package listing

import (
	"encoding/json"
	"fmt"
	"io"
)

// EntryType discriminates the three kinds of filesystem entry.
type EntryType string

// Entry types.
const (
	TypeFile      EntryType = "file"
	TypeDirectory EntryType = "directory"
	TypeSymlink   EntryType = "symlink"
)

// UnknownTarget is recorded for a symlink whose target cannot be read.
const UnknownTarget = "???"

// Entry describes a single filesystem entry. Field layout and JSON keys
// follow the lsd --long column order.
type Entry struct {
	Permissions string    `json:"permissions"`
	User        string    `json:"user"`
	Group       string    `json:"group"`
	Size        string    `json:"size"`
	Timestamp   string    `json:"timestamp"`
	Name        string    `json:"name"`
	Type        EntryType `json:"type"`
	Target      string    `json:"target,omitempty"`
}

// Validate checks the structural invariants of an entry: all required
// fields present, a known type, and a permissions string whose type
// character agrees with the type.
//
// A symlink without a target is accepted — listing lines that claim type
// symlink but carry no "->" separator parse to exactly that shape, and the
// record preserves what the line said. A target on a non-symlink is always
// an error.
func (e Entry) Validate() error {
	switch e.Type {
	case TypeFile, TypeDirectory, TypeSymlink:
	default:
		return fmt.Errorf("invalid entry type %q", e.Type)
	}

	for field, val := range map[string]string{
		"permissions": e.Permissions,
		"user":        e.User,
		"group":       e.Group,
		"size":        e.Size,
		"timestamp":   e.Timestamp,
		"name":        e.Name,
	} {
		if val == "" {
			return fmt.Errorf("entry %q: missing required field %s", e.Name, field)
		}
	}

	// The type character must agree with the discriminator. Anything other
	// than 'd' or 'l' counts as a file; lsd emits 'b', 'c', 'p' and friends
	// for special files and those are carried through as files.
	tc := e.Permissions[0]
	switch {
	case tc == 'd' && e.Type != TypeDirectory,
		tc == 'l' && e.Type != TypeSymlink,
		tc != 'd' && tc != 'l' && e.Type != TypeFile:
		return fmt.Errorf("entry %q: permissions %q disagree with type %q", e.Name, e.Permissions, e.Type)
	}

	if e.Target != "" && e.Type != TypeSymlink {
		return fmt.Errorf("entry %q: target %q on non-symlink", e.Name, e.Target)
	}
	return nil
}

// Listing is an ordered collection of entries. Order is encounter order:
// sorted by name for the metadata producer, line order for the text producer.
type Listing struct {
	Entries []Entry `json:"entries"`
}

// Encode writes the listing as a JSON document. Pretty-printed by default;
// compact emits a single line.
func (l Listing) Encode(w io.Writer, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	return nil
}

// Decode reads a JSON listing document and validates every entry.
func Decode(r io.Reader) (Listing, error) {
	var l Listing
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Listing{}, fmt.Errorf("decode listing: %w", err)
	}
	for _, e := range l.Entries {
		if err := e.Validate(); err != nil {
			return Listing{}, err
		}
	}
	return l, nil
}
