package listing

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// minLineFields is the column count of a complete lsd --long line:
// permissions, user, group, size value, size unit, five timestamp fields,
// and at least one name field.
const minLineFields = 11

// symlinkSep separates a symlink's name from its target in the name column.
const symlinkSep = " -> "

// ParseLine converts one line of lsd --long output into an entry. Blank
// lines and lines with fewer than the fixed layout's minimum field count
// yield ok=false with no error; headers and separators fall out here. A
// line that parses but fails record validation is an error.
func ParseLine(line string) (entry Entry, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < minLineFields {
		return Entry{}, false, nil
	}

	entry = Entry{
		Permissions: fields[0],
		User:        fields[1],
		Group:       fields[2],
		Size:        fields[3] + " " + fields[4],
		// Timestamp text is passed through verbatim, never reformatted.
		Timestamp: strings.Join(fields[5:10], " "),
	}

	rest := strings.Join(fields[10:], " ")
	if name, target, found := strings.Cut(rest, symlinkSep); found {
		entry.Name = name
		entry.Target = target
	} else {
		entry.Name = rest
	}

	// Type is read off the permissions column alone; a symlink line with no
	// "->" separator still parses as a (targetless) symlink.
	switch entry.Permissions[0] {
	case 'd':
		entry.Type = TypeDirectory
	case 'l':
		entry.Type = TypeSymlink
	default:
		entry.Type = TypeFile
	}

	if err := entry.Validate(); err != nil {
		return Entry{}, false, fmt.Errorf("parse line %q: %w", line, err)
	}
	return entry, true, nil
}

// Parse reads lsd --long lines from r and returns the entries in line
// order. Unlike Collect, a line that fails validation aborts the whole
// parse rather than being skipped.
func Parse(r io.Reader) (Listing, error) {
	out := Listing{Entries: []Entry{}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		entry, ok, err := ParseLine(sc.Text())
		if err != nil {
			return Listing{}, err
		}
		if ok {
			out.Entries = append(out.Entries, entry)
		}
	}
	if err := sc.Err(); err != nil {
		return Listing{}, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

// ParseString parses a complete lsd --long output string.
func ParseString(s string) (Listing, error) {
	return Parse(strings.NewReader(s))
}
