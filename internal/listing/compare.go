package listing

import (
	"fmt"
	"sort"
	"strings"
)

// Diff compares two listings for record-equivalence and returns a sorted
// list of human-readable differences, empty when equivalent.
//
// Equivalence means: the same multiset of names, and for every shared name
// identical type, permissions, user and group, plus identical target for
// symlinks. Size and timestamp are deliberately not compared between
// listings — their rendering legitimately drifts between producers — but
// each must satisfy its own format contract.
func Diff(a, b Listing) []string {
	var problems []string

	counts := make(map[string]int)
	for _, e := range a.Entries {
		counts[e.Name]++
	}
	for _, e := range b.Entries {
		counts[e.Name]--
	}
	for name, n := range counts {
		switch {
		case n > 0:
			problems = append(problems, fmt.Sprintf("%s: missing from second listing", name))
		case n < 0:
			problems = append(problems, fmt.Sprintf("%s: missing from first listing", name))
		}
	}

	// First occurrence wins when a name repeats.
	index := make(map[string]Entry, len(b.Entries))
	for i := len(b.Entries) - 1; i >= 0; i-- {
		index[b.Entries[i].Name] = b.Entries[i]
	}

	for _, ea := range a.Entries {
		eb, ok := index[ea.Name]
		if !ok {
			continue
		}
		if ea.Type != eb.Type {
			problems = append(problems, fmt.Sprintf("%s: type %q != %q", ea.Name, ea.Type, eb.Type))
		}
		if ea.Permissions != eb.Permissions {
			problems = append(problems, fmt.Sprintf("%s: permissions %q != %q", ea.Name, ea.Permissions, eb.Permissions))
		}
		if ea.User != eb.User {
			problems = append(problems, fmt.Sprintf("%s: user %q != %q", ea.Name, ea.User, eb.User))
		}
		if ea.Group != eb.Group {
			problems = append(problems, fmt.Sprintf("%s: group %q != %q", ea.Name, ea.Group, eb.Group))
		}
		if ea.Type == TypeSymlink && eb.Type == TypeSymlink && ea.Target != eb.Target {
			problems = append(problems, fmt.Sprintf("%s: target %q != %q", ea.Name, ea.Target, eb.Target))
		}
	}

	for side, l := range map[string]Listing{"first": a, "second": b} {
		for _, e := range l.Entries {
			if !ValidSize(e.Size) {
				problems = append(problems, fmt.Sprintf("%s: %s listing has malformed size %q", e.Name, side, e.Size))
			}
			if !ValidTimestamp(e.Timestamp) {
				problems = append(problems, fmt.Sprintf("%s: %s listing has malformed timestamp %q", e.Name, side, e.Timestamp))
			}
		}
	}

	sort.Strings(problems)
	return problems
}

// Compare returns nil when the two listings are record-equivalent, else an
// error describing every difference.
func Compare(a, b Listing) error {
	if problems := Diff(a, b); len(problems) > 0 {
		return fmt.Errorf("listings differ:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
