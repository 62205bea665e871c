package listing

import (
	"fmt"
	"os"
	"regexp"
	"time"
)

// timestampLayout matches lsd's default date rendering: fixed-width day of
// month, 24-hour clock, local time.
const timestampLayout = "Mon Jan 02 15:04:05 2006"

var sizeUnits = []struct {
	name  string
	scale int64
}{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
}

// FormatSize renders a byte count the way lsd does: largest unit the count
// reaches, one decimal below 10 in that unit, integer at or above. Counts
// under 1 KB are a bare integer with unit B.
func FormatSize(n int64) string {
	for _, u := range sizeUnits {
		if n >= u.scale {
			v := float64(n) / float64(u.scale)
			if v >= 10 {
				return fmt.Sprintf("%.0f %s", v, u.name)
			}
			return fmt.Sprintf("%.1f %s", v, u.name)
		}
	}
	return fmt.Sprintf("%d B", n)
}

// FormatPermissions renders a mode as the 10-character permission string:
// type character, then rwx triplets for owner, group and other.
func FormatPermissions(mode os.FileMode) string {
	var b [10]byte
	switch {
	case mode&os.ModeSymlink != 0:
		b[0] = 'l'
	case mode.IsDir():
		b[0] = 'd'
	default:
		b[0] = '-'
	}

	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := range 9 {
		if perm&(1<<(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}
	return string(b[:])
}

// FormatTimestamp renders a modification time in local wall-clock time.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

var (
	// sizeRe checks shape: a bare integer with unit B, or a value with one
	// decimal digit or none for the scaled units. Shape only — values just
	// under a power of two round to "10.0 KB" and similar, so the one-digit
	// policy cannot be enforced strictly without rejecting real output.
	sizeRe = regexp.MustCompile(`^(\d+ B|\d+\.\d [KMGT]B|\d{2,} [KMGT]B)$`)

	// timestampRe checks shape only, not calendar consistency: parsed lines
	// carry their timestamp text verbatim, so a weekday is not required to
	// match the date it appears with.
	timestampRe = regexp.MustCompile(
		`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun) (Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{2} \d{2}:\d{2}:\d{2} \d{4}$`)
)

// ValidSize reports whether s satisfies the size format contract.
func ValidSize(s string) bool {
	return sizeRe.MatchString(s)
}

// ValidTimestamp reports whether s satisfies the timestamp format contract.
func ValidTimestamp(s string) bool {
	return timestampRe.MatchString(s)
}
