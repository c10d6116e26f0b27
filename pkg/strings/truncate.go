package strings

import (
	"fmt"
	"strings"
)

// DefaultListMaxLen is the default maximum width of a joined name list in
// formatted output.
const DefaultListMaxLen = 40

// JoinTruncated joins names with sep and keeps the result within maxLen
// runes by dropping whole names from the end and appending a "(+N more)"
// marker. The first name is always kept, even when it alone is longer than
// maxLen. An empty list yields "".
func JoinTruncated(names []string, sep string, maxLen int) string {
	if len(names) == 0 {
		return ""
	}

	full := strings.Join(names, sep)
	if runeLen(full) <= maxLen {
		return full
	}

	for keep := len(names) - 1; keep > 1; keep-- {
		candidate := strings.Join(names[:keep], sep) + moreMarker(len(names)-keep)
		if runeLen(candidate) <= maxLen {
			return candidate
		}
	}
	return names[0] + moreMarker(len(names)-1)
}

func moreMarker(n int) string {
	return fmt.Sprintf(" (+%d more)", n)
}

func runeLen(s string) int {
	return len([]rune(s))
}
