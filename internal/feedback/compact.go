package feedback

import "strings"

// ellipsis marks a body that was cut at the length limit.
const ellipsis = "..."

// CompactText collapses every whitespace run in s into a single
// space, trims the ends, and hard-truncates the result to max runes.
// Truncated output ends in "..."; a limit at or below the marker
// length yields just the marker. Compaction is idempotent.
func CompactText(s string, max int) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	runes := []rune(collapsed)
	if len(runes) <= max {
		return collapsed
	}
	keep := max - len(ellipsis)
	if keep <= 0 {
		return ellipsis
	}
	return string(runes[:keep]) + ellipsis
}
