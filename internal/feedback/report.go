package feedback

import (
	"fmt"
	"strconv"
	"strings"
)

// unknownTime renders in place of a missing timestamp.
const unknownTime = "unknown time"

// Markdown renders the digest as a layered text report: a heading,
// the repo/PR/timestamp header, and one section per feedback stream
// with its count and an explicit line when nothing matched.
func (d *Digest) Markdown() string {
	var b strings.Builder

	b.WriteString("# Bot Feedback Digest\n\n")
	fmt.Fprintf(&b, "- Repository: `%s`\n", d.Repo)
	fmt.Fprintf(&b, "- Pull request: `%d`\n", d.PRNumber)
	fmt.Fprintf(&b, "- Generated at (UTC): `%s`\n", d.GeneratedAtUTC)

	fmt.Fprintf(&b, "\n## Review Summaries (%d)\n", len(d.ReviewSummaries))
	if len(d.ReviewSummaries) == 0 {
		b.WriteString("- No matching review summaries found.\n")
	}
	for _, item := range d.ReviewSummaries {
		fmt.Fprintf(&b, "- [%s] @%s (%s) %s\n",
			item.State, item.Author, orUnknown(item.SubmittedAt), item.URL)
		writeBody(&b, item.Body)
	}

	fmt.Fprintf(&b, "\n## Inline Comments (%d)\n", len(d.InlineComments))
	if len(d.InlineComments) == 0 {
		b.WriteString("- No matching inline comments found.\n")
	}
	for _, item := range d.InlineComments {
		location := item.Path
		if item.Line != nil {
			location += ":" + strconv.Itoa(*item.Line)
		}
		fmt.Fprintf(&b, "- @%s on `%s` (%s) %s\n",
			item.Author, location, orUnknown(item.CreatedAt), item.URL)
		writeBody(&b, item.Body)
	}

	fmt.Fprintf(&b, "\n## Discussion Comments (%d)\n", len(d.DiscussionComments))
	if len(d.DiscussionComments) == 0 {
		b.WriteString("- No matching discussion comments found.\n")
	}
	for _, item := range d.DiscussionComments {
		fmt.Fprintf(&b, "- @%s (%s) %s\n",
			item.Author, orUnknown(item.CreatedAt), item.URL)
		writeBody(&b, item.Body)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func orUnknown(ts string) string {
	if ts == "" {
		return unknownTime
	}
	return ts
}

func writeBody(b *strings.Builder, body string) {
	if body != "" {
		fmt.Fprintf(b, "  - %s\n", body)
	}
}
