package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/reviewtap/reviewtap/internal/actor"
)

// ReviewItem is a filtered review verdict (approve, comment,
// request-changes) in the digest.
type ReviewItem struct {
	Author      string `json:"author"`
	Body        string `json:"body"`
	ID          int64  `json:"id"`
	State       string `json:"state"`
	SubmittedAt string `json:"submitted_at"`
	URL         string `json:"url"`
}

// InlineItem is a filtered diff-anchored comment in the digest.
type InlineItem struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	ID        int64  `json:"id"`
	Line      *int   `json:"line"`
	Path      string `json:"path"`
	Side      string `json:"side"`
	URL       string `json:"url"`
}

// DiscussionItem is a filtered conversation-thread comment in the
// digest.
type DiscussionItem struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	ID        int64  `json:"id"`
	URL       string `json:"url"`
}

// Digest aggregates every matching feedback item on one pull request.
// Immutable once assembled; serialized directly to output. Field
// order follows the JSON key order so indented output is key-sorted.
type Digest struct {
	ActorRegex         string           `json:"actor_regex"`
	ConfiguredActors   []string         `json:"configured_actors"`
	DiscussionComments []DiscussionItem `json:"discussion_comments"`
	GeneratedAtUTC     string           `json:"generated_at_utc"`
	InlineComments     []InlineItem     `json:"inline_comments"`
	PRNumber           int              `json:"pr_number"`
	Repo               string           `json:"repo"`
	ReviewSummaries    []ReviewItem     `json:"review_summaries"`
}

// Empty reports whether no feedback item survived filtering.
func (d *Digest) Empty() bool {
	return len(d.ReviewSummaries) == 0 &&
		len(d.InlineComments) == 0 &&
		len(d.DiscussionComments) == 0
}

// now is a test seam for the digest timestamp.
var now = time.Now

// Collect fetches the three feedback streams for the pull request,
// strictly in order (review summaries, inline comments, discussion
// comments), keeps the items whose author matches m, and compacts
// every body to maxBodyLength runes.
func Collect(ctx context.Context, api API, m *actor.Matcher, repo string, prNumber, maxBodyLength int) (*Digest, error) {
	var reviews []ghReview
	if err := api.FetchList(ctx, fmt.Sprintf("repos/%s/pulls/%d/reviews", repo, prNumber), &reviews); err != nil {
		return nil, err
	}
	var inline []ghInlineComment
	if err := api.FetchList(ctx, fmt.Sprintf("repos/%s/pulls/%d/comments", repo, prNumber), &inline); err != nil {
		return nil, err
	}
	var discussion []ghIssueComment
	if err := api.FetchList(ctx, fmt.Sprintf("repos/%s/issues/%d/comments", repo, prNumber), &discussion); err != nil {
		return nil, err
	}

	digest := &Digest{
		ActorRegex:         m.Pattern(),
		ConfiguredActors:   m.Logins(),
		DiscussionComments: []DiscussionItem{},
		GeneratedAtUTC:     now().UTC().Format(time.RFC3339),
		InlineComments:     []InlineItem{},
		PRNumber:           prNumber,
		Repo:               repo,
		ReviewSummaries:    []ReviewItem{},
	}

	for _, review := range reviews {
		login := review.User.Login
		if login == "" || !m.Match(login) {
			continue
		}
		digest.ReviewSummaries = append(digest.ReviewSummaries, ReviewItem{
			Author:      login,
			Body:        CompactText(review.Body, maxBodyLength),
			ID:          review.ID,
			State:       review.State,
			SubmittedAt: review.SubmittedAt,
			URL:         review.HTMLURL,
		})
	}

	for _, comment := range inline {
		login := comment.User.Login
		if login == "" || !m.Match(login) {
			continue
		}
		digest.InlineComments = append(digest.InlineComments, InlineItem{
			Author:    login,
			Body:      CompactText(comment.Body, maxBodyLength),
			CreatedAt: comment.CreatedAt,
			ID:        comment.ID,
			Line:      comment.Line,
			Path:      comment.Path,
			Side:      comment.Side,
			URL:       comment.HTMLURL,
		})
	}

	for _, comment := range discussion {
		login := comment.User.Login
		if login == "" || !m.Match(login) {
			continue
		}
		digest.DiscussionComments = append(digest.DiscussionComments, DiscussionItem{
			Author:    login,
			Body:      CompactText(comment.Body, maxBodyLength),
			CreatedAt: comment.CreatedAt,
			ID:        comment.ID,
			URL:       comment.HTMLURL,
		})
	}

	return digest, nil
}
