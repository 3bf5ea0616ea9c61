// Package feedback collects and summarizes automated-reviewer
// activity on a pull request: thumbs-up reactions, review verdicts,
// inline comments, and discussion comments.
package feedback

import "context"

// API is the slice of the gh client this package needs. The concrete
// implementation is internal/gh; tests substitute a fake.
type API interface {
	ResolveRepo(ctx context.Context, explicit string) (string, error)
	FetchList(ctx context.Context, path string, dst any) error
}

// ghUser is the author object embedded in every REST payload.
type ghUser struct {
	Login string `json:"login"`
}

// ghReaction is one entry from /issues/{n}/reactions. Content "+1"
// is the thumbs-up marker the approval check looks for.
type ghReaction struct {
	ID        int64  `json:"id"`
	User      ghUser `json:"user"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ghReview is one entry from /pulls/{n}/reviews.
type ghReview struct {
	ID          int64  `json:"id"`
	User        ghUser `json:"user"`
	State       string `json:"state"`
	Body        string `json:"body"`
	SubmittedAt string `json:"submitted_at"`
	HTMLURL     string `json:"html_url"`
}

// ghInlineComment is one entry from /pulls/{n}/comments. Line is a
// pointer because GitHub omits it for outdated or file-level
// comments.
type ghInlineComment struct {
	ID        int64  `json:"id"`
	User      ghUser `json:"user"`
	Body      string `json:"body"`
	Path      string `json:"path"`
	Line      *int   `json:"line"`
	Side      string `json:"side"`
	CreatedAt string `json:"created_at"`
	HTMLURL   string `json:"html_url"`
}

// ghIssueComment is one entry from /issues/{n}/comments.
type ghIssueComment struct {
	ID        int64  `json:"id"`
	User      ghUser `json:"user"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	HTMLURL   string `json:"html_url"`
}
