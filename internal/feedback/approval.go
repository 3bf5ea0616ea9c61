package feedback

import (
	"context"
	"fmt"

	"github.com/reviewtap/reviewtap/internal/actor"
)

// thumbsUp is the reaction content GitHub uses for :+1:.
const thumbsUp = "+1"

// ReactionMatch is one thumbs-up reaction from a configured actor.
// Fields are declared in the order of their JSON keys so the indented
// output is key-sorted.
type ReactionMatch struct {
	CreatedAt string `json:"created_at"`
	ID        int64  `json:"id"`
	User      string `json:"user"`
}

// ApprovalResult reports whether a configured actor left a thumbs-up
// reaction on the pull request. Serialized directly to stdout.
type ApprovalResult struct {
	ActorRegex           string          `json:"actor_regex"`
	Approved             bool            `json:"approved"`
	ConfiguredActors     []string        `json:"configured_actors"`
	MatchedReactionCount int             `json:"matched_reaction_count"`
	Matches              []ReactionMatch `json:"matches"`
	PRNumber             int             `json:"pr_number"`
	ReactionCount        int             `json:"reaction_count"`
	Repo                 string          `json:"repo"`
}

// CheckApproval fetches the reactions on the pull request and keeps
// the thumbs-up entries whose author matches m.
func CheckApproval(ctx context.Context, api API, m *actor.Matcher, repo string, prNumber int) (*ApprovalResult, error) {
	var reactions []ghReaction
	path := fmt.Sprintf("repos/%s/issues/%d/reactions", repo, prNumber)
	if err := api.FetchList(ctx, path, &reactions); err != nil {
		return nil, err
	}

	matches := []ReactionMatch{}
	for _, reaction := range reactions {
		if reaction.Content != thumbsUp {
			continue
		}
		login := reaction.User.Login
		if login == "" || !m.Match(login) {
			continue
		}
		matches = append(matches, ReactionMatch{
			CreatedAt: reaction.CreatedAt,
			ID:        reaction.ID,
			User:      login,
		})
	}

	return &ApprovalResult{
		ActorRegex:           m.Pattern(),
		Approved:             len(matches) > 0,
		ConfiguredActors:     m.Logins(),
		MatchedReactionCount: len(matches),
		Matches:              matches,
		PRNumber:             prNumber,
		ReactionCount:        len(reactions),
		Repo:                 repo,
	}, nil
}
