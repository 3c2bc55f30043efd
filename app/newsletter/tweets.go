package newsletter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/threadletter/threadletter/app/database"
)

const tweetCount = 3

const tweetPrompt = `You are a social media ghostwriter. Below are posts the
user bookmarked recently.

Draft three original posts the user could publish, inspired by the themes
of their bookmarks — not copies of them. Each under 280 characters, no
hashtag spam. Match this writing style: {{style}}.

Return each draft inside numbered tags, nothing else:

<tweet1>first draft</tweet1>
<tweet2>second draft</tweet2>
<tweet3>third draft</tweet3>

Bookmarked posts:
{{posts}}`

// GenerateTweets produces three post suggestions from the user's recent
// bookmarks. Runs synchronously and consumes no generation credit.
func (p *Pipeline) GenerateTweets(ctx context.Context, profileID string) ([]string, error) {
	profile, err := p.profileRepo.Get(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", profileID)
	}

	if precondition := checkConnection(profile, time.Now()); precondition != nil {
		return nil, precondition
	}

	platformUserID, err := p.resolveIdentity(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve platform identity: %w", err)
	}

	posts, err := p.source.Recent(ctx, profile.AccessToken, platformUserID, 10)
	if err != nil {
		return nil, err
	}

	var formatted string
	for i, post := range posts {
		formatted += fmt.Sprintf("%d. %s\n", i+1, post.Text)
	}

	completion, err := p.completer.Complete(ctx, renderPrompt(tweetPrompt, map[string]string{
		"posts": formatted,
		"style": profile.WritingStyle,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to draft posts: %w", err)
	}

	tweets := extractTags(completion, "tweet", tweetCount)
	if len(tweets) == 0 {
		return nil, fmt.Errorf("no drafts found in completion output")
	}

	return tweets, nil
}

// checkConnection is the tweet-suggestion precondition subset: a connected,
// unexpired account, but no subscription or credit requirement.
func checkConnection(profile *database.Profile, now time.Time) *PreconditionError {
	if profile.AccessToken == "" {
		return &PreconditionError{
			Status:  http.StatusUnauthorized,
			Message: "no connected account found, please connect your account first",
		}
	}

	if !profile.HasValidToken(now) {
		return &PreconditionError{
			Status:  http.StatusUnauthorized,
			Message: "your account connection has expired, please reconnect your account",
		}
	}

	return nil
}
