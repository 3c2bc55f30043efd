package newsletter

import (
	"context"

	"github.com/threadletter/threadletter/app/bookmarks"
	"github.com/threadletter/threadletter/app/scraper"
	"github.com/threadletter/threadletter/app/websearch"
)

// BookmarkSource fetches a user's saved posts from the bookmark API.
type BookmarkSource interface {
	UserID(ctx context.Context, accessToken, handle string) (string, error)
	Recent(ctx context.Context, accessToken, userID string, count int) ([]bookmarks.Post, error)
}

// ContentScraper fetches full post bodies and engagement metrics in one
// batched call.
type ContentScraper interface {
	Lookup(ctx context.Context, ids []string) ([]scraper.DetailedPost, error)
}

// Completer is a single round-trip to the chat-completion API.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SearchProvider issues a single web-search query.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]websearch.Result, error)
}

// EmailSender delivers a rendered newsletter.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html, text string) error
}
