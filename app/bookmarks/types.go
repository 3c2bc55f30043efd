package bookmarks

import "errors"

// User-displayable outcomes of a bookmark fetch, keyed off the upstream
// HTTP status.
var (
	ErrReconnect   = errors.New("your account connection has expired, please reconnect your account")
	ErrRateLimited = errors.New("the bookmark service is rate limiting requests, please try again later")
	ErrNoBookmarks = errors.New("no bookmarks saved on your connected account")
)

// Post is the basic bookmark record returned by the bookmark API. Full
// content and engagement metrics come from the scraping API afterwards.
type Post struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type userResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type bookmarksResponse struct {
	Data []Post `json:"data"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}
