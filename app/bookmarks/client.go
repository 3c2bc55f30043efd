// Package bookmarks implements the client for the third-party bookmark API.
// All calls authenticate with the user's stored OAuth access token, not an
// application-level credential.
package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func NewClient(baseURL string, httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// UserID resolves the numeric platform identifier for a handle. Used once
// per profile; the result is memoized into storage by the pipeline.
func (c *Client) UserID(ctx context.Context, accessToken, handle string) (string, error) {
	url := fmt.Sprintf("%s/users/by/username/%s", c.baseURL, handle)

	body, status, err := c.get(ctx, url, accessToken)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("user lookup failed: HTTP %d: %s", status, truncate(body, 200))
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode user lookup response: %w", err)
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("user lookup returned no id for handle %q", handle)
	}

	return resp.Data.ID, nil
}

// Recent fetches up to count most recently bookmarked posts for the user.
func (c *Client) Recent(ctx context.Context, accessToken, userID string, count int) ([]Post, error) {
	url := fmt.Sprintf("%s/users/%s/bookmarks?max_results=%d&tweet.fields=created_at", c.baseURL, userID, count)

	body, status, err := c.get(ctx, url, accessToken)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized:
		return nil, ErrReconnect
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		slog.Error("Bookmark API request failed", "status", status, "body", truncate(body, 200))
		return nil, fmt.Errorf("bookmark fetch failed: HTTP %d", status)
	}

	var resp bookmarksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks response: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoBookmarks
	}

	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, url, accessToken string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("bookmark API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
