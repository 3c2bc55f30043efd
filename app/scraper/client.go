// Package scraper implements the client for the content-scraping API that
// returns full post bodies, engagement metrics and media for bookmark ids.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DetailedPost is the enriched post record returned by the scraping API.
type DetailedPost struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	AuthorHandle string `json:"author_handle"`
	AuthorName   string `json:"author_name"`
	URL          string `json:"url"`
	LikeCount    int    `json:"like_count"`
	RepostCount  int    `json:"repost_count"`
	ReplyCount   int    `json:"reply_count"`
	MediaURL     string `json:"media_url"`
	CreatedAt    string `json:"created_at"`
}

type lookupRequest struct {
	IDs []string `json:"ids"`
}

type lookupResponse struct {
	Posts []DetailedPost `json:"posts"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
}

func NewClient(baseURL, apiKey string, httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Lookup fetches full content for all ids in a single batched call. There
// is no partial-failure handling: a batch error fails the whole run.
func (c *Client) Lookup(ctx context.Context, ids []string) ([]DetailedPost, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no post ids to look up")
	}

	payload, err := json.Marshal(lookupRequest{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/posts/lookup", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraping API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("Scraping API request failed", "status", resp.StatusCode, "body", string(body[:min(len(body), 200)]))
		return nil, fmt.Errorf("content lookup failed: HTTP %d", resp.StatusCode)
	}

	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	if len(out.Posts) == 0 {
		return nil, fmt.Errorf("content lookup returned no posts for %d ids", len(ids))
	}

	return out.Posts, nil
}
