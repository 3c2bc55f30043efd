package bookmarks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUserID(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"id":"12345","username":"reader"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), "test-agent")

	id, err := client.UserID(context.Background(), "oauth-token", "reader")
	if err != nil {
		t.Fatalf("UserID failed: %v", err)
	}
	if id != "12345" {
		t.Errorf("Expected id 12345, got %s", id)
	}
	if gotAuth != "Bearer oauth-token" {
		t.Errorf("Expected user's OAuth token as bearer, got %q", gotAuth)
	}
	if gotPath != "/users/by/username/reader" {
		t.Errorf("Unexpected path: %s", gotPath)
	}
}

func TestUserIDMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), "test-agent")

	if _, err := client.UserID(context.Background(), "oauth-token", "reader"); err == nil {
		t.Error("Expected error for response without id")
	}
}

func TestRecent(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[
			{"id":"1","text":"first post","created_at":"2026-01-10T10:00:00Z"},
			{"id":"2","text":"second post","created_at":"2026-01-11T10:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), "test-agent")

	posts, err := client.Recent(context.Background(), "oauth-token", "12345", 20)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != "1" || posts[0].Text != "first post" {
		t.Errorf("Unexpected first post: %+v", posts[0])
	}
	if gotQuery != "max_results=20&tweet.fields=created_at" {
		t.Errorf("Unexpected query string: %s", gotQuery)
	}
}

func TestRecentStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"expired token", http.StatusUnauthorized, `{"title":"Unauthorized"}`, ErrReconnect},
		{"rate limited", http.StatusTooManyRequests, `{"title":"Too Many Requests"}`, ErrRateLimited},
		{"no bookmarks", http.StatusOK, `{"data":[]}`, ErrNoBookmarks},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, server.Client(), "test-agent")

			_, err := client.Recent(context.Background(), "oauth-token", "12345", 10)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRecentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), "test-agent")

	_, err := client.Recent(context.Background(), "oauth-token", "12345", 10)
	if err == nil {
		t.Fatal("Expected error for HTTP 500")
	}
	if errors.Is(err, ErrReconnect) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNoBookmarks) {
		t.Errorf("Expected generic error, got %v", err)
	}
}
