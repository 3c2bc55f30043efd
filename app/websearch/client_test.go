package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	var gotKey, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")

		var req struct {
			Query string `json:"q"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotQuery = req.Query

		w.Write([]byte(`{"organic":[
			{"title":"Result One","link":"https://example.com/1","snippet":"first snippet"},
			{"title":"Result Two","link":"https://example.com/2","snippet":"second snippet"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "search-key", server.Client(), "test-agent")

	results, err := client.Search(context.Background(), "go concurrency")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotKey != "search-key" {
		t.Errorf("Expected X-API-KEY header, got %q", gotKey)
	}
	if gotQuery != "go concurrency" {
		t.Errorf("Unexpected query: %q", gotQuery)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://example.com/1" {
		t.Errorf("Unexpected first result URL: %s", results[0].URL)
	}
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", server.Client(), "test-agent")

	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Error("Expected error for HTTP 403")
	}
}
