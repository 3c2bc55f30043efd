package newsletter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	maxEnrichmentQueries = 3
	maxExcerptLength     = 1500
	maxPageBytes         = 1 << 20
)

// Enricher is the optional web-enrichment stage: the completion API
// proposes search queries from the analysis, each query goes to the search
// API, the top result page is fetched and reduced to readable text, and a
// final completion merges the findings back into the analysis. Callers
// treat any error as non-fatal and fall back to the unenriched analysis.
type Enricher struct {
	completer  Completer
	search     SearchProvider
	extractor  *Extractor
	httpClient *http.Client
	userAgent  string
}

func NewEnricher(completer Completer, search SearchProvider, extractor *Extractor, httpClient *http.Client, userAgent string) *Enricher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Enricher{
		completer:  completer,
		search:     search,
		extractor:  extractor,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (e *Enricher) Run(ctx context.Context, template *Template, analysis string) (string, error) {
	proposal, err := e.completer.Complete(ctx, renderPrompt(template.QueryPrompt, map[string]string{
		"analysis": analysis,
	}))
	if err != nil {
		return "", fmt.Errorf("failed to propose search queries: %w", err)
	}

	queries := extractTags(proposal, "query", maxEnrichmentQueries)
	if len(queries) == 0 {
		return "", fmt.Errorf("no search queries found in completion output")
	}

	var findings []string
	for _, query := range queries {
		results, err := e.search.Search(ctx, query)
		if err != nil {
			slog.Warn("Search query failed, skipping", "query", query, "error", err)
			continue
		}
		if len(results) == 0 {
			continue
		}

		var section strings.Builder
		fmt.Fprintf(&section, "Query: %s\n", query)

		for i, result := range results {
			excerpt := result.Snippet
			if i == 0 {
				if text, err := e.fetchReadable(ctx, result.URL); err == nil {
					excerpt = text
				} else {
					slog.Debug("Page extraction failed, using snippet", "url", result.URL, "error", err)
				}
			}
			fmt.Fprintf(&section, "- %s (%s): %s\n", result.Title, result.URL, excerpt)
		}

		findings = append(findings, section.String())
	}

	if len(findings) == 0 {
		return "", fmt.Errorf("all %d search queries failed or returned nothing", len(queries))
	}

	merged, err := e.completer.Complete(ctx, renderPrompt(template.MergePrompt, map[string]string{
		"analysis": analysis,
		"findings": strings.Join(findings, "\n"),
	}))
	if err != nil {
		return "", fmt.Errorf("failed to merge search findings: %w", err)
	}

	slog.Debug("Analysis enriched", "queries", len(queries), "findings", len(findings))

	return merged, nil
}

// fetchReadable downloads a result page and reduces it to readable text.
func (e *Enricher) fetchReadable(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	text, err := e.extractor.Run(data)
	if err != nil {
		return "", err
	}

	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxExcerptLength {
		text = text[:maxExcerptLength] + "..."
	}

	return text, nil
}
