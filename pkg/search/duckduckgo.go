package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoProvider implements the DuckDuckGo Instant Answer API. It needs
// no API key, which makes it the default provider.
type DuckDuckGoProvider struct {
	apiURL string
	client *http.Client
}

// NewDuckDuckGoProvider creates a DuckDuckGo search provider.
func NewDuckDuckGoProvider(apiURL string) *DuckDuckGoProvider {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultDuckDuckGoURL
	}
	return &DuckDuckGoProvider{
		apiURL: apiURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type duckDuckGoTopic struct {
	FirstURL string            `json:"FirstURL"`
	Text     string            `json:"Text"`
	Topics   []duckDuckGoTopic `json:"Topics"`
}

type duckDuckGoResponse struct {
	Heading       string            `json:"Heading"`
	AbstractText  string            `json:"AbstractText"`
	AbstractURL   string            `json:"AbstractURL"`
	RelatedTopics []duckDuckGoTopic `json:"RelatedTopics"`
}

// Search executes a query against the DuckDuckGo Instant Answer API.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	endpoint, err := url.Parse(p.apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo url: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create duckduckgo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("duckduckgo request failed with status %d", resp.StatusCode)
	}

	var decoded duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode duckduckgo response: %w", err)
	}

	var results []Result
	if decoded.AbstractText != "" && decoded.AbstractURL != "" {
		title := decoded.Heading
		if title == "" {
			title = decoded.AbstractURL
		}
		results = append(results, Result{
			Title:   title,
			URL:     decoded.AbstractURL,
			Snippet: decoded.AbstractText,
		})
	}
	results = appendTopics(results, decoded.RelatedTopics, opts.Limit)

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// appendTopics flattens the nested topic groups the API returns for
// category-style answers.
func appendTopics(results []Result, topics []duckDuckGoTopic, limit int) []Result {
	for _, topic := range topics {
		if limit > 0 && len(results) >= limit {
			break
		}
		if len(topic.Topics) > 0 {
			results = appendTopics(results, topic.Topics, limit)
			continue
		}
		if topic.FirstURL == "" || topic.Text == "" {
			continue
		}
		results = append(results, Result{
			Title:   topicTitle(topic.Text),
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}
	return results
}

// topicTitle extracts the leading name segment from an instant-answer text
// like "Go (programming language) - A statically typed language...".
func topicTitle(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	return text
}
