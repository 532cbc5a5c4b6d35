package chat

import (
	"context"
	"strings"

	"github.com/gdscwm/gemini-ai-study-planner/pkg/logging"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/search"
)

const defaultSearchLimit = 6

// Reference is a single web citation offered to the model. Title and Link
// are always non-empty; Snippet may be empty.
type Reference struct {
	Title   string
	Link    string
	Snippet string
}

// WebSearcher is the composer's search collaborator. It makes a single
// best-effort attempt per call and never surfaces an error: any provider
// failure is logged and degrades to an empty result set.
type WebSearcher struct {
	provider search.Provider
	logger   logging.Logger
	limit    int
}

func NewWebSearcher(provider search.Provider, logger logging.Logger) *WebSearcher {
	return &WebSearcher{provider: provider, logger: logger, limit: defaultSearchLimit}
}

// SetLimit overrides the default result cap.
func (s *WebSearcher) SetLimit(limit int) {
	if limit > 0 {
		s.limit = limit
	}
}

// References runs a web search and returns usable citations. Provider
// entries missing a title or link are dropped; provider order is preserved;
// at most the configured limit is returned.
func (s *WebSearcher) References(ctx context.Context, query string) []Reference {
	if s == nil || s.provider == nil {
		return nil
	}

	searchQueriesTotal.Inc()
	results, err := s.provider.Search(ctx, query, search.Options{Limit: s.limit})
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("query", query).Warn("Web search failed")
		}
		return nil
	}

	refs := make([]Reference, 0, len(results))
	for _, result := range results {
		title := strings.TrimSpace(result.Title)
		link := strings.TrimSpace(result.URL)
		if title == "" || link == "" {
			continue
		}
		refs = append(refs, Reference{
			Title:   title,
			Link:    link,
			Snippet: strings.TrimSpace(result.Snippet),
		})
		if len(refs) >= s.limit {
			break
		}
	}
	return refs
}
