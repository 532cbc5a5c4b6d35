package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdscwm/gemini-ai-study-planner/pkg/logging"
)

// searchSystemPrompt instructs the model how to use the references block.
const searchSystemPrompt = "You are an AI research assistant. Use the provided web search results to answer the user query. " +
	"Synthesize concisely, cite sources inline like [1], [2] where relevant, and include a brief summary."

// Composer turns raw user input into a model reply. Input carrying a search
// trigger prefix is augmented with web references; everything else is
// forwarded to the session unmodified.
type Composer struct {
	searcher *WebSearcher
	logger   logging.Logger
}

func NewComposer(searcher *WebSearcher, logger logging.Logger) *Composer {
	return &Composer{searcher: searcher, logger: logger}
}

// Respond processes one user turn against the given session. All failures
// are reported as *Error; callers map them to transport codes or to the
// fixed strings via FallbackMessage.
func (c *Composer) Respond(ctx context.Context, session *Session, input string) (string, error) {
	if !session.Ready() {
		return "", &Error{Kind: KindNotConfigured}
	}

	query, triggered := ParseSearchTrigger(input)
	if !triggered {
		reply, err := session.Send(ctx, input)
		if err != nil {
			if c.logger != nil {
				c.logger.WithError(err).Warn("Model call failed")
			}
			return "", &Error{Kind: KindModelCall, cause: err}
		}
		return reply, nil
	}

	refs := c.searcher.References(ctx, query)
	if len(refs) == 0 {
		return "", &Error{Kind: KindSearchUnavailable}
	}

	reply, err := session.Send(ctx, ComposeSearchPrompt(query, refs))
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("Model call failed")
		}
		return "", &Error{Kind: KindModelCall, cause: err}
	}
	return reply, nil
}

// ParseSearchTrigger checks the input for a search trigger prefix. Matching
// is case-insensitive against the trimmed input; the extracted query keeps
// its original casing. A trigger with nothing after it is not a trigger:
// the input falls through to the plain-chat branch. The second return is
// false when no trigger matched.
func ParseSearchTrigger(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, "search:") {
		_, rest, _ := strings.Cut(trimmed, ":")
		query := strings.TrimSpace(rest)
		return query, query != ""
	}
	if strings.HasPrefix(lower, "/search ") {
		_, rest, _ := strings.Cut(trimmed, " ")
		query := strings.TrimSpace(rest)
		return query, query != ""
	}
	return "", false
}

// FormatReferences renders citations as a 1-based numbered block:
//
//	[1] Title — https://link
//	snippet
//
// entries separated by blank lines.
func FormatReferences(refs []Reference) string {
	blocks := make([]string, 0, len(refs))
	for i, ref := range refs {
		block := fmt.Sprintf("[%d] %s — %s", i+1, ref.Title, ref.Link)
		if ref.Snippet != "" {
			block += "\n" + ref.Snippet
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

// ComposeSearchPrompt builds the three-segment message sent to the model:
// system instruction, the extracted query, then the references block.
func ComposeSearchPrompt(query string, refs []Reference) string {
	return fmt.Sprintf(
		"<system>\n%s\n</system>\n<user_query>\n%s\n</user_query>\n<web_results>\n%s\n</web_results>",
		searchSystemPrompt,
		query,
		FormatReferences(refs),
	)
}
