package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdscwm/gemini-ai-study-planner/pkg/llm"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/search"
)

// stubLLM records every Complete call and returns a scripted reply.
type stubLLM struct {
	calls [][]llm.Message
	reply string
	err   error
}

func (s *stubLLM) Complete(_ context.Context, messages []llm.Message) (string, error) {
	copied := make([]llm.Message, len(messages))
	copy(copied, messages)
	s.calls = append(s.calls, copied)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// stubSearch records whether it was invoked and returns scripted results.
type stubSearch struct {
	called  bool
	query   string
	results []search.Result
	err     error
}

func (s *stubSearch) Search(_ context.Context, query string, _ search.Options) ([]search.Result, error) {
	s.called = true
	s.query = query
	return s.results, s.err
}

func newTestComposer(provider search.Provider) *Composer {
	return NewComposer(NewWebSearcher(provider, nil), nil)
}

func newTestSession(provider llm.Provider) *Session {
	store := NewSessionStore(provider, 10)
	return store.Create()
}

func TestRespondPlainInputForwardedUnmodified(t *testing.T) {
	model := &stubLLM{reply: "hi there"}
	searcher := &stubSearch{}
	composer := newTestComposer(searcher)
	session := newTestSession(model)

	input := "what is the capital of France?"
	reply, err := composer.Respond(context.Background(), session, input)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("expected scripted reply, got %q", reply)
	}
	if searcher.called {
		t.Fatal("search must not run for plain input")
	}
	if len(model.calls) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(model.calls))
	}
	sent := model.calls[0]
	if got := sent[len(sent)-1].Content; got != input {
		t.Fatalf("expected raw input sent to session, got %q", got)
	}
}

func TestParseSearchTrigger(t *testing.T) {
	cases := []struct {
		input     string
		wantQuery string
		wantOK    bool
	}{
		{"search: cats", "cats", true},
		{"SEARCH: cats", "cats", true},
		{"  Search:   cats  ", "cats", true},
		{"/search   dogs", "dogs", true},
		{"/SEARCH dogs", "dogs", true},
		{"search cats", "", false},
		{"search:", "", false},
		{"search:   ", "", false},
		{"/search ", "", false},
		{"/search    ", "", false},
		{"/searchdogs", "", false},
		{"tell me about search: engines", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		query, ok := ParseSearchTrigger(tc.input)
		if ok != tc.wantOK {
			t.Fatalf("input %q: expected ok=%v, got %v", tc.input, tc.wantOK, ok)
		}
		if query != tc.wantQuery {
			t.Fatalf("input %q: expected query %q, got %q", tc.input, tc.wantQuery, query)
		}
	}
}

func TestParseSearchTriggerPreservesQueryCasing(t *testing.T) {
	query, ok := ParseSearchTrigger("SEARCH: Mozart Requiem")
	if !ok {
		t.Fatal("expected trigger match")
	}
	if query != "Mozart Requiem" {
		t.Fatalf("expected original casing preserved, got %q", query)
	}
}

func TestRespondBareTriggerFallsThroughToPlainChat(t *testing.T) {
	model := &stubLLM{reply: "plain reply"}
	searcher := &stubSearch{}
	composer := newTestComposer(searcher)
	session := newTestSession(model)

	reply, err := composer.Respond(context.Background(), session, "search:")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply != "plain reply" {
		t.Fatalf("expected plain-branch reply, got %q", reply)
	}
	if searcher.called {
		t.Fatal("search must not run for a trigger with no query")
	}
	if len(model.calls) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(model.calls))
	}
	sent := model.calls[0]
	if got := sent[len(sent)-1].Content; got != "search:" {
		t.Fatalf("expected raw input sent to session, got %q", got)
	}
}

func TestRespondEmptySearchResultsSkipsModel(t *testing.T) {
	model := &stubLLM{reply: "should never be sent"}
	searcher := &stubSearch{results: nil}
	composer := newTestComposer(searcher)
	session := newTestSession(model)

	_, err := composer.Respond(context.Background(), session, "search: obscure topic")
	if err == nil {
		t.Fatal("expected search-unavailable error")
	}
	var composeErr *Error
	if !errors.As(err, &composeErr) || composeErr.Kind != KindSearchUnavailable {
		t.Fatalf("expected KindSearchUnavailable, got %v", err)
	}
	if got := FallbackMessage(err); got != MsgSearchUnavailable {
		t.Fatalf("expected fixed message, got %q", got)
	}
	if !searcher.called {
		t.Fatal("expected search to run")
	}
	if len(model.calls) != 0 {
		t.Fatal("model must not be called when search yields nothing")
	}
}

func TestRespondSearchProviderErrorSkipsModel(t *testing.T) {
	model := &stubLLM{}
	searcher := &stubSearch{err: errors.New("provider down")}
	composer := newTestComposer(searcher)
	session := newTestSession(model)

	_, err := composer.Respond(context.Background(), session, "search: anything")
	var composeErr *Error
	if !errors.As(err, &composeErr) || composeErr.Kind != KindSearchUnavailable {
		t.Fatalf("expected KindSearchUnavailable, got %v", err)
	}
	if len(model.calls) != 0 {
		t.Fatal("model must not be called when search fails")
	}
}

func TestRespondComposesSearchPrompt(t *testing.T) {
	model := &stubLLM{reply: "summarized"}
	searcher := &stubSearch{results: []search.Result{
		{Title: "A", URL: "https://a.example", Snippet: "first"},
		{Title: "B", URL: "https://b.example", Snippet: "second"},
		{Title: "C", URL: "https://c.example", Snippet: "third"},
	}}
	composer := newTestComposer(searcher)
	session := newTestSession(model)

	reply, err := composer.Respond(context.Background(), session, "search: Go generics")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply != "summarized" {
		t.Fatalf("expected scripted reply, got %q", reply)
	}
	if searcher.query != "Go generics" {
		t.Fatalf("expected extracted query, got %q", searcher.query)
	}

	sent := model.calls[0]
	composed := sent[len(sent)-1].Content
	for _, segment := range []string{"<system>", "<user_query>", "<web_results>"} {
		if !strings.Contains(composed, segment) {
			t.Fatalf("composed prompt missing %s segment:\n%s", segment, composed)
		}
	}
	if strings.Index(composed, "<system>") > strings.Index(composed, "<user_query>") ||
		strings.Index(composed, "<user_query>") > strings.Index(composed, "<web_results>") {
		t.Fatalf("segments out of order:\n%s", composed)
	}
	if !strings.Contains(composed, "Go generics") {
		t.Fatalf("composed prompt missing query:\n%s", composed)
	}
	for _, marker := range []string{"[1] A — https://a.example", "[2] B — https://b.example", "[3] C — https://c.example"} {
		if !strings.Contains(composed, marker) {
			t.Fatalf("composed prompt missing reference %q:\n%s", marker, composed)
		}
	}
}

func TestRespondModelFailure(t *testing.T) {
	model := &stubLLM{err: errors.New("transport blew up")}
	composer := newTestComposer(&stubSearch{})
	session := newTestSession(model)

	_, err := composer.Respond(context.Background(), session, "hello")
	var composeErr *Error
	if !errors.As(err, &composeErr) || composeErr.Kind != KindModelCall {
		t.Fatalf("expected KindModelCall, got %v", err)
	}
	if got := FallbackMessage(err); got != MsgModelFailure {
		t.Fatalf("expected fixed apology, got %q", got)
	}
}

func TestRespondNotConfigured(t *testing.T) {
	searcher := &stubSearch{}
	composer := newTestComposer(searcher)
	session := newTestSession(nil) // provider never established

	for _, input := range []string{"hello", "search: cats", "/search dogs"} {
		_, err := composer.Respond(context.Background(), session, input)
		var composeErr *Error
		if !errors.As(err, &composeErr) || composeErr.Kind != KindNotConfigured {
			t.Fatalf("input %q: expected KindNotConfigured, got %v", input, err)
		}
		if got := FallbackMessage(err); got != MsgNotConfigured {
			t.Fatalf("input %q: expected fixed message, got %q", input, got)
		}
	}
	if searcher.called {
		t.Fatal("search collaborator must not run when unconfigured")
	}
}

func TestFormatReferencesNumbering(t *testing.T) {
	refs := []Reference{
		{Title: "First", Link: "https://1.example", Snippet: "one"},
		{Title: "Second", Link: "https://2.example", Snippet: "two"},
		{Title: "Third", Link: "https://3.example"},
	}
	block := FormatReferences(refs)

	blocks := strings.Split(block, "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d:\n%s", len(blocks), block)
	}
	if !strings.HasPrefix(blocks[0], "[1] First — https://1.example") {
		t.Fatalf("unexpected first block %q", blocks[0])
	}
	if !strings.HasPrefix(blocks[1], "[2] Second — https://2.example") {
		t.Fatalf("unexpected second block %q", blocks[1])
	}
	if blocks[2] != "[3] Third — https://3.example" {
		t.Fatalf("unexpected third block %q", blocks[2])
	}
	if !strings.Contains(blocks[0], "\none") {
		t.Fatalf("expected snippet on its own line, got %q", blocks[0])
	}
}
