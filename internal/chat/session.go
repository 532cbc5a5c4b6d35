package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gdscwm/gemini-ai-study-planner/pkg/llm"
)

// Session is an explicit per-conversation handle. It owns the ordered
// message history replayed to the LLM provider on every turn, so independent
// conversations never share state.
type Session struct {
	ID string

	mu       sync.Mutex
	provider llm.Provider
	history  []llm.Message
	lastUsed time.Time
}

// Ready reports whether the session can reach a model. A session created
// while the provider was unconfigured stays degraded for its lifetime.
func (s *Session) Ready() bool {
	return s != nil && s.provider != nil
}

// Send submits one message on top of the session history and records both
// the message and the reply. A failed call leaves the history unchanged.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]llm.Message, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})

	start := time.Now()
	reply, err := s.provider.Complete(ctx, messages)
	llmDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	s.history = append(messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
	s.lastUsed = time.Now()
	return reply, nil
}

// History returns a copy of the session transcript.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

const defaultMaxSessions = 1000

// SessionStore hands out and tracks in-memory sessions. Sessions are not
// persisted; a restart drops all conversations.
type SessionStore struct {
	mu          sync.Mutex
	provider    llm.Provider
	sessions    map[string]*Session
	maxSessions int
}

func NewSessionStore(provider llm.Provider, maxSessions int) *SessionStore {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &SessionStore{
		provider:    provider,
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Create allocates a new session with a fresh id, evicting the
// longest-idle session when the store is full.
func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.maxSessions {
		st.evictOldestLocked()
	}

	session := &Session{
		ID:       uuid.New().String(),
		provider: st.provider,
		lastUsed: time.Now(),
	}
	st.sessions[session.ID] = session
	return session
}

// Get returns the session for an id, if it is still tracked.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	return session, ok
}

// Len reports the number of tracked sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, session := range st.sessions {
		session.mu.Lock()
		lastUsed := session.lastUsed
		session.mu.Unlock()
		if oldestID == "" || lastUsed.Before(oldest) {
			oldestID = id
			oldest = lastUsed
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
	}
}
