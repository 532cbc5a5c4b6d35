package chat

import "fmt"

// Kind classifies composer failures so callers can map them to transport
// status codes instead of matching on message strings.
type Kind int

const (
	// KindNotConfigured means the LLM provider was never established
	// (missing credentials at startup). Permanent until restart.
	KindNotConfigured Kind = iota
	// KindSearchUnavailable means the search branch was triggered but no
	// usable web results could be retrieved. The model is not contacted.
	KindSearchUnavailable
	// KindModelCall means composing or sending the prompt to the model
	// failed.
	KindModelCall
)

// Fixed user-facing messages. Every failure surfaces as one of these; no
// internal error detail reaches the end user.
const (
	MsgNotConfigured     = "AI service is not configured correctly."
	MsgSearchUnavailable = "I could not retrieve web results right now. Please try again."
	MsgModelFailure      = "I'm sorry, I encountered an error processing your request."
)

// Error is the composer's failure type.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotConfigured:
		return "chat: service not configured"
	case KindSearchUnavailable:
		return "chat: web search unavailable"
	default:
		if e.cause != nil {
			return fmt.Sprintf("chat: model call failed: %v", e.cause)
		}
		return "chat: model call failed"
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// FallbackMessage maps a composer error to its fixed user-facing string.
// Non-composer errors degrade to the generic apology.
func FallbackMessage(err error) string {
	if composeErr, ok := err.(*Error); ok {
		switch composeErr.Kind {
		case KindNotConfigured:
			return MsgNotConfigured
		case KindSearchUnavailable:
			return MsgSearchUnavailable
		}
	}
	return MsgModelFailure
}
