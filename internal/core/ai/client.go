package ai

import (
	"context"
	"fmt"
)

// Client wraps a single synchronous request/response call to an external
// chat-completion endpoint. No retry, no streaming.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// StatusError carries the upstream HTTP status of a failed model call so
// callers can map rate-limit and quota failures through to their own boundary.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model gateway error: %d - %s", e.Status, e.Body)
}
