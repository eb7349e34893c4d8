package translations

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest is returned when a required field is missing or
	// the content type is unknown. Terminal, no retry.
	ErrInvalidRequest = errors.New("invalid translation request")

	// ErrRateLimited maps an upstream 429. Retryable after backoff,
	// caller's responsibility.
	ErrRateLimited = errors.New("translation rate limited upstream")

	// ErrQuotaExhausted maps an upstream 402. Operator-actionable,
	// not user-retryable.
	ErrQuotaExhausted = errors.New("translation quota exhausted upstream")

	// ErrModelError covers any other non-2xx from the model call.
	ErrModelError = errors.New("translation model error")

	// ErrEmptyTranslation is returned when the model responds with empty
	// text. Treated as a failure, never cached.
	ErrEmptyTranslation = errors.New("model returned empty translation")
)

// HTTPStatus maps a translation failure to its response status. Every
// unrecognized error falls back to a generic 400, the handler never lets
// an error propagate past its boundary.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrQuotaExhausted):
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}
