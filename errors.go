package lnbot

import (
	"errors"
	"fmt"
)

// Sentinel errors for the well-known API status codes. Match them with
// errors.Is; the full status and response body are available by unwrapping
// into an *APIError with errors.As.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// APIError is a non-2xx response from the API. Body is the raw response body
// exactly as the server sent it, so it can be correlated with server-side
// logs; it is not parsed or truncated.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if sentinel := statusSentinel(e.StatusCode); sentinel != nil {
		return fmt.Sprintf("lnbot: %s (%d): %s", sentinel, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("lnbot: api error (HTTP %d): %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code onto its sentinel so that
// errors.Is(err, lnbot.ErrNotFound) works. Statuses outside the named set
// unwrap to nothing.
func (e *APIError) Unwrap() error {
	return statusSentinel(e.StatusCode)
}

func statusSentinel(status int) error {
	switch status {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return nil
	}
}

// newAPIError classifies a non-2xx response. It must only be called with
// status >= 400; the mapping is total and deterministic over that range.
func newAPIError(status int, body string) *APIError {
	return &APIError{StatusCode: status, Body: body}
}

// DecodeError is a failure to decode a JSON response or event payload into
// its typed result. It is distinct from *APIError so callers can tell a
// malformed body apart from a server-side rejection.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("lnbot: decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
