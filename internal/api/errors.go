package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Sentinel errors for the error classes the API can produce. Callers branch
// with errors.Is; the wrapping *Error carries the user-facing message.
var (
	ErrValidation   = newSentinel("validation failed")
	ErrUnauthorized = newSentinel("session expired")
	ErrForbidden    = newSentinel("permission denied")
	ErrNotFound     = newSentinel("not found")
	ErrRateLimited  = newSentinel("rate limit exceeded")
	ErrServer       = newSentinel("server error")
	ErrNetwork      = newSentinel("network error")
)

type sentinel struct{ msg string }

func (s *sentinel) Error() string { return s.msg }

func newSentinel(msg string) error { return &sentinel{msg: msg} }

// Error is a failed API call, classified by status code. Message is safe to
// show to the user as-is.
type Error struct {
	Status     int
	Message    string
	Field      string        // first failing field on 400, when the server names one
	RetryAfter time.Duration // populated from the Retry-After header on 429
	kind       error
	cause      error  // underlying transport failure, when any
	serverMsg  string // raw envelope message, kept for the sign-in special case
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.kind }

// Cause returns the underlying transport error for logging. It carries a
// stack via go-xerrors; user-facing text stays in Message.
func (e *Error) Cause() error { return e.cause }

// errEnvelope is the error body shape the API uses everywhere.
type errEnvelope struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// decodeError maps an HTTP error response onto the fixed taxonomy:
// 400 surfaces the first validation message, 401/403 map to session and
// permission errors, 404 keeps the server's message, 429 carries Retry-After,
// and anything 5xx collapses into a generic server error.
func decodeError(resp *http.Response) *Error {
	var env errEnvelope
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(body, &env)

	apiErr := &Error{Status: resp.StatusCode, Message: env.Message, serverMsg: env.Message}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		apiErr.kind = ErrValidation
		if len(env.Errors) > 0 {
			apiErr.Field = env.Errors[0].Field
			apiErr.Message = env.Errors[0].Message
		}
		if apiErr.Message == "" {
			apiErr.Message = "validation error"
		}

	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
		apiErr.Message = "Session expired. Please sign in again."

	case resp.StatusCode == http.StatusForbidden:
		apiErr.kind = ErrForbidden
		apiErr.Message = "Access denied. You don't have permission to perform this action."

	case resp.StatusCode == http.StatusNotFound:
		apiErr.kind = ErrNotFound
		if apiErr.Message == "" {
			apiErr.Message = "Resource not found"
		}

	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.kind = ErrRateLimited
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			apiErr.RetryAfter = time.Duration(secs) * time.Second
			apiErr.Message = fmt.Sprintf("Rate limit exceeded. Please try again in %d seconds.", secs)
		} else {
			apiErr.Message = "Rate limit exceeded. Please try again later."
		}

	case resp.StatusCode >= http.StatusInternalServerError:
		apiErr.kind = ErrServer
		apiErr.Message = "Server error. Please try again later."

	default:
		apiErr.kind = ErrServer
		if apiErr.Message == "" {
			apiErr.Message = "An unexpected error occurred"
		}
	}

	return apiErr
}
