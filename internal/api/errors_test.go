package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorServer replies to every request with the given status and body.
func errorServer(t *testing.T, status int, body string, header http.Header) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key, values := range header {
			for _, v := range values {
				w.Header().Add(key, v)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func callAndClassify(t *testing.T, client *Client) *Error {
	t.Helper()
	_, _, err := client.ListArticles(context.Background(), nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    error
		message string
		field   string
	}{
		{
			name:    "400 surfaces first validation message",
			status:  http.StatusBadRequest,
			body:    `{"message":"validation error","errors":[{"field":"title","message":"title must be 3-100 characters"},{"field":"slug","message":"slug is required"}]}`,
			kind:    ErrValidation,
			message: "title must be 3-100 characters",
			field:   "title",
		},
		{
			name:    "400 without field list",
			status:  http.StatusBadRequest,
			body:    `{"message":"only draft or rejected articles can be edited"}`,
			kind:    ErrValidation,
			message: "only draft or rejected articles can be edited",
		},
		{
			name:    "401 gets fixed session message",
			status:  http.StatusUnauthorized,
			body:    `{"message":"token expired"}`,
			kind:    ErrUnauthorized,
			message: "Session expired. Please sign in again.",
		},
		{
			name:    "403 gets fixed permission message",
			status:  http.StatusForbidden,
			body:    `{"message":"insufficient permissions"}`,
			kind:    ErrForbidden,
			message: "Access denied. You don't have permission to perform this action.",
		},
		{
			name:    "404 keeps server message",
			status:  http.StatusNotFound,
			body:    `{"message":"Article not found"}`,
			kind:    ErrNotFound,
			message: "Article not found",
		},
		{
			name:    "404 with empty body",
			status:  http.StatusNotFound,
			body:    ``,
			kind:    ErrNotFound,
			message: "Resource not found",
		},
		{
			name:    "500 collapses to generic",
			status:  http.StatusInternalServerError,
			body:    `{"message":"pq: connection refused"}`,
			kind:    ErrServer,
			message: "Server error. Please try again later.",
		},
		{
			name:    "503 collapses to generic",
			status:  http.StatusServiceUnavailable,
			body:    ``,
			kind:    ErrServer,
			message: "Server error. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := errorServer(t, tt.status, tt.body, nil)
			apiErr := callAndClassify(t, client)

			assert.ErrorIs(t, apiErr, tt.kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}
}

func TestRateLimitRetryAfter(t *testing.T) {
	header := http.Header{"Retry-After": []string{"30"}}
	client := errorServer(t, http.StatusTooManyRequests, `{"message":"slow down"}`, header)

	apiErr := callAndClassify(t, client)
	assert.ErrorIs(t, apiErr, ErrRateLimited)
	assert.Equal(t, 30*time.Second, apiErr.RetryAfter)
	assert.Equal(t, "Rate limit exceeded. Please try again in 30 seconds.", apiErr.Message)
}

func TestRateLimitWithoutRetryAfter(t *testing.T) {
	client := errorServer(t, http.StatusTooManyRequests, ``, nil)

	apiErr := callAndClassify(t, client)
	assert.ErrorIs(t, apiErr, ErrRateLimited)
	assert.Zero(t, apiErr.RetryAfter)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", apiErr.Message)
}

func TestNetworkErrorClassification(t *testing.T) {
	// A server that is already closed guarantees a connection failure.
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	client := New(ts.URL)
	_, _, err := client.ListArticles(context.Background(), nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, apiErr, ErrNetwork)
	assert.Equal(t, "Network error. Please check your connection.", apiErr.Message)
	assert.Error(t, apiErr.Cause(), "transport failure must be retained for logging")
}

func TestErrorMessageIsUserFacing(t *testing.T) {
	apiErr := &Error{Status: 404, Message: "Article not found", kind: ErrNotFound}
	assert.Equal(t, "Article not found", apiErr.Error())
	assert.True(t, errors.Is(apiErr, ErrNotFound))
}
