package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr struct {
	status int
	msg    string
}

func (e statusErr) Error() string   { return e.msg }
func (e statusErr) HTTPStatus() int { return e.status }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestNewAppError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewAppError(ErrorTypeValidation, "Test error", cause)

	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "Test error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWithSuggestion(t *testing.T) {
	err := NewAppError(ErrorTypeValidation, "Test", nil).WithSuggestion("Try something else")

	assert.True(t, err.HasSuggestion())
	assert.Equal(t, "Try something else", err.Suggestion)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect ErrorType
	}{
		{"unauthorized", statusErr{http.StatusUnauthorized, "nope"}, ErrorTypeUnauthorized},
		{"forbidden", statusErr{http.StatusForbidden, "nope"}, ErrorTypeForbidden},
		{"not found", statusErr{http.StatusNotFound, "gone"}, ErrorTypeNotFound},
		{"server", statusErr{http.StatusBadGateway, "boom"}, ErrorTypeServer},
		{"bad request", statusErr{http.StatusBadRequest, "bad"}, ErrorTypeHTTP},
		{"wrapped status", fmt.Errorf("fetch: %w", statusErr{http.StatusNotFound, "gone"}), ErrorTypeNotFound},
		{"deadline", context.DeadlineExceeded, ErrorTypeTimeout},
		{"net timeout", timeoutErr{}, ErrorTypeTimeout},
		{"net op", &net.OpError{Op: "dial", Err: errors.New("refused")}, ErrorTypeNetwork},
		{"refused text", errors.New("dial tcp: connection refused"), ErrorTypeNetwork},
		{"plain", errors.New("something odd"), ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Categorize(tt.err).Type)
		})
	}
}

func TestCategorizeKeepsAppError(t *testing.T) {
	original := LinkExpiredError()
	assert.Same(t, original, Categorize(fmt.Errorf("activate: %w", original)))
	assert.Nil(t, Categorize(nil))
}

func TestCategorizeStatusCode(t *testing.T) {
	appErr := Categorize(statusErr{http.StatusTooManyRequests, "slow down"})
	assert.Equal(t, http.StatusTooManyRequests, appErr.StatusCode)
	assert.Equal(t, "slow down", appErr.Message)
}

func TestSentinelsMatchByType(t *testing.T) {
	assert.ErrorIs(t, LinkExpiredError(), ErrLinkExpired)
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", ErrNoAccessToken), ErrNoAccessToken)
	assert.NotErrorIs(t, ErrNoAccessToken, ErrNoRefreshToken)
	assert.NotErrorIs(t, errors.New("No token found"), ErrNoAccessToken)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("   "), "fallback"))
	assert.Equal(t, "Invalid email", Message(statusErr{400, "Invalid email"}, "fallback"))
}

func TestFormatError(t *testing.T) {
	assert.Empty(t, FormatError(nil))

	out := FormatError(TimeoutError(nil))
	assert.Contains(t, out, "(timeout)")
	assert.Contains(t, out, "Suggestion:")

	out = FormatError(errors.New("weird"))
	assert.Equal(t, "Error: weird\n", out)
}

func TestValidationErrorFields(t *testing.T) {
	err := ValidationError("title", "Title is required")
	assert.Equal(t, []string{"Title is required"}, err.Fields["title"])
	assert.Equal(t, "title: Title is required", err.Error())
}
