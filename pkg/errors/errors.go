package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Transport errors
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Non-2xx responses
	ErrorTypeHTTP         ErrorType = "http"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeServer       ErrorType = "server"

	// Client-side errors
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNoToken    ErrorType = "no_token"

	// Domain conditions that need dedicated UI treatment
	ErrorTypeLinkExpired ErrorType = "link_expired"

	ErrorTypeUnknown ErrorType = "unknown"
)

var (
	ErrNoAccessToken  = NewAppError(ErrorTypeNoToken, "No token found", nil)
	ErrNoRefreshToken = NewAppError(ErrorTypeNoToken, "No refresh token", nil)
	ErrLinkExpired    = LinkExpiredError()
)

// AppError represents a structured error with context
type AppError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	Fields     map[string][]string
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type, so sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// WithSuggestion adds a helpful suggestion to the error
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *AppError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// NewAppError creates a new error of the given type
func NewAppError(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string, cause error) *AppError {
	err := NewAppError(ErrorTypeNetwork, message, cause)
	err.Suggestion = "Check your internet connection and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError(cause error) *AppError {
	err := NewAppError(ErrorTypeTimeout, "Request timed out", cause)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// UnauthorizedError creates an error for a rejected or missing session
func UnauthorizedError(message string) *AppError {
	err := NewAppError(ErrorTypeUnauthorized, message, nil)
	err.StatusCode = http.StatusUnauthorized
	err.Suggestion = "Sign in again with 'blogfront auth login'."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *AppError {
	err := NewAppError(ErrorTypeValidation, fmt.Sprintf("%s: %s", field, reason), nil)
	err.Fields = map[string][]string{field: {reason}}
	return err
}

// LinkExpiredError creates the error returned when an activation link is stale
func LinkExpiredError() *AppError {
	err := NewAppError(ErrorTypeLinkExpired, "This activation link has expired", nil)
	err.Suggestion = "Register again to receive a new activation link."
	return err
}

// HTTPStatusError is implemented by transport errors that carry a response status.
type HTTPStatusError interface {
	error
	HTTPStatus() int
}

// Categorize converts a standard error into an AppError
func Categorize(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		return fromStatus(statusErr)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return TimeoutError(err)
		}
		return NetworkError("Could not connect to server", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return NetworkError("Could not connect to server", err)
	}

	if strings.Contains(err.Error(), "connection refused") {
		return NetworkError("Could not connect to server. Make sure it's running.", err)
	}

	return NewAppError(ErrorTypeUnknown, err.Error(), err)
}

func fromStatus(err HTTPStatusError) *AppError {
	status := err.HTTPStatus()
	var t ErrorType
	switch {
	case status == http.StatusUnauthorized:
		t = ErrorTypeUnauthorized
	case status == http.StatusForbidden:
		t = ErrorTypeForbidden
	case status == http.StatusNotFound:
		t = ErrorTypeNotFound
	case status >= 500:
		t = ErrorTypeServer
	default:
		t = ErrorTypeHTTP
	}
	appErr := NewAppError(t, err.Error(), err)
	appErr.StatusCode = status
	return appErr
}

// Message normalizes any error to the string stored in slice state and notifications.
// fallback is used when the error carries no text at all.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(Categorize(err).Message)
	if msg == "" {
		return fallback
	}
	return msg
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	appErr := Categorize(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if appErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(appErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(appErr.Message)
	sb.WriteString("\n")

	if appErr.HasSuggestion() {
		sb.WriteString("Suggestion: ")
		sb.WriteString(appErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}
