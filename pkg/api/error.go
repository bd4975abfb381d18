package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// FieldErrors maps a form field to the server's messages about it.
type FieldErrors map[string][]string

// String joins the mapping as "field: a, b; other: c" with fields sorted.
func (f FieldErrors) String() string {
	if len(f) == 0 {
		return ""
	}

	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(f[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// APIError represents a non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
	Body       []byte

	detail string
	fields FieldErrors
}

// HTTPStatus implements errors.HTTPStatusError.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Detail is the server's "detail" message, if the body carried one.
func (e *APIError) Detail() string {
	return e.detail
}

// FieldErrors is the field-level validation mapping, if the body carried one.
func (e *APIError) FieldErrors() FieldErrors {
	return e.fields
}

// Message picks the most specific description available: detail, then joined
// field errors, then the raw body, then the status text.
func (e *APIError) Message() string {
	if e.detail != "" {
		return e.detail
	}
	if len(e.fields) > 0 {
		return e.fields.String()
	}
	if raw := strings.TrimSpace(string(e.Body)); raw != "" {
		return raw
	}
	if e.Status != "" {
		return e.Status
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *APIError) Error() string {
	return e.Message()
}

// ParseError decodes a failed response body.
func ParseError(resp *resty.Response) error {
	return NewAPIError(resp.StatusCode(), resp.Status(), resp.Body())
}

// NewAPIError builds an APIError and decodes body.
//
// Recognised shapes are an object whose values are strings or lists of
// strings ("detail" is lifted out), or a bare list of strings which is
// filed under non_field_errors. Values of any other shape are skipped. If
// nothing is recognised the raw body is kept as the message.
func NewAPIError(statusCode int, status string, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode, Status: status, Body: body}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for key, raw := range obj {
			msgs, ok := decodeMessages(raw)
			if !ok || len(msgs) == 0 {
				continue
			}
			if key == "detail" {
				e.detail = strings.Join(msgs, " ")
				continue
			}
			if e.fields == nil {
				e.fields = FieldErrors{}
			}
			e.fields[key] = msgs
		}
		return e
	}

	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		var msgs []string
		for _, raw := range list {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				msgs = append(msgs, s)
			}
		}
		if len(msgs) > 0 {
			e.fields = FieldErrors{"non_field_errors": msgs}
		}
	}
	return e
}

func decodeMessages(raw json.RawMessage) ([]string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}, true
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	msgs := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, false
		}
		msgs = append(msgs, s)
	}
	return msgs, true
}

// IsStaleToken reports whether err is the server's rejection of an already
// used or expired activation token.
func IsStaleToken(err error) bool {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Message()), "stale token")
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// CheckResponse checks if response is successful and returns error if not
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return ParseError(resp)
	}

	return nil
}
