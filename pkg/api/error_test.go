package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/zfogg/blogfront/pkg/errors"
)

func TestNewAPIError_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		detail  string
		fields  FieldErrors
		message string
	}{
		{
			name:    "detail",
			body:    `{"detail":"No active account found with the given credentials"}`,
			detail:  "No active account found with the given credentials",
			message: "No active account found with the given credentials",
		},
		{
			name: "field lists",
			body: `{"email":["user with this email already exists."],"password":["This password is too short.","This password is too common."]}`,
			fields: FieldErrors{
				"email":    {"user with this email already exists."},
				"password": {"This password is too short.", "This password is too common."},
			},
			message: "email: user with this email already exists.; password: This password is too short., This password is too common.",
		},
		{
			name:    "field string",
			body:    `{"username":"taken"}`,
			fields:  FieldErrors{"username": {"taken"}},
			message: "username: taken",
		},
		{
			name:    "bare list",
			body:    `["Unable to log in"]`,
			fields:  FieldErrors{"non_field_errors": {"Unable to log in"}},
			message: "non_field_errors: Unable to log in",
		},
		{
			name:    "unrecognised object keeps raw body",
			body:    `{"errors":{"nested":1}}`,
			message: `{"errors":{"nested":1}}`,
		},
		{
			name:    "not json",
			body:    "Bad Gateway from proxy",
			message: "Bad Gateway from proxy",
		},
		{
			name:    "empty body",
			body:    "",
			message: "400 Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewAPIError(400, "400 Bad Request", []byte(tt.body))
			assert.Equal(t, tt.detail, e.Detail())
			if tt.fields == nil {
				assert.Empty(t, e.FieldErrors())
			} else {
				assert.Equal(t, tt.fields, e.FieldErrors())
			}
			assert.Equal(t, tt.message, e.Message())
			assert.Equal(t, tt.message, e.Error())
		})
	}
}

func TestAPIError_StatusTextFallback(t *testing.T) {
	e := NewAPIError(404, "", nil)
	assert.Equal(t, "Not Found", e.Message())

	e = NewAPIError(599, "", nil)
	assert.Equal(t, "HTTP 599", e.Message())
}

func TestIsStaleToken(t *testing.T) {
	stale := NewAPIError(403, "403 Forbidden", []byte(`{"detail":"Stale token for given user."}`))
	assert.True(t, IsStaleToken(stale))
	assert.True(t, IsStaleToken(fmt.Errorf("activate: %w", stale)))

	invalid := NewAPIError(400, "400 Bad Request", []byte(`{"uid":["Invalid user id or user doesn't exist."]}`))
	assert.False(t, IsStaleToken(invalid))
	assert.False(t, IsStaleToken(errors.New("stale token")))
}

func TestAPIError_Categorized(t *testing.T) {
	err := NewAPIError(401, "401 Unauthorized", []byte(`{"detail":"Given token not valid for any token type"}`))
	appErr := apperrors.Categorize(err)

	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "Given token not valid for any token type", apperrors.Message(err, "fallback"))
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}
