package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", NewValidation("too short"), http.StatusBadRequest},
		{"conflict", NewConflict("username already exists"), http.StatusConflict},
		{"authentication", NewAuthentication("invalid username or password"), http.StatusUnauthorized},
		{"unauthenticated", NewUnauthenticated("login required"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("admin access required"), http.StatusForbidden},
		{"not found", NewNotFound("expense not found"), http.StatusNotFound},
		{"database", NewDatabase("query failed", errors.New("disk I/O error")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestTypeChecksSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("list expenses: %w", NewNotFound("expense not found"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, "expense not found", Message(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.username")
	err := NewDatabase("create user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create user")
	assert.Contains(t, err.Error(), "UNIQUE constraint")
}

func TestMessageHidesNonAppErrors(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred. Please try again.", Message(errors.New("pq: deadlock detected")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
