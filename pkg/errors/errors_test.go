package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		check  func(error) bool
		status int
	}{
		{"validation", NewValidationError("bad input"), IsValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("course offering"), IsNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("course full"), IsConflict, http.StatusConflict},
		{"database", NewDatabaseError("get item", errors.New("boom")), IsDatabase, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.True(t, IsAppError(tt.err))
		})
	}
}

func TestTypeChecksAreExclusive(t *testing.T) {
	err := NewConflictError("course full")

	assert.True(t, IsConflict(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsDatabase(err))
}

func TestWrappedAppErrorIsStillDetected(t *testing.T) {
	inner := NewNotFoundError("registration")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.True(t, IsNotFound(wrapped))
	require.NotNil(t, GetAppError(wrapped))
	assert.Equal(t, ErrorTypeNotFound, GetAppError(wrapped).Type)
}

func TestWithCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewInternalError("commit failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "socket closed")
}

func TestPlainErrorsAreNotAppErrors(t *testing.T) {
	err := errors.New("plain")
	assert.False(t, IsAppError(err))
	assert.Nil(t, GetAppError(err))
	assert.False(t, IsConflict(err))
}
