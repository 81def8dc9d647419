package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{"not found", NewNotFound("complaint", nil), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("dup", nil), CodeConflict, http.StatusConflict},
		{"unauthorized", NewUnauthorized("nope"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), CodeForbidden, http.StatusForbidden},
		{"wrapped domain", fmt.Errorf("ctx: %w", NewConflict("dup", nil)), CodeConflict, http.StatusConflict},
		{"pgx no rows", pgx.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"generic", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: db down", err.Error())
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewNotFound("user", nil), CodeNotFound))
	assert.False(t, HasCode(NewNotFound("user", nil), CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}
