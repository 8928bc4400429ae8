package store

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	custom := ErrNotFound.WithMessage("lap time not found")

	assert.True(t, errors.Is(custom, ErrNotFound))
	assert.False(t, errors.Is(custom, ErrAlreadyExists))
	assert.True(t, errors.Is(fmt.Errorf("delete: %w", custom), ErrNotFound))
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.email_lower")
	err := ErrAlreadyExists.WithCause(cause)

	assert.Equal(t, http.StatusConflict, err.HTTPCode())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "resource already exists: UNIQUE constraint failed: users.email_lower", err.Error())
}
